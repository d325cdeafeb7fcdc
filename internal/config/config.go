package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"ccrtsite/internal/assets"
)

// DefaultSecretKey は開発用のシークレット（本番では SECRET_KEY で上書きする）
const DefaultSecretKey = "dev-secret-key-change-in-production"

// Config はアプリケーション全体の設定を保持する構造体
// Load で一度だけ構築し、以降は変更しない
type Config struct {
	Server ServerConfig `yaml:"server" toml:"server"`
	Assets AssetsConfig `yaml:"assets" toml:"assets"`
	App    AppConfig    `yaml:"app" toml:"app"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host" toml:"host" validate:"required"`        // リッスンするホスト
	Port int    `yaml:"port" toml:"port" validate:"min=1,max=65535"` // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout     time.Duration `yaml:"read_timeout" toml:"read_timeout"`         // 読み込みタイムアウト
	WriteTimeout    time.Duration `yaml:"write_timeout" toml:"write_timeout"`       // 書き込みタイムアウト
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" toml:"shutdown_timeout"` // シャットダウン待ち時間
}

// AssetsConfig は静的ファイルの設定
type AssetsConfig struct {
	Root  string `yaml:"root" toml:"root" validate:"required"`   // アセットルート
	Index string `yaml:"index" toml:"index" validate:"required"` // フォールバック先のページ
}

// AppConfig はアプリケーション固有の設定
type AppConfig struct {
	SecretKey string `yaml:"secret_key" toml:"secret_key"`
	Debug     bool   `yaml:"debug" toml:"debug"`
}

// Default はデフォルト設定を返す
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            5001,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Assets: AssetsConfig{
			Index: "index.html",
		},
		App: AppConfig{
			SecretKey: DefaultSecretKey,
			Debug:     true,
		},
	}
}

// Load は設定を読み込む
// 優先順位: デフォルト < 設定ファイル < .env < 環境変数
// path が空の場合は設定ファイルを読まない
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	// .env が無いのは正常
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".envの読み込みに失敗: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.Assets.Root == "" {
		root, err := assets.DefaultRoot()
		if err != nil {
			return nil, err
		}
		cfg.Assets.Root = root
	}

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// loadFile はYAMLまたはTOMLの設定ファイルを読み込む
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("設定ファイルの読み込みに失敗: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml":
		err = toml.Unmarshal(data, c)
	default:
		return fmt.Errorf("未対応の設定ファイル形式: %q", ext)
	}
	if err != nil {
		return fmt.Errorf("設定ファイル %s の解析に失敗: %w", path, err)
	}
	return nil
}

// applyEnv は環境変数で設定を上書きする
func (c *Config) applyEnv() error {
	c.Server.Host = getEnvOrDefault("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnvAsIntOrDefault("PORT", c.Server.Port)
	c.Assets.Root = getEnvOrDefault("ASSET_ROOT", c.Assets.Root)
	c.App.SecretKey = getEnvOrDefault("SECRET_KEY", c.App.SecretKey)

	if value := os.Getenv("DEBUG"); value != "" {
		debug, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("DEBUG の値が不正です %q: %w", value, err)
		}
		c.App.Debug = debug
	}
	return nil
}

var validate = validator.New()

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("無効な設定 %s: %v (%s)", fe.Namespace(), fe.Value(), fe.Tag())
		}
		return err
	}
	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
