package cmd

import (
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ccrtsite/internal/assets"
	"ccrtsite/internal/config"
	"ccrtsite/internal/server"
)

// serveOpts は serve コマンドのオプション
type serveOpts struct {
	configPath string
	host       string
	port       int
	assetsRoot string
	debug      bool
}

func newServeCmd(opts *serveOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "HTTPサーバーを起動します",
		Example: `  ccrtsite serve
  ccrtsite serve --port 8080 --assets ./public
  ccrtsite serve --config config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd)
		},
	}
	opts.bindFlags(cmd.Flags())
	return cmd
}

func (o *serveOpts) bindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.host, "host", "", "サーバーのホスト (デフォルト: 127.0.0.1)")
	fs.IntVar(&o.port, "port", 0, "サーバーのポート (デフォルト: 5001)")
	fs.StringVar(&o.assetsRoot, "assets", "", "アセットルート (デフォルト: 実行ファイルの一つ上のディレクトリ)")
	fs.BoolVar(&o.debug, "debug", false, "デバッグモード")
}

// load は設定を読み込み、コマンドラインオプションで上書きする
func (o *serveOpts) load(flags *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗しました: %w", err)
	}

	if flags.Changed("host") {
		cfg.Server.Host = o.host
	}
	if flags.Changed("port") {
		cfg.Server.Port = o.port
	}
	if flags.Changed("assets") {
		cfg.Assets.Root = o.assetsRoot
	}
	if flags.Changed("debug") {
		cfg.App.Debug = o.debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *serveOpts) run(cmd *cobra.Command) error {
	cfg, err := o.load(cmd.Flags())
	if err != nil {
		return err
	}

	logger := newLogger(cfg.App.Debug)
	slog.SetDefault(logger)

	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
		if cfg.App.SecretKey == config.DefaultSecretKey {
			logger.Warn("開発用のSECRET_KEYが使われています")
		}
	}

	store, err := assets.NewDir(cfg.Assets.Root)
	if err != nil {
		return err
	}
	// インデックスが無くても起動はする（リクエスト時に500になる）
	if err := store.Check(cfg.Assets.Index); err != nil {
		logger.Warn("アセットルートを確認してください", slog.String("error", err.Error()))
	}

	logger.Info("サーバーを起動します",
		slog.String("addr", cfg.ServerAddress()),
		slog.String("assets", store.Root()),
		slog.Bool("debug", cfg.App.Debug),
	)

	srv := server.New(cfg, store, logger)
	if err := srv.Start(cmd.Context()); err != nil {
		logger.Error("サーバーの起動に失敗しました", slog.String("error", err.Error()))
		return err
	}
	return nil
}
