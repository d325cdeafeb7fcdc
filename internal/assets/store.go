package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"syscall"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

// ErrNotFound はアセットが存在しないことを示す
var ErrNotFound = errors.New("asset not found")

// Store は読み取り専用のアセットストア
type Store struct {
	fs   afero.Fs
	root string
}

// New は任意のafero.Fsをアセットストアとして包む
// テストではafero.NewMemMapFs()を渡す
func New(fsys afero.Fs) *Store {
	return &Store{fs: afero.NewReadOnlyFs(fsys), root: "/"}
}

// NewDir はディスク上のディレクトリをルートとするアセットストアを作成する
// ルート外へのパスはBasePathFsによって拒否される
func NewDir(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("アセットルートの解決に失敗: %w", err)
	}
	s := New(afero.NewBasePathFs(afero.NewOsFs(), abs))
	s.root = abs
	return s, nil
}

// DefaultRoot は実行ファイルがあるディレクトリの一つ上を返す
func DefaultRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("実行ファイルの場所を取得できません: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}

// Root はストアのルートを返す
func (s *Store) Root() string {
	return s.root
}

// ReadFile はアセットを読み込む
// 存在しないファイル・ディレクトリ・ルート外のパスはErrNotFoundを返す
func (s *Store) ReadFile(name string) ([]byte, error) {
	clean := normalize(name)

	info, err := s.fs.Stat(clean)
	if err != nil {
		if isMissing(err) {
			return nil, fmt.Errorf("%s: %w", clean, ErrNotFound)
		}
		return nil, fmt.Errorf("アセットの確認に失敗 %s: %w", clean, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s はディレクトリです: %w", clean, ErrNotFound)
	}

	data, err := afero.ReadFile(s.fs, clean)
	if err != nil {
		if isMissing(err) {
			return nil, fmt.Errorf("%s: %w", clean, ErrNotFound)
		}
		return nil, fmt.Errorf("アセットの読み込みに失敗 %s: %w", clean, err)
	}
	return data, nil
}

// Check はルートとインデックスページが読めることを確認する
func (s *Store) Check(index string) error {
	info, err := s.fs.Stat("/")
	if err != nil {
		return fmt.Errorf("アセットルート %s を開けません: %w", s.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("アセットルート %s はディレクトリではありません", s.root)
	}
	if _, err := s.ReadFile(index); err != nil {
		return fmt.Errorf("インデックスページ %s: %w", index, err)
	}
	return nil
}

// ContentType は拡張子からContent-Typeを推定する
// 未知の拡張子の場合は内容から判定する
func ContentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return mimetype.Detect(data).String()
}

// isMissing はOSが「存在し得ないパス」として返すエラーを判定する
// ファイルの下を辿るパス (ENOTDIR)、長すぎる名前 (ENAMETOOLONG)、
// NULを含む名前 (EINVAL) も見つからない扱いにする
// 権限エラーなどは内部エラーのまま
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, syscall.ENAMETOOLONG) ||
		errors.Is(err, syscall.EINVAL)
}

// normalize はストア内の絶対パスに変換する
// "/../x" のようなパスは "/x" に丸められる
func normalize(name string) string {
	return path.Clean("/" + name)
}
