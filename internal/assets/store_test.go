package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemStore(t *testing.T, files map[string]string) *Store {
	t.Helper()
	mem := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(mem, name, []byte(content), 0o644))
	}
	return New(mem)
}

// TestReadFile はアセットの読み込みをテストする
func TestReadFile(t *testing.T) {
	store := newMemStore(t, map[string]string{
		"/index.html":      "<h1>index</h1>",
		"/styles/main.css": "body{}",
	})

	testCases := []struct {
		name     string
		path     string
		want     string
		notFound bool
	}{
		{name: "ルート直下", path: "index.html", want: "<h1>index</h1>"},
		{name: "先頭スラッシュ付き", path: "/index.html", want: "<h1>index</h1>"},
		{name: "サブディレクトリ", path: "styles/main.css", want: "body{}"},
		{name: "存在しないファイル", path: "missing.html", notFound: true},
		{name: "ディレクトリ", path: "styles", notFound: true},
		{name: "ルート外", path: "../../etc/passwd", notFound: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := store.ReadFile(tc.path)
			if tc.notFound {
				require.ErrorIs(t, err, ErrNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(data))
		})
	}
}

// TestNewDirStaysInsideRoot はディスク上のルート外へ出られないことをテストする
func TestNewDirStaysInsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "site")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("inside"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("outside"), 0o644))

	store, err := NewDir(root)
	require.NoError(t, err)
	assert.Equal(t, root, store.Root())

	data, err := store.ReadFile("index.html")
	require.NoError(t, err)
	assert.Equal(t, "inside", string(data))

	_, err = store.ReadFile("../secret.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestCheck はインデックスページの存在確認をテストする
func TestCheck(t *testing.T) {
	ok := newMemStore(t, map[string]string{"/index.html": "x"})
	assert.NoError(t, ok.Check("index.html"))

	missing := newMemStore(t, map[string]string{"/about.html": "x"})
	assert.ErrorIs(t, missing.Check("index.html"), ErrNotFound)
}

// TestContentType はContent-Typeの推定をテストする
func TestContentType(t *testing.T) {
	testCases := []struct {
		name string
		file string
		data []byte
		want string
	}{
		{name: "HTML", file: "index.html", want: "text/html; charset=utf-8"},
		{name: "CSS", file: "main.css", want: "text/css; charset=utf-8"},
		{name: "PNG拡張子", file: "logo.png", want: "image/png"},
		{name: "未知の拡張子はPNGの内容から判定", file: "logo.unknownext", data: []byte("\x89PNG\r\n\x1a\n0000"), want: "image/png"},
		{name: "拡張子なしのテキスト", file: "LICENSE", data: []byte("plain words"), want: "text/plain; charset=utf-8"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ContentType(tc.file, tc.data))
		})
	}
}

// newDiskStore はディスク上の一時ディレクトリをルートとするストアを作成する
func newDiskStore(t *testing.T) *Store {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "styles"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("index"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "styles", "main.css"), []byte("body{}"), 0o644))

	store, err := NewDir(root)
	require.NoError(t, err)
	return store
}

// TestReadFileImpossiblePathsOnDisk は存在し得ないパスがErrNotFoundになることをテストする
func TestReadFileImpossiblePathsOnDisk(t *testing.T) {
	store := newDiskStore(t)

	testCases := []struct {
		name string
		path string
	}{
		{"ファイルの下のパス", "index.html/foo"},
		{"CSSの下のスクリプト", "styles/main.css/x.js"},
		{"長すぎる名前", strings.Repeat("a", 300) + ".html"},
		{"NULを含む名前", "a\x00b.html"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.ReadFile(tc.path)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

// TestReadFilePermissionDenied は権限エラーが内部エラーのまま返ることをテストする
func TestReadFilePermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("rootでは権限エラーが発生しない")
	}
	store := newDiskStore(t)
	locked := filepath.Join(store.Root(), "locked.html")
	require.NoError(t, os.WriteFile(locked, []byte("secret"), 0o000))

	_, err := store.ReadFile("locked.html")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
