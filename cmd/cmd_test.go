package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVersionCommand はバージョン表示をテストする
func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "CCRT-RSII 1.0.0\n", out.String())
}

// TestServeFlagsOverrideConfig はコマンドラインオプションが設定を上書きすることをテストする
func TestServeFlagsOverrideConfig(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("PORT", "7000")
	t.Setenv("SERVER_HOST", "")
	t.Setenv("ASSET_ROOT", "")
	t.Setenv("DEBUG", "")

	opts := &serveOpts{}
	cmd := newServeCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--host", "0.0.0.0", "--assets", "/srv/site", "--debug=false"}))

	cfg, err := opts.load(cmd.Flags())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 7000, cfg.Server.Port, "フラグが無い値は環境変数のまま")
	assert.Equal(t, "/srv/site", cfg.Assets.Root)
	assert.False(t, cfg.App.Debug)
}

// TestServeRejectsInvalidPort は不正なポートを拒否することをテストする
func TestServeRejectsInvalidPort(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("PORT", "")

	opts := &serveOpts{}
	cmd := newServeCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"--port", "70000"}))

	_, err = opts.load(cmd.Flags())
	assert.Error(t, err)
}
