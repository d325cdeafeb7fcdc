// Package cmd はccrtsiteコマンドの実装です
package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ccrtsite/internal/version"
)

// Execute はルートコマンドを実行する
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// newRootCmd はルートコマンドを作成する
// サブコマンドなしで実行した場合は serve と同じ動作をする
func newRootCmd() *cobra.Command {
	opts := &serveOpts{}

	root := &cobra.Command{
		Use:          "ccrtsite",
		Short:        version.Name + " のWebサイトを配信します",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "設定ファイル (YAML/TOML)")
	opts.bindFlags(root.Flags())

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

// newLogger はslogのロガーを作成する
// デバッグ時はテキスト形式、それ以外はJSON形式
func newLogger(debug bool) *slog.Logger {
	if debug {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}
