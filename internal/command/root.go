// Package command は投票APIサーバーのCLIコマンドを定義する。
package command

import (
	"github.com/spf13/cobra"

	"github.com/nao1215/voting/internal/config"
)

// RootCommand はサブコマンドを登録したルートコマンドを生成する。
// サブコマンドを省略した場合はserveとして動作する。
func RootCommand() *cobra.Command {
	var envFile string

	serve := serveCommand(&envFile)
	cmd := &cobra.Command{
		Use:          "voting [command] [flags]",
		Short:        "Voting authentication API server",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		RunE: serve.RunE,
	}

	cmd.PersistentFlags().StringVarP(&envFile, "env-file", "e", "", "path to a .env file (default: ./.env if present)")

	cmd.AddCommand(
		serve,
		hashPasswordCommand(),
		voterCommand(&envFile),
	)
	return cmd
}

// loadConfig は--env-fileの指定に応じて設定を読み込む。
func loadConfig(envFile string) (config.Config, error) {
	if envFile == "" {
		return config.Load()
	}
	return config.Load(envFile)
}
