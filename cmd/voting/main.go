// 投票APIサービスのエントリポイント。
// 投票者のログイン、セッショントークンの検証、管理者による候補者登録と投票期間設定を担当する。
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/voting/internal/command"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := command.RootCommand().ExecuteContext(ctx); err != nil {
		log.Printf("投票APIサービスの実行に失敗: %v", err)
		stop()
		os.Exit(1)
	}
}
