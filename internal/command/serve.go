package command

import (
	"errors"
	"log"

	"github.com/spf13/cobra"

	"github.com/nao1215/voting/internal/voting"
)

func serveCommand(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the voting API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}

			server, err := voting.NewServer(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := server.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			log.Printf("投票APIサービスを起動します: :%s", cfg.Port)
			if err := server.Run(cmd.Context()); err != nil {
				return err
			}
			log.Printf("投票APIサービスを停止しました")
			return nil
		},
	}
}
