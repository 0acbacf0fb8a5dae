package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/voting/internal/voting"
	votingdb "github.com/nao1215/voting/internal/voting/db"
)

// errInvalidRole は--roleにvoterとadmin以外が指定されたことを表す。
var errInvalidRole = errors.New("role must be voter or admin")

func voterCommand(envFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voter",
		Short: "Voter commands",
	}
	cmd.AddCommand(voterAddCommand(envFile))
	return cmd
}

func voterAddCommand(envFile *string) *cobra.Command {
	var (
		voterID  string
		password string
		role     string
		hash     bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a voter in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			switch voting.Role(role) {
			case voting.RoleVoter, voting.RoleAdmin:
			default:
				return fmt.Errorf("%w: %q", errInvalidRole, role)
			}

			stored := password
			if hash {
				hashed, err := voting.HashPassword(password)
				if err != nil {
					return err
				}
				stored = hashed
			}

			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			sqlDB, err := voting.OpenDatabase(cmd.Context(), cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer func() {
				if err := sqlDB.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			if err := votingdb.New(sqlDB).CreateVoter(cmd.Context(), votingdb.CreateVoterParams{
				VoterID:  voterID,
				Password: stored,
				Role:     role,
			}); err != nil {
				return fmt.Errorf("投票者の登録に失敗: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "voter %s registered with role %s\n", voterID, role)
			return err
		},
	}

	cmd.Flags().StringVar(&voterID, "id", "", "voter ID")
	cmd.Flags().StringVar(&password, "password", "", "voter password")
	cmd.Flags().StringVar(&role, "role", string(voting.RoleVoter), "voter role (voter or admin)")
	cmd.Flags().BoolVar(&hash, "hash", true, "store the password as a bcrypt hash")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
