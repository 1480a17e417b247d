package command

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long: "Applies any pending migrations and exits. The serve command also migrates\n" +
			"on startup, so this is only needed to prepare a database ahead of time.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			if err = store.Close(); err != nil {
				return fmt.Errorf("failed to close database: %w", err)
			}
			logger.InfoContext(cmd.Context(),
				"database is up to date",
				slog.String("db", string(cfg.Database.Driver)),
			)
			return nil
		},
	}
}
