package main

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/hr-manager/internal/config"
	"github.com/deppfellow/hr-manager/internal/database"
	"github.com/deppfellow/hr-manager/internal/logger"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			log := logger.NewLoggerWithService(cfg.Observability, nil)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := database.Migrate(ctx, &log, cfg); err != nil {
				log.Error().Err(err).Msg("migration failed")
				return err
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "maximum time to wait for migrations")

	return cmd
}
