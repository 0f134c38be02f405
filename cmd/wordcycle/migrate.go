package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordcycle/internal/database"
	"github.com/at-ishikawa/wordcycle/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			applied, err := database.Migrate(ctx, db, schemas.Migrations)
			if err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}

			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				_, _ = fmt.Fprintln(out, "Database is up to date")
				return nil
			}
			for _, version := range applied {
				_, _ = fmt.Fprintf(out, "Applied %s\n", version)
			}
			return nil
		},
	}
}
