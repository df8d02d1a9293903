package main

import (
	"github.com/aevon-lab/hybrid-events/internal/migrations"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, dialect, err := openDatabase(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		return migrations.RunMigrations(db, dialect, true)
	},
}
