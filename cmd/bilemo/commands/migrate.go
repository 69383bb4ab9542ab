package commands

import (
	"github.com/spf13/cobra"

	"github.com/bilemo/bilemo-api/internal/infrastructure/db/sqlstore"
)

// migrateCmd creates or updates the schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create the clients, mobiles, users and table_activities tables and the
triggers that record the last write of each table. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := sqlstore.Open(ctx, sqlstore.Config{Driver: cfg.DB.Driver, DSN: cfg.DB.DSN, Logger: log})
		if err != nil {
			return err
		}
		defer func() { _ = sqlstore.Close(db) }()

		if err := sqlstore.Migrate(ctx, db); err != nil {
			return err
		}
		log.Info().Str("driver", cfg.DB.Driver).Msg("schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
