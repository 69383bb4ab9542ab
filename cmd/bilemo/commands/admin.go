package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bilemo/bilemo-api/internal/core/ports"
	"github.com/bilemo/bilemo-api/internal/core/service"
	"github.com/bilemo/bilemo-api/internal/infrastructure/db/sqlstore"
	"github.com/bilemo/bilemo-api/pkg/logger"
)

var (
	// create-admin flags
	adminName     string
	adminEmail    string
	adminPassword string
)

// createAdminCmd seeds the first administrator
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the first administrator account",
	Long: `Create an administrator client unless one already exists.

Flags fall back to ADMIN_NAME, ADMIN_EMAIL and ADMIN_PASSWORD.

Examples:
  bilemo create-admin --email admin@bilemo.com --password s3cret!`,
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := ports.AdminSeed{Name: cfg.Admin.Name, Email: cfg.Admin.Email, Password: cfg.Admin.Password}
		if adminName != "" {
			seed.Name = adminName
		}
		if adminEmail != "" {
			seed.Email = adminEmail
		}
		if adminPassword != "" {
			seed.Password = adminPassword
		}

		ctx := cmd.Context()
		db, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = sqlstore.Close(db) }()

		clients := service.NewClientService(service.Options{
			Store:      sqlstore.NewStore(db),
			Tables:     sqlstore.NewTableDetails(db),
			Logger:     logger.Component("service"),
			BcryptCost: cfg.BcryptCost,
		}, cfg.Pages.Clients)

		created, err := clients.EnsureAdmin(ctx, seed)
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		if !created {
			fmt.Fprintln(cmd.OutOrStdout(), "an administrator already exists, nothing to do")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "administrator %s created\n", seed.Email)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "Display name of the administrator")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Login email of the administrator")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Initial password")
	rootCmd.AddCommand(createAdminCmd)
}
