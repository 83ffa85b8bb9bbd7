package main

import (
	"fmt"
	"os"

	"hospital-management/cmd/bootstrap"
	"hospital-management/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "hospital-management",
		Short:        "Hospital administration API server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Initialize application with all dependencies
	app, err := bootstrap.New()
	if err != nil {
		logrus.Errorf("Failed to initialize application: %v", err)
		return err
	}

	// Run the application
	app.Run()
	return nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := bootstrap.Setup()
			if err != nil {
				return err
			}
			return database.Migrate(cfg.DB)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := bootstrap.Setup()
			if err != nil {
				return err
			}
			return database.Rollback(cfg.DB)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show the applied schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := bootstrap.Setup()
			if err != nil {
				return err
			}

			version, dirty, ok, err := database.Version(cfg.DB)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("No migrations applied")
				return nil
			}
			fmt.Printf("Schema version %d (dirty: %t)\n", version, dirty)
			return nil
		},
	})

	return cmd
}
