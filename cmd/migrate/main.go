package main

import (
	"fmt"
	"os"

	"crimson-pos/internal/config"
	"crimson-pos/internal/database"
	"crimson-pos/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "manage the point of sale database schema",
	}
	rootCmd.PersistentFlags().StringVar(&cfg.Database.MigrationsDir, "dir", cfg.Database.MigrationsDir, "migrations directory")

	rootCmd.AddCommand(
		upCommand(cfg),
		downCommand(cfg),
		statusCommand(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDatabase(cfg *config.Config) (database.Service, error) {
	return database.New(cfg.Database)
}

func upCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.RunMigrations(db.DB().DB, cfg.Database.MigrationsDir, log); err != nil {
				return err
			}
			log.Info("Schema is up to date", zap.String("dir", cfg.Database.MigrationsDir))
			return nil
		},
	}
}

func downCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			return database.RollbackMigration(db.DB().DB, cfg.Database.MigrationsDir)
		},
	}
}

func statusCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "print applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			return database.GetMigrationStatus(db.DB().DB, cfg.Database.MigrationsDir)
		},
	}
}
