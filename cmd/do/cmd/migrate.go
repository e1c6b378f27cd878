package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mishagordeev/workouts/internal/config"
	"github.com/mishagordeev/workouts/internal/db"
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the documents table migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(database *sqlx.DB, driver string) error {
				return db.RunMigrations(database.DB, driver)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(database *sqlx.DB, driver string) error {
				return db.MigrateDown(database.DB, driver)
			})
		},
	})

	return cmd
}

func withDB(fn func(database *sqlx.DB, driver string) error) error {
	cfg := config.Load()

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close(database)

	err = fn(database, cfg.DBDriver)
	if err != nil {
		return err
	}

	fmt.Println("Done.")
	return nil
}
