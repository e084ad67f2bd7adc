package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/emilianohg/staffboard/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Show the database schema version and apply pending migrations",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := db.Open(); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		status, err := db.GetMigrationStatus()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading migration status: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Current version: %d\n", status.CurrentVersion)
		fmt.Printf("Latest version: %d\n", status.LatestVersion)

		if status.Dirty {
			fmt.Fprintln(os.Stderr, "Database is marked dirty; fix the schema by hand before migrating.")
			os.Exit(1)
		}
		if !status.Pending {
			fmt.Println("Database is up to date.")
			return
		}

		if err := db.RunMigrations(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running migrations: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Migrated to version %d\n", status.LatestVersion)
	},
}
