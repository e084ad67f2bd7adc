package main

import (
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/emilianohg/staffboard/internal/config"
	"github.com/emilianohg/staffboard/internal/db"
	"github.com/emilianohg/staffboard/internal/logger"
	"github.com/emilianohg/staffboard/internal/service"
	"github.com/emilianohg/staffboard/internal/tui"
)

// app is what every command needs: configuration, a migrated database and
// the services on top of it.
type app struct {
	cfg     *config.Config
	db      *sql.DB
	log     *logrus.Logger
	logFile io.Closer
	svc     *service.Services
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log, logFile, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening error log: %w", err)
	}

	database, err := db.OpenAndMigrate()
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &app{
		cfg:     cfg,
		db:      database,
		log:     log,
		logFile: logFile,
		svc:     service.New(database, log, cfg.HoursPerDay),
	}, nil
}

func (a *app) Close() {
	db.Close()
	a.logFile.Close()
}

// run opens the app, hands it to fn and reports any error. Failures are
// also written to the error log.
func run(command string, fn func(a *app) error) {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = fn(a)
	if err != nil {
		a.log.WithField("command", command).WithError(err).Error("command failed")
	}
	a.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "staffboard",
	Short: "Consulting staff workload tracker",
	Long: `Staffboard keeps track of project assignments, the people working on them,
their assigned hours and their leave balances.`,
	Run: func(cmd *cobra.Command, args []string) {
		run("tui", func(a *app) error {
			return tui.Run(a.svc, a.cfg)
		})
	},
}

func init() {
	rootCmd.AddCommand(hoursCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(leaveCmd)
	rootCmd.AddCommand(workloadCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
