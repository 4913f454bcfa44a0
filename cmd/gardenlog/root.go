package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vbonduro/gardenlog/internal/config"
	"github.com/vbonduro/gardenlog/internal/store"
)

var (
	dbPath  string
	backend string
)

var rootCmd = &cobra.Command{
	Use:   "gardenlog",
	Short: "Garden journal: cultures, notes, harvests and harvest statistics",
	// With no subcommand the server runs.
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database (file for sqlite, directory for badger)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Store backend: sqlite or badger")
}

// loadConfig reads the environment and applies command line overrides.
func loadConfig() *config.Config {
	cfg := config.Load()
	if backend != "" {
		cfg.StoreBackend = backend
	}
	if dbPath != "" {
		if cfg.StoreBackend == store.BackendBadger {
			cfg.BadgerDir = dbPath
		} else {
			cfg.DBPath = dbPath
		}
	}
	return cfg
}
