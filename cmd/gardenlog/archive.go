package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/vbonduro/gardenlog/internal/archive"
	"github.com/vbonduro/gardenlog/internal/di"
	"github.com/vbonduro/gardenlog/internal/filestore/local"
)

var archiveDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every collection to NeDB data files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchiver(func(a *archive.Archiver) error {
			results, err := a.Export(cmd.Context())
			printResults(cmd.OutOrStdout(), results, true)
			return err
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load NeDB data files, skipping documents that already exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withArchiver(func(a *archive.Archiver) error {
			results, err := a.Import(cmd.Context())
			printResults(cmd.OutOrStdout(), results, false)
			return err
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{exportCmd, importCmd} {
		c.Flags().StringVar(&archiveDir, "dir", "./data/archive", "Directory holding cultures.db, notes.db and harvests.db")
		rootCmd.AddCommand(c)
	}
}

func withArchiver(fn func(*archive.Archiver) error) error {
	injector := di.NewContainer(loadConfig())
	defer func() { _ = injector.Shutdown() }()

	st, err := do.Invoke[*di.StoreHandle](injector)
	if err != nil {
		return err
	}
	files, err := local.New(archiveDir)
	if err != nil {
		return err
	}
	return fn(archive.New(st.Store, files, do.MustInvoke[*slog.Logger](injector)))
}

func printResults(out io.Writer, results []archive.Result, exported bool) {
	for _, r := range results {
		switch {
		case exported:
			fmt.Fprintf(out, "%-10s %d written\n", r.Collection, r.Written)
		case r.Missing:
			fmt.Fprintf(out, "%-10s no data file\n", r.Collection)
		default:
			fmt.Fprintf(out, "%-10s %d imported, %d skipped\n", r.Collection, r.Imported, r.Skipped)
		}
	}
}
