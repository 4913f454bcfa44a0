package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/vbonduro/gardenlog/internal/di"
	"github.com/vbonduro/gardenlog/internal/service"
	"github.com/vbonduro/gardenlog/internal/stats"
)

var (
	statsCulture string
	statsFrom    string
	statsTo      string
	statsJSON    bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print harvest statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		injector := di.NewContainer(loadConfig())
		defer func() { _ = injector.Shutdown() }()

		svc, err := do.Invoke[*service.StatisticsService](injector)
		if err != nil {
			return err
		}

		report, err := svc.Statistics(cmd.Context(), stats.Filter{
			CultureID: statsCulture,
			From:      statsFrom,
			To:        statsTo,
		})
		if err != nil {
			return err
		}

		if statsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		return printReport(cmd.OutOrStdout(), report)
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsCulture, "culture", stats.AllCultures, "Culture id, or \"all\"")
	statsCmd.Flags().StringVar(&statsFrom, "from", "", "First day to include (YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&statsTo, "to", "", "Last day to include (YYYY-MM-DD)")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(statsCmd)
}

func printReport(out io.Writer, report *stats.Report) error {
	fmt.Fprintf(out, "Total harvested:      %d\n", report.TotalHarvest)
	fmt.Fprintf(out, "Harvests recorded:    %d\n", report.HarvestCount)
	fmt.Fprintf(out, "Average per culture:  %d\n", report.AveragePerCulture)
	if len(report.ByCulture) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CULTURE\tHARVESTED\tPLANTS")
	for _, ct := range report.ByCulture {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", ct.Name, ct.Harvest, ct.PlantCount)
	}
	return tw.Flush()
}
