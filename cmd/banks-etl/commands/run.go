package commands

import (
	"fmt"
	"os"

	"banks-etl/internal/config"
	"banks-etl/internal/pipeline"
	"banks-etl/lib/tableview"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	runSource  *string
	runRates   *string
	runCsv     *string
	runXlsx    *string
	runDb      *string
	runSummary *bool
)

func init() {
	runSource = runCmd.Flags().String("source", "", "Overrides source_url.")
	runRates = runCmd.Flags().String("rates", "", "Overrides rate_source_url, a url or a local csv path.")
	runCsv = runCmd.Flags().String("csv", "", "Overrides csv_path.")
	runXlsx = runCmd.Flags().String("xlsx", "", "Also writes the final table to this xlsx file.")
	runDb = runCmd.Flags().String("db", "", "Overrides db_path and ignores db_url.")
	runSummary = runCmd.Flags().Bool("summary", false, "Prints summary statistics of the numeric columns.")
	rootCmd.AddCommand(runCmd)
}

func override(target *string, flag *string) {
	if *flag != "" {
		*target = *flag
	}
}

// overrideDb points cfg at a local database file, a configured db_url
// would otherwise take precedence.
func overrideDb(cfg *config.Config, flag *string) {
	if *flag == "" {
		return
	}
	cfg.DBPath = *flag
	cfg.DBUrl = ""
	cfg.DBAuthToken = ""
}

var runCmd = &cobra.Command{
	Use:   "run [--source <url>] [--rates <url|path>] [--csv <path>] [--db <path>]",
	Short: "Runs the whole extract, transform, load pipeline and prints the configured queries.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, shutdown, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		defer shutdown()

		override(&cfg.SourceURL, runSource)
		override(&cfg.RateSourceURL, runRates)
		override(&cfg.CSVPath, runCsv)
		override(&cfg.XLSXPath, runXlsx)
		overrideDb(&cfg, runDb)

		result, err := pipeline.Run(cmd.Context(), cfg, os.Stdout)
		if err != nil {
			return err
		}

		if *runSummary {
			t := tableview.NewWriter(os.Stdout)
			t.AppendHeader(table.Row{"Column", "Count", "Min", "Max", "Mean", "Median"})
			for _, s := range result.Summary {
				t.AppendRow(table.Row{
					s.Column, s.Count,
					fmt.Sprintf("%.2f", s.Min),
					fmt.Sprintf("%.2f", s.Max),
					fmt.Sprintf("%.2f", s.Mean),
					fmt.Sprintf("%.2f", s.Median),
				})
			}
			t.Render()
		}
		return nil
	},
}
