package commands

import (
	"os"

	"banks-etl/internal/store"
	"banks-etl/lib/tableview"

	"github.com/spf13/cobra"
)

var queryDb *string

func init() {
	queryDb = queryCmd.Flags().String("db", "", "Overrides db_path and ignores db_url.")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <statement> [--db <path>]",
	Short: "Runs a statement against the database written by a previous run.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, shutdown, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}
		defer shutdown()
		overrideDb(&cfg, queryDb)

		db, err := store.Open(cfg.Store())
		if err != nil {
			return err
		}
		defer db.Close()

		res, err := db.Query(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		tableview.Render(os.Stdout, res)
		return nil
	},
}
