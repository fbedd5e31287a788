package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sentiboard/internal/clock"
	"github.com/evcraddock/sentiboard/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent analyses",
		Long:  "Lists the most recent analyses from the web UI and the analyze command. Only counts and keywords are stored, never comment text.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.OutOrStdout(), limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", history.DefaultLimit, "number of analyses to show")

	return cmd
}

func runHistory(out io.Writer, limit int) error {
	database, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer closeDB(database)

	entries, err := history.NewRepository(database, clock.Real()).ListRecent("", limit)
	if err != nil {
		return err
	}

	if isJSON() {
		if entries == nil {
			entries = []*history.Entry{}
		}
		return printJSON(out, entries)
	}
	return printHistoryTable(out, entries)
}
