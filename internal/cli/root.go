// Package cli defines the cobra command tree for sentiboard.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sentiboard/internal/db"
)

var (
	flagFormat  string
	flagDB      string
	flagBackend string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sb",
		Short:         "Sentiment analysis dashboard",
		Long:          "Upload comment documents to a sentiment analysis backend and explore the results in a web dashboard or from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.sentiboard/sentiboard.db)")
	root.PersistentFlags().StringVar(&flagBackend, "backend", "", "analysis backend URL (default: $SB_BACKEND_URL, config file, or "+defaultBackendURL+")")

	root.AddCommand(
		newServeCmd(),
		newAnalyzeCmd(),
		newHistoryCmd(),
		newStatusCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the SQLite database using the --db flag or default path.
func openDB() (*sql.DB, error) {
	path := flagDB
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
