package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sentiboard/internal/analysis"
	"github.com/evcraddock/sentiboard/internal/clock"
	"github.com/evcraddock/sentiboard/internal/comment"
	"github.com/evcraddock/sentiboard/internal/dashboard"
	"github.com/evcraddock/sentiboard/internal/history"
	"github.com/evcraddock/sentiboard/internal/web"
)

type analyzeOptions struct {
	sentiment string
	search    string
	timeout   time.Duration
	record    bool
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a document",
		Long: `Send a csv, txt, xls or xlsx document to the analysis backend and print
the statistics, top keywords and comments.

--sentiment and --search narrow the comment list the same way the dashboard
filters do. --format csv writes the dashboard's CSV export instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.sentiment, "sentiment", dashboard.AllSentiments, "only list comments with this sentiment (all|positive|negative|neutral)")
	cmd.Flags().StringVar(&opts.search, "search", "", "only list comments containing this text")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", web.DefaultUploadTimeout, "backend request timeout")
	cmd.Flags().BoolVar(&opts.record, "record", true, "record the analysis in the history")

	return cmd
}

// analyzeResult is the --format json output of analyze.
type analyzeResult struct {
	File          string            `json:"file"`
	Stats         dashboard.Stats   `json:"stats"`
	FilteredStats dashboard.Stats   `json:"filtered_stats"`
	Keywords      []comment.Keyword `json:"keywords"`
	Summary       string            `json:"summary,omitempty"`
	Comments      []comment.Comment `json:"comments"`
}

func runAnalyze(ctx context.Context, out io.Writer, path string, opts analyzeOptions) error {
	format := flagFormat
	switch format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("invalid format %q (must be text, json or csv)", format)
	}

	sentiment, err := parseSentimentFilter(opts.sentiment)
	if err != nil {
		return err
	}

	name := filepath.Base(path)
	if err := analysis.ValidateFileName(name); err != nil {
		return noticeError(err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening document: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing %s: %v\n", name, cerr)
		}
	}()

	uploader := analysis.NewUploader(analysis.New(getBackendURL(), opts.timeout))
	batch, err := uploader.Upload(ctx, name, f)
	if err != nil {
		return noticeError(err)
	}

	if opts.record {
		recordAnalysis(name, batch)
	}

	state := dashboard.NewState()
	view := state.Load(batch)
	state.ApplyFilter(dashboard.Filter{Query: opts.search, Sentiment: sentiment})
	comments := state.Filtered()

	switch format {
	case "csv":
		if err := dashboard.WriteCSV(out, comments); err != nil {
			if errors.Is(err, dashboard.ErrNoData) {
				return errors.New("no data to export")
			}
			return err
		}
		return nil
	case "json":
		if comments == nil {
			comments = []comment.Comment{}
		}
		return printJSON(out, analyzeResult{
			File:          name,
			Stats:         view.Stats,
			FilteredStats: state.FilteredStats(),
			Keywords:      view.Keywords,
			Summary:       view.Summary,
			Comments:      comments,
		})
	default:
		return printAnalysis(out, name, view, comments)
	}
}

// parseSentimentFilter accepts "all" or any casing of a sentiment.
func parseSentimentFilter(s string) (string, error) {
	if s == "" || strings.EqualFold(s, dashboard.AllSentiments) {
		return dashboard.AllSentiments, nil
	}
	v, err := comment.ParseSentiment(s)
	if err != nil {
		return "", fmt.Errorf("invalid sentiment %q (must be all, positive, negative or neutral)", s)
	}
	return string(v), nil
}

// noticeError turns an upload failure into the same message the dashboard
// shows. main already prefixes "Error: ".
func noticeError(err error) error {
	return errors.New(strings.TrimPrefix(analysis.Notice(err), "Error: "))
}

// recordAnalysis appends the run to the history. Failures only warn; the
// analysis itself succeeded.
func recordAnalysis(fileName string, batch comment.Batch) {
	database, err := openDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording analysis: %v\n", err)
		return
	}
	defer closeDB(database)

	repo := history.NewRepository(database, clock.Real())
	if _, err := repo.Add(history.CLISession, fileName, batch); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording analysis: %v\n", err)
	}
}
