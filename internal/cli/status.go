package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/sentiboard/internal/analysis"
)

const statusTimeout = 5 * time.Second

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the analysis backend",
		Long:  "Shows which analysis backend is configured and whether it answers.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

type statusResult struct {
	Backend   string `json:"backend"`
	Reachable bool   `json:"reachable"`
	Status    int    `json:"status,omitempty"`
	Error     string `json:"error,omitempty"`
}

func runStatus(ctx context.Context, out io.Writer) error {
	client := analysis.New(getBackendURL(), statusTimeout)
	res := statusResult{Backend: client.BaseURL()}

	code, err := client.Ping(ctx)
	res.Status = code
	if err != nil {
		res.Error = err.Error()
	} else {
		res.Reachable = true
	}

	if isJSON() {
		return printJSON(out, res)
	}

	fmt.Fprintf(out, "Backend: %s\n", res.Backend)
	if !res.Reachable {
		fmt.Fprintf(out, "Status:  ✗ cannot reach backend (%s)\n", res.Error)
		fmt.Fprintln(out, "\nSet the backend with --backend, SB_BACKEND_URL or 'sb config set backend_url <url>'.")
		return nil
	}
	fmt.Fprintf(out, "Status:  ✓ reachable (HTTP %d)\n", res.Status)
	return nil
}
