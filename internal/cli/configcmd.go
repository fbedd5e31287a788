package cli

import (
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change CLI settings",
		Long:  "Shows the config file location and the backend URL the CLI will use.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting",
		Long:  "Stores a setting in the config file. The only key is backend_url.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.OutOrStdout(), args[0], args[1])
		},
	})

	return cmd
}

func runConfigShow(out io.Writer) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(out, map[string]string{
			"path":              path,
			"backend_url":       cfg.BackendURL,
			"effective_backend": getBackendURL(),
		})
	}

	fmt.Fprintf(out, "Config:  %s\n", path)
	if cfg.BackendURL != "" {
		fmt.Fprintf(out, "Stored:  backend_url = %s\n", cfg.BackendURL)
	}
	fmt.Fprintf(out, "Backend: %s\n", getBackendURL())
	return nil
}

func runConfigSet(out io.Writer, key, value string) error {
	if key != "backend_url" {
		return fmt.Errorf("unknown setting %q (supported: backend_url)", key)
	}
	if err := validateBackendURL(value); err != nil {
		return err
	}

	// Load existing config to preserve other fields
	cfg, err := loadConfig()
	if err != nil {
		cfg = CLIConfig{}
	}
	cfg.BackendURL = value

	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintf(out, "✓ backend_url set to %s\n", value)
	return nil
}

// validateBackendURL requires an absolute http(s) URL.
func validateBackendURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid backend URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid backend URL %q (must be http:// or https://)", raw)
	}
	return nil
}
