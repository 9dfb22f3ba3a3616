package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/nvandessel/lifsim/internal/config"
	"github.com/nvandessel/lifsim/internal/logging"
	"github.com/nvandessel/lifsim/internal/visualization"
	"github.com/spf13/cobra"
)

// loadConfig loads configuration honoring --config and --log-level, and
// validates the result.
func loadConfig(cmd *cobra.Command) (*config.LifConfig, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger returns the operational logger, which always writes to stderr
// so that stdout stays clean for results.
func newLogger(cmd *cobra.Command, cfg *config.LifConfig) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
}

// renderOptions are the output flags shared by the simulation commands.
type renderOptions struct {
	out    string
	format visualization.Format
	noOpen bool
	ascii  bool
	json   bool
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "Directory for charts and index.html (default: a new temp dir)")
	cmd.Flags().String("format", "", "Chart format: png or svg (default from config)")
	cmd.Flags().Bool("no-open", false, "Don't open the report in a browser")
	cmd.Flags().Bool("ascii", false, "Plot in the terminal instead of writing charts")
}

func readRenderOptions(cmd *cobra.Command, cfg *config.LifConfig) (renderOptions, error) {
	out, _ := cmd.Flags().GetString("out")
	formatName, _ := cmd.Flags().GetString("format")
	noOpen, _ := cmd.Flags().GetBool("no-open")
	ascii, _ := cmd.Flags().GetBool("ascii")
	jsonOut, _ := cmd.Flags().GetBool("json")

	if out == "" {
		out = cfg.Output.Dir
	}
	if formatName == "" {
		formatName = cfg.Output.Format
	}
	format, err := visualization.ParseFormat(formatName)
	if err != nil {
		return renderOptions{}, err
	}
	if ascii && jsonOut {
		return renderOptions{}, fmt.Errorf("--ascii and --json are mutually exclusive")
	}

	return renderOptions{out: out, format: format, noOpen: noOpen, ascii: ascii, json: jsonOut}, nil
}

// outDir returns the report directory, creating a temp dir on first use
// when none was given.
func (o *renderOptions) outDir() (string, error) {
	if o.out != "" {
		return o.out, nil
	}
	dir, err := os.MkdirTemp("", "lifsim-")
	if err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	o.out = dir
	return dir, nil
}

// writeReport writes the charts and index page, then opens the page unless
// --no-open was given.
func writeReport(cmd *cobra.Command, report *visualization.Report, opts *renderOptions) error {
	dir, err := opts.outDir()
	if err != nil {
		return err
	}

	index, err := report.Write(dir, opts.format)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", index)

	if !opts.noOpen {
		if err := visualization.OpenBrowser(index); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Could not open browser: %v\nOpen %s manually.\n", err, index)
		}
	}
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// paramsSummary formats parameters for the report header.
func paramsSummary(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}
