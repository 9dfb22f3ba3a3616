package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lifsim",
		Short: "Leaky integrate-and-fire neuron simulator",
		Long: `lifsim simulates a leaky integrate-and-fire neuron with forward Euler
integration.

It draws membrane traces with spike artifacts, computes F-I curves, and
studies spike-train statistics (ISI, CV) under noisy input current.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	addGlobalFlags(rootCmd)

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newTraceCmd(),
		newRateCmd(),
		newNoiseCmd(),
		newSweepCmd(),
		newConfigCmd(),
		newMCPServerCmd(),
	)

	return rootCmd
}

// addGlobalFlags registers the persistent flags every subcommand reads.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool("json", false, "Output as JSON")
	cmd.PersistentFlags().String("config", "", "Config file (default ~/.lifsim/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log level: info, debug, or trace (overrides config)")
}
