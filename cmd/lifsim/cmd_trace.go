package main

import (
	"fmt"

	"github.com/nvandessel/lifsim/internal/lif"
	"github.com/nvandessel/lifsim/internal/neuron"
	"github.com/nvandessel/lifsim/internal/visualization"
	"github.com/spf13/cobra"
)

// traceResult is the JSON output of the trace command.
type traceResult struct {
	Params  neuron.Params `json:"params"`
	V0      float64       `json:"v0"`
	Current float64       `json:"current"`
	Spikes  int           `json:"spikes"`
	Trace   lif.Trace     `json:"trace"`
}

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Integrate and plot a single membrane trace",
		Long: `Integrate the membrane potential under a constant input current and plot
it with the threshold, reset, rest and spike potentials marked.

Examples:
  lifsim trace --current 2.5
  lifsim trace --v0 -60 --current 1.8 --format svg --no-open
  lifsim trace --current 2.5 --ascii`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			opts, err := readRenderOptions(cmd, cfg)
			if err != nil {
				return err
			}

			p := cfg.TraceParams()
			v0 := p.VRest
			if cmd.Flags().Changed("v0") {
				v0, _ = cmd.Flags().GetFloat64("v0")
			}
			current, _ := cmd.Flags().GetFloat64("current")

			logger := newLogger(cmd, cfg)
			logger.Debug("integrating trace", "v0", v0, "current", current, "steps", p.Steps())

			tr, err := lif.RunTrace(v0, current, p)
			if err != nil {
				return err
			}
			res := traceResult{Params: p, V0: v0, Current: current, Spikes: tr.Peaks(p.VSpike), Trace: tr}
			return renderTrace(cmd, res, &opts)
		},
	}

	cmd.Flags().Float64("v0", 0, "Initial membrane potential in mV (default v_rest)")
	cmd.Flags().Float64("current", 0, "Constant input current")
	cmd.MarkFlagRequired("current")
	addRenderFlags(cmd)

	return cmd
}

func renderTrace(cmd *cobra.Command, res traceResult, opts *renderOptions) error {
	switch {
	case opts.json:
		return writeJSON(cmd, res)

	case opts.ascii:
		caption := fmt.Sprintf("V(t), I=%g, %d spikes", res.Current, res.Spikes)
		fmt.Fprintln(cmd.OutOrStdout(), visualization.ASCIITrace(res.Trace, caption))
		return nil

	default:
		chart, err := visualization.TraceChart(res.Trace, res.Params)
		if err != nil {
			return err
		}
		report := visualization.NewReport(fmt.Sprintf("LIF membrane trace, I=%g", res.Current))
		report.Params = paramsSummary(res.Params)
		report.Add(chart)
		return writeReport(cmd, report, opts)
	}
}
