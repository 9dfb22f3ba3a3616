package main

import (
	"fmt"
	"io"

	"github.com/nvandessel/lifsim/internal/console"
	"github.com/nvandessel/lifsim/internal/lif"
	"github.com/nvandessel/lifsim/internal/visualization"
	"github.com/spf13/cobra"
)

// runResult is the JSON output of the run command.
type runResult struct {
	Trace traceResult `json:"trace"`
	Rate  rateResult  `json:"rate"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Prompt for initial conditions, then plot the trace and F-I curve",
		Long: `Ask for the initial membrane potential and the input current, then
integrate a single membrane trace and the F-I curve starting from that
potential, and show both.

Invalid answers abort the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			opts, err := readRenderOptions(cmd, cfg)
			if err != nil {
				return err
			}

			// Keep stdout parseable in JSON mode.
			var promptOut io.Writer = cmd.OutOrStdout()
			if opts.json {
				promptOut = cmd.ErrOrStderr()
			}
			v0, current, err := console.NewPrompter(cmd.InOrStdin(), promptOut).InitialConditions()
			if err != nil {
				return err
			}

			logger := newLogger(cmd, cfg)

			traceParams := cfg.TraceParams()
			logger.Debug("integrating trace", "v0", v0, "current", current, "steps", traceParams.Steps())
			tr, err := lif.RunTrace(v0, current, traceParams)
			if err != nil {
				return err
			}

			rateParams := cfg.RateParams()
			logger.Debug("computing F-I curve", "max_current", cfg.Rate.MaxCurrent, "step", cfg.Rate.Step)
			rates, err := lif.RunRate(v0, rateParams, cfg.Rate.MaxCurrent, cfg.Rate.Step)
			if err != nil {
				return err
			}

			res := runResult{
				Trace: traceResult{Params: traceParams, V0: v0, Current: current, Spikes: tr.Peaks(traceParams.VSpike), Trace: tr},
				Rate:  rateResult{Params: rateParams, V0: v0, SweepResult: rates},
			}
			return renderRun(cmd, res, &opts)
		},
	}

	addRenderFlags(cmd)

	return cmd
}

func renderRun(cmd *cobra.Command, res runResult, opts *renderOptions) error {
	switch {
	case opts.json:
		return writeJSON(cmd, res)

	case opts.ascii:
		if err := renderTrace(cmd, res.Trace, opts); err != nil {
			return err
		}
		return renderRate(cmd, res.Rate, opts)

	default:
		report := visualization.NewReport(fmt.Sprintf("LIF run, V0=%g mV, I=%g", res.Trace.V0, res.Trace.Current))
		report.Params = paramsSummary(res.Trace.Params)

		trace, err := visualization.TraceChart(res.Trace.Trace, res.Trace.Params)
		if err != nil {
			return err
		}
		report.Add(trace)

		if res.Rate.Len() > 0 {
			rate, err := visualization.RateChart(res.Rate.SweepResult)
			if err != nil {
				return err
			}
			report.Add(rate)
		}
		return writeReport(cmd, report, opts)
	}
}
