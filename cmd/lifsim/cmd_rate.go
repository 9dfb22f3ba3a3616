package main

import (
	"fmt"

	"github.com/nvandessel/lifsim/internal/lif"
	"github.com/nvandessel/lifsim/internal/neuron"
	"github.com/nvandessel/lifsim/internal/visualization"
	"github.com/spf13/cobra"
)

// rateResult is the JSON output of the rate command.
type rateResult struct {
	Params neuron.Params `json:"params"`
	V0     float64       `json:"v0"`
	lif.SweepResult
}

func newRateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Compute the F-I curve (firing rate vs input current)",
		Long: `Sweep the input current from --step up to (excluding) --max-current,
integrate each current independently, and plot the firing rate.

Examples:
  lifsim rate
  lifsim rate --max-current 4 --step 0.01 --no-open
  lifsim rate --step 0.1 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			opts, err := readRenderOptions(cmd, cfg)
			if err != nil {
				return err
			}

			p := cfg.RateParams()
			v0 := p.VRest
			if cmd.Flags().Changed("v0") {
				v0, _ = cmd.Flags().GetFloat64("v0")
			}
			maxCurrent := cfg.Rate.MaxCurrent
			if cmd.Flags().Changed("max-current") {
				maxCurrent, _ = cmd.Flags().GetFloat64("max-current")
			}
			step := cfg.Rate.Step
			if cmd.Flags().Changed("step") {
				step, _ = cmd.Flags().GetFloat64("step")
			}

			logger := newLogger(cmd, cfg)
			logger.Debug("computing F-I curve", "v0", v0, "max_current", maxCurrent, "step", step)

			res, err := lif.RunRate(v0, p, maxCurrent, step)
			if err != nil {
				return err
			}
			logger.Debug("F-I curve done", "conditions", res.Len())

			return renderRate(cmd, rateResult{Params: p, V0: v0, SweepResult: res}, &opts)
		},
	}

	cmd.Flags().Float64("v0", 0, "Initial membrane potential in mV (default v_rest)")
	cmd.Flags().Float64("max-current", 0, "Exclusive upper bound of the current sweep (default from config)")
	cmd.Flags().Float64("step", 0, "First current and sweep spacing (default from config)")
	addRenderFlags(cmd)

	return cmd
}

func renderRate(cmd *cobra.Command, res rateResult, opts *renderOptions) error {
	switch {
	case opts.json:
		return writeJSON(cmd, res)

	case res.Len() == 0:
		fmt.Fprintln(cmd.OutOrStdout(), "No currents in range.")
		return nil

	case opts.ascii:
		caption := fmt.Sprintf("Firing rate (Hz), I=%g..%g", res.Condition[0], res.Condition[res.Len()-1])
		fmt.Fprintln(cmd.OutOrStdout(), visualization.ASCIISeries(res.Rate, caption))
		return nil

	default:
		chart, err := visualization.RateChart(res.SweepResult)
		if err != nil {
			return err
		}
		report := visualization.NewReport("LIF F-I curve")
		report.Params = paramsSummary(res.Params)
		report.Add(chart)
		return writeReport(cmd, report, opts)
	}
}
