package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/nvandessel/lifsim/internal/config"
	"github.com/nvandessel/lifsim/internal/lif"
	"github.com/nvandessel/lifsim/internal/neuron"
	"github.com/nvandessel/lifsim/internal/visualization"
	"github.com/spf13/cobra"
)

// noiseRun is one sigma of the noise command's JSON output.
type noiseRun struct {
	Sigma float64 `json:"sigma"`
	lif.SpikeStats
	Spikes []float64 `json:"spikes"`
}

// noiseResult is the JSON output of the noise command.
type noiseResult struct {
	Params       neuron.Params `json:"params"`
	InputCurrent float64       `json:"input_current"`
	VInit        float64       `json:"v_init"`
	Seed         uint64        `json:"seed"`
	Runs         []noiseRun    `json:"runs"`
}

func newNoiseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "noise",
		Short: "Simulate noisy input and report ISI statistics per sigma",
		Long: `Drive the neuron with a Gaussian input current of mean --current and
standard deviation sigma, once per --sigma. Reports spike count, firing
rate and the coefficient of variation (CV) of the inter-spike intervals,
and plots an ISI histogram and a membrane preview per sigma.

Examples:
  lifsim noise
  lifsim noise --sigma 0.5 --sigma 5 --seed 42 --no-open
  lifsim noise --sigma 2 --ascii`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			opts, err := readRenderOptions(cmd, cfg)
			if err != nil {
				return err
			}

			engine := noiseEngine(cmd, cfg)
			sigmas := cfg.Noise.Sigmas
			if cmd.Flags().Changed("sigma") {
				sigmas, _ = cmd.Flags().GetFloat64Slice("sigma")
			}

			logger := newLogger(cmd, cfg)
			logger.Debug("running noise conditions", "sigmas", sigmas, "seed", engine.Seed, "steps", engine.Params.Steps())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			runs, err := lif.RunNoisy(ctx, sigmas, engine)
			if err != nil {
				return err
			}

			res := noiseResult{
				Params:       engine.Params,
				InputCurrent: engine.InputCurrent,
				VInit:        engine.VInit,
				Seed:         engine.Seed,
				Runs:         make([]noiseRun, 0, len(runs)),
			}
			for _, run := range runs {
				st := lif.Summarize(run.Spikes, engine.Params.RunTime)
				logger.Debug("noise condition done", "sigma", run.Sigma, "spikes", st.Count, "rate", st.Rate, "cv", st.CV)
				res.Runs = append(res.Runs, noiseRun{Sigma: run.Sigma, SpikeStats: st, Spikes: run.Spikes})
			}

			return renderNoise(cmd, cfg, res, runs, &opts)
		},
	}

	cmd.Flags().Float64Slice("sigma", nil, "Noise standard deviation (repeatable; default from config)")
	addNoiseFlags(cmd)
	addRenderFlags(cmd)

	return cmd
}

// addNoiseFlags registers the flags shared by noise and sweep.
func addNoiseFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("current", 0, "Mean input current (default from config)")
	cmd.Flags().Float64("v-init", 0, "Initial membrane potential in mV (default from config)")
	cmd.Flags().Uint64("seed", 0, "Noise seed (default from config)")
}

// noiseEngine applies the shared noise flags to the configured engine.
func noiseEngine(cmd *cobra.Command, cfg *config.LifConfig) lif.NoiseConfig {
	engine := cfg.NoiseEngine()
	if cmd.Flags().Changed("current") {
		engine.InputCurrent, _ = cmd.Flags().GetFloat64("current")
	}
	if cmd.Flags().Changed("v-init") {
		engine.VInit, _ = cmd.Flags().GetFloat64("v-init")
	}
	if cmd.Flags().Changed("seed") {
		engine.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	return engine
}

func renderNoise(cmd *cobra.Command, cfg *config.LifConfig, res noiseResult, runs []lif.NoisyRun, opts *renderOptions) error {
	if opts.json {
		return writeJSON(cmd, res)
	}

	rows := make([]visualization.NoiseRow, 0, len(res.Runs))
	for _, r := range res.Runs {
		rows = append(rows, visualization.NoiseRow{Sigma: r.Sigma, SpikeStats: r.SpikeStats})
	}
	fmt.Fprintln(cmd.OutOrStdout(), visualization.SummaryTable(rows))

	if opts.ascii {
		for _, run := range runs {
			caption := fmt.Sprintf("V(t), σ=%g, first %d samples", run.Sigma, cfg.Output.PreviewSamples)
			fmt.Fprintln(cmd.OutOrStdout(), visualization.ASCIITrace(run.Trace.Head(cfg.Output.PreviewSamples), caption))
		}
		return nil
	}

	report := visualization.NewReport(fmt.Sprintf("LIF under noisy input, I=%g", res.InputCurrent))
	report.Params = paramsSummary(res.Params)
	for i, run := range runs {
		st := res.Runs[i].SpikeStats
		hist, err := visualization.ISIHistogram(st.ISI, run.Sigma, st.CV, cfg.Output.HistogramBins)
		switch {
		case errors.Is(err, visualization.ErrNoData):
			fmt.Fprintf(cmd.ErrOrStderr(), "σ=%g: fewer than two spikes, skipping ISI histogram\n", run.Sigma)
		case err != nil:
			return err
		default:
			report.Add(hist)
		}

		membrane, err := visualization.MembraneChart(run.Trace, run.Sigma, cfg.Output.PreviewSamples)
		if err != nil {
			return err
		}
		report.Add(membrane)
	}
	return writeReport(cmd, report, opts)
}
