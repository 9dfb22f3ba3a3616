package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/nvandessel/lifsim/internal/lif"
	"github.com/nvandessel/lifsim/internal/logging"
	"github.com/nvandessel/lifsim/internal/neuron"
	"github.com/nvandessel/lifsim/internal/visualization"
	"github.com/spf13/cobra"
)

// sweepResult is the JSON output of the sweep command.
type sweepResult struct {
	Params       neuron.Params `json:"params"`
	InputCurrent float64       `json:"input_current"`
	Seed         uint64        `json:"seed"`
	lif.SweepResult
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Sweep noise sigma and plot firing rate and CV",
		Long: `Run the noisy model once per sigma in [--start, --stop) spaced by --step
and plot the firing rate and the ISI coefficient of variation against
sigma. Conditions run in parallel; results do not depend on --workers.

At --log-level debug or trace, one event per condition is appended to
<out>/sweep-events.jsonl.

Examples:
  lifsim sweep
  lifsim sweep --stop 20 --step 1 --workers 4 --no-open
  lifsim sweep --seed 7 --json`,
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
			rng := cfg.Noise.Sweep
			if cmd.Flags().Changed("start") {
				rng.Start, _ = cmd.Flags().GetFloat64("start")
			}
			if cmd.Flags().Changed("stop") {
				rng.Stop, _ = cmd.Flags().GetFloat64("stop")
			}
			if cmd.Flags().Changed("step") {
				rng.Step, _ = cmd.Flags().GetFloat64("step")
			}
			sigmas, err := rng.Values()
			if err != nil {
				return err
			}
			workers := cfg.Noise.Workers
			if cmd.Flags().Changed("workers") {
				workers, _ = cmd.Flags().GetInt("workers")
			}

			logger := newLogger(cmd, cfg)
			var events *logging.EventLogger
			if logging.ParseLevel(cfg.Logging.Level) < slog.LevelInfo {
				dir, err := opts.outDir()
				if err != nil {
					return err
				}
				events = logging.NewEventLogger(dir, cfg.Logging.Level)
				defer events.Close()
				logger.Debug("recording sweep events", "path", events.Path())
			}

			logger.Info("sweeping noise", "conditions", len(sigmas), "workers", workers, "seed", engine.Seed)
			start := time.Now()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			res, err := lif.SweepNoise(ctx, sigmas, engine, lif.SweepOptions{
				Workers: workers,
				OnCondition: func(c lif.ConditionResult) {
					logger.Log(ctx, logging.LevelTrace, "condition done",
						"index", c.Index, "sigma", c.Sigma, "rate", c.Rate, "cv", c.CV)
					events.Record("condition", map[string]any{
						"index": c.Index,
						"sigma": c.Sigma,
						"count": c.Count,
						"rate":  c.Rate,
						"cv":    c.CV,
					})
				},
			})
			if err != nil {
				return err
			}

			elapsed := time.Since(start)
			events.Record("sweep_done", map[string]any{
				"conditions":  res.Len(),
				"duration_ms": elapsed.Milliseconds(),
			})
			logger.Info("sweep done", "conditions", res.Len(), "elapsed", elapsed.Round(time.Millisecond))

			return renderSweep(cmd, sweepResult{
				Params:       engine.Params,
				InputCurrent: engine.InputCurrent,
				Seed:         engine.Seed,
				SweepResult:  res,
			}, &opts)
		},
	}

	cmd.Flags().Float64("start", 0, "First sigma (default from config)")
	cmd.Flags().Float64("stop", 0, "Exclusive upper bound of sigma (default from config)")
	cmd.Flags().Float64("step", 0, "Sigma spacing (default from config)")
	cmd.Flags().Int("workers", 0, "Concurrent conditions (default from config; 0 means GOMAXPROCS)")
	addNoiseFlags(cmd)
	addRenderFlags(cmd)

	return cmd
}

func renderSweep(cmd *cobra.Command, res sweepResult, opts *renderOptions) error {
	switch {
	case opts.json:
		return writeJSON(cmd, res)

	case res.Len() == 0:
		fmt.Fprintln(cmd.OutOrStdout(), "No sigmas in range.")
		return nil

	case opts.ascii:
		fmt.Fprintln(cmd.OutOrStdout(), visualization.ASCIISeries(res.Rate, "Firing rate (Hz) vs σ"))
		fmt.Fprintln(cmd.OutOrStdout(), visualization.ASCIISeries(res.CV, "CV vs σ"))
		fmt.Fprintln(cmd.OutOrStdout(), visualization.SweepTable(res.SweepResult, "σ"))
		return nil

	default:
		chart, err := visualization.RateCVChart(res.SweepResult)
		if err != nil {
			return err
		}
		report := visualization.NewReport(fmt.Sprintf("LIF noise sweep, I=%g", res.InputCurrent))
		report.Params = paramsSummary(res.Params)
		report.Add(chart)
		return writeReport(cmd, report, opts)
	}
}
