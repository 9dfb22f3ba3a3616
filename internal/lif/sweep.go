package lif

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ConditionResult is reported once per finished sweep condition.
type ConditionResult struct {
	Index int
	Sigma float64
	SpikeStats
}

// SweepOptions tunes SweepNoise.
type SweepOptions struct {
	// Workers bounds concurrent conditions. Zero means GOMAXPROCS.
	Workers int

	// OnCondition, if set, is called after each condition completes.
	// Calls may arrive concurrently and out of order.
	OnCondition func(ConditionResult)
}

// SweepNoise computes firing rate and CV of the true-spike model for each
// sigma. Traces are not kept. Each condition draws from
// NewConditionRand(cfg.Seed, index), so the result is identical for any
// worker count. Cancelling ctx stops further conditions from starting.
func SweepNoise(ctx context.Context, sigmas []float64, cfg NoiseConfig, opts SweepOptions) (SweepResult, error) {
	if err := cfg.Params.CheckNumeric(); err != nil {
		return SweepResult{}, fmt.Errorf("sweep noise: %w", err)
	}
	if err := checkSigmas(sigmas); err != nil {
		return SweepResult{}, fmt.Errorf("sweep noise: %w", err)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	res := SweepResult{
		Condition: append([]float64{}, sigmas...),
		Rate:      make([]float64, len(sigmas)),
		CV:        make([]float64, len(sigmas)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sigma := range sigmas {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, spikes := integrateNoisy(sigma, cfg, NewConditionRand(cfg.Seed, i), false)
			st := Summarize(spikes, cfg.Params.RunTime)
			res.Rate[i] = st.Rate
			res.CV[i] = st.CV
			if opts.OnCondition != nil {
				opts.OnCondition(ConditionResult{Index: i, Sigma: sigma, SpikeStats: st})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SweepResult{}, fmt.Errorf("sweep noise: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return SweepResult{}, fmt.Errorf("sweep noise: %w", err)
	}
	return res, nil
}
