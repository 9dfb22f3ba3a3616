package lif

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"github.com/nvandessel/lifsim/internal/constants"
	"github.com/nvandessel/lifsim/internal/neuron"
	"golang.org/x/sync/errgroup"
)

// NoiseConfig configures the true-spike model under noisy input.
type NoiseConfig struct {
	// Params supplies potentials, tau, time step and run time.
	Params neuron.Params `json:"params" yaml:"params"`

	// InputCurrent is the mean of the per-step current draw.
	InputCurrent float64 `json:"input_current" yaml:"input_current"`

	// VInit is the initial potential of every condition.
	VInit float64 `json:"v_init" yaml:"v_init"`

	// Seed keys the per-condition generators; see NewConditionRand.
	Seed uint64 `json:"seed" yaml:"seed"`
}

// DefaultNoiseConfig returns the standard noisy-engine configuration.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Params:       neuron.Default().WithRunTime(constants.NoiseRunTime),
		InputCurrent: constants.DefaultNoiseCurrent,
		VInit:        constants.DefaultNoiseVInit,
		Seed:         constants.DefaultSeed,
	}
}

// NoisyRun is the outcome of one noise condition.
type NoisyRun struct {
	Sigma  float64   `json:"sigma"`
	Trace  Trace     `json:"trace"`
	Spikes []float64 `json:"spikes"`
}

// NewConditionRand returns the generator for condition index under seed.
// Streams depend only on (seed, index), never on scheduling.
func NewConditionRand(seed uint64, index int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(index)))
}

// RunNoisy simulates one condition per sigma and keeps full traces.
// Conditions run concurrently; results are ordered like sigmas.
func RunNoisy(ctx context.Context, sigmas []float64, cfg NoiseConfig) ([]NoisyRun, error) {
	if err := cfg.Params.CheckNumeric(); err != nil {
		return nil, fmt.Errorf("run noisy: %w", err)
	}
	if err := checkSigmas(sigmas); err != nil {
		return nil, fmt.Errorf("run noisy: %w", err)
	}

	runs := make([]NoisyRun, len(sigmas))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, sigma := range sigmas {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tr, spikes := integrateNoisy(sigma, cfg, NewConditionRand(cfg.Seed, i), true)
			runs[i] = NoisyRun{Sigma: sigma, Trace: tr, Spikes: spikes}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run noisy: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run noisy: %w", err)
	}
	return runs, nil
}

// integrateNoisy runs the true-spike model for one sigma. When record is
// false the returned trace is empty and only spikes are collected.
func integrateNoisy(sigma float64, cfg NoiseConfig, rng *rand.Rand, record bool) (Trace, []float64) {
	p := cfg.Params
	steps := p.Steps()

	var tr Trace
	if record {
		tr = newTrace(steps, p.TimeStep, cfg.VInit)
	}
	spikes := []float64{}

	v := cfg.VInit
	for i := 1; i <= steps; i++ {
		current := cfg.InputCurrent + sigma*rng.NormFloat64()
		v = eulerStep(v, current, p)
		if v >= p.VThresh {
			spikes = append(spikes, p.TimeStep*float64(i))
			v = p.VReset
		}
		if record {
			tr.Voltage[i] = v
		}
	}
	return tr, spikes
}

func checkSigmas(sigmas []float64) error {
	for i, s := range sigmas {
		if s < 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("%w: sigma[%d] must be a non-negative number, got %v", ErrInvalidRange, i, s)
		}
	}
	return nil
}
