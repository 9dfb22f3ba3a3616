package lif

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/nvandessel/lifsim/internal/neuron"
)

// shortNoiseConfig keeps noisy tests fast.
func shortNoiseConfig(runTime float64) NoiseConfig {
	cfg := DefaultNoiseConfig()
	cfg.Params = cfg.Params.WithRunTime(runTime)
	return cfg
}

func TestDefaultNoiseConfig(t *testing.T) {
	cfg := DefaultNoiseConfig()

	if cfg.Params.RunTime != 5000 {
		t.Errorf("RunTime = %v, want 5000", cfg.Params.RunTime)
	}
	if cfg.InputCurrent != 1.3 {
		t.Errorf("InputCurrent = %v, want 1.3", cfg.InputCurrent)
	}
	if cfg.VInit != -55 {
		t.Errorf("VInit = %v, want -55", cfg.VInit)
	}
}

func TestRunNoisy_Shape(t *testing.T) {
	cfg := shortNoiseConfig(500)
	sigmas := []float64{0.1, 1, 10}

	runs, err := RunNoisy(context.Background(), sigmas, cfg)
	if err != nil {
		t.Fatalf("RunNoisy: %v", err)
	}
	if len(runs) != len(sigmas) {
		t.Fatalf("got %d runs, want %d", len(runs), len(sigmas))
	}

	want := cfg.Params.Steps() + 1
	for i, run := range runs {
		if run.Sigma != sigmas[i] {
			t.Errorf("run[%d].Sigma = %v, want %v", i, run.Sigma, sigmas[i])
		}
		if run.Trace.Len() != want || len(run.Trace.Time) != want {
			t.Errorf("run[%d] trace len = %d, want %d", i, run.Trace.Len(), want)
		}
		if run.Trace.Voltage[0] != cfg.VInit {
			t.Errorf("run[%d] initial voltage = %v, want %v", i, run.Trace.Voltage[0], cfg.VInit)
		}
		if run.Spikes == nil {
			t.Errorf("run[%d] spikes nil, want non-nil", i)
		}
	}
}

func TestRunNoisy_TrueSpikeReset(t *testing.T) {
	cfg := shortNoiseConfig(500)

	runs, err := RunNoisy(context.Background(), []float64{0, 5}, cfg)
	if err != nil {
		t.Fatalf("RunNoisy: %v", err)
	}

	for _, run := range runs {
		if len(run.Spikes) == 0 {
			t.Fatalf("sigma %v: expected spikes at I=1.3", run.Sigma)
		}
		// Every spike time is a sample where the trace was reset.
		for _, st := range run.Spikes {
			i := int(math.Round(st / cfg.Params.TimeStep))
			if run.Trace.Voltage[i] != cfg.Params.VReset {
				t.Errorf("sigma %v: voltage at spike t=%v is %v, want reset %v",
					run.Sigma, st, run.Trace.Voltage[i], cfg.Params.VReset)
			}
		}
		for i, v := range run.Trace.Voltage {
			if v >= cfg.Params.VThresh {
				t.Errorf("sigma %v: recorded over-threshold value %v at %d", run.Sigma, v, i)
			}
			if v == cfg.Params.VSpike {
				t.Errorf("sigma %v: true-spike model must not draw peaks", run.Sigma)
			}
		}
		for i := 1; i < len(run.Spikes); i++ {
			if run.Spikes[i] <= run.Spikes[i-1] {
				t.Errorf("sigma %v: spike times not increasing at %d", run.Sigma, i)
			}
		}
	}
}

func TestRunNoisy_ZeroSigmaIsDeterministic(t *testing.T) {
	a := shortNoiseConfig(300)
	b := a
	b.Seed = 99

	ra, err := RunNoisy(context.Background(), []float64{0}, a)
	if err != nil {
		t.Fatalf("RunNoisy: %v", err)
	}
	rb, err := RunNoisy(context.Background(), []float64{0}, b)
	if err != nil {
		t.Fatalf("RunNoisy: %v", err)
	}
	if !reflect.DeepEqual(ra[0].Spikes, rb[0].Spikes) {
		t.Errorf("sigma 0 should not depend on seed: %v vs %v", ra[0].Spikes, rb[0].Spikes)
	}
}

func TestRunNoisy_SeedReproducibility(t *testing.T) {
	cfg := shortNoiseConfig(300)
	sigmas := []float64{5, 20}

	first, err := RunNoisy(context.Background(), sigmas, cfg)
	if err != nil {
		t.Fatalf("RunNoisy: %v", err)
	}
	second, err := RunNoisy(context.Background(), sigmas, cfg)
	if err != nil {
		t.Fatalf("RunNoisy: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("same seed produced different runs")
	}

	other := cfg
	other.Seed = cfg.Seed + 1
	third, err := RunNoisy(context.Background(), sigmas, other)
	if err != nil {
		t.Fatalf("RunNoisy: %v", err)
	}
	if reflect.DeepEqual(first[1].Trace.Voltage, third[1].Trace.Voltage) {
		t.Error("different seeds produced identical noisy traces")
	}
}

func TestRunNoisy_InvalidInput(t *testing.T) {
	cfg := shortNoiseConfig(100)

	if _, err := RunNoisy(context.Background(), []float64{1, -1}, cfg); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("negative sigma: expected ErrInvalidRange, got %v", err)
	}
	if _, err := RunNoisy(context.Background(), []float64{math.NaN()}, cfg); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("NaN sigma: expected ErrInvalidRange, got %v", err)
	}

	cfg.Params.Tau = 0
	if _, err := RunNoisy(context.Background(), []float64{1}, cfg); !errors.Is(err, neuron.ErrInvalidParams) {
		t.Errorf("zero tau: expected ErrInvalidParams, got %v", err)
	}
}

func TestRunNoisy_Empty(t *testing.T) {
	runs, err := RunNoisy(context.Background(), nil, shortNoiseConfig(100))
	if err != nil {
		t.Fatalf("RunNoisy: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestNewConditionRand_Streams(t *testing.T) {
	a := NewConditionRand(7, 3)
	b := NewConditionRand(7, 3)
	c := NewConditionRand(7, 4)

	same, differ := true, false
	for i := 0; i < 16; i++ {
		x, y, z := a.NormFloat64(), b.NormFloat64(), c.NormFloat64()
		if x != y {
			same = false
		}
		if x != z {
			differ = true
		}
	}
	if !same {
		t.Error("identical (seed, index) produced different streams")
	}
	if !differ {
		t.Error("different indices produced identical streams")
	}
}
