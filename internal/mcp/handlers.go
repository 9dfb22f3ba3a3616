package mcp

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/nvandessel/lifsim/internal/lif"
	"github.com/nvandessel/lifsim/internal/neuron"
	"github.com/nvandessel/lifsim/internal/ratelimit"
	"gonum.org/v1/gonum/stat"
)

// Request size limits.
const (
	maxTraceSamples    = 200_001
	maxRateConditions  = 5000
	maxNoiseSigmas     = 32
	maxSweepConditions = 2000
)

// registerTools registers all lifsim MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "lif_trace",
		Description: "Integrate a single LIF membrane trace under constant current, with artifact spikes drawn at v_spike",
	}, s.handleLifTrace)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "lif_rate",
		Description: "Compute the F-I curve: firing rate for each input current in a sweep",
	}, s.handleLifRate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "lif_noise",
		Description: "Simulate the neuron under Gaussian input noise for each sigma and report rate, CV and a membrane preview",
	}, s.handleLifNoise)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "lif_sweep",
		Description: "Sweep noise sigma over a range and report firing rate and CV per sigma",
	}, s.handleLifSweep)
}

// handleLifTrace implements the lif_trace tool.
func (s *Server) handleLifTrace(ctx context.Context, req *sdk.CallToolRequest, args LifTraceInput) (_ *sdk.CallToolResult, _ LifTraceOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool(ctx, "lif_trace", start, retErr, map[string]any{
			"current": args.Current,
			"v0":      args.V0,
		})
	}()

	if err := ratelimit.CheckLimit(s.toolLimiters, "lif_trace"); err != nil {
		return nil, LifTraceOutput{}, err
	}

	p, err := resolveParams(s.cfg.TraceParams(), args.Params)
	if err != nil {
		return nil, LifTraceOutput{}, err
	}
	if args.MaxSamples < 0 {
		return nil, LifTraceOutput{}, fmt.Errorf("max_samples must be non-negative, got %d", args.MaxSamples)
	}
	if n := p.Steps() + 1; n > maxTraceSamples {
		return nil, LifTraceOutput{}, fmt.Errorf("trace too long: %d samples (max %d)", n, maxTraceSamples)
	}

	tr, err := lif.RunTrace(valueOr(args.V0, p.VRest), args.Current, p)
	if err != nil {
		return nil, LifTraceOutput{}, err
	}

	out := LifTraceOutput{
		Params:  p,
		Samples: tr.Len(),
		Spikes:  tr.Peaks(p.VSpike),
		Trace:   tr,
	}
	if args.MaxSamples > 0 && args.MaxSamples < tr.Len() {
		out.Trace = tr.Head(args.MaxSamples)
		out.Truncated = true
	}
	return nil, out, nil
}

// handleLifRate implements the lif_rate tool.
func (s *Server) handleLifRate(ctx context.Context, req *sdk.CallToolRequest, args LifRateInput) (_ *sdk.CallToolResult, _ LifRateOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool(ctx, "lif_rate", start, retErr, map[string]any{
			"v0":          args.V0,
			"max_current": args.MaxCurrent,
			"step":        args.Step,
		})
	}()

	if err := ratelimit.CheckLimit(s.toolLimiters, "lif_rate"); err != nil {
		return nil, LifRateOutput{}, err
	}

	p, err := resolveParams(s.cfg.RateParams(), args.Params)
	if err != nil {
		return nil, LifRateOutput{}, err
	}

	maxCurrent := valueOr(args.MaxCurrent, s.cfg.Rate.MaxCurrent)
	step := valueOr(args.Step, s.cfg.Rate.Step)
	n, err := lif.RangeLen(step, maxCurrent, step)
	if err != nil {
		return nil, LifRateOutput{}, err
	}
	if n > maxRateConditions {
		return nil, LifRateOutput{}, fmt.Errorf("too many currents: %d (max %d)", n, maxRateConditions)
	}

	res, err := lif.RunRate(valueOr(args.V0, p.VRest), p, maxCurrent, step)
	if err != nil {
		return nil, LifRateOutput{}, err
	}

	return nil, LifRateOutput{
		Params:     p,
		Conditions: res.Len(),
		Current:    res.Condition,
		Rate:       res.Rate,
	}, nil
}

// handleLifNoise implements the lif_noise tool.
func (s *Server) handleLifNoise(ctx context.Context, req *sdk.CallToolRequest, args LifNoiseInput) (_ *sdk.CallToolResult, _ LifNoiseOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool(ctx, "lif_noise", start, retErr, map[string]any{
			"sigmas":        len(args.Sigmas),
			"input_current": args.InputCurrent,
			"seed":          args.Seed,
		})
	}()

	if err := ratelimit.CheckLimit(s.toolLimiters, "lif_noise"); err != nil {
		return nil, LifNoiseOutput{}, err
	}

	engine, err := s.noiseEngine(args.Params, args.InputCurrent, args.VInit, args.Seed)
	if err != nil {
		return nil, LifNoiseOutput{}, err
	}

	sigmas := args.Sigmas
	if len(sigmas) == 0 {
		sigmas = s.cfg.Noise.Sigmas
	}
	if len(sigmas) > maxNoiseSigmas {
		return nil, LifNoiseOutput{}, fmt.Errorf("too many sigmas: %d (max %d)", len(sigmas), maxNoiseSigmas)
	}

	preview := args.PreviewSamples
	if preview < 0 {
		return nil, LifNoiseOutput{}, fmt.Errorf("preview_samples must be non-negative, got %d", preview)
	}
	if preview == 0 {
		preview = s.cfg.Output.PreviewSamples
	}

	runs, err := lif.RunNoisy(ctx, sigmas, engine)
	if err != nil {
		return nil, LifNoiseOutput{}, err
	}

	out := LifNoiseOutput{
		Params: engine.Params,
		Seed:   engine.Seed,
		Runs:   make([]NoiseRunSummary, 0, len(runs)),
	}
	for _, run := range runs {
		st := lif.Summarize(run.Spikes, engine.Params.RunTime)
		out.Runs = append(out.Runs, NoiseRunSummary{
			Sigma:   run.Sigma,
			Spikes:  st.Count,
			Rate:    st.Rate,
			CV:      st.CV,
			MeanISI: mean(st.ISI),
			Preview: run.Trace.Head(preview),
		})
	}
	return nil, out, nil
}

// handleLifSweep implements the lif_sweep tool.
func (s *Server) handleLifSweep(ctx context.Context, req *sdk.CallToolRequest, args LifSweepInput) (_ *sdk.CallToolResult, _ LifSweepOutput, retErr error) {
	start := time.Now()
	defer func() {
		s.auditTool(ctx, "lif_sweep", start, retErr, map[string]any{
			"start":   args.Start,
			"stop":    args.Stop,
			"step":    args.Step,
			"seed":    args.Seed,
			"workers": args.Workers,
		})
	}()

	if err := ratelimit.CheckLimit(s.toolLimiters, "lif_sweep"); err != nil {
		return nil, LifSweepOutput{}, err
	}

	engine, err := s.noiseEngine(args.Params, args.InputCurrent, nil, args.Seed)
	if err != nil {
		return nil, LifSweepOutput{}, err
	}
	if args.Workers < 0 {
		return nil, LifSweepOutput{}, fmt.Errorf("workers must be non-negative, got %d", args.Workers)
	}

	rng := s.cfg.Noise.Sweep
	rng.Start = valueOr(args.Start, rng.Start)
	rng.Stop = valueOr(args.Stop, rng.Stop)
	rng.Step = valueOr(args.Step, rng.Step)
	n, err := lif.RangeLen(rng.Start, rng.Stop, rng.Step)
	if err != nil {
		return nil, LifSweepOutput{}, err
	}
	if n > maxSweepConditions {
		return nil, LifSweepOutput{}, fmt.Errorf("too many sweep conditions: %d (max %d)", n, maxSweepConditions)
	}
	sigmas, err := rng.Values()
	if err != nil {
		return nil, LifSweepOutput{}, err
	}

	workers := args.Workers
	if workers == 0 {
		workers = s.cfg.Noise.Workers
	}

	res, err := lif.SweepNoise(ctx, sigmas, engine, lif.SweepOptions{Workers: workers})
	if err != nil {
		return nil, LifSweepOutput{}, err
	}

	return nil, LifSweepOutput{
		Params:     engine.Params,
		Seed:       engine.Seed,
		Conditions: res.Len(),
		Sigma:      res.Condition,
		Rate:       res.Rate,
		CV:         res.CV,
	}, nil
}

// noiseEngine builds the noisy engine configuration from config defaults
// and the optional tool overrides.
func (s *Server) noiseEngine(overrides *NeuronInput, current, vInit *float64, seed *uint64) (lif.NoiseConfig, error) {
	engine := s.cfg.NoiseEngine()

	p, err := resolveParams(engine.Params, overrides)
	if err != nil {
		return lif.NoiseConfig{}, err
	}
	engine.Params = p
	engine.InputCurrent = valueOr(current, engine.InputCurrent)
	engine.VInit = valueOr(vInit, engine.VInit)
	if seed != nil {
		engine.Seed = *seed
	}
	return engine, nil
}

// resolveParams applies overrides to base and validates the result,
// including the potential ordering.
func resolveParams(base neuron.Params, overrides *NeuronInput) (neuron.Params, error) {
	p := overrides.apply(base)
	if err := p.Validate(); err != nil {
		return neuron.Params{}, err
	}
	return p, nil
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}
