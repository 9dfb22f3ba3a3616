// Package mcp provides an MCP (Model Context Protocol) server for lifsim.
package mcp

import (
	"github.com/nvandessel/lifsim/internal/lif"
	"github.com/nvandessel/lifsim/internal/neuron"
)

// NeuronInput overrides individual neuron parameters. Unset fields keep
// the configured value.
type NeuronInput struct {
	VRest    *float64 `json:"v_rest,omitempty" jsonschema:"Resting potential in mV"`
	VReset   *float64 `json:"v_reset,omitempty" jsonschema:"Post-spike reset potential in mV"`
	VThresh  *float64 `json:"v_thresh,omitempty" jsonschema:"Spiking threshold in mV"`
	VSpike   *float64 `json:"v_spike,omitempty" jsonschema:"Peak potential drawn for artifact spikes in mV"`
	Tau      *float64 `json:"tau,omitempty" jsonschema:"Membrane time constant in ms"`
	TimeStep *float64 `json:"time_step,omitempty" jsonschema:"Euler integration step in ms"`
	RunTime  *float64 `json:"run_time,omitempty" jsonschema:"Simulated duration in ms"`
}

// LifTraceInput defines the input for lif_trace tool.
type LifTraceInput struct {
	V0         *float64     `json:"v0,omitempty" jsonschema:"Initial membrane potential in mV (default: v_rest)"`
	Current    float64      `json:"current" jsonschema:"Constant input current"`
	MaxSamples int          `json:"max_samples,omitempty" jsonschema:"Return at most this many samples from the start of the trace (default: all)"`
	Params     *NeuronInput `json:"params,omitempty" jsonschema:"Neuron parameter overrides"`
}

// LifTraceOutput defines the output for lif_trace tool.
type LifTraceOutput struct {
	Params    neuron.Params `json:"params" jsonschema:"Parameters the trace was integrated with"`
	Samples   int           `json:"samples" jsonschema:"Total number of samples in the full trace"`
	Spikes    int           `json:"spikes" jsonschema:"Number of recorded spike peaks"`
	Truncated bool          `json:"truncated" jsonschema:"Whether the returned trace is shorter than the full trace"`
	Trace     lif.Trace     `json:"trace" jsonschema:"Sampled time and voltage"`
}

// LifRateInput defines the input for lif_rate tool.
type LifRateInput struct {
	V0         *float64     `json:"v0,omitempty" jsonschema:"Initial membrane potential in mV (default: v_rest)"`
	MaxCurrent *float64     `json:"max_current,omitempty" jsonschema:"Exclusive upper bound of the current sweep"`
	Step       *float64     `json:"step,omitempty" jsonschema:"First current and sweep spacing"`
	Params     *NeuronInput `json:"params,omitempty" jsonschema:"Neuron parameter overrides"`
}

// LifRateOutput defines the output for lif_rate tool.
type LifRateOutput struct {
	Params     neuron.Params `json:"params" jsonschema:"Parameters each condition was integrated with"`
	Conditions int           `json:"conditions" jsonschema:"Number of currents simulated"`
	Current    []float64     `json:"current" jsonschema:"Input currents"`
	Rate       []float64     `json:"rate" jsonschema:"Firing rate in Hz per current"`
}

// LifNoiseInput defines the input for lif_noise tool.
type LifNoiseInput struct {
	Sigmas         []float64    `json:"sigmas,omitempty" jsonschema:"Noise standard deviations (default: configured sigmas)"`
	InputCurrent   *float64     `json:"input_current,omitempty" jsonschema:"Mean input current"`
	VInit          *float64     `json:"v_init,omitempty" jsonschema:"Initial membrane potential in mV"`
	Seed           *uint64      `json:"seed,omitempty" jsonschema:"Noise seed"`
	PreviewSamples int          `json:"preview_samples,omitempty" jsonschema:"Samples of each membrane trace to return (default: configured preview length)"`
	Params         *NeuronInput `json:"params,omitempty" jsonschema:"Neuron parameter overrides"`
}

// NoiseRunSummary reports one noise condition.
type NoiseRunSummary struct {
	Sigma   float64   `json:"sigma" jsonschema:"Noise standard deviation"`
	Spikes  int       `json:"spikes" jsonschema:"Number of spikes"`
	Rate    float64   `json:"rate" jsonschema:"Firing rate in Hz"`
	CV      float64   `json:"cv" jsonschema:"Coefficient of variation of the inter-spike intervals"`
	MeanISI float64   `json:"mean_isi" jsonschema:"Mean inter-spike interval in ms (0 with fewer than two spikes)"`
	Preview lif.Trace `json:"preview" jsonschema:"Leading samples of the membrane trace"`
}

// LifNoiseOutput defines the output for lif_noise tool.
type LifNoiseOutput struct {
	Params neuron.Params     `json:"params" jsonschema:"Parameters each condition was integrated with"`
	Seed   uint64            `json:"seed" jsonschema:"Noise seed used"`
	Runs   []NoiseRunSummary `json:"runs" jsonschema:"One entry per sigma in input order"`
}

// LifSweepInput defines the input for lif_sweep tool.
type LifSweepInput struct {
	Start        *float64     `json:"start,omitempty" jsonschema:"First sigma"`
	Stop         *float64     `json:"stop,omitempty" jsonschema:"Exclusive upper bound of the sigma range"`
	Step         *float64     `json:"step,omitempty" jsonschema:"Sigma spacing"`
	InputCurrent *float64     `json:"input_current,omitempty" jsonschema:"Mean input current"`
	Seed         *uint64      `json:"seed,omitempty" jsonschema:"Noise seed"`
	Workers      int          `json:"workers,omitempty" jsonschema:"Concurrent conditions (default: configured workers)"`
	Params       *NeuronInput `json:"params,omitempty" jsonschema:"Neuron parameter overrides"`
}

// LifSweepOutput defines the output for lif_sweep tool.
type LifSweepOutput struct {
	Params     neuron.Params `json:"params" jsonschema:"Parameters each condition was integrated with"`
	Seed       uint64        `json:"seed" jsonschema:"Noise seed used"`
	Conditions int           `json:"conditions" jsonschema:"Number of sigmas simulated"`
	Sigma      []float64     `json:"sigma" jsonschema:"Noise standard deviations"`
	Rate       []float64     `json:"rate" jsonschema:"Firing rate in Hz per sigma"`
	CV         []float64     `json:"cv" jsonschema:"Coefficient of variation per sigma"`
}

// apply returns p with the set fields of in replaced.
func (in *NeuronInput) apply(p neuron.Params) neuron.Params {
	if in == nil {
		return p
	}
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.VRest, in.VRest)
	set(&p.VReset, in.VReset)
	set(&p.VThresh, in.VThresh)
	set(&p.VSpike, in.VSpike)
	set(&p.Tau, in.Tau)
	set(&p.TimeStep, in.TimeStep)
	set(&p.RunTime, in.RunTime)
	return p
}
