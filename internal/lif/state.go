package lif

import "github.com/nvandessel/lifsim/internal/neuron"

// SpikeState tracks where the artifact model is within a drawn spike.
type SpikeState int

const (
	// Idle: no spike in progress since the last sub-reset clamp.
	Idle SpikeState = iota
	// Crossed: the threshold was reached and the crossing value recorded.
	Crossed
	// Peaked: the previous recorded value was VSpike.
	Peaked
	// Repolarized: the membrane was forced back to VReset after a peak.
	// The next over-threshold step peaks immediately, as from Crossed.
	Repolarized
)

// String implements fmt.Stringer.
func (s SpikeState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Crossed:
		return "crossed"
	case Peaked:
		return "peaked"
	case Repolarized:
		return "repolarized"
	default:
		return "unknown"
	}
}

// applyThreshold applies the reset/threshold policy to a freshly integrated
// potential v. It returns the potential to record, the next state and
// whether this step drew a spike peak.
func (s SpikeState) applyThreshold(v float64, p neuron.Params) (float64, SpikeState, bool) {
	if v < p.VReset {
		return p.VReset, Idle, false
	}
	if v < p.VThresh {
		return v, s, false
	}
	switch s {
	case Idle:
		return v, Crossed, false
	case Peaked:
		return p.VReset, Repolarized, false
	default:
		return p.VSpike, Peaked, true
	}
}

// eulerStep advances v by one forward Euler step under constant current.
func eulerStep(v, current float64, p neuron.Params) float64 {
	slope := (-(v - p.VRest) / p.Tau) + current
	return v + slope*p.TimeStep
}
