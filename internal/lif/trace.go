package lif

import (
	"fmt"

	"github.com/nvandessel/lifsim/internal/neuron"
)

// Trace is a sampled membrane potential. Time and Voltage have equal
// length; index 0 holds the initial condition at t=0.
type Trace struct {
	Time    []float64 `json:"time"`
	Voltage []float64 `json:"voltage"`
}

// Len returns the number of samples.
func (t Trace) Len() int { return len(t.Voltage) }

// Head returns a view of the first n samples, or the whole trace if it is
// shorter. The returned slices share storage with t.
func (t Trace) Head(n int) Trace {
	if n < 0 {
		n = 0
	}
	if n > len(t.Voltage) {
		n = len(t.Voltage)
	}
	return Trace{Time: t.Time[:n], Voltage: t.Voltage[:n]}
}

func newTrace(steps int, dt, v0 float64) Trace {
	tr := Trace{
		Time:    make([]float64, steps+1),
		Voltage: make([]float64, steps+1),
	}
	for i := range tr.Time {
		tr.Time[i] = float64(i) * dt
	}
	tr.Voltage[0] = v0
	return tr
}

// RunTrace integrates the artifact model from v0 under a constant current
// over [0, RunTime] and returns the Steps()+1 recorded samples.
func RunTrace(v0, current float64, p neuron.Params) (Trace, error) {
	if err := p.CheckNumeric(); err != nil {
		return Trace{}, fmt.Errorf("run trace: %w", err)
	}

	steps := p.Steps()
	tr := newTrace(steps, p.TimeStep, v0)

	v := v0
	state := Idle
	for i := 1; i <= steps; i++ {
		v, state, _ = state.applyThreshold(eulerStep(v, current, p), p)
		tr.Voltage[i] = v
	}
	return tr, nil
}

// Peaks counts the recorded spike peaks, the samples after t=0 that sit
// at vSpike.
func (t Trace) Peaks(vSpike float64) int {
	n := 0
	for i := 1; i < len(t.Voltage); i++ {
		if t.Voltage[i] == vSpike {
			n++
		}
	}
	return n
}
