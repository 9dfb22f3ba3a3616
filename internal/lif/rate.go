package lif

import (
	"errors"
	"fmt"
	"math"

	"github.com/nvandessel/lifsim/internal/constants"
	"github.com/nvandessel/lifsim/internal/neuron"
)

// ErrInvalidRange is returned for sweep ranges that cannot be sampled.
var ErrInvalidRange = errors.New("invalid sweep range")

// rangeTolerance keeps float error from adding a spurious final sample.
const rangeTolerance = 1e-9

// SweepResult holds parallel per-condition sequences. Condition is the
// input current for F-I curves and the noise sigma for noise sweeps. CV is
// nil for F-I curves.
type SweepResult struct {
	Condition []float64 `json:"condition"`
	Rate      []float64 `json:"rate"`
	CV        []float64 `json:"cv,omitempty"`
}

// Len returns the number of conditions.
func (r SweepResult) Len() int { return len(r.Condition) }

// RangeLen returns the number of values Arange(start, stop, step) would
// produce without allocating them. It fails with ErrInvalidRange for
// non-finite bounds, a non-positive step, or more than
// constants.MaxConditions values.
func RangeLen(start, stop, step float64) (int, error) {
	for _, v := range []float64{start, stop, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: bounds must be finite", ErrInvalidRange)
		}
	}
	if step <= 0 {
		return 0, fmt.Errorf("%w: step must be positive, got %v", ErrInvalidRange, step)
	}

	span := (stop - start) / step
	if !(span > 0) {
		return 0, nil
	}
	n := math.Ceil(span - span*rangeTolerance)
	if !(n <= constants.MaxConditions) {
		return 0, fmt.Errorf("%w: %g values from %v to %v by %v (max %d)",
			ErrInvalidRange, n, start, stop, step, constants.MaxConditions)
	}
	return int(n), nil
}

// Arange returns start, start+step, ... for values below stop, matching
// the half-open convention of numpy.arange. The result is empty (non-nil)
// when stop <= start. See RangeLen for the errors.
func Arange(start, stop, step float64) ([]float64, error) {
	n, err := RangeLen(start, stop, step)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out, nil
}

// RunRate computes the F-I curve of the artifact model. Currents are
// Arange(step, maxCurrent, step); each runs an independent integration from
// v0 for Steps() steps and counts drawn spike peaks. An empty range is not
// an error.
func RunRate(v0 float64, p neuron.Params, maxCurrent, step float64) (SweepResult, error) {
	if err := p.CheckNumeric(); err != nil {
		return SweepResult{}, fmt.Errorf("run rate: %w", err)
	}
	currents, err := Arange(step, maxCurrent, step)
	if err != nil {
		return SweepResult{}, fmt.Errorf("run rate: %w", err)
	}
	res := SweepResult{
		Condition: currents,
		Rate:      make([]float64, len(currents)),
	}
	steps := p.Steps()
	for i, current := range currents {
		res.Rate[i] = firingRate(countPeaks(v0, current, steps, p), p.RunTime)
	}
	return res, nil
}

// countPeaks integrates the artifact model without recording and returns
// the number of drawn spike peaks.
func countPeaks(v0, current float64, steps int, p neuron.Params) int {
	v := v0
	state := Idle
	peaks := 0
	for i := 0; i < steps; i++ {
		var peaked bool
		v, state, peaked = state.applyThreshold(eulerStep(v, current, p), p)
		if peaked {
			peaks++
		}
	}
	return peaks
}

// firingRate converts a spike count over runTime ms into Hz.
func firingRate(spikes int, runTime float64) float64 {
	if spikes == 0 || runTime <= 0 {
		return 0
	}
	return float64(spikes) / runTime * constants.RatesPerSecond
}
