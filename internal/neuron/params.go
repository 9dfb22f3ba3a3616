// Package neuron defines the biophysical parameter set of a leaky
// integrate-and-fire neuron.
package neuron

import (
	"errors"
	"fmt"
	"math"

	"github.com/nvandessel/lifsim/internal/constants"
)

// ErrInvalidParams is returned when a parameter set cannot drive a simulation.
var ErrInvalidParams = errors.New("invalid neuron parameters")

// stepTolerance absorbs float error when dividing run time by time step,
// so that 100/0.1 yields 1000 steps rather than 999.
const stepTolerance = 1e-9

// Params holds the constants of one LIF neuron. Voltages are in mV and
// times in ms. Params is a value type; copies never alias.
type Params struct {
	// VRest is the potential the leak decays toward.
	VRest float64 `json:"v_rest" yaml:"v_rest"`

	// VReset is the lower clamp and the post-spike potential.
	VReset float64 `json:"v_reset" yaml:"v_reset"`

	// VThresh is the spiking threshold.
	VThresh float64 `json:"v_thresh" yaml:"v_thresh"`

	// VSpike is the value drawn at a spike peak.
	VSpike float64 `json:"v_spike" yaml:"v_spike"`

	// Tau is the membrane time constant.
	Tau float64 `json:"tau" yaml:"tau"`

	// TimeStep is the Euler step.
	TimeStep float64 `json:"time_step" yaml:"time_step"`

	// RunTime is the simulated duration.
	RunTime float64 `json:"run_time" yaml:"run_time"`
}

// Default returns the standard parameter set.
func Default() Params {
	return Params{
		VRest:    constants.DefaultVRest,
		VReset:   constants.DefaultVReset,
		VThresh:  constants.DefaultVThresh,
		VSpike:   constants.DefaultVSpike,
		Tau:      constants.DefaultTau,
		TimeStep: constants.DefaultTimeStep,
		RunTime:  constants.DefaultRunTime,
	}
}

// WithRunTime returns a copy of p with RunTime replaced.
func (p Params) WithRunTime(ms float64) Params {
	p.RunTime = ms
	return p
}

// Steps returns the number of integration steps in RunTime.
// It returns 0 when TimeStep is not positive. The result is only
// meaningful for params that pass CheckNumeric.
func (p Params) Steps() int {
	if p.TimeStep <= 0 || p.RunTime <= 0 {
		return 0
	}
	n := p.RunTime / p.TimeStep
	return int(math.Floor(n + n*stepTolerance))
}

// CheckNumeric reports whether p can be integrated at all: every field
// finite, with positive TimeStep and Tau, non-negative RunTime, and at most
// constants.MaxSteps steps. It does not check the potential ordering; see
// Validate.
func (p Params) CheckNumeric() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"v_rest", p.VRest},
		{"v_reset", p.VReset},
		{"v_thresh", p.VThresh},
		{"v_spike", p.VSpike},
		{"tau", p.Tau},
		{"time_step", p.TimeStep},
		{"run_time", p.RunTime},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is not finite (%v)", ErrInvalidParams, f.name, f.v)
		}
	}
	if p.TimeStep <= 0 {
		return fmt.Errorf("%w: time_step must be positive, got %v", ErrInvalidParams, p.TimeStep)
	}
	if p.Tau <= 0 {
		return fmt.Errorf("%w: tau must be positive, got %v", ErrInvalidParams, p.Tau)
	}
	if p.RunTime < 0 {
		return fmt.Errorf("%w: run_time must be non-negative, got %v", ErrInvalidParams, p.RunTime)
	}
	if n := p.RunTime / p.TimeStep; n > constants.MaxSteps {
		return fmt.Errorf("%w: run_time/time_step is %g steps (max %d)", ErrInvalidParams, n, constants.MaxSteps)
	}
	return nil
}

// Validate runs CheckNumeric and additionally requires
// v_reset < v_rest < v_thresh < v_spike.
func (p Params) Validate() error {
	if err := p.CheckNumeric(); err != nil {
		return err
	}
	if !(p.VReset < p.VRest && p.VRest < p.VThresh && p.VThresh < p.VSpike) {
		return fmt.Errorf("%w: require v_reset < v_rest < v_thresh < v_spike, got %v, %v, %v, %v",
			ErrInvalidParams, p.VReset, p.VRest, p.VThresh, p.VSpike)
	}
	return nil
}
