// Package constants provides named constants used throughout lifsim.
// This centralizes magic numbers for better maintainability and documentation.
package constants

// Neuron parameter defaults (mV, ms).
const (
	// DefaultVRest is the resting membrane potential the leak decays toward.
	DefaultVRest = -65.0

	// DefaultVReset is the potential the membrane is clamped to after a spike.
	DefaultVReset = -70.0

	// DefaultVThresh is the spiking threshold.
	DefaultVThresh = -50.0

	// DefaultVSpike is the peak value drawn for a spike in artifact traces.
	DefaultVSpike = 40.0

	// DefaultTau is the membrane time constant.
	DefaultTau = 20.0

	// DefaultTimeStep is the Euler integration step.
	DefaultTimeStep = 0.1

	// DefaultRunTime is the simulated duration when no command overrides it.
	DefaultRunTime = 100.0
)

// Per-command run times. Rate estimation needs a longer window than a
// single trace, and ISI statistics need longer still.
const (
	// TraceRunTime is the duration of the single membrane trace.
	TraceRunTime = 200.0

	// RateRunTime is the duration of each F-I curve condition.
	RateRunTime = 1200.0

	// NoiseRunTime is the duration of each noisy condition.
	NoiseRunTime = 5000.0
)

// F-I curve sweep defaults.
const (
	// DefaultMaxCurrent is the exclusive upper bound of the current sweep.
	DefaultMaxCurrent = 2.5

	// DefaultCurrentStep is both the first current and the sweep spacing.
	DefaultCurrentStep = 0.002
)

// Noisy engine defaults.
const (
	// DefaultNoiseCurrent is the mean input current of the noisy engine.
	DefaultNoiseCurrent = 1.3

	// DefaultNoiseVInit is the initial potential of every noisy condition.
	DefaultNoiseVInit = -55.0

	// DefaultSweepStart, DefaultSweepStop and DefaultSweepStep span the sigma sweep.
	DefaultSweepStart = 0.0
	DefaultSweepStop  = 100.0
	DefaultSweepStep  = 0.5

	// DefaultSeed seeds the per-condition noise generators.
	DefaultSeed = 1
)

// DefaultSigmas are the noise levels examined individually by the noise command.
var DefaultSigmas = []float64{0.1, 1.0, 10.0}

// Presentation constants.
const (
	// PreviewSamples is the number of samples shown for noisy membrane traces.
	PreviewSamples = 1000

	// HistogramBins is the bin count of ISI histograms.
	HistogramBins = 20

	// ChartWidthInches and ChartHeightInches size rendered charts.
	ChartWidthInches  = 8.0
	ChartHeightInches = 5.0

	// ChartDPI converts chart inches into pixels for raster output.
	ChartDPI = 96

	// RatesPerSecond converts spikes per millisecond into Hz.
	RatesPerSecond = 1000.0
)

// Simulation size limits. Inputs that would exceed them are rejected
// before anything is allocated.
const (
	// MaxSteps bounds the integration steps of a single run.
	MaxSteps = 10_000_000

	// MaxConditions bounds the number of conditions in one sweep range.
	MaxConditions = 1_000_000
)
