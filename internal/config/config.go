// Package config provides unified configuration loading for lifsim.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nvandessel/lifsim/internal/constants"
	"github.com/nvandessel/lifsim/internal/lif"
	"github.com/nvandessel/lifsim/internal/neuron"
	"gopkg.in/yaml.v3"
)

// LifConfig contains all lifsim configuration settings.
type LifConfig struct {
	// Neuron holds the biophysical constants shared by every command.
	// Each command replaces RunTime with its own section's value.
	Neuron neuron.Params `json:"neuron" yaml:"neuron"`

	// Trace configures the single membrane trace.
	Trace TraceConfig `json:"trace" yaml:"trace"`

	// Rate configures the F-I curve.
	Rate RateConfig `json:"rate" yaml:"rate"`

	// Noise configures the noisy true-spike engine and its sigma sweep.
	Noise NoiseConfig `json:"noise" yaml:"noise"`

	// Output configures chart rendering.
	Output OutputConfig `json:"output" yaml:"output"`

	// Logging contains settings for operational and event logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// TraceConfig configures the single membrane trace.
type TraceConfig struct {
	RunTime float64 `json:"run_time" yaml:"run_time"`
}

// RateConfig configures the F-I curve.
type RateConfig struct {
	RunTime float64 `json:"run_time" yaml:"run_time"`

	// MaxCurrent is the exclusive upper bound of the current sweep.
	MaxCurrent float64 `json:"max_current" yaml:"max_current"`

	// Step is both the first current and the spacing.
	Step float64 `json:"step" yaml:"step"`
}

// NoiseConfig configures the noisy engine.
type NoiseConfig struct {
	RunTime      float64   `json:"run_time" yaml:"run_time"`
	InputCurrent float64   `json:"input_current" yaml:"input_current"`
	VInit        float64   `json:"v_init" yaml:"v_init"`
	Seed         uint64    `json:"seed" yaml:"seed"`
	Sigmas       []float64 `json:"sigmas" yaml:"sigmas"`

	// Sweep spans the dense sigma sweep.
	Sweep SweepRange `json:"sweep" yaml:"sweep"`

	// Workers bounds concurrent sweep conditions. Zero means GOMAXPROCS.
	Workers int `json:"workers" yaml:"workers"`
}

// SweepRange is a half-open [Start, Stop) range sampled every Step.
type SweepRange struct {
	Start float64 `json:"start" yaml:"start"`
	Stop  float64 `json:"stop" yaml:"stop"`
	Step  float64 `json:"step" yaml:"step"`
}

// Values returns the sampled range.
func (r SweepRange) Values() ([]float64, error) {
	return lif.Arange(r.Start, r.Stop, r.Step)
}

// OutputConfig configures chart rendering.
type OutputConfig struct {
	// Format is the chart image format: "png" (default) or "svg".
	Format string `json:"format" yaml:"format"`

	// Dir is where charts are written. Empty means a fresh temp directory.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// PreviewSamples truncates noisy membrane charts.
	PreviewSamples int `json:"preview_samples" yaml:"preview_samples"`

	// HistogramBins is the ISI histogram bin count.
	HistogramBins int `json:"histogram_bins" yaml:"histogram_bins"`
}

// LoggingConfig configures lifsim's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" additionally writes sweep events to <output dir>/sweep-events.jsonl.
	Level string `json:"level" yaml:"level"`
}

// Default returns a LifConfig with sensible defaults.
func Default() *LifConfig {
	return &LifConfig{
		Neuron: neuron.Default(),
		Trace: TraceConfig{
			RunTime: constants.TraceRunTime,
		},
		Rate: RateConfig{
			RunTime:    constants.RateRunTime,
			MaxCurrent: constants.DefaultMaxCurrent,
			Step:       constants.DefaultCurrentStep,
		},
		Noise: NoiseConfig{
			RunTime:      constants.NoiseRunTime,
			InputCurrent: constants.DefaultNoiseCurrent,
			VInit:        constants.DefaultNoiseVInit,
			Seed:         constants.DefaultSeed,
			Sigmas:       append([]float64{}, constants.DefaultSigmas...),
			Sweep: SweepRange{
				Start: constants.DefaultSweepStart,
				Stop:  constants.DefaultSweepStop,
				Step:  constants.DefaultSweepStep,
			},
		},
		Output: OutputConfig{
			Format:         "png",
			PreviewSamples: constants.PreviewSamples,
			HistogramBins:  constants.HistogramBins,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// TraceParams returns the neuron parameters for the single trace.
func (c *LifConfig) TraceParams() neuron.Params {
	return c.Neuron.WithRunTime(c.Trace.RunTime)
}

// RateParams returns the neuron parameters for the F-I curve.
func (c *LifConfig) RateParams() neuron.Params {
	return c.Neuron.WithRunTime(c.Rate.RunTime)
}

// NoiseEngine returns the engine configuration for the noisy model.
func (c *LifConfig) NoiseEngine() lif.NoiseConfig {
	return lif.NoiseConfig{
		Params:       c.Neuron.WithRunTime(c.Noise.RunTime),
		InputCurrent: c.Noise.InputCurrent,
		VInit:        c.Noise.VInit,
		Seed:         c.Noise.Seed,
	}
}

// DefaultPath returns ~/.lifsim/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".lifsim", "config.yaml"), nil
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.lifsim/config.yaml -> environment variables
func Load() (*LifConfig, error) {
	config := Default()

	configPath, err := DefaultPath()
	if err == nil {
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadPath loads path if non-empty, otherwise falls back to Load.
// Environment overrides are applied either way.
func LoadPath(path string) (*LifConfig, error) {
	if path == "" {
		return Load()
	}
	config, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(config)
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file. Keys absent
// from the file keep their defaults.
func LoadFromFile(path string) (*LifConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// Marshal renders the configuration as YAML.
func (c *LifConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks that the configuration is valid.
func (c *LifConfig) Validate() error {
	if err := c.Neuron.Validate(); err != nil {
		return fmt.Errorf("neuron: %w", err)
	}

	runTimes := map[string]float64{
		"trace.run_time": c.Trace.RunTime,
		"rate.run_time":  c.Rate.RunTime,
		"noise.run_time": c.Noise.RunTime,
	}
	for name, v := range runTimes {
		if !(v > 0) {
			return fmt.Errorf("%s must be positive, got %v", name, v)
		}
	}

	sections := []struct {
		name string
		p    neuron.Params
	}{
		{"trace", c.TraceParams()},
		{"rate", c.RateParams()},
		{"noise", c.NoiseEngine().Params},
	}
	for _, sec := range sections {
		if err := sec.p.CheckNumeric(); err != nil {
			return fmt.Errorf("%s: %w", sec.name, err)
		}
	}

	if !(c.Rate.Step > 0) {
		return fmt.Errorf("rate.step must be positive, got %v", c.Rate.Step)
	}
	if _, err := lif.RangeLen(c.Rate.Step, c.Rate.MaxCurrent, c.Rate.Step); err != nil {
		return fmt.Errorf("rate: %w", err)
	}
	if !(c.Noise.Sweep.Step > 0) {
		return fmt.Errorf("noise.sweep.step must be positive, got %v", c.Noise.Sweep.Step)
	}
	if _, err := lif.RangeLen(c.Noise.Sweep.Start, c.Noise.Sweep.Stop, c.Noise.Sweep.Step); err != nil {
		return fmt.Errorf("noise.sweep: %w", err)
	}
	if c.Noise.Sweep.Start < 0 {
		return fmt.Errorf("noise.sweep.start must be non-negative, got %v", c.Noise.Sweep.Start)
	}
	for i, s := range c.Noise.Sigmas {
		if !(s >= 0) {
			return fmt.Errorf("noise.sigmas[%d] must be non-negative, got %v", i, s)
		}
	}
	if c.Noise.Workers < 0 {
		return fmt.Errorf("noise.workers must be non-negative, got %d", c.Noise.Workers)
	}

	validFormats := map[string]bool{"png": true, "svg": true}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output format: %s (valid: png, svg)", c.Output.Format)
	}
	if c.Output.PreviewSamples < 1 {
		return fmt.Errorf("output.preview_samples must be at least 1, got %d", c.Output.PreviewSamples)
	}
	if c.Output.HistogramBins < 1 {
		return fmt.Errorf("output.histogram_bins must be at least 1, got %d", c.Output.HistogramBins)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *LifConfig) {
	if v := os.Getenv("LIFSIM_LOG_LEVEL"); v != "" {
		config.Logging.Level = strings.ToLower(v)
	}

	if v := os.Getenv("LIFSIM_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Noise.Seed = n
		}
	}

	if v := os.Getenv("LIFSIM_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Noise.Workers = n
		}
	}

	if v := os.Getenv("LIFSIM_OUTPUT_FORMAT"); v != "" {
		config.Output.Format = strings.ToLower(v)
	}

	if v := os.Getenv("LIFSIM_OUTPUT_DIR"); v != "" {
		config.Output.Dir = v
	}

	// LIFSIM_RUN_TIME overrides the trace run time only; rate and noise
	// windows are tuned separately for their statistics.
	if v := os.Getenv("LIFSIM_RUN_TIME"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Trace.RunTime = f
		}
	}
}
