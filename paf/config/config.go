package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/RyanBlaney/sonido-paf/algorithms/spectral"
	"gopkg.in/yaml.v3"
)

// Fixed analysis constants of the headband recordings.
const (
	// TrimSeconds is discarded at both ends of a recording (electrode settling).
	TrimSeconds = 10.0

	ColumnTimestamp = 0
	ColumnLeft      = 22
	ColumnRight     = 23
	ColumnValid     = 37

	// ValidFlag marks rows acquired with the headband on.
	ValidFlag = "1"
)

var (
	// FFTBand is searched by the single-window FFT estimator.
	FFTBand = spectral.Band{Low: 8.0, High: 13.0}

	// WelchBand is searched by the Welch estimators and both peak series.
	WelchBand = spectral.Band{Low: 8.0, High: 12.0}
)

// Numeric timestamp units. Auto rescales when the first delta is in (0, 0.01].
const (
	TimestampUnitAuto    = "auto"
	TimestampUnitSeconds = "seconds"
	TimestampUnitMillis  = "millis"
)

// Environment variables that override file values.
const (
	EnvWindowSec    = "PAF_WINDOW_SEC"
	EnvSubWindowSec = "PAF_SUB_WINDOW_SEC"
	EnvOverlap      = "PAF_OVERLAP"
	EnvUnit         = "PAF_TIMESTAMP_UNIT"
)

// SamplingParameters holds the analysis window settings. Values are passed
// by value into every analysis call and never shared.
type SamplingParameters struct {
	WindowSec    float64 `json:"window_sec" yaml:"window_sec"`         // primary window length
	SubWindowSec float64 `json:"sub_window_sec" yaml:"sub_window_sec"` // Welch sub-window inside a series block
	Overlap      float64 `json:"overlap" yaml:"overlap"`               // fraction in [0,1)
}

// DefaultSamplingParameters returns the standard 6 s / 3 s / 25% setup.
func DefaultSamplingParameters() SamplingParameters {
	return SamplingParameters{
		WindowSec:    6.0,
		SubWindowSec: 3.0,
		Overlap:      0.25,
	}
}

// Validate checks the parameters are usable.
func (p SamplingParameters) Validate() error {
	if !(p.WindowSec > 0) || math.IsInf(p.WindowSec, 0) {
		return fmt.Errorf("window_sec must be positive and finite: %v", p.WindowSec)
	}
	if !(p.SubWindowSec > 0) || math.IsInf(p.SubWindowSec, 0) {
		return fmt.Errorf("sub_window_sec must be positive and finite: %v", p.SubWindowSec)
	}
	if !(p.Overlap >= 0 && p.Overlap < 1) {
		return fmt.Errorf("overlap must be in [0,1): %v", p.Overlap)
	}
	return nil
}

// Describe renders the parameters the way result notes print them.
func (p SamplingParameters) Describe() string {
	pct := int(p.Overlap * 100)
	return fmt.Sprintf("Welch: averaged PSD over sub-windows (window=%gs, sub-window=%gs, overlap=%d%%). "+
		"FFT: single-window PSD (window=%gs, overlap=%d%%).",
		p.WindowSec, p.SubWindowSec, pct, p.WindowSec, pct)
}

// Config is the on-disk configuration file layout.
type Config struct {
	Sampling      SamplingParameters `yaml:"sampling"`
	TimestampUnit string             `yaml:"timestamp_unit"`
	LogLevel      string             `yaml:"log_level"`
}

// Validate checks the sampling parameters and the timestamp unit.
func (c *Config) Validate() error {
	if err := c.Sampling.Validate(); err != nil {
		return fmt.Errorf("invalid sampling parameters: %w", err)
	}
	switch c.TimestampUnit {
	case TimestampUnitAuto, TimestampUnitSeconds, TimestampUnitMillis:
	default:
		return fmt.Errorf("timestamp_unit must be one of %s, %s, %s: %q",
			TimestampUnitAuto, TimestampUnitSeconds, TimestampUnitMillis, c.TimestampUnit)
	}
	return nil
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Sampling:      DefaultSamplingParameters(),
		TimestampUnit: TimestampUnitAuto,
		LogLevel:      "info",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := applyEnv(&cfg.Sampling); err != nil {
		return nil, err
	}
	if v := os.Getenv(EnvUnit); v != "" {
		cfg.TimestampUnit = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(p *SamplingParameters) error {
	overrides := []struct {
		name string
		dst  *float64
	}{
		{EnvWindowSec, &p.WindowSec},
		{EnvSubWindowSec, &p.SubWindowSec},
		{EnvOverlap, &p.Overlap},
	}

	for _, o := range overrides {
		v := os.Getenv(o.name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse %s: %w", o.name, err)
		}
		*o.dst = f
	}
	return nil
}
