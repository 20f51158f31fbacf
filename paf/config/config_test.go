package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultSamplingParameters(t *testing.T) {
	p := DefaultSamplingParameters()
	if p.WindowSec != 6.0 || p.SubWindowSec != 3.0 || p.Overlap != 0.25 {
		t.Fatalf("defaults=%+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		p    SamplingParameters
		ok   bool
	}{
		{"zero window", SamplingParameters{WindowSec: 0, SubWindowSec: 3, Overlap: 0.25}, false},
		{"negative sub-window", SamplingParameters{WindowSec: 6, SubWindowSec: -1, Overlap: 0.25}, false},
		{"overlap one", SamplingParameters{WindowSec: 6, SubWindowSec: 3, Overlap: 1}, false},
		{"negative overlap", SamplingParameters{WindowSec: 6, SubWindowSec: 3, Overlap: -0.1}, false},
		{"zero overlap", SamplingParameters{WindowSec: 4, SubWindowSec: 2, Overlap: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if (err == nil) != tt.ok {
				t.Fatalf("Validate()=%v ok=%v", err, tt.ok)
			}
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Sampling != DefaultSamplingParameters() {
		t.Fatalf("sampling=%+v", cfg.Sampling)
	}
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paf.yaml")
	body := "sampling:\n  window_sec: 4\n  sub_window_sec: 2\n  overlap: 0.5\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvOverlap, "0.1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := SamplingParameters{WindowSec: 4, SubWindowSec: 2, Overlap: 0.1}
	if cfg.Sampling != want {
		t.Fatalf("sampling=%+v want=%+v", cfg.Sampling, want)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log_level=%q", cfg.LogLevel)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paf.yaml")
	if err := os.WriteFile(path, []byte("sampling:\n  overlap: 1.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}

	t.Setenv(EnvWindowSec, "six")
	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), EnvWindowSec) {
		t.Fatalf("err=%v want parse error naming %s", err, EnvWindowSec)
	}
}

func TestDescribe(t *testing.T) {
	got := DefaultSamplingParameters().Describe()
	want := "Welch: averaged PSD over sub-windows (window=6s, sub-window=3s, overlap=25%). " +
		"FFT: single-window PSD (window=6s, overlap=25%)."
	if got != want {
		t.Fatalf("Describe()=%q want=%q", got, want)
	}
}

func TestConfigValidateTimestampUnit(t *testing.T) {
	cfg := &Config{Sampling: DefaultSamplingParameters(), TimestampUnit: TimestampUnitSeconds}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}

	t.Setenv(EnvUnit, "hours")
	if _, err := Load(""); err == nil {
		t.Fatal("expected unknown timestamp unit error")
	}
}
