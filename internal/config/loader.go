package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated [File].
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// An empty document yields an empty [File].
func LoadFromReader(r io.Reader) (*File, error) {
	cfg := &File{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that can be judged without a sample rate.
// Checks that depend on the audio, such as the nyquist limit, are left to
// [mfcc.MFCC.Validate]. It returns a joined error listing every failure.
func Validate(cfg *File) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	if cfg.CutoffLow != nil && *cfg.CutoffLow < 0 {
		errs = append(errs, fmt.Errorf("cutoff_low %g must not be negative", *cfg.CutoffLow))
	}
	if cfg.CutoffLow != nil && cfg.CutoffHigh != nil && *cfg.CutoffLow >= *cfg.CutoffHigh {
		errs = append(errs, fmt.Errorf("cutoff_low %g must be below cutoff_high %g", *cfg.CutoffLow, *cfg.CutoffHigh))
	}
	if cfg.FilterCount != nil && *cfg.FilterCount < 1 {
		errs = append(errs, fmt.Errorf("filter_count %d must be at least 1", *cfg.FilterCount))
	}
	if cfg.OversamplingFactor != nil && *cfg.OversamplingFactor < 2 {
		errs = append(errs, fmt.Errorf("oversampling_factor %d must be at least 2", *cfg.OversamplingFactor))
	}
	if cfg.ResolutionDurationMs != nil && *cfg.ResolutionDurationMs < 1 {
		errs = append(errs, fmt.Errorf("resolution_duration_ms %d must be at least 1", *cfg.ResolutionDurationMs))
	}
	if cfg.BinMinimumSize != nil && *cfg.BinMinimumSize < 1 {
		errs = append(errs, fmt.Errorf("bin_minimum_size %d must be at least 1", *cfg.BinMinimumSize))
	}
	if cfg.Workers != nil && *cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must not be negative", *cfg.Workers))
	}

	return errors.Join(errs...)
}
