// Package config loads tomfcc settings from a YAML file.
//
// Every extraction key is optional: a key that is absent keeps the value
// already on the [mfcc.MFCC] it is applied to, so a file only needs to name
// what it changes.
package config

import (
	"log/slog"

	"github.com/neurlang/gomfcc/mfcc"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Level maps l onto a slog level. Unknown and empty levels map to info.
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// File is the on-disk configuration. Nil fields were not set in the file.
type File struct {
	LogLevel LogLevel `yaml:"log_level"`

	CutoffLow          *float64 `yaml:"cutoff_low"`
	CutoffHigh         *float64 `yaml:"cutoff_high"`
	FilterCount        *int     `yaml:"filter_count"`
	OversamplingFactor *int     `yaml:"oversampling_factor"`
	// ResolutionDurationMs is the bin size target in milliseconds.
	ResolutionDurationMs *int  `yaml:"resolution_duration_ms"`
	BinMinimumSize       *int  `yaml:"bin_minimum_size"`
	LogMelOnly           *bool `yaml:"log_mel_only"`
	Power                *bool `yaml:"power"`
	Orthonormal          *bool `yaml:"orthonormal"`
	// Workers is the number of frames processed concurrently, 0 and 1 both
	// run sequentially.
	Workers *int `yaml:"workers"`
}

// Apply copies every field set in f onto m.
func (f *File) Apply(m *mfcc.MFCC) {
	if f.CutoffLow != nil {
		m.CutoffLow = *f.CutoffLow
	}
	if f.CutoffHigh != nil {
		m.CutoffHigh = *f.CutoffHigh
	}
	if f.FilterCount != nil {
		m.FilterCount = *f.FilterCount
	}
	if f.OversamplingFactor != nil {
		m.OversamplingFactor = *f.OversamplingFactor
	}
	if f.ResolutionDurationMs != nil {
		m.ResolutionDuration = *f.ResolutionDurationMs
	}
	if f.BinMinimumSize != nil {
		m.BinMinimumSize = *f.BinMinimumSize
	}
	if f.LogMelOnly != nil {
		m.LogMelOnly = *f.LogMelOnly
	}
	if f.Power != nil {
		m.Power = *f.Power
	}
	if f.Orthonormal != nil {
		m.Orthonormal = *f.Orthonormal
	}
	if f.Workers != nil {
		m.Workers = *f.Workers
	}
}
