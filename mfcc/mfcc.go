package mfcc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/bits"
)

// MFCC represents the configuration for extracting cepstral features.
type MFCC struct {
	CutoffLow   float64
	CutoffHigh  float64
	FilterCount int

	// OversamplingFactor is the ratio of frame length to frame stride, >= 2
	OversamplingFactor int

	// ResolutionDuration is the expected window duration in milliseconds.
	// The effective duration also depends on the sample rate, since the bin
	// size is rounded up to a power of two and floored to BinMinimumSize.
	ResolutionDuration int
	BinMinimumSize     int

	// LogMelOnly skips the cosine transform and emits log mel energies
	LogMelOnly bool
	// Power squares the magnitude spectrum before the filter bank
	Power bool
	// Orthonormal scales the cosine transform to be orthonormal
	Orthonormal bool

	// Workers > 1 computes frames concurrently, emission order is unchanged
	Workers int

	Logger *slog.Logger
}

// NewMFCC creates a new MFCC instance with default values.
func NewMFCC() *MFCC {
	return &MFCC{
		CutoffLow:          300,
		CutoffHigh:         8000,
		FilterCount:        26,
		OversamplingFactor: 8,
		ResolutionDuration: 20,
		BinMinimumSize:     512,
		Workers:            1,
	}
}

// BinSize returns the next power of two holding resolutionDuration
// milliseconds of audio, floored to binMinimumSize.
func BinSize(sampleRate, resolutionDuration, binMinimumSize int) int {
	ws := sampleRate * resolutionDuration / 1000

	n := 1
	if ws > 1 {
		n = 1 << bits.Len(uint(ws-1))
	}
	if n < binMinimumSize {
		return binMinimumSize
	}
	return n
}

// Validate checks the configuration against a sample rate. It returns a
// joined error listing every violated rule, each wrapping ErrInvalidConfig.
func (m *MFCC) Validate(sampleRate int) error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if sampleRate <= 0 {
		invalid("sample rate %d must be positive", sampleRate)
	}
	if m.FilterCount < 1 {
		invalid("filter count %d must be at least 1", m.FilterCount)
	}
	if m.OversamplingFactor < 2 {
		invalid("oversampling factor %d must be at least 2", m.OversamplingFactor)
	}
	if m.ResolutionDuration < 1 {
		invalid("resolution duration %dms must be at least 1ms", m.ResolutionDuration)
	}
	if m.BinMinimumSize < 1 {
		invalid("bin minimum size %d must be at least 1", m.BinMinimumSize)
	}
	if m.Workers < 0 {
		invalid("workers %d must not be negative", m.Workers)
	}
	if m.CutoffLow < 0 {
		invalid("cutoff low %gHz must not be negative", m.CutoffLow)
	}
	if m.CutoffLow >= m.CutoffHigh {
		invalid("cutoff low %gHz must be below cutoff high %gHz", m.CutoffLow, m.CutoffHigh)
	}
	if sampleRate > 0 && m.CutoffHigh > float64(sampleRate)/2 {
		invalid("cutoff high %gHz is above the nyquist frequency %gHz", m.CutoffHigh, float64(sampleRate)/2)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	frameLength := 2 * BinSize(sampleRate, m.ResolutionDuration, m.BinMinimumSize)
	if frameLength/m.OversamplingFactor < 1 {
		invalid("oversampling factor %d leaves no stride for frame length %d", m.OversamplingFactor, frameLength)
	}
	return errors.Join(errs...)
}

// Run extracts the features of a mono buffer and hands them to consume, one
// frame at a time and in frame order.
func (m *MFCC) Run(ctx context.Context, buf []float64, sampleRate int, consume Consumer) error {
	p, err := NewPipeline(sampleRate, m)
	if err != nil {
		return err
	}
	return p.Run(ctx, buf, consume)
}

// ToMFCC extracts the features of a mono buffer and returns them all.
func (m *MFCC) ToMFCC(buf []float64, sampleRate int) ([][]float64, error) {
	var features [][]float64
	err := m.Run(context.Background(), buf, sampleRate, func(_ int, vec []float64) error {
		features = append(features, vec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return features, nil
}

func (m *MFCC) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.New(slog.DiscardHandler)
}
