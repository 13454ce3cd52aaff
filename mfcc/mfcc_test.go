package mfcc

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestNewMFCCDefaults(t *testing.T) {
	is := is.New(t)

	m := NewMFCC()
	is.Equal(m.CutoffLow, 300.0)         // default low cutoff
	is.Equal(m.CutoffHigh, 8000.0)       // default high cutoff
	is.Equal(m.FilterCount, 26)          // default filter count
	is.Equal(m.OversamplingFactor, 8)    // default oversampling
	is.Equal(m.ResolutionDuration, 20)   // default resolution in ms
	is.Equal(m.BinMinimumSize, 512)      // default bin floor
	is.Equal(m.Workers, 1)               // sequential by default
	is.True(!m.LogMelOnly && !m.Power)   // cepstra of the magnitude spectrum by default
	is.NoErr(m.Validate(44100))          // defaults are valid at 44.1kHz
	is.NoErr(m.Validate(16000))          // and at 16kHz
	is.True(m.Validate(8000) != nil)     // but not at 8kHz, 8000Hz is above nyquist
}

func TestBinSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sampleRate int
		duration   int
		minimum    int
		want       int
	}{
		{sampleRate: 44100, duration: 20, minimum: 512, want: 1024},
		{sampleRate: 48000, duration: 20, minimum: 512, want: 1024},
		{sampleRate: 16000, duration: 20, minimum: 512, want: 512},
		{sampleRate: 8000, duration: 20, minimum: 512, want: 512},
		{sampleRate: 51200, duration: 20, minimum: 512, want: 1024},
		{sampleRate: 51250, duration: 20, minimum: 512, want: 2048},
		{sampleRate: 44100, duration: 100, minimum: 512, want: 8192},
		{sampleRate: 16000, duration: 20, minimum: 1, want: 512},
		{sampleRate: 1000, duration: 1, minimum: 1, want: 1},
		{sampleRate: 100, duration: 1, minimum: 4, want: 4},
	}
	for _, tt := range tests {
		if got := BinSize(tt.sampleRate, tt.duration, tt.minimum); got != tt.want {
			t.Errorf("BinSize(%d, %d, %d) = %d, want %d", tt.sampleRate, tt.duration, tt.minimum, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate int
		modify     func(m *MFCC)
		wantMsg    []string
	}{
		{name: "zero sample rate", sampleRate: 0, modify: func(m *MFCC) {}, wantMsg: []string{"sample rate 0"}},
		{name: "no filters", sampleRate: 44100, modify: func(m *MFCC) { m.FilterCount = 0 }, wantMsg: []string{"filter count 0"}},
		{name: "oversampling of one", sampleRate: 44100, modify: func(m *MFCC) { m.OversamplingFactor = 1 }, wantMsg: []string{"oversampling factor 1"}},
		{name: "zero duration", sampleRate: 44100, modify: func(m *MFCC) { m.ResolutionDuration = 0 }, wantMsg: []string{"resolution duration 0ms"}},
		{name: "zero bin minimum", sampleRate: 44100, modify: func(m *MFCC) { m.BinMinimumSize = 0 }, wantMsg: []string{"bin minimum size 0"}},
		{name: "negative workers", sampleRate: 44100, modify: func(m *MFCC) { m.Workers = -2 }, wantMsg: []string{"workers -2"}},
		{name: "inverted cutoffs", sampleRate: 44100, modify: func(m *MFCC) { m.CutoffLow = 9000 }, wantMsg: []string{"must be below cutoff high"}},
		{name: "above nyquist", sampleRate: 11025, modify: func(m *MFCC) {}, wantMsg: []string{"above the nyquist"}},
		{name: "oversampling beyond frame", sampleRate: 1000, modify: func(m *MFCC) {
			m.BinMinimumSize = 1
			m.ResolutionDuration = 1
			m.CutoffLow, m.CutoffHigh = 10, 400
			m.OversamplingFactor = 4
		}, wantMsg: []string{"leaves no stride"}},
		{name: "several problems", sampleRate: 44100, modify: func(m *MFCC) {
			m.FilterCount = -1
			m.OversamplingFactor = 0
			m.CutoffLow = -5
		}, wantMsg: []string{"filter count -1", "oversampling factor 0", "cutoff low -5Hz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewMFCC()
			tt.modify(m)
			err := m.Validate(tt.sampleRate)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
			}
			for _, msg := range tt.wantMsg {
				if !strings.Contains(err.Error(), msg) {
					t.Errorf("Validate() error = %q, want it to mention %q", err, msg)
				}
			}
		})
	}
}

func TestFrameError(t *testing.T) {
	is := is.New(t)

	err := error(&FrameError{Index: 7, Err: ErrTransform})
	is.Equal(err.Error(), "frame 7: transform failed") // message carries the frame index
	is.True(errors.Is(err, ErrTransform))              // unwraps to the sentinel

	var fe *FrameError
	is.True(errors.As(err, &fe))
	is.Equal(fe.Index, 7)
}
