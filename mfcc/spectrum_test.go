package mfcc

import (
	"errors"
	"math"
	"testing"

	"github.com/neurlang/gomfcc/internal/audiotest"
	"gonum.org/v1/gonum/dsp/fourier"
)

func TestMagnitudeSpectrumSilence(t *testing.T) {
	t.Parallel()

	for _, length := range []int{1, 2, 7, 64, 2048} {
		got, err := MagnitudeSpectrum(nil, audiotest.Silence(length))
		if err != nil {
			t.Fatalf("MagnitudeSpectrum(%d zeros) error = %v", length, err)
		}
		if len(got) != length/2+1 {
			t.Fatalf("MagnitudeSpectrum(%d zeros) bins = %d, want %d", length, len(got), length/2+1)
		}
		for k, v := range got {
			if v != 0 {
				t.Errorf("L=%d: bin %d = %v, want 0", length, k, v)
			}
		}
	}
}

func TestMagnitudeSpectrumImpulseIsFlat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		length   int
		position int
	}{
		{name: "impulse at start", length: 64, position: 0},
		{name: "impulse in the middle", length: 64, position: 17},
		{name: "impulse at end", length: 64, position: 63},
		{name: "frame length 2048", length: 2048, position: 1000},
		{name: "odd length", length: 45, position: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := MagnitudeSpectrum(nil, audiotest.Impulse(tt.length, tt.position))
			if err != nil {
				t.Fatalf("MagnitudeSpectrum() error = %v", err)
			}
			for k, v := range got {
				if math.Abs(v-1) > 1e-9 {
					t.Errorf("bin %d = %v, want 1", k, v)
				}
			}
		})
	}
}

func TestMagnitudeSpectrumSinePeak(t *testing.T) {
	t.Parallel()

	// 64 samples holding exactly 8 periods put all energy in bin 8
	const length = 64
	frame := make([]float64, length)
	for i := range frame {
		frame[i] = math.Cos(2 * math.Pi * 8 * float64(i) / length)
	}

	got, err := MagnitudeSpectrum(nil, frame)
	if err != nil {
		t.Fatalf("MagnitudeSpectrum() error = %v", err)
	}
	for k, v := range got {
		want := 0.0
		if k == 8 {
			want = length / 2
		}
		if math.Abs(v-want) > 1e-9 {
			t.Errorf("bin %d = %v, want %v", k, v, want)
		}
	}
}

func TestMagnitudeSpectrumReusesDst(t *testing.T) {
	t.Parallel()

	dst := make([]float64, 33)
	got, err := MagnitudeSpectrum(dst, audiotest.Impulse(64, 0))
	if err != nil {
		t.Fatalf("MagnitudeSpectrum() error = %v", err)
	}
	if &got[0] != &dst[0] {
		t.Error("MagnitudeSpectrum() did not write into dst")
	}
}

func TestMagnitudeSpectrumEmpty(t *testing.T) {
	t.Parallel()

	if _, err := MagnitudeSpectrum(nil, nil); !errors.Is(err, ErrInvalidFrameLength) {
		t.Errorf("MagnitudeSpectrum(nil) error = %v, want ErrInvalidFrameLength", err)
	}
}

func BenchmarkMagnitudeSpectrum(b *testing.B) {
	frame := audiotest.Sine(44100, 2048, 440)
	dst := make([]float64, 1025)

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		dst, _ = MagnitudeSpectrum(dst, frame)
	}
}

func TestMagnitudeSpectrumMatchesGonum(t *testing.T) {
	t.Parallel()

	for _, length := range []int{8, 30, 512, 2048} {
		frame := audiotest.Sine(16000, length, 1234)
		for i := range frame {
			frame[i] += 0.25 * math.Cos(float64(i)*0.9)
		}

		got, err := MagnitudeSpectrum(nil, frame)
		if err != nil {
			t.Fatalf("MagnitudeSpectrum(%d) error = %v", length, err)
		}
		want := fourier.NewFFT(length).Coefficients(nil, frame)
		if len(got) != len(want) {
			t.Fatalf("L=%d: %d bins, gonum has %d", length, len(got), len(want))
		}
		for k := range want {
			w := math.Hypot(real(want[k]), imag(want[k]))
			if math.Abs(got[k]-w) > 1e-9*math.Max(1, w) {
				t.Errorf("L=%d: bin %d = %v, gonum says %v", length, k, got[k], w)
			}
		}
	}
}
