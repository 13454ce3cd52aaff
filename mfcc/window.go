package mfcc

import (
	"fmt"

	"github.com/mjibson/go-dsp/window"
)

// Window tapers frames with a Hann window, w(j, L) = sin(pi*j/(L-1))^2.
type Window struct {
	coeffs []float64
}

// NewWindow precomputes the coefficients of a window of length samples.
func NewWindow(length int) (*Window, error) {
	if length <= 1 {
		return nil, fmt.Errorf("%w: window of %d samples", ErrInvalidFrameLength, length)
	}
	// 0.5*(1-cos(2*pi*j/(L-1))) is the same curve as the squared sine
	return &Window{coeffs: window.Hann(length)}, nil
}

func (w *Window) Len() int { return len(w.coeffs) }

func (w *Window) Coefficient(j int) float64 { return w.coeffs[j] }

// Apply writes the windowed frame into dst, growing it when needed, and
// returns it. frame must hold Len() samples and is left untouched.
func (w *Window) Apply(dst, frame []float64) []float64 {
	dst = resize(dst, len(w.coeffs))
	for j, c := range w.coeffs {
		dst[j] = frame[j] * c
	}
	return dst
}

func resize(dst []float64, n int) []float64 {
	if cap(dst) < n {
		return make([]float64, n)
	}
	return dst[:n]
}
