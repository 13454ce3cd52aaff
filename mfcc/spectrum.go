package mfcc

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// MagnitudeSpectrum writes the magnitude of each non-negative frequency bin
// of a real frame into dst and returns it. The result holds len(frame)/2+1
// bins; the remaining bins mirror them for real input.
func MagnitudeSpectrum(dst, frame []float64) (spectrum []float64, err error) {
	if len(frame) == 0 {
		return nil, fmt.Errorf("%w: empty frame", ErrInvalidFrameLength)
	}

	defer func() {
		if r := recover(); r != nil {
			spectrum, err = nil, fmt.Errorf("%w: fft of %d samples: %v", ErrTransform, len(frame), r)
		}
	}()

	coeffs := fft.FFTReal(frame)

	spectrum = resize(dst, len(frame)/2+1)
	for k := range spectrum {
		re, im := real(coeffs[k]), imag(coeffs[k])
		spectrum[k] = math.Sqrt(re*re + im*im)
	}
	return spectrum, nil
}

// square turns a magnitude spectrum into a power spectrum in place.
func square(spectrum []float64) {
	for k, v := range spectrum {
		spectrum[k] = v * v
	}
}
