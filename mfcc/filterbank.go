package mfcc

import (
	"fmt"
	"math"
)

func hzToMel(value float64) float64 {
	return 1125 * math.Log(1+value/700)
}

func melToHz(value float64) float64 {
	return 700 * (math.Exp(value/1125) - 1)
}

// filter is a triangle over spectrum bins, zero at left and right, one at peak.
type filter struct {
	left, peak, right int
}

// FilterBank projects a spectrum onto triangular filters equally spaced on
// the mel scale and log compresses the band energies. It is immutable and
// may be shared between goroutines.
type FilterBank struct {
	filters     []filter
	frameLength int
}

// NewFilterBank builds filterCount triangular filters between cutoffLow and
// cutoffHigh for frames of frameLength samples at sampleRate.
//
// Construction fails with ErrDegenerateFilter when two neighbouring mel
// points land on the same spectrum bin, which happens when filterCount is too
// large for the frame length and cutoff range.
func NewFilterBank(sampleRate, frameLength, filterCount int, cutoffLow, cutoffHigh float64) (*FilterBank, error) {
	switch {
	case sampleRate <= 0:
		return nil, fmt.Errorf("%w: sample rate %d must be positive", ErrInvalidConfig, sampleRate)
	case frameLength <= 1:
		return nil, fmt.Errorf("%w: %d samples", ErrInvalidFrameLength, frameLength)
	case filterCount < 1:
		return nil, fmt.Errorf("%w: filter count %d must be at least 1", ErrInvalidConfig, filterCount)
	case cutoffLow < 0 || cutoffLow >= cutoffHigh:
		return nil, fmt.Errorf("%w: cutoffs %g-%gHz", ErrInvalidConfig, cutoffLow, cutoffHigh)
	case cutoffHigh > float64(sampleRate)/2:
		return nil, fmt.Errorf("%w: cutoff high %gHz is above the nyquist frequency of %dHz", ErrInvalidConfig, cutoffHigh, sampleRate)
	}

	bin := func(hz float64) int {
		return int(math.Floor(hz * float64(frameLength) / float64(sampleRate)))
	}

	lowMel, highMel := hzToMel(cutoffLow), hzToMel(cutoffHigh)
	step := (highMel - lowMel) / float64(filterCount+1)

	points := make([]int, filterCount+2)
	for i := range points {
		points[i] = bin(melToHz(lowMel + step*float64(i)))
	}
	// pin the outer points to the cutoffs, the mel round trip can lose an ulp
	points[0] = bin(cutoffLow)
	points[len(points)-1] = bin(cutoffHigh)

	filters := make([]filter, filterCount)
	for i := range filters {
		f := filter{left: points[i], peak: points[i+1], right: points[i+2]}
		if f.peak <= f.left || f.right <= f.peak {
			return nil, fmt.Errorf("%w: filter %d of %d spans bins %d/%d/%d (frame length %d at %dHz, cutoffs %g-%gHz)",
				ErrDegenerateFilter, i, filterCount, f.left, f.peak, f.right,
				frameLength, sampleRate, cutoffLow, cutoffHigh)
		}
		filters[i] = f
	}

	return &FilterBank{filters: filters, frameLength: frameLength}, nil
}

func (b *FilterBank) Len() int { return len(b.filters) }

// Bins returns the spectrum length Apply expects.
func (b *FilterBank) Bins() int { return b.frameLength/2 + 1 }

// Boundaries returns the left, peak and right bin of every filter.
func (b *FilterBank) Boundaries() [][3]int {
	out := make([][3]int, len(b.filters))
	for i, f := range b.filters {
		out[i] = [3]int{f.left, f.peak, f.right}
	}
	return out
}

// Apply writes the natural log of every filter's weighted spectrum energy
// into dst and returns it. A band without energy yields -Inf.
//
// The rising edge covers [left, peak) and the falling edge [peak, right), so
// the peak bin is weighted once with 1 and both outer bins with 0.
func (b *FilterBank) Apply(dst, spectrum []float64) []float64 {
	dst = resize(dst, len(b.filters))
	for i, f := range b.filters {
		var energy float64

		width := float64(f.peak - f.left)
		for j := f.left; j < f.peak; j++ {
			energy += spectrum[j] * float64(j-f.left) / width
		}

		width = float64(f.right - f.peak)
		for j := f.peak; j < f.right; j++ {
			energy += spectrum[j] * float64(f.right-j) / width
		}

		dst[i] = math.Log(energy)
	}
	return dst
}
