package mfcc

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// DCT is a type-II discrete cosine transform of a fixed size.
//
// The unscaled form matches FFTW's REDFT10:
//
//	X[k] = 2 * sum_{n=0}^{N-1} x[n] * cos(pi*(2n+1)*k / 2N)
//
// It is evaluated with a single N-point FFT of the even/odd reordered input.
// An input holding an infinity is summed directly instead, because the FFT
// would smear it into NaN across every coefficient.
type DCT struct {
	twiddle []complex128
	scale0  float64
	scale   float64
}

// NewDCT creates an unscaled transform of n points.
func NewDCT(n int) (*DCT, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: dct size %d must be at least 1", ErrInvalidConfig, n)
	}
	d := &DCT{
		twiddle: make([]complex128, n),
		scale0:  1,
		scale:   1,
	}
	for k := range d.twiddle {
		d.twiddle[k] = cmplx.Exp(complex(0, -math.Pi*float64(k)/float64(2*n)))
	}
	return d, nil
}

// NewOrthoDCT creates an orthonormal transform of n points.
func NewOrthoDCT(n int) (*DCT, error) {
	d, err := NewDCT(n)
	if err != nil {
		return nil, err
	}
	d.scale0 = math.Sqrt(1 / float64(4*n))
	d.scale = math.Sqrt(1 / float64(2*n))
	return d, nil
}

func (d *DCT) Len() int { return len(d.twiddle) }

// Transform writes the coefficients of src into dst and returns it.
func (d *DCT) Transform(dst, src []float64) (coeffs []float64, err error) {
	n := len(d.twiddle)
	if len(src) != n {
		return nil, fmt.Errorf("%w: dct of size %d given %d values", ErrInvalidFrameLength, n, len(src))
	}

	defer func() {
		if r := recover(); r != nil {
			coeffs, err = nil, fmt.Errorf("%w: dct of %d values: %v", ErrTransform, n, r)
		}
	}()

	coeffs = resize(dst, n)
	if infinite(src) {
		d.direct(coeffs, src)
		return coeffs, nil
	}

	// even samples ascending, then odd samples descending
	v := make([]complex128, n)
	for i, x := range src {
		if i%2 == 0 {
			v[i/2] = complex(x, 0)
		} else {
			v[n-1-i/2] = complex(x, 0)
		}
	}
	spectrum := fft.FFT(v)

	for k := range coeffs {
		coeffs[k] = d.scaled(k, 2*real(spectrum[k]*d.twiddle[k]))
	}
	return coeffs, nil
}

// direct evaluates the defining sum. Terms whose cosine is exactly zero are
// skipped, so an infinite sample at such a position contributes nothing.
func (d *DCT) direct(dst, src []float64) {
	n := len(src)
	for k := range dst {
		var sum float64
		for i, x := range src {
			if (2*i+1)*k%(2*n) == n {
				continue
			}
			sum += x * math.Cos(math.Pi*float64((2*i+1)*k)/float64(2*n))
		}
		dst[k] = d.scaled(k, 2*sum)
	}
}

func (d *DCT) scaled(k int, c float64) float64 {
	if k == 0 {
		return c * d.scale0
	}
	return c * d.scale
}

func infinite(src []float64) bool {
	for _, x := range src {
		if math.IsInf(x, 0) {
			return true
		}
	}
	return false
}
