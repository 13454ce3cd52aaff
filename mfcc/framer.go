package mfcc

import (
	"fmt"

	"github.com/r9y9/gossp/stft"
)

// Framer slices a sample buffer into overlapping frames of a fixed length.
// Only the stft frame geometry is used; windowing is left to [Window].
type Framer struct {
	stft *stft.STFT
}

// NewFramer creates a framer producing frameLength samples every stride samples.
func NewFramer(frameLength, stride int) (*Framer, error) {
	if frameLength <= 1 {
		return nil, fmt.Errorf("%w: %d samples", ErrInvalidFrameLength, frameLength)
	}
	if stride < 1 {
		return nil, fmt.Errorf("%w: stride %d must be at least 1", ErrInvalidConfig, stride)
	}
	return &Framer{stft: &stft.STFT{FrameShift: stride, FrameLen: frameLength}}, nil
}

func (f *Framer) Len() int    { return f.stft.FrameLen }
func (f *Framer) Stride() int { return f.stft.FrameShift }

// Pad returns a copy of buf with trailing zeros appended so that the samples
// past the first frame divide evenly into strides, and the number of frames
// the padded copy holds. buf itself is never modified.
func (f *Framer) Pad(buf []float64) ([]float64, int, error) {
	if len(buf) < f.Len() {
		return nil, 0, fmt.Errorf("%w: have %d samples, need %d", ErrInsufficientData, len(buf), f.Len())
	}

	size := len(buf)
	if odd := (size - f.Len()) % f.Stride(); odd != 0 {
		size += f.Stride() - odd
	}

	padded := make([]float64, size)
	copy(padded, buf)

	return padded, f.stft.NumFrames(padded), nil
}

// NumFrames returns the frame count Pad yields for a buffer of n samples.
func (f *Framer) NumFrames(n int) int {
	if n < f.Len() {
		return 0
	}
	return 1 + (n-f.Len()+f.Stride()-1)/f.Stride()
}

// Frame returns frame i of a padded buffer. It doesn't make a copy.
func (f *Framer) Frame(padded []float64, i int) []float64 {
	return f.stft.FrameAt(padded, i)
}
