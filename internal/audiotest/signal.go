// Package audiotest generates deterministic mono signals for tests.
package audiotest

import "math"

// Silence returns n zero samples.
func Silence(n int) []float64 {
	return make([]float64, n)
}

// Constant returns n samples of value.
func Constant(n int, value float64) []float64 {
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = value
	}
	return buf
}

// Impulse returns n zero samples except for a 1 at position.
func Impulse(n, position int) []float64 {
	buf := make([]float64, n)
	buf[position] = 1
	return buf
}

// Sine returns n samples of a unit amplitude sine wave at frequency Hz.
func Sine(sampleRate, n int, frequency float64) []float64 {
	buf := make([]float64, n)
	for i := range buf {
		t := float64(i) / float64(sampleRate)
		buf[i] = math.Sin(2 * math.Pi * frequency * t)
	}
	return buf
}

// Ramp returns n samples rising linearly from 0 towards 1, useful for
// checking that sample order is preserved.
func Ramp(n int) []float64 {
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = float64(i) / float64(n)
	}
	return buf
}

// Interleave interleaves equally long channels into one buffer.
func Interleave(channels ...[]float64) []float64 {
	if len(channels) == 0 {
		return nil
	}
	frames := len(channels[0])
	out := make([]float64, 0, frames*len(channels))
	for f := range frames {
		for _, ch := range channels {
			out = append(out, ch[f])
		}
	}
	return out
}
