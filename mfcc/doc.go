// Package mfcc provides mel-frequency cepstral coefficient extraction.
//
// This package converts a mono audio waveform into a sequence of per-frame
// feature vectors, which are commonly used in speech and speaker analysis. It supports:
//   - Zero padded framing with a configurable overlap (oversampling factor)
//   - Hann windowing and FFT based magnitude spectra
//   - Triangular mel filter banks between configurable cutoff frequencies
//   - Log compression followed by a type-II discrete cosine transform
//   - Sequential or order preserving parallel frame processing
//
// Feature vectors are handed to a caller supplied Consumer, one per frame and
// in frame order.
package mfcc
