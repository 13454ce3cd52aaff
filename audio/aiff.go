package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
)

// DecodeAIFF decodes an AIFF stream into a mono buffer. go-audio needs to
// seek, so a reader that cannot is read into memory first.
func DecodeAIFF(r io.Reader) (*Buffer, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("aiff: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("aiff: %w: not an aiff file", ErrUnsupportedFormat)
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil {
		return nil, fmt.Errorf("aiff: %w: missing format", ErrUnsupportedFormat)
	}
	if dec.BitDepth < 8 || dec.BitDepth > 32 {
		return nil, fmt.Errorf("aiff: %w: %d bit samples", ErrUnsupportedFormat, dec.BitDepth)
	}
	scale := float64(int64(1) << (dec.BitDepth - 1))

	var interleaved []float64
	buf := &goaudio.IntBuffer{Data: make([]int, 4096), Format: format}
	for {
		n, err := dec.PCMBuffer(buf)
		for _, v := range buf.Data[:n] {
			interleaved = append(interleaved, float64(v)/scale)
		}
		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("aiff: %w", err)
		}
	}

	return newBuffer(interleaved, format.NumChannels, format.SampleRate)
}
