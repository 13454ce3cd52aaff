package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
)

// DecodeFlac decodes a FLAC stream into a mono buffer.
func DecodeFlac(r io.Reader) (*Buffer, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("flac: %w", err)
	}
	defer stream.Close()

	bps := stream.Info.BitsPerSample
	if bps < 4 || bps > 32 {
		return nil, fmt.Errorf("flac: %w: %d bits per sample", ErrUnsupportedFormat, bps)
	}
	scale := float64(int64(1) << (bps - 1))

	var interleaved []float64
	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flac: %w", err)
		}
		for i := range frame.Subframes[0].Samples {
			for _, sub := range frame.Subframes {
				interleaved = append(interleaved, float64(sub.Samples[i])/scale)
			}
		}
	}

	return newBuffer(interleaved, int(stream.Info.NChannels), int(stream.Info.SampleRate))
}
