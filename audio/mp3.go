package audio

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// DecodeMP3 decodes an MP3 stream into a mono buffer. go-mp3 always
// produces 16-bit little-endian stereo.
func DecodeMP3(r io.Reader) (*Buffer, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	// drop a trailing partial stereo frame
	samples := len(pcm) / 2
	interleaved := make([]float64, samples-samples%2)
	for i := range interleaved {
		interleaved[i] = float64(int16(binary.LittleEndian.Uint16(pcm[2*i:]))) / 32768
	}

	return newBuffer(interleaved, 2, dec.SampleRate())
}
