package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrFileNotLoaded     = errors.New("audio file not loaded")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrInvalidChannels   = errors.New("invalid channel layout")
)

// Buffer is decoded mono audio.
type Buffer struct {
	Samples    []float64
	SampleRate int
	// Channels is the channel count of the source before mixdown
	Channels int
}

// Duration returns the length of the buffer in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// Load decodes the audio file at path into a mono buffer, choosing the
// decoder from the file extension.
func Load(path string) (*Buffer, error) {
	ext := strings.ToLower(filepath.Ext(path))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open %q: %w", path, err)
	}
	defer f.Close()

	var b *Buffer
	switch ext {
	case ".wav", ".wave":
		b, err = DecodeWav(f)
	case ".flac":
		b, err = DecodeFlac(f)
	case ".mp3":
		b, err = DecodeMP3(f)
	case ".ogg", ".oga":
		b, err = DecodeVorbis(f)
	case ".aif", ".aiff":
		b, err = DecodeAIFF(f)
	default:
		return nil, fmt.Errorf("audio: %q: %w %q", path, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("audio: decode %q: %w", path, err)
	}
	if len(b.Samples) == 0 || b.SampleRate <= 0 {
		return nil, fmt.Errorf("audio: %q: %w", path, ErrFileNotLoaded)
	}
	return b, nil
}

// MixDown averages the channels of every frame of interleaved samples.
func MixDown(interleaved []float64, channels int) ([]float64, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidChannels, channels)
	}
	if len(interleaved)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples do not split into %d channels", ErrInvalidChannels, len(interleaved), channels)
	}
	if channels == 1 {
		return interleaved, nil
	}

	mono := make([]float64, len(interleaved)/channels)
	for i := range mono {
		var sum float64
		for _, v := range interleaved[i*channels : (i+1)*channels] {
			sum += v
		}
		mono[i] = sum / float64(channels)
	}
	return mono, nil
}

// newBuffer mixes interleaved samples down into a Buffer.
func newBuffer(interleaved []float64, channels, sampleRate int) (*Buffer, error) {
	mono, err := MixDown(interleaved, channels)
	if err != nil {
		return nil, err
	}
	return &Buffer{Samples: mono, SampleRate: sampleRate, Channels: channels}, nil
}
