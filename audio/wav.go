package audio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/faiface/beep"
	beepwav "github.com/faiface/beep/wav"
	"github.com/go-audio/wav"
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// DecodeWav decodes a PCM WAV stream into a mono buffer. go-audio needs to
// seek, so a reader that cannot is read into memory first.
func DecodeWav(r io.Reader) (*Buffer, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("wav: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("wav: %w: not a wav file", ErrUnsupportedFormat)
	}
	if dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("wav: %w: audio format %#x", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	interleaved, err := pcmToFloat(pcm.Data, int(dec.BitDepth))
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	return newBuffer(interleaved, int(dec.NumChans), int(dec.SampleRate))
}

// EncodeWav writes b as a mono 16-bit PCM WAV stream.
func EncodeWav(w io.WriteSeeker, b *Buffer) error {
	pos := 0
	streamer := beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= len(b.Samples) {
			return 0, false
		}
		for n < len(samples) && pos < len(b.Samples) {
			samples[n] = [2]float64{b.Samples[pos], b.Samples[pos]}
			n++
			pos++
		}
		return n, true
	})

	format := beep.Format{
		SampleRate:  beep.SampleRate(b.SampleRate),
		NumChannels: 1,
		Precision:   2,
	}
	if err := beepwav.Encode(w, streamer, format); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	return nil
}

// pcmToFloat normalizes integer PCM of the given bit depth to [-1, 1).
// 8-bit PCM is unsigned, wider depths are signed.
func pcmToFloat(data []int, bitDepth int) ([]float64, error) {
	if bitDepth < 8 || bitDepth > 32 {
		return nil, fmt.Errorf("%w: %d bit samples", ErrUnsupportedFormat, bitDepth)
	}
	scale := float64(int64(1) << (bitDepth - 1))

	offset := 0
	if bitDepth == 8 {
		offset = 128
	}

	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v-offset) / scale
	}
	return out, nil
}
