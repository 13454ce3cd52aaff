// Package audio decodes audio files into mono sample buffers.
//
// Every decoder mixes multi-channel audio down to mono by averaging the
// channels of each frame, and normalizes integer PCM to [-1, 1). Supported
// formats:
//   - WAV via github.com/faiface/beep/wav
//   - FLAC via github.com/mewkiz/flac
//   - MP3 via github.com/hajimehoshi/go-mp3
//   - Ogg Vorbis via github.com/jfreymuth/oggvorbis
//   - AIFF via github.com/go-audio/aiff
//
// Load picks the decoder from the file extension:
//
//	buf, err := audio.Load("speech.flac")
//	if err != nil {
//	    return err
//	}
//	features, err := mfcc.NewMFCC().ToMFCC(buf.Samples, buf.SampleRate)
package audio
