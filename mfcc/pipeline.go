package mfcc

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"
)

// Consumer receives the feature vector of frame index. The vector is owned by
// the consumer. A non-nil error aborts the run and is returned by Run.
type Consumer func(index int, features []float64) error

// Pipeline holds everything derived from an MFCC configuration and a sample
// rate: frame geometry, window, filter bank and cosine transform. It is
// read-only after construction, so Run may be called concurrently.
type Pipeline struct {
	sampleRate int
	binSize    int

	framer *Framer
	window *Window
	bank   *FilterBank
	dct    *DCT

	logMelOnly bool
	power      bool
	workers    int

	logger *slog.Logger
}

// NewPipeline validates m against sampleRate and builds a pipeline. A nil m
// uses the defaults of NewMFCC.
func NewPipeline(sampleRate int, m *MFCC) (*Pipeline, error) {
	if m == nil {
		m = NewMFCC()
	}
	if err := m.Validate(sampleRate); err != nil {
		return nil, err
	}

	binSize := BinSize(sampleRate, m.ResolutionDuration, m.BinMinimumSize)
	frameLength := 2 * binSize

	framer, err := NewFramer(frameLength, frameLength/m.OversamplingFactor)
	if err != nil {
		return nil, err
	}
	window, err := NewWindow(frameLength)
	if err != nil {
		return nil, err
	}
	bank, err := NewFilterBank(sampleRate, frameLength, m.FilterCount, m.CutoffLow, m.CutoffHigh)
	if err != nil {
		return nil, err
	}

	var dct *DCT
	if m.Orthonormal {
		dct, err = NewOrthoDCT(m.FilterCount)
	} else {
		dct, err = NewDCT(m.FilterCount)
	}
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		sampleRate: sampleRate,
		binSize:    binSize,
		framer:     framer,
		window:     window,
		bank:       bank,
		dct:        dct,
		logMelOnly: m.LogMelOnly,
		power:      m.Power,
		workers:    max(m.Workers, 1),
		logger:     m.logger(),
	}

	p.logger.Debug("mfcc pipeline ready",
		slog.Int("sample_rate", sampleRate),
		slog.Int("bin_size", binSize),
		slog.Int("frame_length", frameLength),
		slog.Int("stride", framer.Stride()),
		slog.Int("filters", m.FilterCount),
		slog.Float64("cutoff_low", m.CutoffLow),
		slog.Float64("cutoff_high", m.CutoffHigh),
		slog.Int("workers", p.workers))

	return p, nil
}

func (p *Pipeline) SampleRate() int         { return p.sampleRate }
func (p *Pipeline) BinSize() int            { return p.binSize }
func (p *Pipeline) FrameLength() int        { return p.framer.Len() }
func (p *Pipeline) Stride() int             { return p.framer.Stride() }
func (p *Pipeline) FilterBank() *FilterBank { return p.bank }

// NumFrames returns the number of feature vectors Run emits for n samples.
func (p *Pipeline) NumFrames(n int) int { return p.framer.NumFrames(n) }

// Run pads buf, then computes and emits the feature vector of every frame in
// index order. Cancelling ctx stops the run between frames. Once Run returns
// an error no further vectors are emitted.
func (p *Pipeline) Run(ctx context.Context, buf []float64, consume Consumer) error {
	padded, n, err := p.framer.Pad(buf)
	if err != nil {
		return fmt.Errorf("mfcc: %dHz, frame length %d: %w", p.sampleRate, p.framer.Len(), err)
	}

	p.logger.Debug("mfcc run",
		slog.Int("samples", len(buf)),
		slog.Int("padded", len(padded)),
		slog.Int("frames", n))

	if p.workers > 1 {
		return p.runParallel(ctx, padded, n, consume)
	}

	s := p.newScratch()
	for i := range n {
		if err := ctx.Err(); err != nil {
			return &FrameError{Index: i, Err: err}
		}
		vec, err := p.process(s, padded, i)
		if err != nil {
			return &FrameError{Index: i, Err: err}
		}
		if err := consume(i, vec); err != nil {
			return &FrameError{Index: i, Err: err}
		}
	}
	return nil
}

// runParallel computes frames in batches of p.workers and emits each batch
// in index order before starting the next one.
func (p *Pipeline) runParallel(ctx context.Context, padded []float64, n int, consume Consumer) error {
	scratch := make([]*scratch, p.workers)
	for w := range scratch {
		scratch[w] = p.newScratch()
	}
	batch := make([][]float64, p.workers)

	for start := 0; start < n; start += p.workers {
		if err := ctx.Err(); err != nil {
			return &FrameError{Index: start, Err: err}
		}
		end := min(start+p.workers, n)

		var g errgroup.Group
		for i := start; i < end; i++ {
			slot := i - start
			g.Go(func() error {
				vec, err := p.process(scratch[slot], padded, i)
				if err != nil {
					return &FrameError{Index: i, Err: err}
				}
				batch[slot] = vec
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return &FrameError{Index: i, Err: err}
			}
			vec := batch[i-start]
			batch[i-start] = nil
			if err := consume(i, vec); err != nil {
				return &FrameError{Index: i, Err: err}
			}
		}
	}
	return nil
}

// scratch holds the per-frame intermediates of one worker.
type scratch struct {
	windowed []float64
	spectrum []float64
	energies []float64
}

func (p *Pipeline) newScratch() *scratch {
	return &scratch{
		windowed: make([]float64, p.framer.Len()),
		spectrum: make([]float64, p.bank.Bins()),
		energies: make([]float64, p.bank.Len()),
	}
}

// process computes the feature vector of frame i into a fresh slice.
func (p *Pipeline) process(s *scratch, padded []float64, i int) ([]float64, error) {
	s.windowed = p.window.Apply(s.windowed, p.framer.Frame(padded, i))

	var err error
	s.spectrum, err = MagnitudeSpectrum(s.spectrum, s.windowed)
	if err != nil {
		return nil, err
	}
	if p.power {
		square(s.spectrum)
	}

	if p.logMelOnly {
		return p.bank.Apply(nil, s.spectrum), nil
	}

	s.energies = p.bank.Apply(s.energies, s.spectrum)
	if silent(s.energies) {
		vec := make([]float64, len(s.energies))
		copy(vec, s.energies)
		return vec, nil
	}
	return p.dct.Transform(nil, s.energies)
}

// silent reports whether every band is empty. The cosine transform of such a
// frame is NaN, so it is emitted as all -Inf instead.
func silent(energies []float64) bool {
	for _, e := range energies {
		if !math.IsInf(e, -1) {
			return false
		}
	}
	return true
}
