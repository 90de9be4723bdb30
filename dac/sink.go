// SPDX-License-Identifier: EPL-2.0

package dac

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/binp-dev/waveplay/audio"
	"github.com/google/uuid"
)

// DefaultMaxChunkLen is the waveform buffer size of the DAC, in points.
const DefaultMaxChunkLen = 10000

// Progress describes one delivered chunk.
type Progress struct {
	Index int // zero-based position in the stream
	Len   int // number of points written
}

// Stats summarizes a Play run.
type Stats struct {
	Chunks  int
	Samples int
}

// Sink delivers a chunk stream to a Device, one chunk per readiness signal.
type Sink struct {
	dev         Device
	cyclic      bool
	maxChunkLen int
	logger      *slog.Logger
	progress    func(Progress)
}

// Option configures a Sink.
type Option func(*Sink)

// WithCyclic sets the playback mode written to the device before streaming.
func WithCyclic(cyclic bool) Option {
	return func(s *Sink) { s.cyclic = cyclic }
}

// WithMaxChunkLen sets the device buffer size. Longer chunks are rejected.
func WithMaxChunkLen(n int) Option {
	return func(s *Sink) { s.maxChunkLen = n }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) { s.logger = logger }
}

// WithProgress registers a callback invoked after every successful write.
func WithProgress(fn func(Progress)) Option {
	return func(s *Sink) { s.progress = fn }
}

// NewSink returns a sink writing to dev, in non-cyclic mode with chunks of at
// most DefaultMaxChunkLen points unless opts say otherwise.
func NewSink(dev Device, opts ...Option) *Sink {
	s := &Sink{
		dev:         dev,
		maxChunkLen: DefaultMaxChunkLen,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("sink", uuid.New())
	return s
}

// Play sets the playback mode, then writes every chunk from chunks in order,
// each one only after a fresh readiness signal. It returns when the stream is
// exhausted, or on the first error. Failed device operations are not retried
// and chunks already written are not rolled back.
func (s *Sink) Play(ctx context.Context, chunks audio.ChunkReader) (Stats, error) {
	var stats Stats

	if err := s.dev.SetCyclic(ctx, s.cyclic); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrSetMode, err)
	}
	s.logger.Debug("playback mode set", "cyclic", s.cyclic)

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ready, err := s.dev.Ready(subCtx)
	if err != nil {
		return stats, fmt.Errorf("%w: %w", ErrSubscribe, err)
	}
	monitor := NewReadyMonitor(ready)

	for i := 0; ; i++ {
		chunk, err := chunks.NextChunk()
		if errors.Is(err, io.EOF) {
			s.logger.Info("waveform stream finished", "chunks", stats.Chunks, "samples", stats.Samples)
			return stats, nil
		}
		if err != nil {
			return stats, fmt.Errorf("reading chunk %d: %w", i, err)
		}

		if len(chunk) == 0 {
			return stats, fmt.Errorf("chunk %d: %w", i, ErrEmptyChunk)
		}
		if len(chunk) > s.maxChunkLen {
			return stats, fmt.Errorf("chunk %d has %d points, limit %d: %w", i, len(chunk), s.maxChunkLen, ErrChunkTooLong)
		}

		if err := monitor.Wait(ctx); err != nil {
			return stats, fmt.Errorf("waiting for readiness before chunk %d: %w", i, err)
		}

		s.logger.Info("sending waveform", "index", i, "points", len(chunk))
		if err := s.dev.Write(ctx, chunk); err != nil {
			return stats, fmt.Errorf("chunk %d: %w: %w", i, ErrWrite, err)
		}

		stats.Chunks++
		stats.Samples += len(chunk)
		if s.progress != nil {
			s.progress(Progress{Index: i, Len: len(chunk)})
		}
	}
}
