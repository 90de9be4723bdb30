// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/binp-dev/waveplay/audio"
	"github.com/binp-dev/waveplay/formats/internal/pcm"
	"github.com/jfreymuth/oggvorbis"
)

// floatReader is the part of oggvorbis.Reader the source needs. Read fills
// whole frames of interleaved samples and returns the number of values.
type floatReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec    floatReader
	closer io.Closer
	done   bool
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return s.dec.Channels() }
func (s *source) BufSize() int    { return pcm.DefaultBufSize }

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst) < s.dec.Channels() {
		return 0, io.ErrShortBuffer
	}

	n, err := s.dec.Read(dst)
	switch {
	case errors.Is(err, io.EOF):
		s.done = true
		return n, io.EOF
	case err != nil:
		return n, fmt.Errorf("decoding vorbis: %w", err)
	}
	return n, nil
}

type Decoder struct{}

// Decode reads the Vorbis headers of r. If r is an io.Closer, closing the
// source closes r.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening vorbis stream: %w", err)
	}

	src := &source{dec: dec}
	if c, ok := r.(io.Closer); ok {
		src.closer = c
	}
	return src, nil
}
