// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	"github.com/binp-dev/waveplay/audio"
	"github.com/binp-dev/waveplay/formats/internal/pcm"
	gomp3 "github.com/hajimehoshi/go-mp3"
)

// go-mp3 always produces interleaved stereo.
const channels = 2

// byteReader is the part of gomp3.Decoder the source needs.
type byteReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec    byteReader
	buf    []byte
	closer io.Closer
	done   bool
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
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

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := io.ReadFull(s.dec, s.buf)
	samples := pcm.Int16LE(dst, s.buf[:n])
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		s.done = true
		return samples, io.EOF
	case err != nil:
		return samples, fmt.Errorf("decoding mp3: %w", err)
	}
	return samples, nil
}

type Decoder struct{}

// Decode reads the first frame header of r. If r is an io.Closer, closing
// the source closes r.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3 stream: %w", err)
	}

	src := &source{dec: dec}
	if c, ok := r.(io.Closer); ok {
		src.closer = c
	}
	return src, nil
}
