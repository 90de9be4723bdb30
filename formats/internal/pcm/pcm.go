// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer PCM decoders to audio.Source.
package pcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

var ErrBitDepth = errors.New("unsupported PCM bit depth")

// DefaultBufSize is the number of interleaved samples read per call.
const DefaultBufSize = 4096

// IntReader is implemented by go-audio's wav and aiff decoders.
type IntReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source reads signed integer PCM and scales it to [-1, 1).
type Source struct {
	r          IntReader
	sampleRate int
	channels   int
	scale      float32
	buf        *goaudio.IntBuffer
	closer     io.Closer
	done       bool
}

// Scale returns the full-scale value of a signed sample of the given depth.
func Scale(bitDepth int) (float32, error) {
	switch bitDepth {
	case 16, 24, 32:
		return float32(uint64(1) << (bitDepth - 1)), nil
	}
	return 0, fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
}

func NewSource(r IntReader, format *goaudio.Format, bitDepth int) (*Source, error) {
	scale, err := Scale(bitDepth)
	if err != nil {
		return nil, err
	}
	if format == nil || format.SampleRate <= 0 || format.NumChannels <= 0 {
		return nil, fmt.Errorf("invalid PCM format %+v", format)
	}
	return &Source{
		r:          r,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		scale:      scale,
		buf: &goaudio.IntBuffer{
			Format:         format,
			Data:           make([]int, DefaultBufSize),
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WithCloser makes Close release c.
func (s *Source) WithCloser(c io.Closer) *Source {
	s.closer = c
	return s
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return len(s.buf.Data) }

func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// ReadSamples returns io.EOF together with the last samples, or alone once the
// stream is drained. go-audio signals the end of data with a short read.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.r.PCMBuffer(s.buf)
	n = max(n, 0)
	for i, v := range s.buf.Data[:n] {
		dst[i] = float32(v) / s.scale
	}

	switch {
	case err != nil && !errors.Is(err, io.EOF):
		return n, fmt.Errorf("decoding PCM: %w", err)
	case err != nil || n < len(dst):
		s.done = true
		return n, io.EOF
	}
	return n, nil
}

// ReadSeeker returns r itself when it can seek, or an in-memory copy of its
// contents. go-audio decoders need to seek over RIFF and IFF chunks.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}

// Int16LE decodes little-endian 16-bit samples from src into dst and returns
// the number of samples decoded. A trailing odd byte is ignored.
func Int16LE(dst []float32, src []byte) int {
	n := min(len(dst), len(src)/2)
	for i := range n {
		v := int16(uint16(src[2*i]) | uint16(src[2*i+1])<<8)
		dst[i] = float32(v) / 32768
	}
	return n
}
