// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
)

// SineSource is a finite mono sine waveform of count points. Point i has the
// value magnitude*sin(2*pi*freq*i/count), so freq is the number of periods
// over the whole waveform. Played at a rate equal to count, freq is in Hz.
type SineSource struct {
	sampleRate int
	magnitude  float64
	freq       float64
	count      int
	pos        int
}

func NewSineSource(sampleRate int, magnitude, freq float64, count int) (*SineSource, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidRate
	}
	if count <= 0 {
		return nil, ErrInvalidCount
	}

	return &SineSource{
		sampleRate: sampleRate,
		magnitude:  magnitude,
		freq:       freq,
		count:      count,
	}, nil
}

func (s *SineSource) SampleRate() int { return s.sampleRate }
func (s *SineSource) Channels() int   { return 1 }
func (s *SineSource) BufSize() int    { return min(s.count, 4096) }
func (s *SineSource) Close() error    { return nil }

func (s *SineSource) ReadSamples(dst []float32) (int, error) {
	n := 0
	for n < len(dst) && s.pos < s.count {
		dst[n] = float32(s.at(s.pos))
		n++
		s.pos++
	}

	if s.pos >= s.count {
		return n, io.EOF
	}
	return n, nil
}

func (s *SineSource) at(i int) float64 {
	t := float64(i) / float64(s.count)
	return s.magnitude * math.Sin(2.0*math.Pi*s.freq*t)
}

// Waveform returns the whole waveform at full precision, independent of the
// read position.
func (s *SineSource) Waveform() Chunk {
	out := make(Chunk, s.count)
	for i := range out {
		out[i] = s.at(i)
	}
	return out
}
