// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// fakeSource replays interleaved samples from memory. readLimit caps the number
// of values returned per ReadSamples call, failAt injects err once that many
// values were delivered.
type fakeSource struct {
	rate      int
	channels  int
	data      []float32
	pos       int
	readLimit int
	failAt    int
	err       error
	closed    bool
}

func newFakeSource(rate, channels int, data []float32) *fakeSource {
	return &fakeSource{rate: rate, channels: channels, data: data, failAt: -1}
}

// newConstantSource creates a mono source of n copies of value.
func newConstantSource(rate, n int, value float32) *fakeSource {
	data := make([]float32, n)
	for i := range data {
		data[i] = value
	}
	return newFakeSource(rate, 1, data)
}

func (s *fakeSource) SampleRate() int { return s.rate }
func (s *fakeSource) Channels() int   { return s.channels }
func (s *fakeSource) BufSize() int    { return 64 }
func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

func (s *fakeSource) ReadSamples(dst []float32) (int, error) {
	if s.failAt >= 0 && s.pos >= s.failAt {
		return 0, s.err
	}
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}

	want := len(dst)
	if s.readLimit > 0 {
		want = min(want, s.readLimit)
	}
	if s.failAt >= 0 {
		want = min(want, s.failAt-s.pos)
	}

	n := copy(dst[:want], s.data[s.pos:])
	s.pos += n
	if s.pos >= len(s.data) {
		return n, io.EOF
	}
	return n, nil
}
