// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// intSlice serves data through PCMBuffer the way go-audio decoders do: full
// reads while data lasts, then a short read.
type intSlice struct {
	data []int
	err  error
}

func (s *intSlice) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if len(s.data) == 0 && s.err != nil {
		return 0, s.err
	}
	n := copy(buf.Data, s.data)
	s.data = s.data[n:]
	return n, nil
}

var mono8k = &goaudio.Format{SampleRate: 8000, NumChannels: 1}

func TestScale(t *testing.T) {
	t.Parallel()

	for depth, want := range map[int]float32{16: 32768, 24: 8388608, 32: 2147483648} {
		got, err := Scale(depth)
		require.NoError(t, err)
		assert.Equal(t, want, got, "depth %d", depth)
	}
	for _, depth := range []int{0, 8, 12, 64} {
		_, err := Scale(depth)
		assert.ErrorIs(t, err, ErrBitDepth, "depth %d", depth)
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src, err := NewSource(&intSlice{data: []int{0, 16384, -32768, 32767, 8192}}, mono8k, 16)
	require.NoError(t, err)
	assert.Equal(t, 8000, src.SampleRate())
	assert.Equal(t, 1, src.Channels())

	dst := make([]float32, 3)
	n, err := src.ReadSamples(dst)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []float32{0, 0.5, -1}, dst)

	n, err = src.ReadSamples(dst)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 2, n)
	assert.InDelta(t, 1, dst[0], 1e-4)
	assert.Equal(t, float32(0.25), dst[1])

	n, err = src.ReadSamples(dst)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestSource_ExactMultipleEndsWithEmptyRead(t *testing.T) {
	t.Parallel()

	src, err := NewSource(&intSlice{data: []int{1 << 23, -(1 << 23)}}, mono8k, 24)
	require.NoError(t, err)

	dst := make([]float32, 2)
	n, err := src.ReadSamples(dst)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, -1}, dst[:n])

	n, err = src.ReadSamples(dst)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestSource_DecoderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("corrupt chunk")
	src, err := NewSource(&intSlice{err: boom}, mono8k, 16)
	require.NoError(t, err)

	_, err = src.ReadSamples(make([]float32, 4))
	assert.ErrorIs(t, err, boom)
}

func TestNewSource_Invalid(t *testing.T) {
	t.Parallel()

	_, err := NewSource(&intSlice{}, mono8k, 8)
	assert.ErrorIs(t, err, ErrBitDepth)

	_, err = NewSource(&intSlice{}, &goaudio.Format{SampleRate: 0, NumChannels: 1}, 16)
	assert.Error(t, err)

	_, err = NewSource(&intSlice{}, nil, 16)
	assert.Error(t, err)
}

type closeRecorder struct{ closed bool }

func (c *closeRecorder) Close() error { c.closed = true; return nil }

func TestSource_Close(t *testing.T) {
	t.Parallel()

	src, err := NewSource(&intSlice{}, mono8k, 16)
	require.NoError(t, err)
	require.NoError(t, src.Close())

	c := &closeRecorder{}
	require.NoError(t, src.WithCloser(c).Close())
	assert.True(t, c.closed)
}

func TestReadSeeker(t *testing.T) {
	t.Parallel()

	br := bytes.NewReader([]byte("abc"))
	rs, err := ReadSeeker(br)
	require.NoError(t, err)
	assert.Same(t, br, rs)

	rs, err = ReadSeeker(io.MultiReader(strings.NewReader("xyz")))
	require.NoError(t, err)
	_, err = rs.Seek(1, io.SeekStart)
	require.NoError(t, err)
	rest, err := io.ReadAll(rs)
	require.NoError(t, err)
	assert.Equal(t, "yz", string(rest))
}

func TestInt16LE(t *testing.T) {
	t.Parallel()

	dst := make([]float32, 4)
	n := Int16LE(dst, []byte{0x00, 0x40, 0x00, 0x80, 0xff})
	assert.Equal(t, 2, n)
	assert.Equal(t, []float32{0.5, -1}, dst[:n])
}
