// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chunk struct {
	id   string
	data []byte
}

// buildRIFF assembles a WAVE container from raw chunks, padding odd sizes.
func buildRIFF(chunks ...chunk) []byte {
	var body bytes.Buffer
	body.WriteString("WAVE")
	for _, c := range chunks {
		body.WriteString(c.id)
		binary.Write(&body, binary.LittleEndian, uint32(len(c.data)))
		body.Write(c.data)
		if len(c.data)%2 == 1 {
			body.WriteByte(0)
		}
	}

	var out bytes.Buffer
	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

func fmtChunk(format, channels, sampleRate, bits int) chunk {
	var b bytes.Buffer
	blockAlign := channels * bits / 8
	binary.Write(&b, binary.LittleEndian, uint16(format))
	binary.Write(&b, binary.LittleEndian, uint16(channels))
	binary.Write(&b, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&b, binary.LittleEndian, uint32(sampleRate*blockAlign))
	binary.Write(&b, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&b, binary.LittleEndian, uint16(bits))
	return chunk{"fmt ", b.Bytes()}
}

func int16Data(samples ...int16) chunk {
	var b bytes.Buffer
	binary.Write(&b, binary.LittleEndian, samples)
	return chunk{"data", b.Bytes()}
}

func readAll(t *testing.T, data []byte) ([]float32, int, int) {
	t.Helper()

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	defer src.Close()

	var out []float32
	buf := make([]float32, 3)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}
	return out, src.SampleRate(), src.Channels()
}

func TestDecoder_Mono16(t *testing.T) {
	t.Parallel()

	data := buildRIFF(fmtChunk(formatPCM, 1, 8000, 16), int16Data(0, 16384, -16384, -32768))
	samples, rate, channels := readAll(t, data)

	assert.Equal(t, 8000, rate)
	assert.Equal(t, 1, channels)
	assert.Equal(t, []float32{0, 0.5, -0.5, -1}, samples)
}

func TestDecoder_Stereo16(t *testing.T) {
	t.Parallel()

	data := buildRIFF(fmtChunk(formatPCM, 2, 44100, 16), int16Data(8192, -8192, 16384, -16384))
	samples, rate, channels := readAll(t, data)

	assert.Equal(t, 44100, rate)
	assert.Equal(t, 2, channels)
	assert.Equal(t, []float32{0.25, -0.25, 0.5, -0.5}, samples)
}

func TestDecoder_24Bit(t *testing.T) {
	t.Parallel()

	// 0x400000 is half scale, 0xC00000 minus half scale.
	raw := []byte{0x00, 0x00, 0x40, 0x00, 0x00, 0xC0}
	data := buildRIFF(fmtChunk(formatPCM, 1, 48000, 24), chunk{"data", raw})
	samples, _, _ := readAll(t, data)

	assert.Equal(t, []float32{0.5, -0.5}, samples)
}

func TestDecoder_SkipsUnknownChunks(t *testing.T) {
	t.Parallel()

	data := buildRIFF(
		fmtChunk(formatPCM, 1, 8000, 16),
		chunk{"junk", []byte{1, 2, 3}},
		int16Data(16384),
	)
	samples, _, _ := readAll(t, data)
	assert.Equal(t, []float32{0.5}, samples)
}

func TestDecoder_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not riff", []byte("this is not a wav file at all, just text"), ErrNotWavFile},
		{"empty", nil, ErrNotWavFile},
		{"float", buildRIFF(fmtChunk(3, 1, 8000, 32), chunk{"data", make([]byte, 8)}), ErrNotPCM},
		{"8 bit", buildRIFF(fmtChunk(formatPCM, 1, 8000, 8), chunk{"data", []byte{128, 255}}), ErrBitDepth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// onlyReader hides the Seek method of its reader.
type onlyReader struct{ io.Reader }

func TestDecoder_NonSeekableInput(t *testing.T) {
	t.Parallel()

	data := buildRIFF(fmtChunk(formatPCM, 1, 8000, 16), int16Data(16384, 16384))
	src, err := Decoder{}.Decode(onlyReader{bytes.NewReader(data)})
	require.NoError(t, err)

	buf := make([]float32, 8)
	n, err := src.ReadSamples(buf)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []float32{0.5, 0.5}, buf[:n])
}

func TestDecoder_ClosesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tone.wav")
	require.NoError(t, os.WriteFile(path, buildRIFF(fmtChunk(formatPCM, 1, 8000, 16), int16Data(1)), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	src, err := Decoder{}.Decode(f)
	require.NoError(t, err)
	require.NoError(t, src.Close())

	_, err = f.Read(make([]byte, 1))
	assert.ErrorIs(t, err, os.ErrClosed)
}
