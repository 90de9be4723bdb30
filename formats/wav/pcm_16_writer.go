// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeBlock is the number of samples handed to the encoder at once.
const writeBlock = 8192

// WriteWAV16 writes samples as a mono 16-bit PCM WAV at sampleRate. The
// header sizes are patched once all data is written, so w must seek.
func WriteWAV16(w io.WriteSeeker, sampleRate int, samples []int16) error {
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	enc := wav.NewEncoder(w, sampleRate, 16, 1, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           make([]int, 0, min(len(samples), writeBlock)),
		SourceBitDepth: 16,
	}

	// The first Write emits the header, so it runs even without samples.
	for start := 0; start == 0 || start < len(samples); start += writeBlock {
		block := samples[start:min(start+writeBlock, len(samples))]
		buf.Data = buf.Data[:0]
		for _, s := range block {
			buf.Data = append(buf.Data, int(s))
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing WAV data: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing WAV header: %w", err)
	}
	return nil
}
