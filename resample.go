// SPDX-License-Identifier: EPL-2.0

package waveplay

import (
	"errors"
	"io"

	"github.com/binp-dev/waveplay/audio"
	"github.com/binp-dev/waveplay/utils"
)

// ResampleToMono16 downsamples src to rate, mixes it to mono and collects the
// whole stream as 16-bit PCM. maxLen is the chunk size used while reading and
// does not affect the result. It returns the samples and the output rate.
//
// For streaming use audio.NewResampler directly.
func ResampleToMono16(src audio.Source, rate float64, maxLen int) ([]int16, int, error) {
	r, err := audio.NewResampler(src, rate, maxLen)
	if err != nil {
		return nil, 0, err
	}

	pcm16 := make([]int16, 0, maxLen)
	for {
		chunk, err := r.NextChunk()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, r.SampleRate(), err
		}
		pcm16 = utils.AppendInt16(pcm16, chunk)
	}

	return pcm16, r.SampleRate(), nil
}
