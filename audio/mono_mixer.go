// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer folds an interleaved multi-channel Source into mono. Each output
// sample is the arithmetic mean of one source frame.
type MonoMixer struct {
	src      Source
	channels int
	tmp      []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src:      src,
		channels: src.Channels(),
		tmp:      make([]float32, 4096),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }
func (m *MonoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadSamples fills dst with up to len(dst) mono samples. A trailing partial
// frame from the source is dropped.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if m.channels <= 1 {
		return m.src.ReadSamples(dst)
	}

	need := len(dst) * m.channels
	if cap(m.tmp) < need {
		m.tmp = make([]float32, max(need, 8192))
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	frames := n / m.channels
	if frames == 0 {
		return 0, err
	}

	scale := 1 / float32(m.channels)
	for f := range frames {
		frame := m.tmp[f*m.channels : (f+1)*m.channels]
		var sum float32
		for _, v := range frame {
			sum += v
		}
		dst[f] = sum * scale
	}

	return frames, err
}
