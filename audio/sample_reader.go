// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads bounds how many times in a row a Source may return no data and
// no error before the reader gives up with io.ErrNoProgress.
const maxEmptyReads = 100

type sourceSampleReader struct {
	src Source
	buf []float32
	pos int
	n   int
	err error
}

// NewSampleReader adapts src to a scalar SampleReader. Multi-channel sources
// are mixed down to mono first, so each sample read is the mean of one frame.
func NewSampleReader(src Source) SampleReader {
	if src.Channels() > 1 {
		src = NewMonoMixer(src)
	}

	size := src.BufSize()
	if size <= 0 {
		size = 4096
	}

	return &sourceSampleReader{
		src: src,
		buf: make([]float32, size),
	}
}

func (r *sourceSampleReader) ReadSample() (float64, error) {
	for empty := 0; r.pos >= r.n; empty++ {
		if r.err != nil {
			return 0, r.err
		}
		if empty >= maxEmptyReads {
			return 0, io.ErrNoProgress
		}

		n, err := r.src.ReadSamples(r.buf)
		r.pos, r.n = 0, n
		if errors.Is(err, io.EOF) {
			r.err = io.EOF
		} else if err != nil {
			r.err = fmt.Errorf("reading source: %w", err)
		}
	}

	v := r.buf[r.pos]
	r.pos++
	return float64(v), nil
}

type sliceSampleReader struct {
	samples []float64
	pos     int
}

// SliceSamples returns a SampleReader over an in-memory sequence.
func SliceSamples(samples []float64) SampleReader {
	return &sliceSampleReader{samples: samples}
}

func (r *sliceSampleReader) ReadSample() (float64, error) {
	if r.pos >= len(r.samples) {
		return 0, io.EOF
	}
	v := r.samples[r.pos]
	r.pos++
	return v, nil
}
