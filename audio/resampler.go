// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"iter"
	"math"
)

// Resampler streams chunks from src at dstRate using box-filter averaging.
// Multi-channel sources are mixed to mono frame by frame before resampling.
type Resampler struct {
	src     Source
	dstRate float64
	chunker *Chunker
}

// NewResampler builds a chunk stream over src. dstRate must not exceed the
// source rate and maxLen must be at least 1.
func NewResampler(src Source, dstRate float64, maxLen int) (*Resampler, error) {
	chunker, err := NewChunker(NewSampleReader(src), float64(src.SampleRate()), dstRate, maxLen)
	if err != nil {
		return nil, fmt.Errorf("resampling %d Hz to %g Hz: %w", src.SampleRate(), dstRate, err)
	}

	return &Resampler{
		src:     src,
		dstRate: dstRate,
		chunker: chunker,
	}, nil
}

// SampleRate returns the output rate rounded to whole Hz.
func (r *Resampler) SampleRate() int { return int(math.Round(r.dstRate)) }

// Ratio is the number of source frames folded into one output sample.
func (r *Resampler) Ratio() float64 { return r.chunker.Ratio() }

// MaxChunkLen is the length of every chunk but the last.
func (r *Resampler) MaxChunkLen() int { return r.chunker.MaxLen() }

// NextChunk returns the next chunk, or io.EOF after the last one.
func (r *Resampler) NextChunk() (Chunk, error) { return r.chunker.NextChunk() }

// All ranges over the remaining chunks; see Chunker.All.
func (r *Resampler) All() iter.Seq2[Chunk, error] { return r.chunker.All() }

// Close closes the underlying source.
func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
