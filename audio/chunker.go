// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

// Chunker resamples a scalar stream with a BoxFilter and batches the output
// into chunks of at most maxLen samples.
//
// Every chunk except the last holds exactly maxLen samples. When the source is
// exhausted the pending partial average, if any, is appended and whatever is
// buffered is emitted as a short final chunk. A Chunker is single-pass.
type Chunker struct {
	src    SampleReader
	filter *BoxFilter
	maxLen int

	done bool
	err  error
}

// NewChunker returns a Chunker reading src at srcRate and producing chunks at
// dstRate.
func NewChunker(src SampleReader, srcRate, dstRate float64, maxLen int) (*Chunker, error) {
	if maxLen < 1 {
		return nil, ErrInvalidChunkLen
	}

	filter, err := NewBoxFilter(srcRate, dstRate)
	if err != nil {
		return nil, err
	}

	return &Chunker{
		src:    src,
		filter: filter,
		maxLen: maxLen,
	}, nil
}

// Ratio is the number of source samples folded into one output sample.
func (c *Chunker) Ratio() float64 { return c.filter.Ratio() }

// MaxLen is the chunk capacity.
func (c *Chunker) MaxLen() int { return c.maxLen }

// NextChunk pulls source samples until a full chunk is ready or the source is
// exhausted. It returns io.EOF once the final chunk has been handed out.
func (c *Chunker) NextChunk() (Chunk, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.done {
		return nil, io.EOF
	}

	chunk := make(Chunk, 0, c.maxLen)
	for len(chunk) < c.maxLen {
		v, err := c.src.ReadSample()
		if errors.Is(err, io.EOF) {
			c.done = true
			if out, ok := c.filter.Flush(); ok {
				chunk = append(chunk, out)
			}
			break
		}
		if err != nil {
			c.err = fmt.Errorf("reading sample: %w", err)
			return nil, c.err
		}

		if out, ok := c.filter.Push(v); ok {
			chunk = append(chunk, out)
		}
	}

	if len(chunk) == 0 {
		return nil, io.EOF
	}
	return chunk, nil
}

// All ranges over the remaining chunks. Iteration stops after the first error,
// which is yielded with a nil chunk; io.EOF is not yielded.
func (c *Chunker) All() iter.Seq2[Chunk, error] {
	return Chunks(c)
}

// Chunks ranges over the chunks of any ChunkReader, with the same semantics as
// Chunker.All.
func Chunks(r ChunkReader) iter.Seq2[Chunk, error] {
	return func(yield func(Chunk, error) bool) {
		for {
			chunk, err := r.NextChunk()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}
}
