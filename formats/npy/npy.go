// SPDX-License-Identifier: EPL-2.0

// Package npy stores chunk streams as NumPy .npy arrays through
// github.com/sbinet/npyio, for inspection of resampled waveforms in Python.
package npy

import (
	"errors"
	"fmt"
	"io"

	"github.com/binp-dev/waveplay/audio"
	"github.com/sbinet/npyio"
)

// WriteChunks drains chunks and writes their concatenation as a
// one-dimensional float64 array. It returns the number of samples written.
// Nothing is written if reading the stream fails.
func WriteChunks(w io.Writer, chunks audio.ChunkReader) (int, error) {
	var samples []float64
	for {
		c, err := chunks.NextChunk()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, err
		}
		samples = append(samples, c...)
	}
	if samples == nil {
		samples = []float64{}
	}

	if err := npyio.Write(w, samples); err != nil {
		return 0, fmt.Errorf("writing npy array: %w", err)
	}
	return len(samples), nil
}

// ReadSamples reads a float64 array written by WriteChunks.
func ReadSamples(r io.Reader) ([]float64, error) {
	var samples []float64
	if err := npyio.Read(r, &samples); err != nil {
		return nil, fmt.Errorf("reading npy array: %w", err)
	}
	return samples, nil
}
