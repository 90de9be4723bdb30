// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample sources and the resampling stage of the
// waveform pipeline.
//
// # Sources
//
// The Source interface is the input side of every pipeline:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Format decoders (see the formats subpackages) and SineSource implement it.
// MonoMixer folds interleaved channels into one by averaging each frame, and
// NewSampleReader turns any Source into a scalar SampleReader.
//
// # Resampling
//
// BoxFilter converts a scalar stream from a source rate Fs to a lower target
// rate Fout. Each output sample is the area-weighted mean of the
// ratio = Fs/Fout source samples it covers; a source sample on the border of
// two output samples contributes to both in proportion. The ratio may be any
// real number not below 1.
//
//	filter, err := audio.NewBoxFilter(44100, 10000)
//	if out, ok := filter.Push(v); ok {
//	    // one output sample is ready
//	}
//
// Chunker batches the filter output into chunks of a fixed maximum length and
// exposes them as a lazy ChunkReader:
//
//	chunker, err := audio.NewChunker(samples, 44100, 10000, 10000)
//	for chunk, err := range chunker.All() {
//	    // every chunk but the last has exactly 10000 points
//	}
//
// When the input runs out, a pending partial average over at least one whole
// source sample is appended and the remaining points are emitted as a short
// final chunk. Chunks are never padded.
//
// Resampler combines MonoMixer, SampleReader and Chunker over a Source.
//
// # Format Registry
//
// The registry maps format keys to decoders. Keys are case-insensitive and a
// leading dot is ignored, so file extensions can be passed directly:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, ok := registry.Get(filepath.Ext(path))
//
// # Error Handling
//
// Sources and chunk readers return io.EOF when no more data is available.
// Construction errors are sentinel values (ErrInvalidRate, ErrUpsampling,
// ErrInvalidChunkLen) that can be matched with errors.Is.
package audio
