// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// # Supported Formats
//
// Only uncompressed AIFF is read:
//   - big-endian integer PCM at 16, 24 or 32 bits
//   - any number of channels
//   - any sample rate, stored in the COMM chunk as an 80-bit float
//
// 8-bit files fail with ErrBitDepth. Compressed AIFF-C data is not supported.
//
// # Decoding
//
//	f, _ := os.Open("tone.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not a FORM/AIFF container
//	}
//	defer src.Close() // closes f
//
// Samples are scaled to [-1, 1) and interleaved by channel, the same as every
// other decoder registered with audio.Registry, so the resampler treats all
// formats alike. Inputs that cannot seek are buffered in memory.
package aiff
