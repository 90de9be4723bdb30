// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 layer III streams through
// github.com/hajimehoshi/go-mp3.
//
// # Channels and Precision
//
// go-mp3 always yields two interleaved channels of 16-bit little-endian PCM.
// Mono files are duplicated to both channels, so Channels always reports 2.
// audio.NewResampler folds the pair back into one channel by averaging, which
// restores the original mono signal exactly.
//
// # Decoding
//
//	f, _ := os.Open("speech.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close() // closes f
//
// Decode reads only the first frame header; later frames are decoded on
// demand by ReadSamples. A stream that ends inside a frame ends the source
// with io.EOF after the last complete samples. Other decoder errors are
// wrapped and returned with the samples read so far.
package mp3
