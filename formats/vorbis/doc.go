// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files through
// github.com/jfreymuth/oggvorbis.
//
// # Decoding
//
//	f, _ := os.Open("tone.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close() // closes f
//
// Decode reads the three Vorbis headers, so the sample rate and channel count
// are known before the first ReadSamples call.
//
// # Samples
//
// The library produces float32 samples directly, interleaved by channel, with
// no integer scaling step. ReadSamples fills whole frames only: a buffer
// shorter than one frame fails with io.ErrShortBuffer, and a buffer that is
// not a multiple of the channel count is filled up to the last whole frame.
package vorbis
