// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files through github.com/go-audio/wav.
//
// # Supported Formats
//
// The Decoder accepts:
//   - integer PCM at 16, 24 or 32 bits (format tag 1 or WAVE_FORMAT_EXTENSIBLE)
//   - any number of channels
//   - any sample rate
//
// Unknown chunks between the fmt and data chunks (LIST, fact, cue) are
// skipped. 8-bit WAV stores unsigned samples and is rejected with
// ErrBitDepth. IEEE float and compressed files are rejected with ErrNotPCM.
//
// # Decoding
//
//	f, err := os.Open("tone.wav")
//	if err != nil {
//	    return err
//	}
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close() // closes f
//
// The returned audio.Source yields interleaved float32 samples scaled to
// [-1, 1). The go-audio decoder needs to seek, so an input that is not an
// io.ReadSeeker is read into memory before decoding starts.
//
// Decoders are usually not called directly. waveplay.OpenFile picks one by
// file extension, and audio.NewResampler turns the source into DAC chunks.
//
// # Writing
//
// WriteWAV16 stores mono 16-bit PCM, which is what the resample command
// produces for listening to a waveform before it goes to the DAC:
//
//	out, _ := os.Create("dac.wav")
//	err := wav.WriteWAV16(out, 10000, pcm16)
//
// The writer needs an io.WriteSeeker because the RIFF sizes are patched in
// once all data is written.
//
// # Errors
//
//   - ErrNotWavFile: the RIFF/WAVE header or the fmt chunk is missing
//   - ErrNotPCM: the format tag is not integer PCM
//   - ErrBitDepth: the sample size is not 16, 24 or 32 bits
//
// All errors are wrapped; test them with errors.Is.
package wav
