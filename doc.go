// SPDX-License-Identifier: EPL-2.0

// Package waveplay streams audio waveforms to a DAC that accepts bounded-size
// chunks, one chunk per readiness signal.
//
// The pipeline has three stages:
//   - a decoder from formats/* turns a file into an audio.Source
//   - audio.Resampler downsamples it to the DAC rate with a box filter and
//     cuts the result into chunks of at most MaxChunkLen points
//   - dac.Sink writes each chunk after the device reports it is ready
//
// # Quick Start
//
//	src, _ := waveplay.OpenFile("tone.wav")
//	gw, _ := pvgw.Dial(pvgw.DefaultConfig())
//	dev := pvgw.NewDAC(gw, pvgw.DefaultDACNames())
//	stats, err := waveplay.Play(ctx, src, dev, waveplay.Options{Cyclic: true})
//
// Devices are reached through pvgw, a ZeroMQ bridge to process variables, or
// simulated in-process with dac/simdac.
package waveplay
