// SPDX-License-Identifier: EPL-2.0

// Package dac streams waveform chunks to a DAC that buffers one chunk at a
// time.
//
// The device signals with a readiness flag that its buffer is free. Sink
// writes the playback mode once, then for every chunk waits for a fresh true
// value of the flag and writes the chunk:
//
//	sink := dac.NewSink(device, dac.WithCyclic(true))
//	stats, err := sink.Play(ctx, resampler)
//
// Readiness is edge-like: ReadyMonitor skips false values and consumes each
// true value once, so a flag that is still up from the previous chunk cannot
// trigger a second write. There is no timeout on the wait; a device that
// never becomes ready blocks Play until its context is cancelled.
//
// Failures of the device (mode change, write, lost readiness subscription)
// end Play with an error wrapping ErrSetMode, ErrWrite, ErrSubscribe or
// ErrReadyClosed. Nothing is retried.
package dac
