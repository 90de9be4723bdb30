// SPDX-License-Identifier: EPL-2.0

package dac

import (
	"context"

	"github.com/binp-dev/waveplay/audio"
)

// Device is a connection to a DAC that plays waveforms from a one-chunk
// buffer.
type Device interface {
	// SetCyclic selects cyclic (repeat the last waveform) or one-shot playback.
	// It returns once the device has acknowledged the change.
	SetCyclic(ctx context.Context, cyclic bool) error

	// Write replaces the device buffer with chunk. It returns once the device
	// has acknowledged the write.
	Write(ctx context.Context, chunk audio.Chunk) error

	// Ready subscribes to the readiness flag. The device sends true when its
	// buffer is free for the next chunk. The channel is closed when the
	// subscription ends, either because ctx is done or the connection is lost.
	Ready(ctx context.Context) (<-chan bool, error)
}
