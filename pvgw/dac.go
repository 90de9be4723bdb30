// SPDX-License-Identifier: EPL-2.0

package pvgw

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/binp-dev/waveplay/audio"
)

// DACNames are the PVs of one analog output channel.
type DACNames struct {
	Waveform string // waveform buffer
	Cyclic   string // playback mode flag
	Request  string // non-zero while the buffer is free
}

func DefaultDACNames() DACNames {
	return DACNames{
		Waveform: "aao0",
		Cyclic:   "aao0_cyclic",
		Request:  "aao0_request",
	}
}

// DAC drives an analog output through the gateway. It implements dac.Device.
type DAC struct {
	gw     Gateway
	names  DACNames
	logger *slog.Logger
}

// NewDAC drives the output channel named by names through gw.
func NewDAC(gw Gateway, names DACNames) *DAC {
	return &DAC{gw: gw, names: names, logger: slog.Default()}
}

// WithLogger replaces the logger used for skipped updates.
func (d *DAC) WithLogger(logger *slog.Logger) *DAC {
	d.logger = logger
	return d
}

// SetCyclic puts the playback mode as a JSON bool.
func (d *DAC) SetCyclic(ctx context.Context, cyclic bool) error {
	return d.gw.Put(ctx, d.names.Cyclic, cyclic)
}

// Write puts chunk to the waveform PV as a JSON array.
func (d *DAC) Write(ctx context.Context, chunk audio.Chunk) error {
	return d.gw.Put(ctx, d.names.Waveform, []float64(chunk))
}

// Ready monitors the request PV. The current value is read once the monitor
// is subscribed and delivered first, so a device that is already idle does
// not have to publish again before the first write. Updates stamped no later
// than that value repeat it and are dropped. Updates that do not decode as a
// flag are logged and skipped.
func (d *DAC) Ready(ctx context.Context) (<-chan bool, error) {
	ctx, cancel := context.WithCancel(ctx)

	updates, err := d.gw.Monitor(ctx, d.names.Request)
	if err != nil {
		cancel()
		return nil, err
	}
	current, err := d.gw.Get(ctx, d.names.Request)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("reading %s: %w", d.names.Request, err)
	}

	out := make(chan bool)
	go func() {
		defer cancel()
		defer close(out)

		send := func(u Update) bool {
			ready, err := u.Bool()
			if err != nil {
				d.logger.Warn("ignoring readiness update", "pv", u.PV, "error", err)
				return true
			}
			select {
			case out <- ready:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send(current) {
			return
		}
		for {
			var u Update
			select {
			case v, ok := <-updates:
				if !ok {
					return
				}
				u = v
			case <-ctx.Done():
				return
			}

			if !u.Timestamp.After(current.Timestamp) {
				continue
			}
			if !send(u) {
				return
			}
		}
	}()
	return out, nil
}
