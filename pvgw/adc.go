// SPDX-License-Identifier: EPL-2.0

package pvgw

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/binp-dev/waveplay/adc"
)

// DefaultADCFormat names ADC channel PVs by index.
const DefaultADCFormat = "ai%d.VAL"

// ADC monitors a set of analog input PVs. It implements adc.Source.
type ADC struct {
	gw     Gateway
	names  []string
	logger *slog.Logger
}

// NewADC monitors channels PVs named by pvFormat applied to 0..channels-1.
func NewADC(gw Gateway, pvFormat string, channels int) *ADC {
	names := make([]string, channels)
	for i := range names {
		names[i] = fmt.Sprintf(pvFormat, i)
	}
	return &ADC{gw: gw, names: names, logger: slog.Default()}
}

// WithLogger replaces the logger used for skipped updates.
func (a *ADC) WithLogger(logger *slog.Logger) *ADC {
	a.logger = logger
	return a
}

// Names returns the monitored PV names in channel order.
func (a *ADC) Names() []string {
	return append([]string(nil), a.names...)
}

// Subscribe merges the updates of all channels into one event stream. The
// stream closes after every channel monitor has ended.
func (a *ADC) Subscribe(ctx context.Context) (<-chan adc.Event, error) {
	ctx, cancel := context.WithCancel(ctx)

	monitors := make([]<-chan Update, len(a.names))
	for i, name := range a.names {
		updates, err := a.gw.Monitor(ctx, name)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("subscribing channel %d: %w", i, err)
		}
		monitors[i] = updates
	}

	out := make(chan adc.Event)
	var wg sync.WaitGroup
	for i, updates := range monitors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range updates {
				v, err := u.Float()
				if err != nil {
					a.logger.Warn("ignoring ADC update", "pv", u.PV, "error", err)
					continue
				}
				select {
				case out <- adc.Event{Channel: i, Value: v, Timestamp: u.Timestamp}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		cancel()
		close(out)
	}()
	return out, nil
}
