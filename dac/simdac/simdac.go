// SPDX-License-Identifier: EPL-2.0

// Package simdac provides an in-memory DAC that behaves like the real device:
// it reports readiness, drops the flag when a waveform is written and raises
// it again once the waveform has been played out at the configured rate.
package simdac

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/binp-dev/waveplay/audio"
	"github.com/google/uuid"
)

var ErrClosed = errors.New("simulated DAC closed")

// DAC is a simulated device. The zero value is not usable; use New.
type DAC struct {
	logger *slog.Logger
	rate   float64

	mu        sync.Mutex
	cyclic    bool
	modeSet   int
	written   []audio.Chunk
	writeErr  error
	modeErr   error
	readyErr  error
	consumers []chan struct{}
	closed    bool
}

type Option func(*DAC)

// WithRate sets the playback rate in points per second. A waveform of n points
// keeps the device busy for n/rate seconds. Zero makes playback instant.
func WithRate(rate float64) Option {
	return func(d *DAC) { d.rate = rate }
}

func WithLogger(logger *slog.Logger) Option {
	return func(d *DAC) { d.logger = logger }
}

// New returns a DAC that plays instantly unless WithRate is given.
func New(opts ...Option) *DAC {
	d := &DAC{logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("simulated dac uuid", uuid.New())
	return d
}

// FailWrites makes every following Write return err.
func (d *DAC) FailWrites(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writeErr = err
}

// FailMode makes every following SetCyclic return err.
func (d *DAC) FailMode(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.modeErr = err
}

// FailReady makes every following Ready return err.
func (d *DAC) FailReady(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.readyErr = err
}

func (d *DAC) SetCyclic(ctx context.Context, cyclic bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if d.closed {
		return ErrClosed
	}
	if d.modeErr != nil {
		return d.modeErr
	}

	d.cyclic = cyclic
	d.modeSet++
	d.logger.Debug("playback mode set", "cyclic", cyclic)
	return nil
}

func (d *DAC) Write(ctx context.Context, chunk audio.Chunk) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if d.closed {
		return ErrClosed
	}
	if d.writeErr != nil {
		return d.writeErr
	}

	d.written = append(d.written, append(audio.Chunk(nil), chunk...))
	d.logger.Debug("waveform written", "points", len(chunk))

	for _, c := range d.consumers {
		select {
		case c <- struct{}{}:
		default:
		}
	}
	return nil
}

// Ready starts a readiness subscription. The flag is true right away, turns
// false after each Write and true again when the waveform has been played.
func (d *DAC) Ready(ctx context.Context) (<-chan bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrClosed
	}
	if d.readyErr != nil {
		return nil, d.readyErr
	}

	consumed := make(chan struct{}, 1)
	d.consumers = append(d.consumers, consumed)

	out := make(chan bool)
	go d.drive(ctx, consumed, out)
	return out, nil
}

func (d *DAC) drive(ctx context.Context, consumed chan struct{}, out chan<- bool) {
	defer close(out)
	defer d.unsubscribe(consumed)

	send := func(v bool) bool {
		select {
		case out <- v:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if !send(true) {
		return
	}
	for {
		select {
		case <-consumed:
		case <-ctx.Done():
			return
		}
		if !send(false) {
			return
		}

		if delay := d.playTime(); delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return
			}
		}
		if !send(true) {
			return
		}
	}
}

func (d *DAC) playTime() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.rate <= 0 || len(d.written) == 0 {
		return 0
	}
	n := len(d.written[len(d.written)-1])
	return time.Duration(float64(n) / d.rate * float64(time.Second))
}

func (d *DAC) unsubscribe(consumed chan struct{}) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, c := range d.consumers {
		if c == consumed {
			d.consumers = append(d.consumers[:i], d.consumers[i+1:]...)
			return
		}
	}
}

// Close fails all following operations. Running subscriptions end when their
// context is done.
func (d *DAC) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Cyclic reports the last playback mode set.
func (d *DAC) Cyclic() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cyclic
}

// ModeWrites counts successful SetCyclic calls.
func (d *DAC) ModeWrites() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.modeSet
}

// Written returns copies of all waveforms written so far, in order.
func (d *DAC) Written() []audio.Chunk {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]audio.Chunk(nil), d.written...)
}
