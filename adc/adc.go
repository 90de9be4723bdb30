// SPDX-License-Identifier: EPL-2.0

package adc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Event is one reading of one channel.
type Event struct {
	Channel   int
	Value     float64
	Timestamp time.Time
}

// Source delivers events from all channels on one stream. The stream is
// closed when the source stops.
type Source interface {
	Subscribe(ctx context.Context) (<-chan Event, error)
}

// Record holds one value per channel.
type Record struct {
	Time   time.Duration // since the start of logging
	Values []float64
}

type RecordWriter interface {
	WriteRecord(Record) error
}

// Aggregator groups events into records. It is not safe for concurrent use;
// Run feeds it from a single goroutine.
type Aggregator struct {
	start   time.Time
	w       RecordWriter
	values  []float64
	present []bool
	missing int
	last    time.Time
	written int
}

// NewAggregator collects records of channels values, timed relative to
// start, and writes each complete one to w.
func NewAggregator(channels int, start time.Time, w RecordWriter) (*Aggregator, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	a := &Aggregator{
		start:   start,
		w:       w,
		values:  make([]float64, channels),
		present: make([]bool, channels),
	}
	a.reset()
	return a, nil
}

func (a *Aggregator) reset() {
	clear(a.present)
	a.missing = len(a.values)
}

// Push stores the event. A repeated channel overwrites its earlier value.
// When the last missing channel arrives the record is written and the
// aggregator starts collecting the next one.
func (a *Aggregator) Push(e Event) error {
	if e.Channel < 0 || e.Channel >= len(a.values) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrChannel, e.Channel, len(a.values))
	}

	a.values[e.Channel] = e.Value
	a.last = e.Timestamp
	if !a.present[e.Channel] {
		a.present[e.Channel] = true
		a.missing--
	}
	if a.missing > 0 {
		return nil
	}

	rec := Record{
		Time:   a.last.Sub(a.start),
		Values: append([]float64(nil), a.values...),
	}
	a.reset()
	if err := a.w.WriteRecord(rec); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	a.written++
	return nil
}

// Channels returns the number of channels per record.
func (a *Aggregator) Channels() int { return len(a.values) }

// Written returns the number of records written.
func (a *Aggregator) Written() int { return a.written }

// Pending reports whether a partial record is being collected.
func (a *Aggregator) Pending() bool { return a.missing < len(a.values) }

// Run feeds events from src into agg until ctx is done or the source closes
// its stream. A cancelled context is a normal stop and returns nil.
func Run(ctx context.Context, src Source, agg *Aggregator) error {
	logger := slog.Default().With("channels", agg.Channels())

	events, err := src.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("subscribing: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("logging stopped", "records", agg.Written())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case e, ok := <-events:
			if !ok {
				logger.Info("source closed", "records", agg.Written(), "partial", agg.Pending())
				return nil
			}
			if err := agg.Push(e); err != nil {
				return err
			}
			logger.Debug("event", "channel", e.Channel, "value", e.Value)
		}
	}
}
