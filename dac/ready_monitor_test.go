// SPDX-License-Identifier: EPL-2.0

package dac

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(values ...bool) <-chan bool {
	c := make(chan bool, len(values))
	for _, v := range values {
		c <- v
	}
	close(c)
	return c
}

func TestReadyMonitor_CountsTrueEdges(t *testing.T) {
	t.Parallel()

	m := NewReadyMonitor(feed(false, false, true, false, true))
	ctx := context.Background()

	grants := 0
	for {
		err := m.Wait(ctx)
		if err != nil {
			assert.ErrorIs(t, err, ErrReadyClosed)
			break
		}
		grants++
	}
	assert.Equal(t, 2, grants)
}

func TestReadyMonitor_EachTrueUsedOnce(t *testing.T) {
	t.Parallel()

	m := NewReadyMonitor(feed(true))
	require.NoError(t, m.Wait(context.Background()))
	assert.ErrorIs(t, m.Wait(context.Background()), ErrReadyClosed)
}

func TestReadyMonitor_BlocksWithoutTrue(t *testing.T) {
	t.Parallel()

	ready := make(chan bool)
	m := NewReadyMonitor(ready)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	go func() {
		select {
		case ready <- false:
		case <-ctx.Done():
		}
	}()

	err := m.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestReadyMonitor_CancelledBeforeWait(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A ready value is available, but cancellation takes precedence.
	m := NewReadyMonitor(feed(true))
	assert.ErrorIs(t, m.Wait(ctx), context.Canceled)
}

func TestReadyMonitor_ClosedAfterCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan bool)

	done := make(chan error, 1)
	go func() { done <- NewReadyMonitor(ready).Wait(ctx) }()

	cancel()
	close(ready)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Wait did not return")
	}
}
