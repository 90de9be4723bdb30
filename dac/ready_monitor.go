// SPDX-License-Identifier: EPL-2.0

package dac

import "context"

// ReadyMonitor turns a stream of readiness values into discrete permissions
// to write. Each true value is consumed by exactly one Wait, and false values
// are skipped, so a stale or already used flag never allows a write.
type ReadyMonitor struct {
	ready <-chan bool
}

// NewReadyMonitor reads readiness values from ready. Only one goroutine may
// call Wait at a time.
func NewReadyMonitor(ready <-chan bool) *ReadyMonitor {
	return &ReadyMonitor{ready: ready}
}

// Wait blocks until the next true value arrives. It has no timeout: a device
// that never becomes ready blocks the caller until ctx is done, in which case
// ctx.Err() is returned. A closed channel yields ErrReadyClosed.
func (m *ReadyMonitor) Wait(ctx context.Context) error {
	for {
		// Cancellation wins over a value that is ready at the same time.
		if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case flag, ok := <-m.ready:
			if !ok {
				if err := ctx.Err(); err != nil {
					return err
				}
				return ErrReadyClosed
			}
			if flag {
				return nil
			}
		}
	}
}
