// SPDX-License-Identifier: EPL-2.0

package pvgw

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type put struct {
	PV    string
	Value string
}

// fakeGateway records puts and keeps the current value of every PV. Like a
// PUB socket it delivers a published value only to monitors that already
// exist; later subscribers learn it through Get.
type fakeGateway struct {
	mu         sync.Mutex
	puts       []put
	putErr     error
	getErr     error
	monitorErr error
	current    map[string]Update
	feeds      map[string][]chan Update
	ended      map[string]bool
	onPut      func(pv string)
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		current: map[string]Update{},
		feeds:   map[string][]chan Update{},
		ended:   map[string]bool{},
	}
}

func (g *fakeGateway) Put(_ context.Context, pv string, value any) error {
	g.mu.Lock()
	if g.putErr != nil {
		g.mu.Unlock()
		return g.putErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		g.mu.Unlock()
		return err
	}
	g.puts = append(g.puts, put{PV: pv, Value: string(data)})
	hook := g.onPut
	g.mu.Unlock()

	if hook != nil {
		hook(pv)
	}
	return nil
}

func (g *fakeGateway) Get(_ context.Context, pv string) (Update, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.getErr != nil {
		return Update{}, g.getErr
	}
	u, ok := g.current[pv]
	if !ok {
		return Update{}, fmt.Errorf("%w: no such pv %s", ErrRemote, pv)
	}
	return u, nil
}

func (g *fakeGateway) Monitor(_ context.Context, pv string) (<-chan Update, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.monitorErr != nil {
		return nil, g.monitorErr
	}
	c := make(chan Update, 16)
	if g.ended[pv] {
		close(c)
		return c, nil
	}
	g.feeds[pv] = append(g.feeds[pv], c)
	return c, nil
}

// set changes the current value without notifying monitors, as if it had
// been published before anyone subscribed.
func (g *fakeGateway) set(pv, value string, ts time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current[pv] = Update{PV: pv, Value: json.RawMessage(value), Timestamp: ts}
}

// publish changes the current value and delivers it to existing monitors.
func (g *fakeGateway) publish(pv, value string, ts time.Time) {
	u := Update{PV: pv, Value: json.RawMessage(value), Timestamp: ts}

	g.mu.Lock()
	g.current[pv] = u
	feeds := append([]chan Update(nil), g.feeds[pv]...)
	g.mu.Unlock()

	for _, c := range feeds {
		c <- u
	}
}

// deliver sends u to existing monitors without touching the current value.
func (g *fakeGateway) deliver(u Update) {
	g.mu.Lock()
	feeds := append([]chan Update(nil), g.feeds[u.PV]...)
	g.mu.Unlock()

	for _, c := range feeds {
		c <- u
	}
}

func (g *fakeGateway) end(pv string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.feeds[pv] {
		close(c)
	}
	delete(g.feeds, pv)
	g.ended[pv] = true
}

func (g *fakeGateway) Puts() []put {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]put(nil), g.puts...)
}
