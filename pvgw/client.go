// SPDX-License-Identifier: EPL-2.0

package pvgw

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"syscall"
	"time"

	zmq "github.com/pebbe/zmq4"
)

// pollInterval bounds how long a blocked socket call goes without checking
// for cancellation.
const pollInterval = 100 * time.Millisecond

// Gateway is the part of Client used by the device adapters.
type Gateway interface {
	Put(ctx context.Context, pv string, value any) error
	Get(ctx context.Context, pv string) (Update, error)
	Monitor(ctx context.Context, pv string) (<-chan Update, error)
}

// Client talks to a PV gateway over ZeroMQ. Puts share one REQ socket and are
// serialised; every monitor owns its own SUB socket.
type Client struct {
	cfg    Config
	logger *slog.Logger

	mu  sync.Mutex
	req *zmq.Socket

	done     chan struct{}
	closeOne sync.Once
	monitors sync.WaitGroup
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// Dial connects the command socket. The monitor endpoint is connected lazily
// by Monitor.
func Dial(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gateway config: %w", err)
	}
	c := &Client{
		cfg:    cfg,
		logger: slog.Default(),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("gateway", cfg.Command)

	req, err := c.newReq()
	if err != nil {
		return nil, err
	}
	c.req = req
	return c, nil
}

func (c *Client) newReq() (*zmq.Socket, error) {
	req, err := zmq.NewSocket(zmq.REQ)
	if err != nil {
		return nil, fmt.Errorf("creating command socket: %w", err)
	}
	for _, set := range []func() error{
		func() error { return req.SetLinger(0) },
		func() error { return req.SetSndtimeo(c.cfg.Timeout) },
	} {
		if err := set(); err != nil {
			req.Close()
			return nil, fmt.Errorf("configuring command socket: %w", err)
		}
	}
	if err := req.Connect(c.cfg.Command); err != nil {
		req.Close()
		return nil, fmt.Errorf("connecting to %s: %w", c.cfg.Command, err)
	}
	return req, nil
}

// Put writes value to pv and waits for the gateway to acknowledge it. A REQ
// socket that lost its reply is replaced, so a failed Put does not poison the
// next one.
func (c *Client) Put(ctx context.Context, pv string, value any) error {
	frames, err := encodePut(pv, value)
	if err != nil {
		return err
	}
	reply, err := c.request(ctx, frames)
	if err != nil {
		return fmt.Errorf("put %s: %w", pv, err)
	}
	if err := decodeReply(reply); err != nil {
		return fmt.Errorf("put %s: %w", pv, err)
	}
	c.logger.Debug("put acknowledged", "pv", pv)
	return nil
}

// Get reads the current value of pv. Monitors only see values published
// after they join, so Get is how a subscriber learns the state it starts from.
func (c *Client) Get(ctx context.Context, pv string) (Update, error) {
	frames, err := encodeGet(pv)
	if err != nil {
		return Update{}, err
	}
	reply, err := c.request(ctx, frames)
	if err != nil {
		return Update{}, fmt.Errorf("get %s: %w", pv, err)
	}
	u, err := decodeGetReply(pv, reply)
	if err != nil {
		return Update{}, fmt.Errorf("get %s: %w", pv, err)
	}
	return u, nil
}

// request sends frames on the command socket and waits for the reply.
func (c *Client) request(ctx context.Context, frames []string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.req == nil {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := c.req.SendMessage(frames); err != nil {
		if isAgain(err) {
			return nil, fmt.Errorf("sending: %w after %v", ErrTimeout, c.cfg.Timeout)
		}
		return nil, fmt.Errorf("sending: %w", err)
	}

	reply, err := c.recvReply(ctx)
	if err != nil {
		c.resetReq()
		return nil, err
	}
	return reply, nil
}

func (c *Client) recvReply(ctx context.Context) ([]string, error) {
	poller := zmq.NewPoller()
	poller.Add(c.req, zmq.POLLIN)

	deadline := time.Now().Add(c.cfg.Timeout)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		select {
		case <-c.done:
			return nil, ErrClosed
		default:
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("%w after %v", ErrTimeout, c.cfg.Timeout)
		}

		polled, err := poller.Poll(min(remaining, pollInterval))
		if err != nil {
			return nil, fmt.Errorf("polling command socket: %w", err)
		}
		if len(polled) > 0 {
			return c.req.RecvMessage(0)
		}
	}
}

// resetReq must be called with c.mu held.
func (c *Client) resetReq() {
	c.req.Close()
	c.req = nil

	select {
	case <-c.done:
		return
	default:
	}

	req, err := c.newReq()
	if err != nil {
		c.logger.Error("could not reconnect command socket", "error", err)
		return
	}
	c.req = req
}

// Monitor subscribes to pv. Updates are delivered in publication order until
// ctx is done, the client is closed or the socket fails; then the channel is
// closed.
func (c *Client) Monitor(ctx context.Context, pv string) (<-chan Update, error) {
	select {
	case <-c.done:
		return nil, ErrClosed
	default:
	}

	sub, err := zmq.NewSocket(zmq.SUB)
	if err != nil {
		return nil, fmt.Errorf("creating monitor socket: %w", err)
	}
	for _, set := range []func() error{
		func() error { return sub.SetLinger(0) },
		func() error { return sub.SetRcvtimeo(pollInterval) },
		func() error { return sub.Connect(c.cfg.Monitor) },
		func() error { return sub.SetSubscribe(pv) },
	} {
		if err := set(); err != nil {
			sub.Close()
			return nil, fmt.Errorf("monitoring %s at %s: %w", pv, c.cfg.Monitor, err)
		}
	}

	out := make(chan Update)
	c.monitors.Add(1)
	go c.monitor(ctx, sub, pv, out)
	return out, nil
}

func (c *Client) monitor(ctx context.Context, sub *zmq.Socket, pv string, out chan<- Update) {
	defer c.monitors.Done()
	defer close(out)
	defer sub.Close()

	logger := c.logger.With("pv", pv)
	logger.Debug("monitor started")

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		default:
		}

		frames, err := sub.RecvMessage(0)
		if err != nil {
			if isAgain(err) {
				continue
			}
			logger.Error("monitor socket failed", "error", err)
			return
		}

		u, err := decodeUpdate(frames)
		if err != nil {
			logger.Warn("dropping update", "error", err)
			continue
		}
		// Subscriptions match by prefix: "aao0" also receives "aao0_request".
		if u.PV != pv {
			continue
		}

		select {
		case out <- u:
		case <-ctx.Done():
			return
		case <-c.done:
			return
		}
	}
}

// Close stops all monitors and releases the command socket.
func (c *Client) Close() error {
	c.closeOne.Do(func() { close(c.done) })
	c.monitors.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.req == nil {
		return nil
	}
	err := c.req.Close()
	c.req = nil
	return err
}

func isAgain(err error) bool {
	return zmq.AsErrno(err) == zmq.Errno(syscall.EAGAIN)
}
