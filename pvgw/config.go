// SPDX-License-Identifier: EPL-2.0

package pvgw

import (
	"errors"
	"time"
)

// Config locates the gateway. Command is the REQ/REP endpoint that accepts
// puts, Monitor the PUB endpoint that publishes PV updates.
type Config struct {
	Command string
	Monitor string
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Command: "tcp://localhost:5064",
		Monitor: "tcp://localhost:5065",
		Timeout: 5 * time.Second,
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Command == "" {
		errs = append(errs, errors.New("command endpoint is empty"))
	}
	if c.Monitor == "" {
		errs = append(errs, errors.New("monitor endpoint is empty"))
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	return errors.Join(errs...)
}
