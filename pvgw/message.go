// SPDX-License-Identifier: EPL-2.0

package pvgw

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

const (
	opPut    = "put"
	opGet    = "get"
	replyOK  = "ok"
	replyErr = "error"
)

// Update is one value published for a monitored PV.
type Update struct {
	PV        string
	Value     json.RawMessage
	Timestamp time.Time
}

type updateBody struct {
	Value     json.RawMessage `json:"value"`
	Timestamp float64         `json:"timestamp"`
}

// Float decodes the value as a number. Booleans read as 0 and 1.
func (u Update) Float() (float64, error) {
	var v any
	if err := json.Unmarshal(u.Value, &v); err != nil {
		return 0, fmt.Errorf("%w: value of %s: %w", ErrMalformed, u.PV, err)
	}
	switch v := v.(type) {
	case float64:
		return v, nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("%w: value of %s is not a number: %s", ErrMalformed, u.PV, u.Value)
}

// Bool decodes the value as a flag. Numbers are true when non-zero, which is
// how integer request records report readiness.
func (u Update) Bool() (bool, error) {
	f, err := u.Float()
	if err != nil {
		return false, err
	}
	return f != 0, nil
}

func encodePut(pv string, value any) ([]string, error) {
	if pv == "" {
		return nil, fmt.Errorf("%w: empty PV name", ErrMalformed)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding value for %s: %w", pv, err)
	}
	return []string{opPut, pv, string(data)}, nil
}

func encodeGet(pv string) ([]string, error) {
	if pv == "" {
		return nil, fmt.Errorf("%w: empty PV name", ErrMalformed)
	}
	return []string{opGet, pv}, nil
}

// decodeGetReply parses ["ok", body] where body has the same shape as a
// monitor update.
func decodeGetReply(pv string, frames []string) (Update, error) {
	if err := decodeReply(frames); err != nil {
		return Update{}, err
	}
	if len(frames) != 2 {
		return Update{}, fmt.Errorf("%w: get reply has %d frames", ErrMalformed, len(frames))
	}
	return decodeUpdate([]string{pv, frames[1]})
}

func decodeReply(frames []string) error {
	if len(frames) == 0 {
		return fmt.Errorf("%w: empty reply", ErrMalformed)
	}
	switch frames[0] {
	case replyOK:
		return nil
	case replyErr:
		msg := "no reason given"
		if len(frames) > 1 {
			msg = frames[1]
		}
		return fmt.Errorf("%w: %s", ErrRemote, msg)
	}
	return fmt.Errorf("%w: unknown reply %q", ErrMalformed, frames[0])
}

func encodeUpdate(u Update) ([]string, error) {
	ts := float64(u.Timestamp.UnixNano()) / 1e9
	data, err := json.Marshal(updateBody{Value: u.Value, Timestamp: ts})
	if err != nil {
		return nil, err
	}
	return []string{u.PV, string(data)}, nil
}

func decodeUpdate(frames []string) (Update, error) {
	if len(frames) != 2 {
		return Update{}, fmt.Errorf("%w: update has %d frames", ErrMalformed, len(frames))
	}
	var body updateBody
	if err := json.Unmarshal([]byte(frames[1]), &body); err != nil {
		return Update{}, fmt.Errorf("%w: update for %s: %w", ErrMalformed, frames[0], err)
	}
	if len(body.Value) == 0 {
		return Update{}, fmt.Errorf("%w: update for %s has no value", ErrMalformed, frames[0])
	}
	sec, frac := math.Modf(body.Timestamp)
	return Update{
		PV:        frames[0],
		Value:     body.Value,
		Timestamp: time.Unix(int64(sec), int64(frac*1e9)),
	}, nil
}
