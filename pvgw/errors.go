// SPDX-License-Identifier: EPL-2.0

package pvgw

import "errors"

var (
	ErrRemote    = errors.New("gateway rejected request")
	ErrTimeout   = errors.New("gateway did not acknowledge in time")
	ErrMalformed = errors.New("malformed gateway message")
	ErrClosed    = errors.New("gateway client closed")
)
