// SPDX-License-Identifier: EPL-2.0

package adc

import "errors"

var (
	ErrChannel         = errors.New("channel out of range")
	ErrInvalidChannels = errors.New("channel count must be positive")
)
