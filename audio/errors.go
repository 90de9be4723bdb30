// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize  = errors.New("dst size must be multiple of channels")
	ErrInvalidRate     = errors.New("sample rate must be positive and finite")
	ErrUpsampling      = errors.New("source rate must not be lower than target rate")
	ErrInvalidChunkLen = errors.New("chunk length must be at least 1")
	ErrInvalidCount    = errors.New("sample count must be positive")
)
