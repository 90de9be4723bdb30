// SPDX-License-Identifier: EPL-2.0

package dac

import "errors"

var (
	ErrSetMode      = errors.New("setting playback mode failed")
	ErrWrite        = errors.New("writing waveform failed")
	ErrSubscribe    = errors.New("subscribing to readiness failed")
	ErrReadyClosed  = errors.New("readiness channel closed")
	ErrChunkTooLong = errors.New("chunk exceeds device buffer")
	ErrEmptyChunk   = errors.New("chunk is empty")
)
