// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"errors"

	"github.com/binp-dev/waveplay/formats/internal/pcm"
)

var (
	ErrNotAiffFile = errors.New("not an AIFF file")
	ErrBitDepth    = pcm.ErrBitDepth
)
