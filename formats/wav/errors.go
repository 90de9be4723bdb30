// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"

	"github.com/binp-dev/waveplay/formats/internal/pcm"
)

var (
	ErrNotWavFile = errors.New("not a WAV file")
	ErrNotPCM     = errors.New("WAV data is not integer PCM")
	ErrBitDepth   = pcm.ErrBitDepth
)
