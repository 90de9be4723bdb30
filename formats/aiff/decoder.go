// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/binp-dev/waveplay/audio"
	"github.com/binp-dev/waveplay/formats/internal/pcm"
	"github.com/go-audio/aiff"
)

type Decoder struct{}

// Decode parses the FORM header of r. 16, 24 and 32-bit big-endian PCM is
// supported. If r is an io.Closer, closing the source closes r.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcm.ReadSeeker(r)
	if err != nil {
		return nil, err
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotAiffFile, err)
		}
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	src, err := pcm.NewSource(dec, dec.Format(), int(dec.BitDepth))
	if err != nil {
		return nil, err
	}
	if c, ok := r.(io.Closer); ok {
		src.WithCloser(c)
	}
	return src, nil
}
