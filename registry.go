// SPDX-License-Identifier: EPL-2.0

package waveplay

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/binp-dev/waveplay/audio"
	"github.com/binp-dev/waveplay/formats/aiff"
	"github.com/binp-dev/waveplay/formats/mp3"
	"github.com/binp-dev/waveplay/formats/vorbis"
	"github.com/binp-dev/waveplay/formats/wav"
)

// ErrUnknownFormat is returned by OpenFile when no decoder matches the file extension.
var ErrUnknownFormat = errors.New("unknown audio format")

// DefaultRegistry returns a registry with every decoder shipped in formats/.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("vorbis", vorbis.Decoder{})
	return r
}

// OpenFile decodes path with the DefaultRegistry decoder for its extension.
// Closing the returned source closes the file.
func OpenFile(path string) (audio.Source, error) {
	return OpenFileWith(DefaultRegistry(), path)
}

// OpenFileWith is OpenFile with a caller supplied registry.
func OpenFileWith(reg *audio.Registry, path string) (audio.Source, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	dec, ok := reg.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%s: %w %q (known: %s)", path, ErrUnknownFormat, ext, strings.Join(reg.Formats(), ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return src, nil
}
