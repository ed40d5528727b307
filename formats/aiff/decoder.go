// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/pbxdecode/audio"
)

// MaxBuffered caps how much of a non-seekable input is read into memory.
const MaxBuffered = 256 << 20

type Codec struct{}

// Decode needs random access. Readers that cannot seek are read fully into
// memory first, up to MaxBuffered bytes.
func (Codec) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(io.LimitReader(r, MaxBuffered+1))
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		if len(data) > MaxBuffered {
			return nil, ErrTooLarge
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	return audio.NewPCMSource(dec, format, int(dec.BitDepth), nil), nil
}
