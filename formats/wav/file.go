// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/pbxdecode/audio"
)

// FileCodec decodes WAV through go-audio/wav, which indexes chunks by
// seeking and so needs an io.ReadSeeker.
type FileCodec struct{}

func (FileCodec) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		return StreamCodec{}.Decode(r)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, ErrOnlyPCMSupported
	}
	// go-audio reports 8-bit samples unsigned.
	if dec.BitDepth == 8 {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("wav: %w", err)
		}
		return StreamCodec{}.Decode(rs)
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedWavLayout
	}

	return audio.NewPCMSource(dec, format, int(dec.BitDepth), nil), nil
}
