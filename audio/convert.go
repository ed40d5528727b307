// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
)

// Convert wraps src so that it produces out. Zero fields in out keep the
// value of src. Channels are mixed before the rate is changed.
func Convert(src Source, out Format) (Source, error) {
	if out.SampleRate < 0 || out.Channels < 0 {
		return nil, ErrInvalidFormat
	}

	if out.Channels != 0 && out.Channels != src.Channels() {
		mixer, err := NewChannelMixer(src, out.Channels)
		if err != nil {
			return nil, err
		}
		src = mixer
	}

	if out.SampleRate != 0 && out.SampleRate != src.SampleRate() {
		src = NewResampler(src, out.SampleRate)
	}

	return src, nil
}

// Skip reads and discards frames from src. Reaching the end of src is not an error.
func Skip(src Source, frames int64) error {
	channels := src.Channels()
	if channels <= 0 {
		return ErrInvalidFormat
	}

	buf := make([]float32, 4096-4096%channels)
	remaining := frames * int64(channels)
	empty := 0

	for remaining > 0 {
		want := int64(len(buf))
		if remaining < want {
			want = remaining
		}

		n, err := src.ReadSamples(buf[:want])
		remaining -= int64(n)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if n == 0 {
			empty++
			if empty >= emptyReadLimit {
				return nil
			}
		}
	}

	return nil
}
