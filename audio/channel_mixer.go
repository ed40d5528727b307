// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
)

// ChannelMixer converts the channel layout of a source. It averages any
// layout down to mono and duplicates mono into any layout.
type ChannelMixer struct {
	src      Source
	channels int
	tmp      []float32
}

func NewChannelMixer(src Source, channels int) (*ChannelMixer, error) {
	srcChannels := src.Channels()
	if channels <= 0 || srcChannels <= 0 {
		return nil, ErrInvalidFormat
	}
	if channels != srcChannels && channels != 1 && srcChannels != 1 {
		return nil, fmt.Errorf("%w: %d to %d", ErrUnsupportedChannels, srcChannels, channels)
	}

	return &ChannelMixer{src: src, channels: channels}, nil
}

// NewMonoMixer averages all channels of src into one.
func NewMonoMixer(src Source) *ChannelMixer {
	return &ChannelMixer{src: src, channels: 1}
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.channels }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }
func (m *ChannelMixer) Close() error    { return m.src.Close() }

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	srcChannels := m.src.Channels()
	if srcChannels == m.channels {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.channels
	need := frames * srcChannels
	if cap(m.tmp) < need {
		m.tmp = make([]float32, max(need, 8192))
	}
	tmp := m.tmp[:need]

	n, err := m.src.ReadSamples(tmp)
	frames = n / srcChannels
	if frames == 0 {
		return 0, err
	}

	if m.channels == 1 {
		inv := float32(1.0) / float32(srcChannels)
		for f := range frames {
			base := f * srcChannels
			sum := float32(0)
			for c := range srcChannels {
				sum += tmp[base+c]
			}
			dst[f] = sum * inv
		}
		return frames, err
	}

	for f := range frames {
		v := tmp[f]
		for c := range m.channels {
			dst[f*m.channels+c] = v
		}
	}
	return frames * m.channels, err
}
