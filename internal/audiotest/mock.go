// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides generated PCM sources and a matching codec for tests.
package audiotest

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/ik5/pbxdecode/audio"
)

// Source generates frames from a waveform function. It implements
// audio.Source and audio.PositionSetter.
type Source struct {
	sampleRate int
	channels   int
	frames     int // total frames to generate
	pos        int // next frame
	waveform   func(frame, channel int) float32
}

func NewSource(sampleRate, channels, frames int, waveform func(frame, channel int) float32) *Source {
	return &Source{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

func NewSilence(sampleRate, channels, frames int) *Source {
	return NewConstant(sampleRate, channels, frames, 0)
}

func NewConstant(sampleRate, channels, frames int, value float32) *Source {
	return NewSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

func NewSine(sampleRate, channels, frames int, frequency float64) *Source {
	return NewSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewRamp produces frame/frames on every channel, so each sample tells
// where it came from.
func NewRamp(sampleRate, channels, frames int) *Source {
	return NewSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		return float32(frame) / float32(frames)
	})
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }
func (s *Source) Close() error    { return nil }

// Position is the index of the next frame.
func (s *Source) Position() int { return s.pos }

func (s *Source) SetPosition(frame int64) error {
	s.pos = int(min(max(frame, 0), int64(s.frames)))
	return nil
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	for f := range n {
		for c := range s.channels {
			dst[f*s.channels+c] = s.waveform(s.pos+f, c)
		}
	}
	s.pos += n

	return n * s.channels, nil
}

// Magic starts every stream produced by Encode.
const Magic = "MOCK"

const headerSize = len(Magic) + 10

var ErrBadHeader = errors.New("not a mock audio stream")

// Encode returns a header Codec decodes into a ramp with the given shape.
func Encode(sampleRate, channels, frames int) []byte {
	b := make([]byte, headerSize)
	copy(b, Magic)
	binary.LittleEndian.PutUint32(b[4:], uint32(sampleRate))
	binary.LittleEndian.PutUint16(b[8:], uint16(channels))
	binary.LittleEndian.PutUint32(b[10:], uint32(frames))
	return b
}

// Codec decodes streams written by Encode.
type Codec struct{}

func (Codec) Decode(r io.Reader) (audio.Source, error) {
	b := make([]byte, headerSize)
	if _, err := io.ReadFull(r, b); err != nil || string(b[:4]) != Magic {
		return nil, ErrBadHeader
	}

	rate := int(binary.LittleEndian.Uint32(b[4:]))
	channels := int(binary.LittleEndian.Uint16(b[8:]))
	frames := int(binary.LittleEndian.Uint32(b[10:]))
	if rate <= 0 || channels <= 0 {
		return nil, ErrBadHeader
	}

	return NewRamp(rate, channels, frames), nil
}
