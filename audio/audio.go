// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Codec constructs a Source from an input reader.
type Codec interface {
	Decode(r io.Reader) (Source, error)
}

// PositionSetter is implemented by sources able to jump to a frame without
// decoding everything before it.
type PositionSetter interface {
	SetPosition(frame int64) error
}

// Format describes interleaved PCM. A zero field means "unspecified".
type Format struct {
	SampleRate int
	Channels   int
}

// FormatOf returns the format produced by src.
func FormatOf(src Source) Format {
	return Format{SampleRate: src.SampleRate(), Channels: src.Channels()}
}

// Valid reports whether both fields are set and positive.
func (f Format) Valid() bool {
	return f.SampleRate > 0 && f.Channels > 0
}

// Frames converts a duration to a frame count at the format's sample rate.
func (f Format) Frames(d time.Duration) int64 {
	return int64(d.Seconds() * float64(f.SampleRate))
}

// Duration converts a frame count to a duration at the format's sample rate.
func (f Format) Duration(frames int64) time.Duration {
	if f.SampleRate <= 0 {
		return 0
	}
	return time.Duration(frames) * time.Second / time.Duration(f.SampleRate)
}

func (f Format) String() string {
	return fmt.Sprintf("%dHz/%dch", f.SampleRate, f.Channels)
}
