// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"time"

	"github.com/ik5/pbxdecode/track"
)

// Chunk is one unit of decoded output handed to the consumer.
//
// A chunk either carries interleaved signed 16-bit samples, a tag update
// (Tag != nil, no samples), or marks the end of a session (End).
type Chunk struct {
	Format  Format
	Samples []int16
	// Time is the stream position of the first frame.
	Time time.Duration
	Tag  *track.Tag
	End  bool
}

// Frames returns the number of frames carried by the chunk.
func (c Chunk) Frames() int {
	if c.Format.Channels <= 0 {
		return 0
	}
	return len(c.Samples) / c.Format.Channels
}

// Duration returns the play time of the samples in the chunk.
func (c Chunk) Duration() time.Duration {
	return c.Format.Duration(int64(c.Frames()))
}
