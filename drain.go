// SPDX-License-Identifier: EPL-2.0

package pbxdecode

import (
	"context"
	"fmt"

	"github.com/ik5/pbxdecode/audio"
	"github.com/ik5/pbxdecode/pipe"
	"github.com/ik5/pbxdecode/track"
)

// Decoded is what one session put into a pipe.
type Decoded struct {
	Samples []int16
	Format  audio.Format
	Tags    []*track.Tag
	// Ended is set when the session's end marker was read.
	Ended bool
}

// Drain pops chunks from p until the end marker of the current session.
// When ctx ends first, the chunks already queued are still collected and
// the partial result is returned with the context error. A format change
// in the middle of a session is reported as an error.
func Drain(ctx context.Context, p *pipe.Pipe) (Decoded, error) {
	var d Decoded

	for {
		c, err := p.Pop(ctx)
		if err != nil {
			return d, err
		}
		if c.End {
			d.Ended = true
			return d, nil
		}
		if c.Tag != nil {
			d.Tags = append(d.Tags, c.Tag)
		}
		if len(c.Samples) == 0 {
			continue
		}

		if !d.Format.Valid() {
			d.Format = c.Format
		} else if c.Format != d.Format {
			return d, fmt.Errorf("%w: %s then %s", audio.ErrInvalidFormat, d.Format, c.Format)
		}

		if cap(d.Samples)-len(d.Samples) < len(c.Samples) {
			grown := make([]int16, len(d.Samples), len(d.Samples)+max(len(c.Samples), cap(d.Samples)))
			copy(grown, d.Samples)
			d.Samples = grown
		}
		d.Samples = append(d.Samples, c.Samples...)
	}
}
