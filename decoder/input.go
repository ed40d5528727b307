// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"context"
	"io"

	"github.com/ik5/pbxdecode/audio"
	"github.com/ik5/pbxdecode/track"
)

// InputStream is an open byte source for a locator.
type InputStream interface {
	io.ReadSeekCloser
	// Ready reports whether enough data has arrived to start probing.
	Ready() bool
	// Buffer pulls more data towards readiness and returns how many bytes it added.
	Buffer() (int, error)
	// MimeType is the content type announced by the source, or "".
	MimeType() string
	// Seekable reports whether arbitrary seeks are supported. Seeking back to
	// the start for probing works regardless.
	Seekable() bool
}

// TagSource is implemented by inputs that carry stream metadata.
type TagSource interface {
	Tag() *track.Tag
}

// Opener opens an input stream for a resolved locator.
type Opener interface {
	Open(ctx context.Context, uri string) (InputStream, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, uri string) (InputStream, error)

func (f OpenerFunc) Open(ctx context.Context, uri string) (InputStream, error) {
	return f(ctx, uri)
}

// Locator resolves a track to the locator handed to the Opener.
type Locator interface {
	Locate(t *track.Track) (string, error)
}

// FrameSink receives decoded chunks. Push must not block; it returns false
// when the sink is full. Flush marks the end of a session and always succeeds.
type FrameSink interface {
	Push(c audio.Chunk) bool
	Flush()
}

// sinkClearer is implemented by sinks that can drop buffered chunks after a seek.
type sinkClearer interface {
	Clear()
}
