// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"io"
	"strings"
)

// Plugin describes a decoding strategy. What a plugin can do is expressed by
// the optional interfaces Prober, StreamDecoder and FileDecoder.
type Plugin interface {
	Name() string
	// Suffixes are lower-case filename suffixes without the dot.
	Suffixes() []string
	MimeTypes() []string
}

// Prober is implemented by plugins able to check whether they can handle an
// input before committing to it. The engine rewinds the input afterwards.
type Prober interface {
	Probe(r io.Reader) bool
}

// StreamDecoder decodes from an open input stream. It returns false on failure.
type StreamDecoder interface {
	DecodeStream(s *Session, in InputStream) bool
}

// FileDecoder decodes a local file by path. The engine closes its own input
// before calling it. It returns false on failure.
type FileDecoder interface {
	DecodeFile(s *Session, path string) bool
}

// Capability is a bit set of the optional plugin interfaces.
type Capability uint8

const (
	CanProbe Capability = 1 << iota
	CanDecodeStream
	CanDecodeFile
)

// Capabilities returns the interfaces p implements.
func Capabilities(p Plugin) Capability {
	var c Capability
	if _, ok := p.(Prober); ok {
		c |= CanProbe
	}
	if _, ok := p.(StreamDecoder); ok {
		c |= CanDecodeStream
	}
	if _, ok := p.(FileDecoder); ok {
		c |= CanDecodeFile
	}
	return c
}

func (c Capability) Has(o Capability) bool { return c&o == o }

func (c Capability) String() string {
	var parts []string
	if c.Has(CanProbe) {
		parts = append(parts, "probe")
	}
	if c.Has(CanDecodeStream) {
		parts = append(parts, "stream")
	}
	if c.Has(CanDecodeFile) {
		parts = append(parts, "file")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}
