// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"io"

	"github.com/ik5/pbxdecode/decoder"
)

const PluginName = "vorbis"

// Plugin is the decoder plugin for Ogg Vorbis.
type Plugin struct{}

func (Plugin) Name() string       { return PluginName }
func (Plugin) Suffixes() []string { return []string{"ogg", "oga"} }

func (Plugin) MimeTypes() []string {
	return []string{"audio/ogg", "application/ogg", "audio/vorbis", "audio/x-vorbis+ogg"}
}

// Probe accepts an Ogg page capture pattern.
func (Plugin) Probe(r io.Reader) bool {
	head := make([]byte, 4)
	if _, err := io.ReadFull(r, head); err != nil {
		return false
	}
	return string(head) == "OggS"
}

func (Plugin) DecodeStream(s *decoder.Session, in decoder.InputStream) bool {
	return decoder.DecodeStream(s, in, Codec{})
}
