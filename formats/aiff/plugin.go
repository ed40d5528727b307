// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"io"

	"github.com/ik5/pbxdecode/decoder"
)

const PluginName = "aiff"

// Plugin decodes AIFF streams. Local files reach it through the stream path
// since the input is already seekable.
type Plugin struct{}

func (Plugin) Name() string        { return PluginName }
func (Plugin) Suffixes() []string  { return []string{"aif", "aiff"} }
func (Plugin) MimeTypes() []string { return []string{"audio/aiff", "audio/x-aiff"} }

func (Plugin) Probe(r io.Reader) bool {
	head := make([]byte, 12)
	if _, err := io.ReadFull(r, head); err != nil {
		return false
	}
	if !bytes.Equal(head[:4], []byte("FORM")) {
		return false
	}
	kind := string(head[8:12])
	return kind == "AIFF" || kind == "AIFC"
}

func (Plugin) DecodeStream(s *decoder.Session, in decoder.InputStream) bool {
	return decoder.DecodeStream(s, in, Codec{})
}
