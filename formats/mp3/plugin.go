// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"errors"
	"io"

	"github.com/ik5/pbxdecode/decoder"
)

// PluginName is also the default fallback for unidentified remote streams.
const PluginName = "mp3"

// Plugin is the decoder plugin for MP3 streams and files.
type Plugin struct{}

func (Plugin) Name() string        { return PluginName }
func (Plugin) Suffixes() []string  { return []string{"mp3"} }
func (Plugin) MimeTypes() []string { return []string{"audio/mpeg", "audio/mp3", "audio/x-mpeg"} }

// probeWindow bounds how far into r Probe looks for a frame header.
const probeWindow = 4096

// Probe accepts an ID3v2 tag at the start of r or a valid MPEG audio frame
// header within the first probeWindow bytes. Files often carry padding or
// leftovers of other tags before the first frame.
func (Plugin) Probe(r io.Reader) bool {
	head := make([]byte, probeWindow)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false
	}
	head = head[:n]

	if bytes.HasPrefix(head, []byte("ID3")) {
		return true
	}
	for i := 0; i+3 <= len(head); i++ {
		if frameHeader(head[i : i+3]) {
			return true
		}
	}
	return false
}

// frameHeader reports whether h starts an MPEG audio frame header with a
// sync word, a defined version and layer, and usable bitrate and sample
// rate indexes.
func frameHeader(h []byte) bool {
	if h[0] != 0xFF || h[1]&0xE0 != 0xE0 {
		return false
	}
	version := (h[1] >> 3) & 0x03
	layer := (h[1] >> 1) & 0x03
	bitrate := h[2] >> 4
	rate := (h[2] >> 2) & 0x03
	return version != 0x01 && layer != 0x00 && bitrate != 0x00 && bitrate != 0x0F && rate != 0x03
}

func (Plugin) DecodeStream(s *decoder.Session, in decoder.InputStream) bool {
	return decoder.DecodeStream(s, in, Codec{})
}
