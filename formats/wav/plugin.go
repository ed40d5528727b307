// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"io"
	"os"

	"github.com/ik5/pbxdecode/decoder"
)

const PluginName = "wav"

// Plugin decodes RIFF/WAVE from streams and local files.
type Plugin struct{}

func (Plugin) Name() string       { return PluginName }
func (Plugin) Suffixes() []string { return []string{"wav", "wave"} }

func (Plugin) MimeTypes() []string {
	return []string{"audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave"}
}

func (Plugin) Probe(r io.Reader) bool {
	head := make([]byte, 12)
	if _, err := io.ReadFull(r, head); err != nil {
		return false
	}
	return bytes.Equal(head[:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WAVE"))
}

func (Plugin) DecodeStream(s *decoder.Session, in decoder.InputStream) bool {
	return decoder.DecodeStream(s, in, StreamCodec{})
}

func (Plugin) DecodeFile(s *decoder.Session, path string) bool {
	f, err := os.Open(path)
	if err != nil {
		s.Logger().Warn().Err(err).Msg("cannot open wav file")
		return false
	}
	defer func() { _ = f.Close() }()

	return decoder.DecodeStream(s, f, FileCodec{})
}
