// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bufio"
	"io"
	"os"

	"github.com/ik5/pbxdecode/decoder"
)

const PluginName = "flac"

// Plugin decodes native FLAC from streams and local files.
type Plugin struct{}

func (Plugin) Name() string        { return PluginName }
func (Plugin) Suffixes() []string  { return []string{"flac"} }
func (Plugin) MimeTypes() []string { return []string{"audio/flac", "audio/x-flac"} }

// Probe accepts the "fLaC" marker, optionally behind an ID3v2 tag.
func (Plugin) Probe(r io.Reader) bool {
	br := bufio.NewReader(r)
	if err := discardID3v2(br); err != nil {
		return false
	}
	marker, err := br.Peek(4)
	return err == nil && string(marker) == "fLaC"
}

func (Plugin) DecodeStream(s *decoder.Session, in decoder.InputStream) bool {
	return decoder.DecodeStream(s, in, Codec{})
}

func (Plugin) DecodeFile(s *decoder.Session, path string) bool {
	f, err := os.Open(path)
	if err != nil {
		s.Logger().Warn().Err(err).Msg("cannot open flac file")
		return false
	}
	defer func() { _ = f.Close() }()

	return decoder.DecodeStream(s, f, Codec{})
}
