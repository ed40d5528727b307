// SPDX-License-Identifier: EPL-2.0

package track

import (
	"fmt"
	"path/filepath"
)

// FSLocator resolves tracks against a local music directory and a list of
// supported remote URL prefixes.
type FSLocator struct {
	MusicDir string
	Schemes  []string
}

// Locate returns the playable locator for t: an absolute filesystem path for
// local tracks, the URI itself for remote ones.
func (l FSLocator) Locate(t *Track) (string, error) {
	if t == nil || t.URI == "" {
		return "", ErrEmptyURI
	}

	if !t.IsFile() {
		schemes := l.Schemes
		if schemes == nil {
			schemes = DefaultSchemes
		}
		if !SupportedScheme(t.URI, schemes) {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, t.URI)
		}
		return t.URI, nil
	}

	path := FilePath(t.URI)
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	if l.MusicDir == "" {
		return "", fmt.Errorf("%w: %s", ErrNoMusicDirectory, path)
	}
	return filepath.Join(l.MusicDir, path), nil
}
