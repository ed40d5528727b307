// SPDX-License-Identifier: EPL-2.0

package track

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// ReadTag reads the embedded metadata of a local file. Files without readable
// tags get a Tag whose title is the base name of the file.
func ReadTag(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	m, err := tag.ReadFrom(f)
	if err != nil {
		return &Tag{Title: name}, nil
	}

	title := m.Title()
	if title == "" {
		title = name
	}
	trackNo, _ := m.Track()

	return &Tag{
		Title:  title,
		Artist: m.Artist(),
		Album:  m.Album(),
		Track:  trackNo,
	}, nil
}
