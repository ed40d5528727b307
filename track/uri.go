// SPDX-License-Identifier: EPL-2.0

package track

import (
	"fmt"
	"io"
	"strings"
)

const fileScheme = "file://"

// DefaultSchemes are the remote URL prefixes handled when nothing else is configured.
var DefaultSchemes = []string{"http://", "https://"}

// HasScheme reports whether uri carries a "scheme://" prefix.
func HasScheme(uri string) bool {
	return strings.Contains(uri, "://")
}

// FilePath returns uri with a leading "file://" removed.
func FilePath(uri string) string {
	return strings.TrimPrefix(uri, fileScheme)
}

// SupportedScheme reports whether uri starts with one of the given remote URL prefixes.
func SupportedScheme(uri string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(uri, prefix) {
			return true
		}
	}
	return false
}

// Suffix returns the lower-cased filename suffix of uri without the dot.
// Query strings and fragments are ignored for URIs with a scheme.
// It returns "" if the last path element has no suffix.
func Suffix(uri string) string {
	if HasScheme(uri) {
		if i := strings.IndexAny(uri, "?#"); i >= 0 {
			uri = uri[:i]
		}
	}

	dot := strings.LastIndexByte(uri, '.')
	if dot < 0 || strings.LastIndexByte(uri, '/') > dot {
		return ""
	}
	return strings.ToLower(uri[dot+1:])
}

// PrintSchemes writes one "handler: <prefix>" line per prefix.
func PrintSchemes(w io.Writer, prefixes []string) error {
	for _, prefix := range prefixes {
		if _, err := fmt.Fprintf(w, "handler: %s\n", prefix); err != nil {
			return err
		}
	}
	return nil
}
