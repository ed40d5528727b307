// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"io"

	"github.com/ik5/pbxdecode/track"
)

// Strategy names the rule that picked a plugin.
type Strategy string

const (
	StrategyMimeType Strategy = "mime"
	StrategySuffix   Strategy = "suffix"
	StrategyFallback Strategy = "fallback"
)

// selectPlugin returns the first candidate accepted, or nil.
func selectPlugin(candidates []Plugin, accept func(Plugin) bool) Plugin {
	for _, p := range candidates {
		if accept(p) {
			return p
		}
	}
	return nil
}

// probe runs p's Prober, if any, and rewinds in afterwards. Plugins without
// a Prober accept everything. A failed rewind rejects the plugin.
func probe(p Plugin, in InputStream) bool {
	pr, ok := p.(Prober)
	if !ok {
		return true
	}

	accepted := pr.Probe(in)
	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return false
	}
	return accepted
}

// selectStreamPlugin picks a stream decoder for a remote input: first by the
// announced MIME type, then by the suffix of uri, then the fallback plugin,
// which is used without probing.
func selectStreamPlugin(reg *Registry, fallback, uri string, in InputStream) (Plugin, Strategy) {
	accept := func(p Plugin) bool {
		_, ok := p.(StreamDecoder)
		return ok && probe(p, in)
	}

	if p := selectPlugin(reg.ByMimeType(in.MimeType()), accept); p != nil {
		return p, StrategyMimeType
	}
	if p := selectPlugin(reg.BySuffix(track.Suffix(uri)), accept); p != nil {
		return p, StrategySuffix
	}
	if p := reg.ByName(fallback); p != nil {
		if _, ok := p.(StreamDecoder); ok {
			return p, StrategyFallback
		}
	}
	return nil, ""
}

// selectFilePlugin picks a decoder for a local file by suffix. The probe runs
// before the capability check.
func selectFilePlugin(reg *Registry, path string, in InputStream) Plugin {
	return selectPlugin(reg.BySuffix(track.Suffix(path)), func(p Plugin) bool {
		if !probe(p, in) {
			return false
		}
		c := Capabilities(p)
		return c.Has(CanDecodeFile) || c.Has(CanDecodeStream)
	})
}
