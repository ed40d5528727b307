// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry holds plugins in registration order. Lookups return candidates in
// that order, which is the order the engine tries them in.
type Registry struct {
	mtx     sync.RWMutex
	plugins []Plugin
	byName  map[string]Plugin
}

func NewRegistry(plugins ...Plugin) (*Registry, error) {
	r := &Registry{byName: make(map[string]Plugin)}
	for _, p := range plugins {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) Register(p Plugin) error {
	if p == nil || p.Name() == "" {
		return ErrInvalidPlugin
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.byName[p.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePlugin, p.Name())
	}
	r.plugins = append(r.plugins, p)
	r.byName[p.Name()] = p
	return nil
}

// Plugins returns every registered plugin.
func (r *Registry) Plugins() []Plugin {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return slices.Clone(r.plugins)
}

func (r *Registry) ByName(name string) Plugin {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return r.byName[name]
}

// ByMimeType returns the plugins declaring mime. Parameters such as
// "; charset=" are ignored and the comparison is case-insensitive.
func (r *Registry) ByMimeType(mime string) []Plugin {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	mime = strings.ToLower(strings.TrimSpace(mime))
	if mime == "" {
		return nil
	}

	return r.filter(func(p Plugin) bool {
		return slices.ContainsFunc(p.MimeTypes(), func(m string) bool {
			return strings.EqualFold(m, mime)
		})
	})
}

// BySuffix returns the plugins declaring suffix, compared case-insensitively.
func (r *Registry) BySuffix(suffix string) []Plugin {
	if suffix == "" {
		return nil
	}

	return r.filter(func(p Plugin) bool {
		return slices.ContainsFunc(p.Suffixes(), func(s string) bool {
			return strings.EqualFold(s, suffix)
		})
	})
}

func (r *Registry) filter(match func(Plugin) bool) []Plugin {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	var out []Plugin
	for _, p := range r.plugins {
		if match(p) {
			out = append(out, p)
		}
	}
	return out
}
