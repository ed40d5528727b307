// SPDX-License-Identifier: EPL-2.0

package pbxdecode

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ik5/pbxdecode/audio"
	"github.com/ik5/pbxdecode/config"
	"github.com/ik5/pbxdecode/decoder"
	"github.com/ik5/pbxdecode/formats/aiff"
	"github.com/ik5/pbxdecode/formats/flac"
	"github.com/ik5/pbxdecode/formats/mp3"
	"github.com/ik5/pbxdecode/formats/vorbis"
	"github.com/ik5/pbxdecode/formats/wav"
	"github.com/ik5/pbxdecode/input"
	"github.com/ik5/pbxdecode/pipe"
	"github.com/ik5/pbxdecode/track"
)

// Plugins returns the built-in plugins in their standard order.
func Plugins() []decoder.Plugin {
	return []decoder.Plugin{
		mp3.Plugin{},
		vorbis.Plugin{},
		flac.Plugin{},
		wav.Plugin{},
		aiff.Plugin{},
	}
}

// DefaultRegistry returns a registry of the built-in plugins. With names it
// holds only those plugins, in the order given.
func DefaultRegistry(names ...string) (*decoder.Registry, error) {
	all := Plugins()
	if len(names) == 0 {
		return decoder.NewRegistry(all...)
	}

	byName := make(map[string]decoder.Plugin, len(all))
	for _, p := range all {
		byName[p.Name()] = p
	}

	selected := make([]decoder.Plugin, 0, len(names))
	for _, name := range names {
		p, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, name)
		}
		selected = append(selected, p)
	}
	return decoder.NewRegistry(selected...)
}

// NewEngine builds an engine from cfg. Decoded chunks go to the returned
// pipe, whose consumer reads wake the engine when it waits for room.
func NewEngine(cfg *config.Config, log zerolog.Logger) (*decoder.Engine, *pipe.Pipe, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	reg, err := DefaultRegistry(cfg.Decoder.Plugins...)
	if err != nil {
		return nil, nil, err
	}

	opener := input.NewOpener(input.Options{
		Schemes:      cfg.Input.URLSchemes,
		HTTPTimeout:  cfg.Input.HTTPTimeout,
		RewindBuffer: cfg.Input.RewindBuffer,
		ReadyBytes:   cfg.Input.ReadyBytes,
		Logger:       log.With().Str("component", "input").Logger(),
	})

	p := pipe.New(cfg.Pipe.Capacity)

	eng, err := decoder.NewEngine(decoder.Options{
		Registry:    reg,
		Locator:     track.FSLocator{MusicDir: cfg.MusicDirectory, Schemes: cfg.Input.URLSchemes},
		Opener:      opener,
		Sink:        p,
		Logger:      log.With().Str("component", "decoder").Logger(),
		Fallback:    cfg.Decoder.Fallback,
		ChunkFrames: cfg.Pipe.ChunkFrames,
		Output: audio.Format{
			SampleRate: cfg.Output.SampleRate,
			Channels:   cfg.Output.Channels,
		},
	})
	if err != nil {
		return nil, nil, err
	}

	p.SetNotify(eng.Control().SignalEngine)
	return eng, p, nil
}
