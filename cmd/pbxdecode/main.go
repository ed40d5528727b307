// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/ik5/pbxdecode"
	"github.com/ik5/pbxdecode/config"
	"github.com/ik5/pbxdecode/decoder"
	"github.com/ik5/pbxdecode/formats/wav"
	"github.com/ik5/pbxdecode/pipe"
	"github.com/ik5/pbxdecode/track"
)

// version is set via ldflags at build time
var version = "dev"

type Globals struct {
	Config   []string         `help:"Config files to load instead of the default search path." type:"existingfile"`
	LogLevel string           `help:"Override log_level from the config."`
	MusicDir string           `help:"Override music_directory from the config." type:"path"`
	Version  kong.VersionFlag `help:"Show version information."`
}

var CLI struct {
	Globals

	Decode   DecodeCmd   `cmd:"" help:"Decode tracks into 16-bit WAV files."`
	Plugins  PluginsCmd  `cmd:"" help:"List decoder plugins in selection order."`
	Handlers HandlersCmd `cmd:"" help:"List supported remote URL handlers."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("pbxdecode"),
		kong.Description("Decode local and remote audio through the decoder engine."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)

	err := ctx.Run(&CLI.Globals)
	ctx.FatalIfErrorf(err)
}

func (g *Globals) load() (*config.Config, zerolog.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if len(g.Config) > 0 {
		cfg, err = config.LoadFiles(g.Config...)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.MusicDir != "" {
		cfg.MusicDirectory = g.MusicDir
	}

	lvl, err := cfg.Level()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()
	return cfg, log, nil
}

type DecodeCmd struct {
	Tracks   []string `arg:"" name:"track" help:"Files or URLs to decode."`
	Out      string   `help:"Directory for the WAV files." type:"path" default:"."`
	Seek     string   `help:"Start position, e.g. 1m30s." default:""`
	Rate     int      `help:"Output sample rate (0 keeps the decoded rate)." default:"-1"`
	Channels int      `help:"Output channel count (0 keeps the decoded count)." default:"-1"`
}

func (c *DecodeCmd) Run(g *Globals) error {
	cfg, log, err := g.load()
	if err != nil {
		return err
	}
	if c.Rate >= 0 {
		cfg.Output.SampleRate = c.Rate
	}
	if c.Channels >= 0 {
		cfg.Output.Channels = c.Channels
	}

	start, err := parseStart(c.Seek)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.Out, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng, p, err := pbxdecode.NewEngine(cfg, log)
	if err != nil {
		return err
	}
	done := eng.Start(ctx)
	defer func() {
		stop()
		<-done
	}()

	ctrl := eng.Control()
	failed := 0

	for _, uri := range c.Tracks {
		if !track.HasScheme(uri) && !filepath.IsAbs(uri) && cfg.MusicDirectory == "" {
			if abs, err := filepath.Abs(uri); err == nil {
				uri = abs
			}
		}

		d, err := decodeOne(ctx, eng, p, track.New(uri), start)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			log.Error().Err(err).Str("track", uri).Msg("decode failed")
			failed++
			continue
		}
		if ctrl.SeekFailed() {
			log.Warn().Str("track", uri).Msg("seek not supported, decoded from the start")
		}

		out := filepath.Join(c.Out, outputName(uri))
		size, err := writeWAV(out, d)
		if err != nil {
			log.Error().Err(err).Str("file", out).Msg("writing wav")
			failed++
			continue
		}

		fmt.Printf("%s -> %s (%s, %s, %s)\n", uri, out, d.Format,
			d.Format.Duration(int64(len(d.Samples)/max(d.Format.Channels, 1))), humanize.IBytes(uint64(size)))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d tracks failed", failed, len(c.Tracks))
	}
	return nil
}

func decodeOne(ctx context.Context, eng *decoder.Engine, p *pipe.Pipe, t *track.Track, start startPos) (pbxdecode.Decoded, error) {
	ctrl := eng.Control()

	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		d   pbxdecode.Decoded
		err error
	}
	results := make(chan result, 1)
	go func() {
		d, err := pbxdecode.Drain(sessionCtx, p)
		results <- result{d, err}
	}()

	var err error
	if start.set {
		// From the stopped state this starts a session that seeks first.
		err = ctrl.Seek(t, start.at)
	} else {
		err = ctrl.Start(t)
	}
	if err == nil {
		err = ctrl.AwaitIdle()
	}
	cancel()

	r := <-results
	if err != nil {
		return r.d, err
	}
	if kind := ctrl.Error(); kind != decoder.ErrorNone {
		return r.d, kind.Err()
	}
	if !r.d.Ended {
		return r.d, r.err
	}
	return r.d, nil
}

type startPos struct {
	at  time.Duration
	set bool
}

func parseStart(s string) (startPos, error) {
	if s == "" {
		return startPos{}, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return startPos{}, fmt.Errorf("invalid --seek %q", s)
	}
	return startPos{at: d, set: d > 0}, nil
}

func outputName(uri string) string {
	name := uri
	if i := strings.IndexAny(name, "?#"); i >= 0 && track.HasScheme(name) {
		name = name[:i]
	}
	name = filepath.Base(strings.TrimRight(name, "/"))
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	if name == "" || name == "." || strings.Contains(name, ":") {
		name = "stream"
	}
	return name + ".wav"
}

func writeWAV(path string, d pbxdecode.Decoded) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	if err := wav.WriteWAV16(f, d.Format.SampleRate, max(d.Format.Channels, 1), d.Samples); err != nil {
		_ = f.Close()
		return 0, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return 0, err
	}
	return info.Size(), f.Close()
}

type PluginsCmd struct{}

func (PluginsCmd) Run(g *Globals) error {
	cfg, _, err := g.load()
	if err != nil {
		return err
	}

	reg, err := pbxdecode.DefaultRegistry(cfg.Decoder.Plugins...)
	if err != nil {
		return err
	}
	for _, p := range reg.Plugins() {
		fmt.Printf("%-8s %-18s suffixes=%s mime=%s\n",
			p.Name(), decoder.Capabilities(p), strings.Join(p.Suffixes(), ","), strings.Join(p.MimeTypes(), ","))
	}
	return nil
}

type HandlersCmd struct{}

func (HandlersCmd) Run(g *Globals) error {
	cfg, _, err := g.load()
	if err != nil {
		return err
	}
	return track.PrintSchemes(os.Stdout, cfg.Input.URLSchemes)
}
