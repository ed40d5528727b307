// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ik5/pbxdecode/audio"
	"github.com/ik5/pbxdecode/track"
)

const (
	DefaultFallback    = "mp3"
	DefaultChunkFrames = 1024
)

// Options wires an Engine. Registry, Locator, Opener and Sink are required.
type Options struct {
	Registry *Registry
	Locator  Locator
	Opener   Opener
	Sink     FrameSink
	// Control is shared with the controller. A new one is created when nil.
	Control *Control
	Logger  zerolog.Logger

	// Fallback names the plugin used for remote streams nothing else accepts.
	Fallback string
	// ChunkFrames is the number of frames per chunk pushed to the sink.
	ChunkFrames int
	// Output is the format plugins convert to. Zero fields keep the native value.
	Output audio.Format
}

// Engine runs decode sessions for commands posted on its Control.
type Engine struct {
	control     *Control
	registry    *Registry
	locator     Locator
	opener      Opener
	sink        FrameSink
	log         zerolog.Logger
	fallback    string
	chunkFrames int
	output      audio.Format
}

func NewEngine(opts Options) (*Engine, error) {
	switch {
	case opts.Registry == nil:
		return nil, fmt.Errorf("%w: registry", ErrMissingOption)
	case opts.Locator == nil:
		return nil, fmt.Errorf("%w: locator", ErrMissingOption)
	case opts.Opener == nil:
		return nil, fmt.Errorf("%w: opener", ErrMissingOption)
	case opts.Sink == nil:
		return nil, fmt.Errorf("%w: sink", ErrMissingOption)
	}

	e := &Engine{
		control:     opts.Control,
		registry:    opts.Registry,
		locator:     opts.Locator,
		opener:      opts.Opener,
		sink:        opts.Sink,
		log:         opts.Logger,
		fallback:    opts.Fallback,
		chunkFrames: opts.ChunkFrames,
		output:      opts.Output,
	}
	if e.control == nil {
		e.control = NewControl()
	}
	if e.fallback == "" {
		e.fallback = DefaultFallback
	}
	if e.chunkFrames <= 0 {
		e.chunkFrames = DefaultChunkFrames
	}
	return e, nil
}

func (e *Engine) Control() *Control { return e.control }

// Run serves commands until ctx is done. Cancelling ctx closes the Control.
func (e *Engine) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, e.control.Close)
	defer stop()

	e.log.Debug().Msg("decoder engine running")

	for {
		switch cmd := e.control.ObserveAndClearCommand(); cmd {
		case CommandStart, CommandSeek:
			e.runSession(ctx, cmd)
			e.control.finishSession()
		case CommandStop:
			e.control.acknowledge()
		default:
			if e.control.waitCommand() {
				continue
			}
			e.log.Debug().Msg("decoder engine stopped")
			if err := ctx.Err(); err != nil {
				return err
			}
			return ErrClosed
		}
	}
}

// Start runs the engine on its own goroutine. The channel receives the
// result of Run.
func (e *Engine) Start(ctx context.Context) <-chan error {
	errc := make(chan error, 1)
	go func() {
		errc <- e.Run(ctx)
	}()
	return errc
}

func (e *Engine) newSession(t *track.Track, seekPending bool) *Session {
	id := uuid.NewString()
	return &Session{
		id:          id,
		control:     e.control,
		sink:        e.sink,
		track:       t,
		log:         e.log.With().Str("session", id).Str("uri", t.URI).Logger(),
		output:      e.output,
		chunkFrames: e.chunkFrames,
		seekPending: seekPending,
	}
}

// runSession resolves, opens and decodes the next track. The sink is flushed
// exactly once on every path that got past the locator.
func (e *Engine) runSession(ctx context.Context, cmd Command) {
	t := e.control.CurrentTrack()
	if t == nil {
		e.log.Warn().Stringer("command", cmd).Msg("session without a track")
		e.control.setError(ErrorFileUnavailable)
		return
	}

	s := e.newSession(t, cmd == CommandSeek)

	uri, err := e.locator.Locate(t)
	if err != nil {
		s.log.Warn().Err(err).Msg("cannot locate track")
		e.control.setError(ErrorFileUnavailable)
		return
	}

	in, err := e.opener.Open(ctx, uri)
	if err != nil {
		s.log.Warn().Err(err).Str("locator", uri).Msg("cannot open input")
		e.control.setError(ErrorFileUnavailable)
		e.sink.Flush()
		return
	}
	s.input = in
	e.control.setDecoding()

	kind, closed := e.decode(s, uri, in)
	e.sink.Flush()

	if !closed {
		if err := in.Close(); err != nil {
			s.log.Debug().Err(err).Msg("closing input")
		}
	}

	if kind != ErrorNone {
		e.control.setError(kind)
		s.log.Warn().Stringer("error", kind).Msg("session failed")
		return
	}
	s.log.Debug().Dur("position", s.Position()).Msg("session finished")
}

// decode waits for in to become ready, selects a plugin and runs it.
// It reports whether in was closed on the way.
func (e *Engine) decode(s *Session, uri string, in InputStream) (ErrorKind, bool) {
	for !in.Ready() {
		if e.control.PollCommand() == CommandStop {
			_ = in.Close()
			return ErrorNone, true
		}
		if _, err := in.Buffer(); err != nil {
			s.log.Warn().Err(err).Msg("buffering input")
			return ErrorFileUnavailable, false
		}
	}
	if e.control.PollCommand() == CommandStop {
		_ = in.Close()
		return ErrorNone, true
	}

	if s.track.IsFile() {
		return e.decodeFile(s, track.FilePath(uri), in)
	}

	p, strategy := selectStreamPlugin(e.registry, e.fallback, uri, in)
	if p == nil {
		return ErrorUnsupportedType, false
	}
	s.log.Debug().Str("plugin", p.Name()).Str("strategy", string(strategy)).Msg("decoding stream")

	if !p.(StreamDecoder).DecodeStream(s, in) {
		return ErrorDecodeFailed, false
	}
	return ErrorNone, false
}

func (e *Engine) decodeFile(s *Session, path string, in InputStream) (ErrorKind, bool) {
	p := selectFilePlugin(e.registry, path, in)
	if p == nil {
		return ErrorUnsupportedType, false
	}
	s.log.Debug().Str("plugin", p.Name()).Msg("decoding file")

	if tag, err := track.ReadTag(path); err == nil {
		s.fileTag = tag
	} else {
		s.log.Debug().Err(err).Msg("reading file tags")
	}

	if fd, ok := p.(FileDecoder); ok {
		if err := in.Close(); err != nil {
			s.log.Debug().Err(err).Msg("closing input before file decode")
		}
		s.input = nil
		if !fd.DecodeFile(s, path) {
			return ErrorDecodeFailed, true
		}
		return ErrorNone, true
	}

	if !p.(StreamDecoder).DecodeStream(s, in) {
		return ErrorDecodeFailed, false
	}
	return ErrorNone, false
}
