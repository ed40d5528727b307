// SPDX-License-Identifier: EPL-2.0

// Package decoder runs the decoding side of a player.
//
// A Control is shared by one controller and one Engine. The controller posts
// Start, Stop and Seek commands and waits on the Control. The Engine runs on
// its own goroutine, observes each command and runs a session: it resolves
// the track with a Locator, opens it with an Opener, waits until the input is
// ready, picks a Plugin and lets it push Chunks into a FrameSink.
//
// # Engine
//
// An Engine needs a Registry, a Locator, an Opener and a FrameSink:
//
//	eng, err := decoder.NewEngine(decoder.Options{
//	    Registry: reg,
//	    Locator:  track.FSLocator{MusicDir: "/srv/music"},
//	    Opener:   input.NewOpener(input.Options{}),
//	    Sink:     pipe.New(0),
//	    Fallback: "mp3",
//	})
//	if err != nil {
//	    return err
//	}
//	errc := eng.Start(ctx)
//
// Start runs Run on a new goroutine. Cancelling ctx closes the Control and
// ends Run once the current session has stopped.
//
// # Commands and States
//
// The engine is in one of three states:
//
//	Stopped --(Start or Seek taken)--> Starting --(input open)--> Decoding
//	Starting, Decoding --(session ends)--> Stopped
//
// The engine takes a Start in the same step that makes its track current
// and leaves Stopped, so a second Start is refused with ErrBusy from the
// moment the first one is accepted. CurrentTrack is non-nil exactly while
// the state is not Stopped.
//
//	ctrl := eng.Control()
//	if err := ctrl.Start(track.New("a.flac")); err != nil {
//	    return err
//	}
//	if err := ctrl.Seek(nil, 30*time.Second); errors.Is(err, decoder.ErrSeekFailed) {
//	    // the input cannot seek
//	}
//	_ = ctrl.Stop()
//
// Start returns once the engine has taken the command, Seek once a plugin
// has acknowledged or refused it, and Stop once the engine is idle. Request
// and RequestSeek post a command without waiting. A Stop is refused while a
// Start or Seek is still pending, and the blocking Stop waits for the
// engine to take it first.
//
// # Plugin Selection
//
// Plugins are selected per session. Remote streams try the plugins declaring
// the announced MIME type, then those declaring the URI suffix, then a named
// fallback. Local files try the plugins declaring the suffix and prefer a
// FileDecoder over a StreamDecoder. Plugins implementing Prober are asked
// first and the input is rewound after each probe. Whether a track is local
// is decided by the track itself, so a Locator may return "file://" URIs.
//
// # Writing Plugins
//
// A plugin implements Plugin plus at least one of StreamDecoder and
// FileDecoder. Most plugins wrap an audio.Codec with DecodeStream:
//
//	type Plugin struct{}
//
//	func (Plugin) Name() string        { return "wav" }
//	func (Plugin) Suffixes() []string  { return []string{"wav"} }
//	func (Plugin) MimeTypes() []string { return []string{"audio/wav"} }
//
//	func (Plugin) DecodeStream(s *decoder.Session, in decoder.InputStream) bool {
//	    return decoder.DecodeStream(s, in, wav.StreamCodec{})
//	}
//
// Plugins cooperate with cancellation by polling Session.Command.
// Session.Submit blocks while the sink is full and returns early when a
// command arrives. A Seek is handled by reading SeekWhere and then calling
// CommandFinished, or SeekError when the input cannot seek.
//
// # Error Handling
//
// Controller methods return the sentinel errors ErrBusy, ErrNoTrack,
// ErrInvalidCommand, ErrSeekFailed and ErrClosed. The outcome of a session
// is an ErrorKind read from Control.Error, and ErrorKind.Err maps it to
// ErrFileUnavailable, ErrUnsupportedType or ErrDecodeFailed.
package decoder
