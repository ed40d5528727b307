// SPDX-License-Identifier: EPL-2.0

// Package pbxdecode wires the decoder engine to its standard collaborators.
//
// The engine itself lives in package decoder: a goroutine that waits for
// commands on a decoder.Control, opens the requested track, picks a plugin
// and pushes PCM chunks into a sink. This package supplies the usual
// pieces around it:
//   - DefaultRegistry with the built-in formats (mp3, vorbis, flac, wav, aiff)
//   - NewEngine, which builds the engine, an input opener, a locator and a
//     pipe from a config.Config
//   - Drain, a consumer that collects one session worth of chunks
//
// # Quick Start
//
//	cfg := config.Default()
//	eng, p, err := pbxdecode.NewEngine(cfg, zerolog.Nop())
//	if err != nil {
//	    return err
//	}
//	go func() { _ = eng.Run(ctx) }()
//
//	done := make(chan pbxdecode.Decoded, 1)
//	go func() {
//	    d, _ := pbxdecode.Drain(ctx, p)
//	    done <- d
//	}()
//
//	ctrl := eng.Control()
//	_ = ctrl.Start(track.New("song.flac"))
//	_ = ctrl.AwaitIdle()
//	d := <-done
//
// Cancelling ctx closes the control. Blocked controller calls then return
// decoder.ErrClosed and Run returns the context error.
//
// # Configuration
//
// NewEngine takes a config.Config, usually loaded with config.Load from the
// XDG config directories and then overridden by flags:
//
//	music_directory = "~/Music"
//	log_level       = "info"
//
//	[decoder]
//	plugins  = ["mp3", "vorbis", "flac", "wav", "aiff"]
//	fallback = "mp3"
//
//	[input]
//	http_timeout  = "10s"
//	rewind_buffer = 262144
//
//	[output]
//	sample_rate = 44100
//	channels    = 2
//
// The decoder.plugins list selects and orders the registry. An unknown name
// fails with ErrUnknownPlugin. The output section is empty by default, and a
// zero sample rate or channel count keeps the track's own value.
//
// # Formats
//
// Remote streams are matched by MIME type, then by URI suffix, then handed
// to the fallback plugin (mp3 by default). Local files are matched by
// suffix, probed by content, and the plugin's file decoder is used when it
// has one:
//
//	Plugin   Suffixes         Stream  File
//	mp3      mp3              yes     no
//	vorbis   ogg, oga         yes     no
//	flac     flac             yes     yes
//	wav      wav, wave        yes     yes
//	aiff     aif, aiff        yes     no
//
// # Consuming Output
//
// The pipe returned by NewEngine carries audio.Chunk values in order. A
// session produces an optional tag chunk, sample chunks, and a final chunk
// with End set. Drain gathers them:
//
//	d, err := pbxdecode.Drain(ctx, p)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(d.Format, len(d.Samples)/d.Format.Channels, "frames")
//
// The pipe is bounded. When it is full the engine waits, and each Pop wakes
// it again through the control.
//
// # Error Handling
//
// Controller calls return sentinel errors from package decoder, such as
// decoder.ErrBusy for a Start while a session is active. The outcome of a
// session is read afterwards:
//
//	if kind := ctrl.Error(); kind != decoder.ErrorNone {
//	    return kind.Err() // wraps decoder.ErrFileUnavailable and friends
//	}
package pbxdecode
