// SPDX-License-Identifier: EPL-2.0

// Package input opens the byte sources the decoder engine reads from.
//
// An Opener implements decoder.Opener. Plain paths and "file://" URIs open
// as a File, and http:// and https:// URLs as an HTTP stream:
//
//	o := input.NewOpener(input.Options{
//	    HTTPTimeout: 5 * time.Second,
//	    Logger:      log,
//	})
//	in, err := o.Open(ctx, "http://radio.example/stream.mp3")
//
// URLs whose prefix is not listed in Options.Schemes fail with
// ErrUnsupportedScheme.
//
// # Local Files
//
// A File is always ready and freely seekable. Its MIME type is guessed from
// the extension.
//
// # HTTP Streams
//
// An HTTP stream takes its MIME type from Content-Type and its name from an
// icy-name header. It is ready once ReadyBytes are buffered or the body has
// ended. The first RewindBuffer bytes are kept so the engine can rewind
// after probing. Seeking anywhere else fails with ErrNotSeekable, and the
// stream reports itself as not seekable.
//
// A status outside 2xx fails with ErrHTTPStatus. Timeouts bound dialing,
// the TLS handshake and the wait for response headers but not the body,
// which may be an endless radio stream.
package input
