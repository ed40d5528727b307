// SPDX-License-Identifier: EPL-2.0

// Package flac decodes Free Lossless Audio Codec streams with github.com/mewkiz/flac.
//
// # Decoding
//
//	src, err := flac.Codec{}.Decode(r)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// Samples of any bit depth are normalized to float32 in [-1,1] and
// interleaved. A leading ID3v2 tag, as written by some taggers, is skipped
// before the "fLaC" marker.
//
// # Seeking
//
// Seekable inputs use the stream's seek table. SetPosition lands on the
// frame containing the target and drops the samples before it, so the
// first read after a seek starts exactly at the requested frame. An input
// that cannot seek fails with ErrNotSeekable.
//
// # Plugin
//
// Plugin decodes both remote streams and local files. For files it opens
// the path itself so the decoder gets a seekable reader.
//
// # Errors
//
// A stream without a usable STREAMINFO block fails with
// ErrInvalidStreamInfo.
package flac
