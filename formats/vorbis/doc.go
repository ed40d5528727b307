// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis with github.com/jfreymuth/oggvorbis.
//
// # Decoding
//
//	src, err := vorbis.Codec{}.Decode(r)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// Samples are float32 in [-1,1], interleaved:
//
//	[L0, R0, L1, R1, ...]
//
// Every read returns whole frames, so a buffer whose length is not a
// multiple of the channel count is only partly filled.
//
// # Seeking
//
// Seeking uses the library's granule search and so needs a seekable input.
// Over a live HTTP stream the seek fails and the engine reports it to the
// controller as ErrSeekFailed.
//
// # Plugin
//
// Plugin matches the ogg and oga suffixes and the common Ogg audio MIME
// types. Probe accepts the "OggS" page capture pattern, which any Ogg
// stream starts with. A non-Vorbis Ogg stream passes the probe and the
// session then ends with a decode failure.
package vorbis
