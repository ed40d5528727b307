// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes RIFF/WAVE PCM audio.
//
// # Codecs
//
// Two codecs are provided. StreamCodec walks the chunk list sequentially and
// works on any reader, including HTTP bodies with a placeholder data size.
// FileCodec uses github.com/go-audio/wav and needs a seekable reader. The
// plugin uses it for local files.
//
//	src, err := wav.StreamCodec{}.Decode(r)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// FileCodec hands 8-bit files to StreamCodec, since go-audio reports those
// samples unsigned.
//
// # Supported Formats
//
// The decoder supports:
//   - 8-bit unsigned and 16, 24 and 32-bit signed integer PCM
//   - Any channel count and sample rate
//   - Unknown chunks before and after "data", which are skipped
//
// Floating-point and compressed WAV fail with ErrOnlyPCMSupported.
//
// # Writing
//
// WriteWAV16 produces a canonical 44-byte header followed by interleaved
// samples:
//
//	err := wav.WriteWAV16(f, 44100, 2, samples)
//
// The decode command uses it to store what the engine produced:
//
//	d, _ := pbxdecode.Drain(ctx, p)
//	_ = wav.WriteWAV16(out, d.Format.SampleRate, d.Format.Channels, d.Samples)
//
// # Errors
//
// Inputs without a RIFF/WAVE header fail with ErrNotWavFile. A format chunk
// that is missing or inconsistent fails with ErrUnsupportedWavLayout.
package wav
