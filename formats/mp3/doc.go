// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG audio layer III with github.com/hajimehoshi/go-mp3.
//
// # Supported Formats
//
// The decoder supports:
//   - MPEG audio layer III
//   - Constant and variable bitrates
//   - Files with a leading ID3v2 tag
//
// # Decoding
//
// Codec turns a reader into an audio.Source:
//
//	f, _ := os.Open("song.mp3")
//	src, err := mp3.Codec{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// # Output Format
//
// Output is always stereo 16-bit, converted to float32 in [-1,1]. The
// sample rate is that of the file, typically 44.1kHz or 48kHz. Use
// audio.Convert for anything else.
//
// # Seeking
//
// The source implements audio.PositionSetter and jumps straight to a frame
// when the underlying reader can seek. Over a live stream the seek fails.
//
// # Plugin
//
// Plugin registers the codec with the decoder engine:
//
//	reg, _ := decoder.NewRegistry(mp3.Plugin{})
//
// Probe accepts an ID3v2 tag at the start or a valid frame header within
// the first few kilobytes, so files with padding before the first frame
// are still recognized. mp3 is also the default fallback for remote streams
// nothing else identifies.
//
// # Limitations
//
//   - Layers I and II are not decoded
//   - MP3 writing is not supported
package mp3
