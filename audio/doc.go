// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM building blocks shared by the codecs and
// the decoder engine.
//
// This package contains:
//   - Source and Codec, the interfaces every format package implements
//   - Format, a sample rate and channel count with frame/time conversions
//   - ChannelMixer and Resampler for matching an output format
//   - Chunk, the unit of decoded output handed to the consumer
//   - PCMSource, an adapter for go-audio integer buffer decoders
//
// # Source Interface
//
// Codecs produce a Source of interleaved float32 samples:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// A Codec turns a byte stream into a Source:
//
//	src, err := wav.StreamCodec{}.Decode(r)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// Sources that can jump to a frame also implement PositionSetter. The
// engine uses it for seeks and otherwise rewinds the input and calls Skip.
//
// # Converting Output
//
// Convert chains a ChannelMixer and a Resampler in front of a source so it
// matches the configured output Format:
//
//	out, err := audio.Convert(src, audio.Format{SampleRate: 44100, Channels: 2})
//
// Zero fields keep the source's value. Channels are mixed before the rate
// is changed. Any layout can be averaged down to mono and mono can be copied
// into any layout. Other conversions fail with ErrUnsupportedChannels.
//
// # Formats and Time
//
// A Format converts between frame counts and durations:
//
//	f := audio.Format{SampleRate: 48000, Channels: 2}
//	f.Frames(time.Second)   // 48000
//	f.Duration(24000)       // 500ms
//
// # Chunks
//
// The engine turns converted samples into Chunks of signed 16-bit PCM. A
// chunk carries samples, a tag update, or the End marker of a session, and
// Time is the stream position of its first frame. Consumers pop them from
// the pipe in order.
//
// # Sample Format
//
// Samples are float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// Values outside the range are clipped when a chunk is built.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available. A read may
// return n > 0 together with io.EOF:
//
//	for {
//	    n, err := src.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
