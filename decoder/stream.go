// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"errors"
	"io"
	"time"

	"github.com/ik5/pbxdecode/audio"
)

// emptyReadLimit is the number of consecutive empty reads treated as end of stream.
const emptyReadLimit = 16

// readerOnly hides the Seek method of an input that cannot seek freely, so
// codecs that probe for io.Seeker fall back to plain reading.
type readerOnly struct {
	io.Reader
}

// pcmStream is the state of one DecodeStream call.
type pcmStream struct {
	s        *Session
	codec    audio.Codec
	rs       io.ReadSeeker
	seekable bool
	src      audio.Source
	out      audio.Source
}

// DecodeStream runs codec over r and feeds the session until the stream ends,
// a Stop arrives, or decoding fails. Seeks use the source's SetPosition when
// available, otherwise r is rewound, decoded again and skipped forward.
// It returns false if the codec rejects r or a read fails.
func DecodeStream(s *Session, r io.Reader, codec audio.Codec) bool {
	d := &pcmStream{s: s, codec: codec}
	d.rs, d.seekable = r.(io.ReadSeeker)
	if in, ok := r.(InputStream); ok && !in.Seekable() {
		d.seekable = false
		r = readerOnly{in}
	}

	src, err := codec.Decode(r)
	if err != nil {
		s.log.Debug().Err(err).Msg("codec rejected input")
		return false
	}
	d.src = src
	defer func() { _ = d.src.Close() }()

	if err := d.wrap(); err != nil {
		s.log.Warn().Err(err).Msg("cannot convert to output format")
		return false
	}
	s.Initialized(audio.FormatOf(d.out), d.seekable)

	buf := make([]float32, max(s.chunkFrames, 1)*d.out.Channels())
	empty := 0

	for {
		switch s.Command() {
		case CommandStop:
			return true
		case CommandSeek:
			if ok := d.seek(s.SeekWhere()); !ok {
				return false
			}
		}

		n, err := d.out.ReadSamples(buf)
		if n > 0 {
			empty = 0
			if s.Submit(buf[:n]) == CommandStop {
				return true
			}
		}

		switch {
		case errors.Is(err, io.EOF):
			return true
		case err != nil:
			s.log.Warn().Err(err).Msg("decode error")
			return false
		case n == 0:
			empty++
			if empty >= emptyReadLimit {
				return true
			}
		}
	}
}

func (d *pcmStream) wrap() error {
	out, err := audio.Convert(d.src, d.s.output)
	if err != nil {
		return err
	}
	d.out = out
	return nil
}

// seek repositions the stream. It reports false only when the stream can no
// longer be decoded; a seek that was refused leaves the stream as it was.
func (d *pcmStream) seek(where time.Duration) bool {
	if !d.seekable {
		d.s.SeekError()
		return true
	}

	frame := audio.FormatOf(d.src).Frames(where)

	if ps, ok := d.src.(audio.PositionSetter); ok {
		if err := ps.SetPosition(frame); err != nil {
			d.s.log.Debug().Err(err).Msg("native seek failed")
			d.s.SeekError()
			return true
		}
		if err := d.wrap(); err != nil {
			return false
		}
		d.s.CommandFinished()
		return true
	}

	if _, err := d.rs.Seek(0, io.SeekStart); err != nil {
		d.s.log.Debug().Err(err).Msg("rewind for seek failed")
		d.s.SeekError()
		return true
	}

	_ = d.src.Close()
	src, err := d.codec.Decode(d.rs)
	if err != nil {
		d.s.log.Warn().Err(err).Msg("reopen after seek failed")
		d.src = nopSource{}
		d.s.SeekError()
		return false
	}
	d.src = src

	if err := audio.Skip(src, frame); err != nil {
		d.s.SeekError()
		return false
	}
	if err := d.wrap(); err != nil {
		return false
	}
	d.s.CommandFinished()
	return true
}

// nopSource stands in for a source that could not be reopened.
type nopSource struct{}

func (nopSource) SampleRate() int                    { return 0 }
func (nopSource) Channels() int                      { return 0 }
func (nopSource) ReadSamples([]float32) (int, error) { return 0, io.EOF }
func (nopSource) BufSize() int                       { return 0 }
func (nopSource) Close() error                       { return nil }
