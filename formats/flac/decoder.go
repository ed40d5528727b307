// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/pbxdecode/audio"
	"github.com/ik5/pbxdecode/utils"
)

const id3HeaderSize = 10

type source struct {
	stream     *flac.Stream
	sampleRate int
	channels   int
	seekable   bool
	pending    []float32
	drop       int // samples to discard from the next frame after a seek
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 * s.channels }

// Close leaves the underlying reader open; its owner closes it.
func (s *source) Close() error { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	n := 0
	for n < len(dst) {
		if len(s.pending) == 0 {
			f, err := s.stream.ParseNext()
			if errors.Is(err, io.EOF) {
				if n == 0 {
					return 0, io.EOF
				}
				return n, nil
			}
			if err != nil {
				return n, fmt.Errorf("flac frame: %w", err)
			}
			s.pending = interleave(s.pending[:0], f)
			if s.drop > 0 {
				d := min(s.drop, len(s.pending))
				s.pending = s.pending[d:]
				s.drop -= d
			}
			continue
		}

		c := copy(dst[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}
	return n, nil
}

// SetPosition seeks to the frame containing sample and drops the samples
// before it.
func (s *source) SetPosition(sample int64) error {
	if !s.seekable {
		return ErrNotSeekable
	}
	if sample < 0 {
		sample = 0
	}

	got, err := s.stream.Seek(uint64(sample))
	if err != nil {
		return fmt.Errorf("flac seek: %w", err)
	}

	s.pending = s.pending[:0]
	s.drop = int(uint64(sample)-got) * s.channels
	return nil
}

// interleave appends the samples of f to dst as normalized interleaved floats.
func interleave(dst []float32, f *frame.Frame) []float32 {
	if len(f.Subframes) == 0 {
		return dst
	}

	bits := int(f.BitsPerSample)
	n := len(f.Subframes[0].Samples)
	for i := range n {
		for _, sub := range f.Subframes {
			dst = append(dst, utils.IntToFloat32(int(sub.Samples[i]), bits))
		}
	}
	return dst
}

type Codec struct{}

// Decode opens a FLAC stream, skipping a leading ID3v2 tag. Seekable readers
// get sample-accurate SetPosition.
func (Codec) Decode(r io.Reader) (audio.Source, error) {
	var (
		stream   *flac.Stream
		err      error
		seekable bool
	)

	if rs, ok := r.(io.ReadSeeker); ok {
		if err := skipID3v2(rs); err != nil {
			return nil, fmt.Errorf("flac: %w", err)
		}
		stream, err = flac.NewSeek(rs)
		seekable = true
	} else {
		br := bufio.NewReader(r)
		if err := discardID3v2(br); err != nil {
			return nil, fmt.Errorf("flac: %w", err)
		}
		stream, err = flac.New(br)
	}
	if err != nil {
		return nil, fmt.Errorf("flac: %w", err)
	}

	if stream.Info == nil || stream.Info.NChannels == 0 || stream.Info.SampleRate == 0 {
		return nil, ErrInvalidStreamInfo
	}

	return &source{
		stream:     stream,
		sampleRate: int(stream.Info.SampleRate),
		channels:   int(stream.Info.NChannels),
		seekable:   seekable,
	}, nil
}

func id3Size(header []byte) int64 {
	return int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
}

// skipID3v2 positions r after an ID3v2 tag, or back at the start if there is none.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, id3HeaderSize)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if n < id3HeaderSize || string(header[:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	_, err = r.Seek(id3HeaderSize+id3Size(header), io.SeekStart)
	return err
}

func discardID3v2(br *bufio.Reader) error {
	header, err := br.Peek(id3HeaderSize)
	if err != nil || string(header[:3]) != "ID3" {
		return nil
	}

	_, err = br.Discard(int(id3HeaderSize + id3Size(header)))
	return err
}
