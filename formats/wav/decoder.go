// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/pbxdecode/audio"
	"github.com/ik5/pbxdecode/utils"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
	// maxSkippedChunk bounds the size of a non-audio chunk skipped on a stream.
	maxSkippedChunk = 1 << 20
)

type wavSource struct {
	r          io.Reader
	sampleRate int
	channels   int
	width      int // bytes per sample
	remaining  int64
	buf        []byte
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) Close() error    { return nil }
func (s *wavSource) BufSize() int    { return cap(s.buf) / s.width }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	want := int64(len(dst) * s.width)
	if s.remaining >= 0 && want > s.remaining {
		want = s.remaining - s.remaining%int64(s.width)
	}
	if want == 0 {
		return 0, io.EOF
	}
	if int64(cap(s.buf)) < want {
		s.buf = make([]byte, want)
	}

	n, err := io.ReadFull(s.r, s.buf[:want])
	if s.remaining >= 0 {
		s.remaining -= int64(n)
	}
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		if n < s.width {
			return 0, io.EOF
		}
	default:
		return 0, fmt.Errorf("wav read: %w", err)
	}

	samples := n / s.width
	for i := range samples {
		dst[i] = s.sample(s.buf[i*s.width:])
	}
	return samples, nil
}

func (s *wavSource) sample(b []byte) float32 {
	switch s.width {
	case 1:
		return float32(int(b[0])-128) / 128
	case 2:
		return utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(b)))
	case 3:
		v := int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8
		return utils.IntToFloat32(int(v), 24)
	default:
		return utils.IntToFloat32(int(int32(binary.LittleEndian.Uint32(b))), 32)
	}
}

// StreamCodec parses RIFF/WAVE sequentially and works on any io.Reader.
type StreamCodec struct{}

func (StreamCodec) Decode(r io.Reader) (audio.Source, error) {
	header := make([]byte, 12)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("wav header: %w", err)
	}
	if !bytes.Equal(header[:4], []byte("RIFF")) || !bytes.Equal(header[8:12], []byte("WAVE")) {
		return nil, ErrNotWavFile
	}

	var src *wavSource
	chunk := make([]byte, 8)
	for {
		if _, err := io.ReadFull(r, chunk); err != nil {
			return nil, ErrUnsupportedWavChunks
		}
		id := string(chunk[:4])
		size := int64(binary.LittleEndian.Uint32(chunk[4:8]))

		switch id {
		case "fmt ":
			if size < 16 || size > maxSkippedChunk {
				return nil, ErrUnsupportedWavLayout
			}
			body := make([]byte, size+size%2)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, fmt.Errorf("wav fmt chunk: %w", err)
			}
			var err error
			if src, err = parseFormat(body); err != nil {
				return nil, err
			}

		case "data":
			if src == nil {
				return nil, ErrUnsupportedWavLayout
			}
			src.r = r
			src.remaining = size
			// Streamed WAVs often carry a placeholder size.
			if size == 0 || size == 0xFFFFFFFF {
				src.remaining = -1
			}
			src.buf = make([]byte, 4096-4096%src.width)
			return src, nil

		default:
			if size > maxSkippedChunk {
				return nil, ErrUnsupportedWavChunks
			}
			if _, err := io.CopyN(io.Discard, r, size+size%2); err != nil {
				return nil, ErrUnsupportedWavChunks
			}
		}
	}
}

func parseFormat(body []byte) (*wavSource, error) {
	audioFormat := binary.LittleEndian.Uint16(body[0:2])
	channels := int(binary.LittleEndian.Uint16(body[2:4]))
	sampleRate := int(binary.LittleEndian.Uint32(body[4:8]))
	bitsPerSample := int(binary.LittleEndian.Uint16(body[14:16]))

	if audioFormat != formatPCM && audioFormat != formatExtensible {
		return nil, ErrOnlyPCMSupported
	}
	if channels <= 0 || sampleRate <= 0 {
		return nil, ErrUnsupportedWavLayout
	}

	switch bitsPerSample {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitsPerSample)
	}

	return &wavSource{
		sampleRate: sampleRate,
		channels:   channels,
		width:      bitsPerSample / 8,
	}, nil
}
