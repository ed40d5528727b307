// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	f := Format{SampleRate: 8000, Channels: 2}
	if !f.Valid() {
		t.Error("Valid() = false for 8000Hz/2ch")
	}
	if (Format{SampleRate: 8000}).Valid() {
		t.Error("Valid() = true without channels")
	}
	if got := f.Frames(1500 * time.Millisecond); got != 12000 {
		t.Errorf("Frames(1.5s) = %d, want 12000", got)
	}
	if got := f.Duration(4000); got != 500*time.Millisecond {
		t.Errorf("Duration(4000) = %v, want 500ms", got)
	}
	if got := f.String(); got != "8000Hz/2ch" {
		t.Errorf("String() = %q", got)
	}
}

func TestChunkFrames(t *testing.T) {
	t.Parallel()

	c := Chunk{Format: Format{SampleRate: 1000, Channels: 2}, Samples: make([]int16, 20)}
	if c.Frames() != 10 {
		t.Errorf("Frames() = %d, want 10", c.Frames())
	}
	if c.Duration() != 10*time.Millisecond {
		t.Errorf("Duration() = %v, want 10ms", c.Duration())
	}
	if (Chunk{End: true}).Frames() != 0 {
		t.Error("end marker reports frames")
	}
}

func TestResamplerLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		srcRate int
		dstRate int
		frames  int
		want    int
	}{
		{"downsample 44.1k to 8k", 44100, 8000, 44100, 8000},
		{"upsample 8k to 16k", 8000, 16000, 8000, 16000},
		{"same rate", 8000, 8000, 500, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewResampler(newSineSource(tt.srcRate, 1, tt.frames, 440), tt.dstRate)
			out, err := drain(r, 1024)
			if err != nil {
				t.Fatalf("drain() error = %v", err)
			}
			if diff := len(out) - tt.want; diff < -10 || diff > 10 {
				t.Errorf("got %d samples, want about %d", len(out), tt.want)
			}
		})
	}
}

func TestResamplerPreservesLevel(t *testing.T) {
	t.Parallel()

	r := NewResampler(newConstantSource(22050, 2, 2000, 0.5), 48000)
	if r.SampleRate() != 48000 || r.Channels() != 2 {
		t.Fatalf("format = %d/%d", r.SampleRate(), r.Channels())
	}

	out, err := drain(r, 512)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if math.Abs(float64(v-0.5)) > 0.01 {
			t.Fatalf("out[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestResamplerEdges(t *testing.T) {
	t.Parallel()

	r := NewResampler(newConstantSource(8000, 2, 10, 0), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("odd dst error = %v, want ErrInvalidDstSize", err)
	}

	empty := NewResampler(newConstantSource(8000, 1, 0, 0), 16000)
	if n, err := empty.ReadSamples(make([]float32, 8)); n != 0 || err != io.EOF {
		t.Errorf("empty source = (%d, %v), want (0, EOF)", n, err)
	}

	src := newConstantSource(8000, 1, 1, 0.25)
	one := NewResampler(src, 16000)
	out, err := drain(one, 8)
	if err != nil || len(out) == 0 {
		t.Errorf("single frame = (%d, %v)", len(out), err)
	}
	if err := one.Close(); err != nil || !src.closed {
		t.Error("Close() did not reach the source")
	}
}

func TestChannelMixer(t *testing.T) {
	t.Parallel()

	stereo := newMockSource(8000, 2, 4, func(_, c int) float32 {
		if c == 0 {
			return 1
		}
		return 0
	})
	mono, err := drain(NewMonoMixer(stereo), 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(mono) != 4 || mono[0] != 0.5 {
		t.Errorf("mono = %v, want four 0.5 values", mono)
	}

	up, err := NewChannelMixer(newConstantSource(8000, 1, 3, 0.2), 2)
	if err != nil {
		t.Fatal(err)
	}
	out, err := drain(up, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 6 || out[0] != 0.2 || out[1] != 0.2 {
		t.Errorf("upmix = %v", out)
	}

	if _, err := NewChannelMixer(newConstantSource(8000, 6, 1, 0), 2); !errors.Is(err, ErrUnsupportedChannels) {
		t.Errorf("6->2 error = %v, want ErrUnsupportedChannels", err)
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()

	src := newConstantSource(44100, 2, 100, 0)

	same, err := Convert(src, Format{})
	if err != nil || same != Source(src) {
		t.Errorf("Convert with zero format wrapped the source: %v", err)
	}

	out, err := Convert(src, Format{SampleRate: 8000, Channels: 1})
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatOf(out); got != (Format{SampleRate: 8000, Channels: 1}) {
		t.Errorf("converted format = %v", got)
	}

	if _, err := Convert(src, Format{SampleRate: -1}); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("negative rate error = %v", err)
	}
}

func TestSkip(t *testing.T) {
	t.Parallel()

	src := newMockSource(1000, 2, 100, func(frame, _ int) float32 { return float32(frame) })
	if err := Skip(src, 60); err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, 2)
	if _, err := src.ReadSamples(buf); err != nil || buf[0] != 60 {
		t.Errorf("after skip first frame = %v (%v), want 60", buf[0], err)
	}

	if err := Skip(src, 1000); err != nil {
		t.Errorf("skip past end error = %v", err)
	}
}

type fakeIntReader struct {
	data []int
}

func (f *fakeIntReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	n := copy(buf.Data, f.data)
	f.data = f.data[n:]
	return n, nil
}

func TestPCMSource(t *testing.T) {
	t.Parallel()

	format := &goaudio.Format{SampleRate: 8000, NumChannels: 1}
	src := NewPCMSource(&fakeIntReader{data: []int{16384, -32768, 0}}, format, 16, nil)

	buf := make([]float32, 4)
	n, err := src.ReadSamples(buf)
	if n != 3 || err != io.EOF {
		t.Fatalf("ReadSamples() = (%d, %v), want (3, EOF)", n, err)
	}
	if buf[0] != 0.5 || buf[1] != -1 || buf[2] != 0 {
		t.Errorf("samples = %v", buf[:3])
	}
	if src.SampleRate() != 8000 || src.Channels() != 1 {
		t.Errorf("format = %d/%d", src.SampleRate(), src.Channels())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
