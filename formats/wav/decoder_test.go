// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func encode(t *testing.T, rate, channels int, samples []int16) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := WriteWAV16(&buf, rate, channels, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}
	return buf.Bytes()
}

func readAll(t *testing.T, r interface {
	ReadSamples([]float32) (int, error)
}) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, 3)
	for {
		n, err := r.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestWriteWAV16Header(t *testing.T) {
	t.Parallel()

	data := encode(t, 8000, 2, []int16{1, -1, 2, -2})
	if len(data) != 44+8 {
		t.Fatalf("len = %d, want 52", len(data))
	}
	if got := binary.LittleEndian.Uint16(data[22:24]); got != 2 {
		t.Errorf("channels = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint32(data[28:32]); got != 8000*2*2 {
		t.Errorf("byte rate = %d", got)
	}
	if got := binary.LittleEndian.Uint16(data[32:34]); got != 4 {
		t.Errorf("block align = %d, want 4", got)
	}

	if err := WriteWAV16(io.Discard, 8000, 0, nil); !errors.Is(err, ErrInvalidWriterChannels) {
		t.Errorf("WriteWAV16() with no channels = %v", err)
	}
}

func TestStreamCodecRoundTrip(t *testing.T) {
	t.Parallel()

	data := encode(t, 22050, 2, []int16{16384, -16384, 0, 8192})
	src, err := StreamCodec{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 22050 || src.Channels() != 2 {
		t.Fatalf("format = %d/%d", src.SampleRate(), src.Channels())
	}

	got := readAll(t, src)
	want := []float32{0.5, -0.5, 0, 0.25}
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStreamCodecSkipsUnknownChunks(t *testing.T) {
	t.Parallel()

	data := encode(t, 8000, 1, []int16{100})
	list := []byte("LIST\x04\x00\x00\x00INFO")
	withList := append(append(append([]byte{}, data[:36]...), list...), data[36:]...)

	src, err := StreamCodec{}.Decode(bytes.NewReader(withList))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := readAll(t, src); len(got) != 1 {
		t.Errorf("got %d samples, want 1", len(got))
	}
}

func TestStreamCodecErrors(t *testing.T) {
	t.Parallel()

	float := encode(t, 8000, 1, nil)
	binary.LittleEndian.PutUint16(float[20:22], 3)

	odd := encode(t, 8000, 1, nil)
	binary.LittleEndian.PutUint16(odd[34:36], 12)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not riff", []byte("RIFX\x00\x00\x00\x00WAVE"), ErrNotWavFile},
		{"float", float, ErrOnlyPCMSupported},
		{"bit depth", odd, ErrUnsupportedBitDepth},
		{"no data", encode(t, 8000, 1, nil)[:36], ErrUnsupportedWavChunks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (StreamCodec{}).Decode(bytes.NewReader(tt.data)); !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFileCodec(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tone.wav")
	if err := os.WriteFile(path, encode(t, 16000, 1, []int16{16384, -16384, 16384}), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	src, err := FileCodec{}.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if src.SampleRate() != 16000 || src.Channels() != 1 {
		t.Fatalf("format = %d/%d", src.SampleRate(), src.Channels())
	}
	got := readAll(t, src)
	if len(got) != 3 || got[0] != 0.5 || got[1] != -0.5 {
		t.Errorf("samples = %v", got)
	}
}

func TestPluginProbe(t *testing.T) {
	t.Parallel()

	if !(Plugin{}).Probe(bytes.NewReader(encode(t, 8000, 1, nil))) {
		t.Error("Probe() rejected a WAV header")
	}
	if (Plugin{}).Probe(bytes.NewReader([]byte("RIFF\x00\x00\x00\x00AVI "))) {
		t.Error("Probe() accepted an AVI header")
	}
}
