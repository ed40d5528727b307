// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"bytes"
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik5/pbxdecode/audio"
	"github.com/ik5/pbxdecode/track"
)

// recorder keeps an ordered log of what the fakes were asked to do.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.Clone(r.events)
}

func (r *recorder) count(event string) int {
	n := 0
	for _, e := range r.list() {
		if e == event {
			n++
		}
	}
	return n
}

type fakeInput struct {
	*bytes.Reader
	rec       *recorder
	mime      string
	seekable  bool
	tag       *track.Tag
	needed    int
	buffered  int
	bufferErr error
	onBuffer  func()
}

func newFakeInput(rec *recorder, data string) *fakeInput {
	return &fakeInput{Reader: bytes.NewReader([]byte(data)), rec: rec, seekable: true}
}

func (f *fakeInput) Ready() bool      { return f.buffered >= f.needed }
func (f *fakeInput) MimeType() string { return f.mime }
func (f *fakeInput) Seekable() bool   { return f.seekable }
func (f *fakeInput) Tag() *track.Tag  { return f.tag }

func (f *fakeInput) Buffer() (int, error) {
	f.rec.add("buffer")
	if f.onBuffer != nil {
		f.onBuffer()
	}
	if f.bufferErr != nil {
		return 0, f.bufferErr
	}
	f.buffered++
	return 1, nil
}

func (f *fakeInput) Seek(offset int64, whence int) (int64, error) {
	if offset == 0 && whence == io.SeekStart {
		f.rec.add("rewind")
	}
	return f.Reader.Seek(offset, whence)
}

func (f *fakeInput) Close() error {
	f.rec.add("close")
	return nil
}

type fakeSink struct {
	mu       sync.Mutex
	rec      *recorder
	capacity int
	chunks   []audio.Chunk
	flushes  int
}

func (s *fakeSink) Push(c audio.Chunk) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.capacity > 0 && len(s.chunks) >= s.capacity {
		return false
	}
	s.chunks = append(s.chunks, c)
	return true
}

func (s *fakeSink) Flush() {
	s.mu.Lock()
	s.flushes++
	s.mu.Unlock()

	s.rec.add("flush")
}

func (s *fakeSink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chunks = nil
}

func (s *fakeSink) snapshot() ([]audio.Chunk, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.chunks), s.flushes
}

type base struct {
	name     string
	suffixes []string
	mimes    []string
}

func (b base) Name() string        { return b.name }
func (b base) Suffixes() []string  { return b.suffixes }
func (b base) MimeTypes() []string { return b.mimes }

type prober struct{ fn func(io.Reader) bool }

func (p prober) Probe(r io.Reader) bool { return p.fn(r) }

type streamer struct {
	fn func(*Session, InputStream) bool
}

func (s streamer) DecodeStream(sess *Session, in InputStream) bool { return s.fn(sess, in) }

type filer struct{ fn func(*Session, string) bool }

func (f filer) DecodeFile(s *Session, path string) bool { return f.fn(s, path) }

// fakePlugin builds a Plugin that implements exactly the capabilities whose
// callbacks are set. Every call is recorded as "<kind>:<name>".
type fakePlugin struct {
	name     string
	suffixes []string
	mimes    []string
	probe    func(io.Reader) bool
	stream   func(*Session, InputStream) bool
	file     func(*Session, string) bool
}

func (f fakePlugin) build(rec *recorder) Plugin {
	b := base{name: f.name, suffixes: f.suffixes, mimes: f.mimes}

	var pr prober
	if f.probe != nil {
		pr = prober{fn: func(r io.Reader) bool {
			rec.add("probe:" + f.name)
			return f.probe(r)
		}}
	}
	var st streamer
	if f.stream != nil {
		st = streamer{fn: func(s *Session, in InputStream) bool {
			rec.add("stream:" + f.name)
			return f.stream(s, in)
		}}
	}
	var fl filer
	if f.file != nil {
		fl = filer{fn: func(s *Session, path string) bool {
			rec.add("file:" + f.name)
			return f.file(s, path)
		}}
	}

	switch {
	case f.probe != nil && f.stream != nil && f.file != nil:
		return struct {
			base
			prober
			streamer
			filer
		}{b, pr, st, fl}
	case f.probe != nil && f.stream != nil:
		return struct {
			base
			prober
			streamer
		}{b, pr, st}
	case f.probe != nil && f.file != nil:
		return struct {
			base
			prober
			filer
		}{b, pr, fl}
	case f.stream != nil && f.file != nil:
		return struct {
			base
			streamer
			filer
		}{b, st, fl}
	case f.stream != nil:
		return struct {
			base
			streamer
		}{b, st}
	case f.file != nil:
		return struct {
			base
			filer
		}{b, fl}
	case f.probe != nil:
		return struct {
			base
			prober
		}{b, pr}
	default:
		return b
	}
}

func accept(io.Reader) bool                 { return true }
func reject(io.Reader) bool                 { return false }
func decodeOK(*Session, InputStream) bool   { return true }
func decodeFail(*Session, InputStream) bool { return false }
func fileOK(*Session, string) bool          { return true }

var errNotFound = errors.New("not found")

// harness runs an Engine over fake collaborators.
type harness struct {
	t      *testing.T
	rec    *recorder
	ctrl   *Control
	engine *Engine
	sink   *fakeSink

	mu       sync.Mutex
	inputs   map[string]*fakeInput
	locate   func(*track.Track) (string, error)
	fallback string
	output   audio.Format
	done     <-chan error
	cancel   context.CancelFunc
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	rec := &recorder{}
	return &harness{
		t:      t,
		rec:    rec,
		sink:   &fakeSink{rec: rec},
		inputs: make(map[string]*fakeInput),
		locate: func(tr *track.Track) (string, error) { return tr.URI, nil },
	}
}

func (h *harness) input(uri, data string) *fakeInput {
	h.mu.Lock()
	defer h.mu.Unlock()

	in := newFakeInput(h.rec, data)
	h.inputs[uri] = in
	return in
}

func (h *harness) start(plugins ...fakePlugin) {
	h.t.Helper()

	reg, err := NewRegistry()
	require.NoError(h.t, err)
	for _, p := range plugins {
		require.NoError(h.t, reg.Register(p.build(h.rec)))
	}

	opener := OpenerFunc(func(_ context.Context, uri string) (InputStream, error) {
		h.rec.add("open")
		h.mu.Lock()
		defer h.mu.Unlock()

		in, ok := h.inputs[uri]
		if !ok {
			return nil, errNotFound
		}
		return in, nil
	})

	h.engine, err = NewEngine(Options{
		Registry: reg,
		Locator:  locatorFunc(h.locate),
		Opener:   opener,
		Sink:     h.sink,
		Fallback: h.fallback,
		Output:   h.output,
	})
	require.NoError(h.t, err)
	h.ctrl = h.engine.Control()

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.done = h.engine.Start(ctx)
	h.t.Cleanup(func() {
		cancel()
		<-h.done
	})
}

// play starts uri and waits for the session to end.
func (h *harness) play(uri string) ErrorKind {
	h.t.Helper()

	require.NoError(h.t, h.ctrl.Start(track.New(uri)))
	require.NoError(h.t, h.ctrl.AwaitIdle())
	return h.ctrl.Error()
}

type locatorFunc func(*track.Track) (string, error)

func (f locatorFunc) Locate(t *track.Track) (string, error) { return f(t) }

// testCodec decodes inputs starting with "TEST" into a generated ramp.
type testCodec struct {
	rate       int
	channels   int
	frames     int
	positioned bool
}

var errBadMagic = errors.New("bad magic")

func (c testCodec) Decode(r io.Reader) (audio.Source, error) {
	magic := make([]byte, 4)
	if _, err := io.ReadFull(r, magic); err != nil || string(magic) != "TEST" {
		return nil, errBadMagic
	}

	src := &rampSource{rate: c.rate, channels: c.channels, frames: c.frames}
	if c.positioned {
		return &positionedSource{rampSource: src}, nil
	}
	return src, nil
}

type rampSource struct {
	rate     int
	channels int
	frames   int
	pos      int
}

func (r *rampSource) SampleRate() int { return r.rate }
func (r *rampSource) Channels() int   { return r.channels }
func (r *rampSource) BufSize() int    { return 4096 }
func (r *rampSource) Close() error    { return nil }

func (r *rampSource) ReadSamples(dst []float32) (int, error) {
	if r.pos >= r.frames {
		return 0, io.EOF
	}
	n := min(len(dst)/r.channels, r.frames-r.pos)
	for f := range n {
		for c := range r.channels {
			dst[f*r.channels+c] = float32((r.pos+f)%100) / 100
		}
	}
	r.pos += n
	return n * r.channels, nil
}

type positionedSource struct {
	*rampSource
	setCalls int
}

func (p *positionedSource) SetPosition(frame int64) error {
	p.setCalls++
	p.pos = int(frame)
	return nil
}
