// SPDX-License-Identifier: EPL-2.0

package input

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/ik5/pbxdecode/track"
)

const bufferStep = 4096

// HTTP is a remote stream. The first bytes of the body are kept so the
// engine can rewind after probing; seeking beyond that window, or after data
// past it was consumed, fails with ErrNotSeekable.
type HTTP struct {
	body     io.ReadCloser
	mimeType string
	tag      *track.Tag
	size     int64

	prefix     []byte // body bytes kept for rewinding
	limit      int    // maximum length of prefix
	readyBytes int
	consumed   int64 // bytes taken from body
	pos        int64
	eof        bool
}

func newHTTP(resp *http.Response, rewind, ready int) *HTTP {
	h := &HTTP{
		body:       resp.Body,
		size:       resp.ContentLength,
		limit:      rewind,
		readyBytes: min(ready, rewind),
		prefix:     make([]byte, 0, min(rewind, 64*1024)),
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil {
			h.mimeType = mt
		}
	}
	if name := resp.Header.Get("icy-name"); name != "" {
		h.tag = &track.Tag{Name: name}
	}

	return h
}

func (h *HTTP) MimeType() string { return h.mimeType }
func (h *HTTP) Tag() *track.Tag  { return h.tag }
func (h *HTTP) Seekable() bool   { return false }

// Size is the announced content length, or -1 if unknown.
func (h *HTTP) Size() int64 { return h.size }

// Ready reports whether the ready threshold was buffered or the body ended.
func (h *HTTP) Ready() bool {
	return h.eof || len(h.prefix) >= h.readyBytes
}

// Buffer reads the next block of the body into the rewind buffer.
func (h *HTTP) Buffer() (int, error) {
	if h.eof || len(h.prefix) >= h.limit || h.consumed != int64(len(h.prefix)) {
		return 0, nil
	}

	start := len(h.prefix)
	want := min(bufferStep, h.limit-start)
	h.prefix = append(h.prefix, make([]byte, want)...)

	n, err := h.body.Read(h.prefix[start:])
	h.prefix = h.prefix[:start+n]
	h.consumed += int64(n)

	if errors.Is(err, io.EOF) {
		h.eof = true
		return n, nil
	}
	if err != nil {
		return n, fmt.Errorf("reading stream: %w", err)
	}
	return n, nil
}

func (h *HTTP) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if h.pos < int64(len(h.prefix)) {
		n := copy(p, h.prefix[h.pos:])
		h.pos += int64(n)
		return n, nil
	}

	if h.pos != h.consumed {
		return 0, ErrNotSeekable
	}
	if h.eof {
		return 0, io.EOF
	}

	n, err := h.body.Read(p)
	if h.consumed == int64(len(h.prefix)) && len(h.prefix) < h.limit {
		keep := min(n, h.limit-len(h.prefix))
		h.prefix = append(h.prefix, p[:keep]...)
	}
	h.consumed += int64(n)
	h.pos += int64(n)

	if errors.Is(err, io.EOF) {
		h.eof = true
	}
	return n, err
}

// Seek moves within the rewind buffer. io.SeekEnd is not supported.
func (h *HTTP) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = h.pos + offset
	default:
		return h.pos, ErrInvalidWhence
	}

	if target == h.pos {
		return h.pos, nil
	}
	if target < 0 || target > int64(len(h.prefix)) || h.consumed != int64(len(h.prefix)) {
		return h.pos, ErrNotSeekable
	}

	h.pos = target
	return h.pos, nil
}

func (h *HTTP) Close() error {
	return h.body.Close()
}
