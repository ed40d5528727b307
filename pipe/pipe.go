// SPDX-License-Identifier: EPL-2.0

package pipe

import (
	"context"
	"errors"
	"sync"

	"github.com/ik5/pbxdecode/audio"
)

// DefaultCapacity is the number of sample chunks a Pipe holds when none is given.
const DefaultCapacity = 64

// ErrClosed is returned by Pop once the pipe is closed and drained.
var ErrClosed = errors.New("pipe is closed")

// Pipe is a bounded FIFO of chunks. Push never blocks: it refuses chunks once
// capacity is reached, and the producer waits for the notify callback that
// runs after a consumer made room. End markers written by Flush do not count
// against the capacity.
type Pipe struct {
	mu       sync.Mutex
	cond     *sync.Cond
	chunks   []audio.Chunk
	samples  int // chunks in the queue that are not end markers
	capacity int
	closed   bool
	notify   func()
}

func New(capacity int) *Pipe {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	p := &Pipe{capacity: capacity}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// SetNotify installs fn, called without the pipe lock after room was made.
func (p *Pipe) SetNotify(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.notify = fn
}

// Push appends c and reports whether it was accepted.
func (p *Pipe) Push(c audio.Chunk) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.samples >= p.capacity {
		return false
	}
	p.chunks = append(p.chunks, c)
	p.samples++
	p.cond.Broadcast()
	return true
}

// Flush appends an end-of-session marker.
func (p *Pipe) Flush() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.chunks = append(p.chunks, audio.Chunk{End: true})
	p.cond.Broadcast()
}

// Pop removes the oldest chunk, waiting until one is available. Chunks
// already queued are returned even after ctx is done or the pipe is closed.
func (p *Pipe) Pop(ctx context.Context) (audio.Chunk, error) {
	stop := context.AfterFunc(ctx, func() {
		p.mu.Lock()
		p.cond.Broadcast()
		p.mu.Unlock()
	})
	defer stop()

	p.mu.Lock()
	for len(p.chunks) == 0 {
		if p.closed {
			p.mu.Unlock()
			return audio.Chunk{}, ErrClosed
		}
		if err := ctx.Err(); err != nil {
			p.mu.Unlock()
			return audio.Chunk{}, err
		}
		p.cond.Wait()
	}
	c := p.shiftLocked()
	notify := p.notify
	p.mu.Unlock()

	if notify != nil {
		notify()
	}
	return c, nil
}

// TryPop removes the oldest chunk if there is one.
func (p *Pipe) TryPop() (audio.Chunk, bool) {
	p.mu.Lock()
	if len(p.chunks) == 0 {
		p.mu.Unlock()
		return audio.Chunk{}, false
	}
	c := p.shiftLocked()
	notify := p.notify
	p.mu.Unlock()

	if notify != nil {
		notify()
	}
	return c, true
}

func (p *Pipe) shiftLocked() audio.Chunk {
	c := p.chunks[0]
	p.chunks[0] = audio.Chunk{}
	p.chunks = p.chunks[1:]
	if !c.End {
		p.samples--
	}
	return c
}

// Clear drops every queued chunk, end markers included.
func (p *Pipe) Clear() {
	p.mu.Lock()
	p.chunks = nil
	p.samples = 0
	notify := p.notify
	p.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Len returns the number of queued chunks, end markers included.
func (p *Pipe) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.chunks)
}

// Close rejects further chunks and wakes blocked consumers.
func (p *Pipe) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.cond.Broadcast()
}
