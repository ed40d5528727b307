// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"sync"
	"time"

	"github.com/ik5/pbxdecode/audio"
	"github.com/ik5/pbxdecode/track"
)

// Control is the state shared between one controller and one engine.
//
// Every field is guarded by mu. Both condition variables use mu, so a
// waiter always observes state changes made before the matching signal.
type Control struct {
	mu             sync.Mutex
	engineWake     *sync.Cond
	controllerWake *sync.Cond

	state   State
	command Command
	lastErr ErrorKind
	current *track.Track
	next    *track.Track

	seekWhere time.Duration
	seekError bool
	closed    bool

	controllerWakes uint64
}

func NewControl() *Control {
	c := &Control{}
	c.engineWake = sync.NewCond(&c.mu)
	c.controllerWake = sync.NewCond(&c.mu)
	return c
}

// Request posts cmd to the engine without waiting for it to be handled.
//
// Start and Seek from the stopped state need t, which becomes the next track.
// A Seek while a session is active applies to the current track and t is
// ignored. The seek target of a Seek posted here is the start of the track.
func (c *Control) Request(t *track.Track, cmd Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.requestLocked(t, cmd, 0)
}

// RequestSeek posts a Seek to where.
func (c *Control) RequestSeek(t *track.Track, where time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.requestLocked(t, CommandSeek, where)
}

func (c *Control) requestLocked(t *track.Track, cmd Command, where time.Duration) error {
	if c.closed {
		return ErrClosed
	}

	switch cmd {
	case CommandStart:
		if t == nil {
			return ErrNoTrack
		}
		if c.state != StateStopped || c.command != CommandNone {
			return ErrBusy
		}
		c.next = t
	case CommandSeek:
		if c.command != CommandNone {
			return ErrBusy
		}
		if c.state == StateStopped {
			if t == nil {
				return ErrNoTrack
			}
			c.next = t
		}
		if where < 0 {
			where = 0
		}
		c.seekWhere = where
		c.seekError = false
	case CommandStop:
		if c.command == CommandStart || c.command == CommandSeek {
			return ErrBusy
		}
	default:
		return ErrInvalidCommand
	}

	c.command = cmd
	c.engineWake.Signal()
	return nil
}

// Start requests a session for t and waits until the engine has taken it.
func (c *Control) Start(t *track.Track) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requestLocked(t, CommandStart, 0); err != nil {
		return err
	}
	for c.command == CommandStart && !c.closed {
		c.controllerWake.Wait()
	}
	if c.closed {
		return ErrClosed
	}
	return nil
}

// Stop requests the active session to end and waits until the engine is idle.
// Stopping an idle engine is allowed. A Start or Seek still pending is taken
// by the engine first.
func (c *Control) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for !c.closed && (c.command == CommandStart || c.command == CommandSeek) {
		c.controllerWake.Wait()
	}
	if err := c.requestLocked(nil, CommandStop, 0); err != nil {
		return err
	}
	return c.awaitIdleLocked()
}

// Seek requests a seek to where and waits until a plugin has acknowledged it,
// or the engine has taken it as the start of a new session for t.
func (c *Control) Seek(t *track.Track, where time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requestLocked(t, CommandSeek, where); err != nil {
		return err
	}
	for c.command == CommandSeek && !c.closed {
		c.controllerWake.Wait()
	}
	switch {
	case c.closed:
		return ErrClosed
	case c.seekError:
		return ErrSeekFailed
	}
	return nil
}

// AwaitIdle blocks until no session is active and no command is pending.
func (c *Control) AwaitIdle() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.awaitIdleLocked()
}

func (c *Control) awaitIdleLocked() error {
	for !c.closed && (c.state != StateStopped || c.command != CommandNone) {
		c.controllerWake.Wait()
	}
	if c.closed {
		return ErrClosed
	}
	return nil
}

func (c *Control) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Error returns the outcome of the last session.
func (c *Control) Error() ErrorKind {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastErr
}

// CurrentTrack returns the track of the active session, or nil while stopped.
func (c *Control) CurrentTrack() *track.Track {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current
}

// NextTrack returns the track the next session will play.
func (c *Control) NextTrack() *track.Track {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.next
}

// SeekFailed reports whether the last seek request could not be honoured.
func (c *Control) SeekFailed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.seekError
}

// SignalEngine wakes the engine if it waits for a command or for room in the
// sink. Consumers call it after draining output.
func (c *Control) SignalEngine() {
	c.mu.Lock()
	c.engineWake.Signal()
	c.mu.Unlock()
}

// Close releases every waiter. Blocked calls return ErrClosed and the engine
// treats the close as a Stop.
func (c *Control) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.engineWake.Broadcast()
	c.controllerWake.Broadcast()
}

// ObserveAndClearCommand returns the pending command and resets it to
// CommandNone.
//
// Observing a Start, or a Seek from the stopped state, begins a session: the
// next track becomes current, the state leaves StateStopped and the last
// error is cleared, all before mu is released. The engine must call
// finishSession once for every session begun here.
func (c *Control) ObserveAndClearCommand() Command {
	c.mu.Lock()
	defer c.mu.Unlock()

	cmd := c.command
	c.command = CommandNone
	if (cmd == CommandStart || cmd == CommandSeek) && c.state == StateStopped {
		c.current = c.next
		c.state = StateStarting
		c.lastErr = ErrorNone
		c.signalControllerLocked()
	}
	return cmd
}

// PollCommand returns the pending command without clearing it. A closed
// control reports CommandStop.
func (c *Control) PollCommand() Command {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return CommandStop
	}
	return c.command
}

// waitCommand blocks the engine until a command is pending.
// It returns false once the control is closed.
func (c *Control) waitCommand() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for c.command == CommandNone && !c.closed {
		c.engineWake.Wait()
	}
	return !c.closed
}

func (c *Control) signalControllerLocked() {
	c.controllerWakes++
	c.controllerWake.Broadcast()
}

// acknowledge completes a Stop observed while idle.
func (c *Control) acknowledge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.command = CommandNone
	c.signalControllerLocked()
}

func (c *Control) setDecoding() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateDecoding
	c.signalControllerLocked()
}

func (c *Control) setError(kind ErrorKind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastErr = kind
}

// finishSession returns to StateStopped and drops whatever command is left.
// A seek nobody acknowledged counts as failed.
func (c *Control) finishSession() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.command == CommandSeek {
		c.seekError = true
	}
	c.command = CommandNone
	c.state = StateStopped
	c.current = nil
	c.signalControllerLocked()
}

func (c *Control) seekTarget() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.seekWhere
}

// finishSeek clears a Seek a plugin has handled. Other commands stay pending.
func (c *Control) finishSeek() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.command == CommandSeek {
		c.command = CommandNone
	}
	c.seekError = false
	c.signalControllerLocked()
}

func (c *Control) failSeek() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seekError = true
	if c.command == CommandSeek {
		c.command = CommandNone
	}
	c.signalControllerLocked()
}

// pushWait hands chunk to sink, waiting while the sink is full. It gives up
// and returns the pending command as soon as one arrives; the chunk is then
// dropped. The sink is called with mu held, so a consumer that drains it and
// then calls SignalEngine cannot lose the wakeup.
func (c *Control) pushWait(sink FrameSink, chunk audio.Chunk, seekPending bool) Command {
	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		switch {
		case c.closed:
			return CommandStop
		case seekPending:
			return CommandSeek
		case c.command != CommandNone:
			return c.command
		}
		if sink.Push(chunk) {
			return CommandNone
		}
		c.engineWake.Wait()
	}
}

func (c *Control) wakeCount() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.controllerWakes
}
