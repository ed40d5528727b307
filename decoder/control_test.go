// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/pbxdecode/track"
)

func TestControlRequestPreconditions(t *testing.T) {
	t.Parallel()

	c := NewControl()

	require.ErrorIs(t, c.Request(nil, CommandStart), ErrNoTrack)
	require.ErrorIs(t, c.Request(nil, CommandSeek), ErrNoTrack)
	require.ErrorIs(t, c.Request(nil, CommandNone), ErrInvalidCommand)

	tr := track.New("a.mp3")
	require.NoError(t, c.Request(tr, CommandStart))
	assert.Same(t, tr, c.NextTrack())
	assert.Equal(t, CommandStart, c.PollCommand())

	require.ErrorIs(t, c.Request(track.New("b.mp3"), CommandStart), ErrBusy)
	require.ErrorIs(t, c.RequestSeek(nil, time.Second), ErrBusy)

	require.ErrorIs(t, c.Request(nil, CommandStop), ErrBusy, "stop must not replace a pending start")

	assert.Equal(t, CommandStart, c.ObserveAndClearCommand())
	assert.Equal(t, CommandNone, c.PollCommand())
	assert.Equal(t, StateStarting, c.State())
	assert.Same(t, tr, c.CurrentTrack())

	require.ErrorIs(t, c.Request(track.New("b.mp3"), CommandStart), ErrBusy)
	require.NoError(t, c.Request(nil, CommandStop))
}

// beginSession stands in for the engine taking a Start.
func beginSession(t *testing.T, c *Control, tr *track.Track) {
	t.Helper()

	require.NoError(t, c.Request(tr, CommandStart))
	require.Equal(t, CommandStart, c.ObserveAndClearCommand())
}

func TestControlObserveBeginsSession(t *testing.T) {
	t.Parallel()

	c := NewControl()
	tr := track.New("a.mp3")
	require.NoError(t, c.Request(tr, CommandStart))

	errc := make(chan error, 1)
	go func() { errc <- c.AwaitIdle() }()

	wakes := c.wakeCount()
	c.ObserveAndClearCommand()
	assert.Equal(t, wakes+1, c.wakeCount(), "taking a start must wake the controller")
	assert.Equal(t, StateStarting, c.State())
	assert.Same(t, tr, c.CurrentTrack())

	select {
	case err := <-errc:
		t.Fatalf("AwaitIdle returned %v while a session was starting", err)
	case <-time.After(20 * time.Millisecond):
	}

	c.finishSession()
	require.NoError(t, <-errc)
	assert.Nil(t, c.CurrentTrack())
}

func TestControlSeekFromStoppedBeginsSession(t *testing.T) {
	t.Parallel()

	c := NewControl()
	tr := track.New("a.ogg")

	errc := make(chan error, 1)
	go func() { errc <- c.Seek(tr, 3*time.Second) }()

	require.Eventually(t, func() bool { return c.PollCommand() == CommandSeek }, time.Second, time.Millisecond)
	assert.Equal(t, CommandSeek, c.ObserveAndClearCommand())
	require.NoError(t, <-errc)
	assert.Equal(t, StateStarting, c.State())
	assert.Same(t, tr, c.CurrentTrack())
	assert.Equal(t, 3*time.Second, c.seekTarget())
}

func TestControlStopWaitsForPendingStart(t *testing.T) {
	t.Parallel()

	c := NewControl()
	require.NoError(t, c.Request(track.New("a.wav"), CommandStart))

	errc := make(chan error, 1)
	go func() { errc <- c.Stop() }()

	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, CommandStart, c.PollCommand(), "the start must stay pending")

	c.ObserveAndClearCommand()
	require.Eventually(t, func() bool { return c.PollCommand() == CommandStop }, time.Second, time.Millisecond)
	c.finishSession()
	require.NoError(t, <-errc)
}

func TestControlObserveClearsLastError(t *testing.T) {
	t.Parallel()

	c := NewControl()
	c.setError(ErrorDecodeFailed)

	require.NoError(t, c.Request(nil, CommandStop))
	c.ObserveAndClearCommand()
	assert.Equal(t, ErrorDecodeFailed, c.Error(), "stop must keep the last error")

	require.NoError(t, c.Request(track.New("a.ogg"), CommandStart))
	c.ObserveAndClearCommand()
	assert.Equal(t, ErrorNone, c.Error())
}

func TestControlSessionTransitions(t *testing.T) {
	t.Parallel()

	c := NewControl()
	tr := track.New("a.flac")

	beginSession(t, c, tr)
	assert.Equal(t, StateStarting, c.State())
	assert.Same(t, tr, c.CurrentTrack())

	c.setDecoding()
	assert.Equal(t, StateDecoding, c.State())

	require.NoError(t, c.RequestSeek(nil, 2*time.Second))
	assert.Equal(t, 2*time.Second, c.seekTarget())

	c.finishSession()
	assert.Equal(t, StateStopped, c.State())
	assert.Nil(t, c.CurrentTrack())
	assert.Equal(t, CommandNone, c.PollCommand())
	assert.True(t, c.SeekFailed(), "a seek left pending at session end failed")
}

func TestControlSeekAcknowledgement(t *testing.T) {
	t.Parallel()

	c := NewControl()
	beginSession(t, c, track.New("a.wav"))
	c.setDecoding()

	errc := make(chan error, 1)
	go func() { errc <- c.Seek(nil, time.Second) }()

	require.Eventually(t, func() bool { return c.PollCommand() == CommandSeek }, time.Second, time.Millisecond)
	c.finishSeek()
	require.NoError(t, <-errc)

	go func() { errc <- c.Seek(nil, time.Hour) }()
	require.Eventually(t, func() bool { return c.PollCommand() == CommandSeek }, time.Second, time.Millisecond)
	c.failSeek()
	require.ErrorIs(t, <-errc, ErrSeekFailed)
}

func TestControlClose(t *testing.T) {
	t.Parallel()

	c := NewControl()
	beginSession(t, c, track.New("a.mp3"))

	errc := make(chan error, 1)
	go func() { errc <- c.AwaitIdle() }()

	c.Close()
	require.ErrorIs(t, <-errc, ErrClosed)
	assert.Equal(t, CommandStop, c.PollCommand())
	require.ErrorIs(t, c.Request(track.New("b.mp3"), CommandStart), ErrClosed)
	assert.False(t, c.waitCommand())
}

func TestEnumStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "seek", CommandSeek.String())
	assert.Equal(t, "decoding", StateDecoding.String())
	assert.Equal(t, "unsupported type", ErrorUnsupportedType.String())
	assert.NoError(t, ErrorNone.Err())
	assert.ErrorIs(t, ErrorFileUnavailable.Err(), ErrFileUnavailable)
	assert.ErrorIs(t, ErrorDecodeFailed.Err(), ErrDecodeFailed)
}
