// SPDX-License-Identifier: EPL-2.0

package pipe

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/pbxdecode/audio"
)

func chunk(n int) audio.Chunk {
	return audio.Chunk{Format: audio.Format{SampleRate: 8000, Channels: 1}, Samples: make([]int16, n)}
}

func TestPushRespectsCapacity(t *testing.T) {
	t.Parallel()

	p := New(2)
	assert.True(t, p.Push(chunk(1)))
	assert.True(t, p.Push(chunk(2)))
	assert.False(t, p.Push(chunk(3)))

	p.Flush()
	assert.Equal(t, 3, p.Len(), "end marker ignores capacity")

	c, ok := p.TryPop()
	require.True(t, ok)
	assert.Equal(t, 1, c.Frames())
	assert.True(t, p.Push(chunk(4)))
}

func TestPopOrderAndNotify(t *testing.T) {
	t.Parallel()

	var notified atomic.Int32
	p := New(4)
	p.SetNotify(func() { notified.Add(1) })

	p.Push(chunk(1))
	p.Push(chunk(2))
	p.Flush()

	ctx := context.Background()
	for _, want := range []int{1, 2} {
		c, err := p.Pop(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, c.Frames())
	}
	c, err := p.Pop(ctx)
	require.NoError(t, err)
	assert.True(t, c.End)
	assert.Equal(t, int32(3), notified.Load())

	_, ok := p.TryPop()
	assert.False(t, ok)
}

func TestPopWaitsForProducer(t *testing.T) {
	t.Parallel()

	p := New(1)
	go func() {
		time.Sleep(10 * time.Millisecond)
		p.Push(chunk(7))
	}()

	c, err := p.Pop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, c.Frames())
}

func TestPopHonoursContextAndClose(t *testing.T) {
	t.Parallel()

	p := New(1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := p.Pop(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	p.Push(chunk(1))
	c, err := p.Pop(ctx)
	require.NoError(t, err, "queued chunks are returned after ctx is done")
	assert.Equal(t, 1, c.Frames())

	p.Close()
	_, err = p.Pop(context.Background())
	require.ErrorIs(t, err, ErrClosed)
	assert.False(t, p.Push(chunk(1)))
}

func TestClear(t *testing.T) {
	t.Parallel()

	var notified atomic.Int32
	p := New(1)
	p.SetNotify(func() { notified.Add(1) })

	p.Push(chunk(1))
	p.Flush()
	p.Clear()

	assert.Zero(t, p.Len())
	assert.True(t, p.Push(chunk(1)))
	assert.Equal(t, int32(1), notified.Load())
}
