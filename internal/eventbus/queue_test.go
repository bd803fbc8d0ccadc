package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	t.Parallel()

	q := NewQueue[string](0)
	require.True(t, q.Push("a"))
	require.True(t, q.Push("b"))
	require.Equal(t, 2, q.Len())

	ctx := context.Background()
	v, ok := q.Pop(ctx)
	require.True(t, ok)
	require.Equal(t, "a", v)
	v, ok = q.Pop(ctx)
	require.True(t, ok)
	require.Equal(t, "b", v)
	require.Zero(t, q.Len())
}

func TestQueuePopWaitsForPush(t *testing.T) {
	t.Parallel()

	q := NewQueue[int](0)
	go func() {
		time.Sleep(10 * time.Millisecond)
		q.Push(7)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, ok := q.Pop(ctx)
	require.True(t, ok)
	require.Equal(t, 7, v)
}

func TestQueuePopReturnsOnCancel(t *testing.T) {
	t.Parallel()

	q := NewQueue[int](0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok := q.Pop(ctx)
	require.False(t, ok)
}

func TestBoundedQueueEvictsOldest(t *testing.T) {
	t.Parallel()

	q := NewQueue[int](2)
	require.True(t, q.Push(1))
	require.True(t, q.Push(2))
	require.False(t, q.Push(3))

	ctx := context.Background()
	v, _ := q.Pop(ctx)
	require.Equal(t, 2, v)
	v, _ = q.Pop(ctx)
	require.Equal(t, 3, v)
}
