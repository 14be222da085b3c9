package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolExecutesSubmittedTasks(t *testing.T) {
	pool := NewPool(2, 4, 10)
	defer pool.Shutdown(time.Second)

	var executed int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		err := pool.Submit(Task{Kind: "test", Run: func(ctx context.Context) {
			atomic.AddInt32(&executed, 1)
			wg.Done()
		}})
		require.NoError(t, err)
	}

	wg.Wait()
	assert.Equal(t, int32(5), atomic.LoadInt32(&executed))
}

func TestPoolRejectsWhenSaturated(t *testing.T) {
	pool := NewPool(1, 1, 1)
	defer pool.Shutdown(time.Second)

	block := make(chan struct{})
	started := make(chan struct{})

	// occupy the single worker
	require.NoError(t, pool.Submit(Task{Kind: "blocker", Run: func(ctx context.Context) {
		close(started)
		<-block
	}}))
	<-started

	// fill the queue of one
	require.NoError(t, pool.Submit(Task{Kind: "queued", Run: func(ctx context.Context) {}}))

	// no worker slot and no queue slot left
	err := pool.Submit(Task{Kind: "rejected", Run: func(ctx context.Context) {}})
	assert.ErrorIs(t, err, ErrQueueFull)

	close(block)
}

func TestPoolGrowsUnderPressure(t *testing.T) {
	pool := NewPool(1, 2, 1)
	defer pool.Shutdown(time.Second)

	block := make(chan struct{})
	started := make(chan struct{})

	require.NoError(t, pool.Submit(Task{Kind: "blocker", Run: func(ctx context.Context) {
		close(started)
		<-block
	}}))
	<-started

	require.NoError(t, pool.Submit(Task{Kind: "queued", Run: func(ctx context.Context) {}}))

	// queue is full but a second worker slot exists, so this is accepted
	done := make(chan struct{})
	err := pool.Submit(Task{Kind: "grown", Run: func(ctx context.Context) { close(done) }})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("grown worker never picked up the task")
	}

	close(block)
}

func TestPoolRecoversFromPanic(t *testing.T) {
	pool := NewPool(1, 1, 4)
	defer pool.Shutdown(time.Second)

	require.NoError(t, pool.Submit(Task{Kind: "panics", Run: func(ctx context.Context) {
		panic("boom")
	}}))

	done := make(chan struct{})
	require.NoError(t, pool.Submit(Task{Kind: "after", Run: func(ctx context.Context) { close(done) }}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker died after panic")
	}
}

func TestShutdownDrainsQueue(t *testing.T) {
	pool := NewPool(1, 1, 10)

	var executed int32
	for i := 0; i < 5; i++ {
		require.NoError(t, pool.Submit(Task{Kind: "drain", Run: func(ctx context.Context) {
			atomic.AddInt32(&executed, 1)
		}}))
	}

	pool.Shutdown(2 * time.Second)
	assert.Equal(t, int32(5), atomic.LoadInt32(&executed))
}
