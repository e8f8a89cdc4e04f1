package server

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcher_SameGuildRunsInArrivalOrder(t *testing.T) {
	d := newDispatcher(testLogger())

	const jobs = 50 // stays under queueDepth even if the worker never drains
	var mu sync.Mutex
	var got []int
	done := make(chan struct{})

	for i := 0; i < jobs; i++ {
		i := i
		d.enqueue("1", func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			if i == jobs-1 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("queue never drained")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, jobs)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestDispatcher_GuildsGetIndependentWorkers(t *testing.T) {
	d := newDispatcher(testLogger())

	// Stall guild 1's worker; guild 2 must still make progress.
	gate := make(chan struct{})
	started := make(chan struct{})
	d.enqueue("1", func() {
		close(started)
		<-gate
	})
	<-started

	ran := make(chan struct{})
	d.enqueue("2", func() { close(ran) })

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("second guild starved by first guild's worker")
	}
	close(gate)
}

func TestDispatcher_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	d := newDispatcher(testLogger())

	// Park the worker so the buffer fills to capacity.
	gate := make(chan struct{})
	started := make(chan struct{})
	d.enqueue("1", func() {
		close(started)
		<-gate
	})
	<-started

	done := make(chan struct{})
	for i := 0; i < queueDepth; i++ {
		i := i
		d.enqueue("1", func() {
			if i == queueDepth-1 {
				close(done)
			}
		})
	}

	// The buffer is full now; one more must drop without blocking the
	// caller (a blocked enqueue would hang this test).
	var overflowRan atomic.Bool
	d.enqueue("1", func() { overflowRan.Store(true) })

	close(gate)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("queue never drained")
	}
	assert.False(t, overflowRan.Load())
}
