package scanner_test

import (
	"context"
	"sync"
	"testing"
	"time"

	attend "github.com/smartattend/go-attend"
	"github.com/smartattend/go-attend/client"
	"github.com/smartattend/go-attend/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequencedFetcher stamps each Stats call with a monotonically increasing
// PresentToday so tests can tell snapshots apart, and can hold selected
// calls open until released.
type sequencedFetcher struct {
	mu    sync.Mutex
	calls int
	holds map[int]chan struct{}
	fail  error
}

func (f *sequencedFetcher) Stats(ctx context.Context) (client.Stats, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	hold := f.holds[n]
	fail := f.fail
	f.mu.Unlock()

	if hold != nil {
		<-hold
	}
	if fail != nil {
		return client.Stats{}, fail
	}
	return client.Stats{TotalStudents: 100, PresentToday: n}, nil
}

func (f *sequencedFetcher) AttendanceLog(ctx context.Context) ([]client.LogEntry, error) {
	return []client.LogEntry{{Name: "Ada Lovelace", Date: "2026-08-30", Time: "09:00:00"}}, nil
}

func (f *sequencedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestPollerDeliversSnapshots(t *testing.T) {
	fetcher := &sequencedFetcher{}
	snaps := make(chan scanner.Snapshot, 16)

	p := scanner.NewPoller(fetcher, func(s scanner.Snapshot) { snaps <- s }).
		WithInterval(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = p.Run(ctx) }()

	var first scanner.Snapshot
	select {
	case first = <-snaps:
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}

	assert.Equal(t, 100, first.Stats.TotalStudents)
	require.Len(t, first.Log, 1)
	assert.Equal(t, "Ada Lovelace", first.Log[0].Name)

	// The ticker keeps fresh data coming.
	select {
	case second := <-snaps:
		assert.Greater(t, second.Stats.PresentToday, first.Stats.PresentToday)
	case <-time.After(time.Second):
		t.Fatal("no follow-up snapshot")
	}
}

func TestPollerDropsStaleResponses(t *testing.T) {
	release := make(chan struct{})
	fetcher := &sequencedFetcher{holds: map[int]chan struct{}{1: release}}

	var mu sync.Mutex
	var applied []int
	p := scanner.NewPoller(fetcher, func(s scanner.Snapshot) {
		mu.Lock()
		applied = append(applied, s.Stats.PresentToday)
		mu.Unlock()
	}).WithInterval(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = p.Run(ctx) }()

	// The first fetch is stuck; a later one lands first.
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(applied) > 0
	}, "no snapshot applied while first fetch was held")

	mu.Lock()
	newest := applied[len(applied)-1]
	mu.Unlock()
	assert.Greater(t, newest, 1, "held first response cannot have been applied yet")

	// Releasing the stale response must not roll the view back.
	close(release)
	time.Sleep(30 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	for _, n := range applied {
		assert.NotEqual(t, 1, n, "stale response applied after newer data")
	}
	for i := 1; i < len(applied); i++ {
		assert.Greater(t, applied[i], applied[i-1], "snapshots applied out of order")
	}
}

func TestPollerStopsApplyingAfterCancel(t *testing.T) {
	fetcher := &sequencedFetcher{}

	var mu sync.Mutex
	var count int
	p := scanner.NewPoller(fetcher, func(scanner.Snapshot) {
		mu.Lock()
		count++
		mu.Unlock()
	}).WithInterval(5 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = p.Run(ctx)
	}()

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count > 0
	}, "poller never applied")

	cancel()
	<-done

	mu.Lock()
	after := count
	mu.Unlock()
	time.Sleep(30 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, after, count, "apply fired after the poller stopped")
}

func TestPollerSurvivesFetchErrors(t *testing.T) {
	fetcher := &sequencedFetcher{fail: attend.ErrServerError}

	p := scanner.NewPoller(fetcher, func(scanner.Snapshot) {
		t.Error("failed fetch must not produce a snapshot")
	}).WithInterval(5 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = p.Run(ctx) }()

	// The loop keeps retrying instead of dying on the first failure.
	waitFor(t, func() bool { return fetcher.callCount() >= 3 }, "poller stopped after a fetch error")
}
