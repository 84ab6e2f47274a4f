package scanner_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	attend "github.com/smartattend/go-attend"
	"github.com/smartattend/go-attend/client"
	"github.com/smartattend/go-attend/scanner"
	"github.com/stretchr/testify/assert"
)

type staticFrames struct {
	frame string
	err   error
}

func (f staticFrames) Capture(context.Context) (string, error) {
	return f.frame, f.err
}

// scriptedMarker replies from a script, repeating the last entry once the
// script runs out.
type scriptedMarker struct {
	mu     sync.Mutex
	calls  int
	script []markReply
	gate   chan struct{}
}

type markReply struct {
	result client.MarkResult
	err    error
}

func (m *scriptedMarker) MarkAttendance(ctx context.Context, image string) (client.MarkResult, error) {
	m.mu.Lock()
	idx := m.calls
	m.calls++
	if idx >= len(m.script) {
		idx = len(m.script) - 1
	}
	reply := m.script[idx]
	gate := m.gate
	m.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return reply.result, reply.err
}

func (m *scriptedMarker) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func runScanner(t *testing.T, s *scanner.Scanner) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("scanner did not stop")
		}
	})
	return cancel
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestScannerMarksOnMatch(t *testing.T) {
	marker := &scriptedMarker{script: []markReply{
		{result: client.MarkResult{Match: true, Name: "Ada Lovelace"}},
	}}

	matches := make(chan string, 16)
	refreshed := make(chan struct{}, 16)

	s := scanner.New(staticFrames{frame: "data:image/jpeg;base64,ZnJhbWU="}, marker).
		WithIntervals(5*time.Millisecond, 100*time.Millisecond, 50*time.Millisecond).
		OnMatch(func(name string) { matches <- name }).
		OnRefresh(func() { refreshed <- struct{}{} })

	runScanner(t, s)

	select {
	case name := <-matches:
		assert.Equal(t, "Ada Lovelace", name)
	case <-time.After(time.Second):
		t.Fatal("no match reported")
	}

	select {
	case <-refreshed:
	case <-time.After(time.Second):
		t.Fatal("refresh hook never fired")
	}

	status := s.Status()
	assert.True(t, status.Scanning)
	assert.True(t, status.Cooldown)
	assert.Equal(t, "Ada Lovelace", status.LastMatch)
	assert.Empty(t, status.Err)
}

func TestScannerCooldownPausesSubmissions(t *testing.T) {
	marker := &scriptedMarker{script: []markReply{
		{result: client.MarkResult{Match: true, Name: "Grace Hopper"}},
	}}

	matches := make(chan string, 16)
	s := scanner.New(staticFrames{frame: "data:frame"}, marker).
		WithIntervals(5*time.Millisecond, 80*time.Millisecond, 50*time.Millisecond).
		OnMatch(func(name string) { matches <- name })

	runScanner(t, s)

	<-matches
	after := marker.callCount()

	// Several tick periods pass inside the cooldown window without a
	// single new submission.
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, after, marker.callCount())

	// Once the cooldown lapses the loop picks back up.
	waitFor(t, func() bool { return marker.callCount() > after }, "scanning never resumed after cooldown")
}

func TestScannerNoFaceIsSilent(t *testing.T) {
	noFace := goerrors.New("No face detected", goerrors.CategoryBadInput)
	marker := &scriptedMarker{script: []markReply{{err: noFace}}}

	s := scanner.New(staticFrames{frame: "data:frame"}, marker).
		WithIntervals(5*time.Millisecond, 50*time.Millisecond, 50*time.Millisecond)

	runScanner(t, s)

	waitFor(t, func() bool { return marker.callCount() >= 4 }, "loop stalled on no-face responses")
	assert.Empty(t, s.Status().Err, "an empty frame is idle, not an error")
	assert.Empty(t, s.Status().LastMatch)
}

func TestScannerTransientErrorSelfClears(t *testing.T) {
	marker := &scriptedMarker{script: []markReply{
		{err: attend.ErrServerError},
		{result: client.MarkResult{}},
	}}

	s := scanner.New(staticFrames{frame: "data:frame"}, marker).
		WithIntervals(5*time.Millisecond, 50*time.Millisecond, 30*time.Millisecond)

	runScanner(t, s)

	waitFor(t, func() bool { return s.Status().Err != "" }, "error never surfaced")
	assert.Equal(t, "Server error. Please try again later.", s.Status().Err)

	// The banner clears on its own while the loop keeps running.
	waitFor(t, func() bool { return s.Status().Err == "" }, "error never cleared")
	before := marker.callCount()
	waitFor(t, func() bool { return marker.callCount() > before }, "loop stalled after error")
}

func TestScannerCancelDiscardsInFlightResult(t *testing.T) {
	gate := make(chan struct{})
	marker := &scriptedMarker{
		script: []markReply{{result: client.MarkResult{Match: true, Name: "Late Reply"}}},
		gate:   gate,
	}

	var matched atomic.Bool
	s := scanner.New(staticFrames{frame: "data:frame"}, marker).
		WithIntervals(5*time.Millisecond, 50*time.Millisecond, 50*time.Millisecond).
		OnMatch(func(string) { matched.Store(true) })

	cancel := runScanner(t, s)

	waitFor(t, func() bool { return marker.callCount() > 0 }, "submission never started")
	cancel()
	close(gate)

	time.Sleep(30 * time.Millisecond)
	assert.False(t, matched.Load(), "result arriving after teardown must be discarded")
	assert.Empty(t, s.Status().LastMatch)
}

func TestScannerSkipsEmptyFrames(t *testing.T) {
	marker := &scriptedMarker{script: []markReply{{}}}

	s := scanner.New(staticFrames{frame: ""}, marker).
		WithIntervals(5*time.Millisecond, 50*time.Millisecond, 50*time.Millisecond)

	runScanner(t, s)

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, marker.callCount(), "nothing to submit without a frame")
}

func TestScannerCaptureFailureSurfaces(t *testing.T) {
	marker := &scriptedMarker{script: []markReply{{}}}

	s := scanner.New(staticFrames{err: attend.ErrNetworkUnreachable}, marker).
		WithIntervals(5*time.Millisecond, 50*time.Millisecond, 200*time.Millisecond)

	runScanner(t, s)

	waitFor(t, func() bool { return s.Status().Err != "" }, "capture failure never surfaced")
	assert.Zero(t, marker.callCount())
}
