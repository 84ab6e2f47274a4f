// Package scanner runs the attendance kiosk's background loops: the
// capture-and-submit face scan cycle and the stats/log poller. Both are
// plain blocking loops driven by a context so the owning view can tear them
// down without leaving callbacks behind.
package scanner

import (
	"context"
	"sync"
	"time"

	attend "github.com/smartattend/go-attend"
	"github.com/smartattend/go-attend/client"
)

const (
	// ScanInterval is the cadence of capture-and-submit cycles.
	ScanInterval = 2 * time.Second
	// MatchCooldown pauses scanning after a successful match so the same
	// person is not re-submitted while still in frame.
	MatchCooldown = 3 * time.Second
	// ErrorClearDelay is how long a transient scan error stays visible.
	ErrorClearDelay = 3 * time.Second
)

// FrameSource produces camera frames as data URLs. An empty frame with a
// nil error means the camera had nothing yet; the cycle is skipped.
type FrameSource interface {
	Capture(ctx context.Context) (string, error)
}

// Marker submits a frame for face matching. Implemented by *client.Client.
type Marker interface {
	MarkAttendance(ctx context.Context, image string) (client.MarkResult, error)
}

// Status is a snapshot of the scan loop for rendering. Err self-clears:
// it reads empty once ErrorClearDelay has passed since the failure.
type Status struct {
	Scanning  bool
	Cooldown  bool
	LastMatch string
	Err       string
}

// Scanner owns one scan loop.
type Scanner struct {
	frames   FrameSource
	marker   Marker
	logger   attend.Logger
	now      func() time.Time
	interval time.Duration
	cooldown time.Duration
	errDelay time.Duration

	onMatch   func(name string)
	onRefresh func()

	mu            sync.Mutex
	running       bool
	lastMatch     string
	cooldownUntil time.Time
	errMsg        string
	errAt         time.Time
}

// New creates a Scanner over a camera and the backend matcher.
func New(frames FrameSource, marker Marker) *Scanner {
	return &Scanner{
		frames:   frames,
		marker:   marker,
		logger:   noopLogger{},
		now:      time.Now,
		interval: ScanInterval,
		cooldown: MatchCooldown,
		errDelay: ErrorClearDelay,
	}
}

func (s *Scanner) WithLogger(logger attend.Logger) *Scanner {
	s.logger = logger
	return s
}

// WithIntervals overrides the loop timings; tests use millisecond values.
func (s *Scanner) WithIntervals(interval, cooldown, errDelay time.Duration) *Scanner {
	if interval > 0 {
		s.interval = interval
	}
	if cooldown > 0 {
		s.cooldown = cooldown
	}
	if errDelay > 0 {
		s.errDelay = errDelay
	}
	return s
}

// OnMatch registers the success callback, invoked with the matched name.
func (s *Scanner) OnMatch(fn func(name string)) *Scanner {
	s.onMatch = fn
	return s
}

// OnRefresh registers a hook fired after each match so the owning view can
// refresh its stats immediately instead of waiting for the next poll.
func (s *Scanner) OnRefresh(fn func()) *Scanner {
	s.onRefresh = fn
	return s
}

// Run blocks, executing scan cycles until ctx is cancelled. A cycle already
// in flight when cancellation arrives completes against the backend but its
// result is discarded.
func (s *Scanner) Run(ctx context.Context) error {
	s.setRunning(true)
	defer s.setRunning(false)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.cycle(ctx)
		}
	}
}

func (s *Scanner) cycle(ctx context.Context) {
	if s.inCooldown() {
		return
	}

	frame, err := s.frames.Capture(ctx)
	if err != nil {
		s.logger.Warn("Frame capture failed: %v", err)
		s.setError(attend.UserMessage(err))
		return
	}
	if frame == "" {
		return
	}

	result, err := s.marker.MarkAttendance(ctx, frame)
	if ctx.Err() != nil {
		// The view is gone; whatever came back is nobody's business.
		return
	}

	if err != nil {
		// A frame with no recognizable face is the normal idle case, not
		// a failure; the loop keeps going silently.
		if attend.IsNoFaceError(err) {
			return
		}
		s.logger.Warn("Attendance submit failed: %v", err)
		s.setError(attend.UserMessage(err))
		return
	}

	if !result.Match {
		return
	}

	s.recordMatch(result.Name)
	s.logger.Info("Attendance marked for %s", result.Name)

	if s.onMatch != nil {
		s.onMatch(result.Name)
	}
	if s.onRefresh != nil {
		s.onRefresh()
	}
}

// Status returns a render-ready snapshot.
func (s *Scanner) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	status := Status{
		Scanning:  s.running,
		Cooldown:  now.Before(s.cooldownUntil),
		LastMatch: s.lastMatch,
	}
	if s.errMsg != "" && now.Sub(s.errAt) < s.errDelay {
		status.Err = s.errMsg
	}
	return status
}

func (s *Scanner) inCooldown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Before(s.cooldownUntil)
}

func (s *Scanner) recordMatch(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastMatch = name
	s.cooldownUntil = s.now().Add(s.cooldown)
	s.errMsg = ""
}

func (s *Scanner) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
	s.errAt = s.now()
}

func (s *Scanner) setRunning(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = v
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
