package scanner

import (
	"context"
	"sync"
	"time"

	attend "github.com/smartattend/go-attend"
	"github.com/smartattend/go-attend/client"
)

// PollInterval is the cadence of dashboard data refreshes.
const PollInterval = 3 * time.Second

// Snapshot bundles one refresh of today's numbers and the recent log.
type Snapshot struct {
	Stats client.Stats
	Log   []client.LogEntry
}

// Fetcher loads the dashboard data. Implemented by *client.Client.
type Fetcher interface {
	Stats(ctx context.Context) (client.Stats, error)
	AttendanceLog(ctx context.Context) ([]client.LogEntry, error)
}

// Poller periodically fetches dashboard data and hands each snapshot to an
// apply callback. Fetches are sequenced: a slow response that completes
// after a newer one has already been applied is dropped, so the view never
// moves backwards in time.
type Poller struct {
	fetcher  Fetcher
	logger   attend.Logger
	interval time.Duration
	apply    func(Snapshot)

	mu      sync.Mutex
	seq     uint64
	applied uint64
	done    bool
}

// NewPoller creates a Poller delivering snapshots to apply.
func NewPoller(fetcher Fetcher, apply func(Snapshot)) *Poller {
	return &Poller{
		fetcher:  fetcher,
		logger:   noopLogger{},
		interval: PollInterval,
		apply:    apply,
	}
}

func (p *Poller) WithLogger(logger attend.Logger) *Poller {
	p.logger = logger
	return p
}

// WithInterval overrides the poll cadence; tests use millisecond values.
func (p *Poller) WithInterval(d time.Duration) *Poller {
	if d > 0 {
		p.interval = d
	}
	return p
}

// Run blocks, fetching immediately and then on every tick until ctx is
// cancelled. After Run returns the apply callback is never invoked again,
// even by fetches that were still in flight.
func (p *Poller) Run(ctx context.Context) error {
	p.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.mu.Lock()
			p.done = true
			p.mu.Unlock()
			return ctx.Err()
		case <-ticker.C:
			p.Refresh(ctx)
		}
	}
}

// Refresh starts one fetch without waiting for the next tick. The scan loop
// uses it to update the numbers right after a match.
func (p *Poller) Refresh(ctx context.Context) {
	p.mu.Lock()
	if p.done {
		p.mu.Unlock()
		return
	}
	p.seq++
	n := p.seq
	p.mu.Unlock()

	go p.fetch(ctx, n)
}

func (p *Poller) fetch(ctx context.Context, n uint64) {
	stats, err := p.fetcher.Stats(ctx)
	if err != nil {
		p.logger.Warn("Stats refresh failed: %v", err)
		return
	}
	log, err := p.fetcher.AttendanceLog(ctx)
	if err != nil {
		p.logger.Warn("Attendance log refresh failed: %v", err)
		return
	}

	// The staleness check and the callback stay under one lock so two
	// fetches completing close together cannot deliver out of order. The
	// callback must not call back into the Poller.
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done || ctx.Err() != nil || n <= p.applied {
		return
	}
	p.applied = n
	if p.apply != nil {
		p.apply(Snapshot{Stats: stats, Log: log})
	}
}
