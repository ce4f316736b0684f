package api

import (
	"context"
	"sync/atomic"
)

// lane is a counting semaphore with usage counters.
type lane struct {
	sem    chan struct{}
	queued atomic.Int64
	active atomic.Int64
	total  atomic.Int64
}

func newLane(size int) *lane {
	return &lane{sem: make(chan struct{}, size)}
}

func (l *lane) acquire(ctx context.Context) error {
	l.queued.Add(1)
	defer l.queued.Add(-1)

	select {
	case l.sem <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *lane) tryAcquire() bool {
	select {
	case l.sem <- struct{}{}:
		l.active.Add(1)
		return true
	default:
		return false
	}
}

func (l *lane) release() {
	l.active.Add(-1)
	l.total.Add(1)
	<-l.sem
}

// WorkerPool bounds concurrent request processing. Plays and apply requests
// share the fast lane; self-play runs take the slow lane.
type WorkerPool struct {
	fast *lane
	slow *lane
}

// PoolConfig configures the worker pool.
type PoolConfig struct {
	MaxFastWorkers int // Max concurrent plays/apply operations (default: 100)
	MaxSlowWorkers int // Max concurrent self-play runs (default: 4)
}

// DefaultPoolConfig returns a PoolConfig with sensible defaults.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxFastWorkers: 100,
		MaxSlowWorkers: 4,
	}
}

// NewWorkerPool creates a new worker pool with the given configuration.
func NewWorkerPool(config PoolConfig) *WorkerPool {
	def := DefaultPoolConfig()
	if config.MaxFastWorkers <= 0 {
		config.MaxFastWorkers = def.MaxFastWorkers
	}
	if config.MaxSlowWorkers <= 0 {
		config.MaxSlowWorkers = def.MaxSlowWorkers
	}

	return &WorkerPool{
		fast: newLane(config.MaxFastWorkers),
		slow: newLane(config.MaxSlowWorkers),
	}
}

// AcquireFast waits for a fast slot or until ctx is done.
func (p *WorkerPool) AcquireFast(ctx context.Context) error { return p.fast.acquire(ctx) }

// ReleaseFast releases a fast slot.
func (p *WorkerPool) ReleaseFast() { p.fast.release() }

// TryAcquireFast takes a fast slot without blocking.
func (p *WorkerPool) TryAcquireFast() bool { return p.fast.tryAcquire() }

// AcquireSlow waits for a slow slot or until ctx is done.
func (p *WorkerPool) AcquireSlow(ctx context.Context) error { return p.slow.acquire(ctx) }

// ReleaseSlow releases a slow slot.
func (p *WorkerPool) ReleaseSlow() { p.slow.release() }

// TryAcquireSlow takes a slow slot without blocking.
func (p *WorkerPool) TryAcquireSlow() bool { return p.slow.tryAcquire() }

// PoolStats is a snapshot of pool usage.
type PoolStats struct {
	ActiveFast int64 `json:"active_fast"`
	ActiveSlow int64 `json:"active_slow"`
	QueuedFast int64 `json:"queued_fast"`
	QueuedSlow int64 `json:"queued_slow"`
	TotalFast  int64 `json:"total_fast"`
	TotalSlow  int64 `json:"total_slow"`
	MaxFast    int   `json:"max_fast"`
	MaxSlow    int   `json:"max_slow"`
}

// Stats returns current pool statistics.
func (p *WorkerPool) Stats() PoolStats {
	return PoolStats{
		ActiveFast: p.fast.active.Load(),
		ActiveSlow: p.slow.active.Load(),
		QueuedFast: p.fast.queued.Load(),
		QueuedSlow: p.slow.queued.Load(),
		TotalFast:  p.fast.total.Load(),
		TotalSlow:  p.slow.total.Load(),
		MaxFast:    cap(p.fast.sem),
		MaxSlow:    cap(p.slow.sem),
	}
}
