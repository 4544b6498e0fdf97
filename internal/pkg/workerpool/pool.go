// Package workerpool bounds the fan-out of the research pipeline. Search,
// fetch and verification branches all run as pool tasks so a burst of topics
// cannot spawn unbounded goroutines.
package workerpool

import (
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

var ErrPoolClosed = errors.New("worker pool is closed")

// TaskResult carries the outcome of a task submitted with SubmitWithResult.
type TaskResult struct {
	Data  any
	Error error
}

// Config holds pool sizing parameters.
type Config struct {
	Workers int // number of concurrent workers
}

// DefaultConfig returns pool defaults sized for a single pipeline instance.
func DefaultConfig() *Config {
	return &Config{Workers: 32}
}

// Statistics tracks submitted/completed/failed task counts.
type Statistics struct {
	mu        sync.Mutex
	Submitted int64
	Completed int64
	Failed    int64
}

func (s *Statistics) snapshot() (submitted, completed, failed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Submitted, s.Completed, s.Failed
}

// Pool wraps an ants pool with result channels and counters.
type Pool struct {
	pool   *ants.Pool
	stats  *Statistics
	logger *zap.Logger

	closed   bool
	closedMu sync.Mutex
}

// New creates a worker pool. Worker panics are logged, not propagated; a
// panicking task simply counts as failed.
func New(cfg *Config, log *zap.Logger) (*Pool, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}

	p := &Pool{stats: &Statistics{}, logger: log}

	antsPool, err := ants.NewPool(cfg.Workers,
		ants.WithPanicHandler(func(v any) {
			log.Error("worker panic", zap.Any("error", v))
			p.stats.mu.Lock()
			p.stats.Failed++
			p.stats.mu.Unlock()
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ants pool: %w", err)
	}
	p.pool = antsPool

	return p, nil
}

// Submit schedules a task on the pool.
func (p *Pool) Submit(task func()) error {
	p.closedMu.Lock()
	if p.closed {
		p.closedMu.Unlock()
		return ErrPoolClosed
	}
	p.closedMu.Unlock()

	p.stats.mu.Lock()
	p.stats.Submitted++
	p.stats.mu.Unlock()

	return p.pool.Submit(func() {
		task()
		p.stats.mu.Lock()
		p.stats.Completed++
		p.stats.mu.Unlock()
	})
}

// SubmitWithResult schedules a task and returns a channel that will receive
// exactly one TaskResult. If the pool rejects the task the error is delivered
// on the channel so callers can treat rejection like any failed branch.
func (p *Pool) SubmitWithResult(task func() (any, error)) <-chan TaskResult {
	resultCh := make(chan TaskResult, 1)

	err := p.Submit(func() {
		data, err := task()
		resultCh <- TaskResult{Data: data, Error: err}
		close(resultCh)
	})
	if err != nil {
		resultCh <- TaskResult{Error: err}
		close(resultCh)
	}

	return resultCh
}

// Stats returns current task counters.
func (p *Pool) Stats() (submitted, completed, failed int64) {
	return p.stats.snapshot()
}

// Running returns the number of currently executing workers.
func (p *Pool) Running() int {
	return p.pool.Running()
}

// Release shuts the pool down. Pending tasks are discarded.
func (p *Pool) Release() {
	p.closedMu.Lock()
	defer p.closedMu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.pool.Release()
}
