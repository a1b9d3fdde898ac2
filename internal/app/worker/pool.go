package worker

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"docpod/internal/app/errors"
	"docpod/internal/app/queue"
)

// Processor runs one queued job to completion
type Processor interface {
	Process(ctx context.Context, id int64) error
}

// Stats is a point-in-time view of the pool, served by the health endpoint
type Stats struct {
	Workers   int       `json:"workers"`
	Busy      int64     `json:"busy"`
	Processed int64     `json:"processed"`
	Errors    int64     `json:"errors"`
	StartedAt time.Time `json:"started_at"`
	Running   bool      `json:"running"`
}

// Pool drains a queue with a fixed number of goroutines
type Pool struct {
	queue     queue.Queue
	processor Processor
	workers   int
	logger    *zap.Logger

	mu        sync.Mutex
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	startedAt time.Time

	busy      atomic.Int64
	processed atomic.Int64
	failures  atomic.Int64
}

// NewPool creates a stopped pool
func NewPool(q queue.Queue, processor Processor, workers int, logger *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		queue:     q,
		processor: processor,
		workers:   workers,
		logger:    logger,
	}
}

// Start launches the workers. Calling Start on a running pool is a no-op.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.startedAt = time.Now()

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
	p.logger.Info("worker pool started", zap.Int("workers", p.workers))
}

// Stop cancels the workers and waits for in-flight jobs to return
func (p *Pool) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	p.wg.Wait()
	p.logger.Info("worker pool stopped", zap.Int64("processed", p.processed.Load()))
}

// Stats returns current counters
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	running := p.cancel != nil
	startedAt := p.startedAt
	p.mu.Unlock()

	return Stats{
		Workers:   p.workers,
		Busy:      p.busy.Load(),
		Processed: p.processed.Load(),
		Errors:    p.failures.Load(),
		StartedAt: startedAt,
		Running:   running,
	}
}

func (p *Pool) run(ctx context.Context, n int) {
	defer p.wg.Done()
	logger := p.logger.With(zap.Int("worker", n))

	for {
		id, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil || stderrors.Is(err, errors.ErrQueueClosed) {
				return
			}
			logger.Error("failed to dequeue job", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		p.handle(ctx, logger, id)
	}
}

func (p *Pool) handle(ctx context.Context, logger *zap.Logger, id int64) {
	p.busy.Add(1)
	defer p.busy.Add(-1)
	defer func() {
		if r := recover(); r != nil {
			p.failures.Add(1)
			logger.Error("job panicked", zap.Int64("podcast_id", id), zap.Any("panic", r))
		}
	}()

	if err := p.processor.Process(ctx, id); err != nil {
		p.failures.Add(1)
		logger.Error("job processing error", zap.Int64("podcast_id", id), zap.Error(err))
	}
	p.processed.Add(1)
}
