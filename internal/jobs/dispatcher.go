package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/sevigo/mamba-review/internal/core"
	"github.com/sevigo/mamba-review/internal/metrics"
)

// QueueSize is the number of insights that may wait for a worker.
const QueueSize = 100

// ErrQueueFull is returned by Dispatch when no queue slot is free.
var ErrQueueFull = errors.New("insight queue is full")

// dispatcher implements core.InsightDispatcher with a fixed pool of workers
// draining a bounded queue.
type dispatcher struct {
	job        core.InsightJob
	queue      chan *core.Insight
	maxWorkers int
	wg         sync.WaitGroup
	stopOnce   sync.Once
	logger     *slog.Logger
}

// NewDispatcher starts maxWorkers workers. Values below 1 mean one worker.
func NewDispatcher(job core.InsightJob, maxWorkers int, logger *slog.Logger) core.InsightDispatcher {
	return newDispatcher(job, maxWorkers, QueueSize, logger)
}

func newDispatcher(job core.InsightJob, maxWorkers, queueSize int, logger *slog.Logger) *dispatcher {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	d := &dispatcher{
		job:        job,
		queue:      make(chan *core.Insight, queueSize),
		maxWorkers: maxWorkers,
		logger:     logger,
	}
	for i := range d.maxWorkers {
		d.wg.Add(1)
		go d.worker(i)
	}
	return d
}

func (d *dispatcher) worker(id int) {
	defer d.wg.Done()
	d.logger.Debug("starting insight worker", "id", id)

	for insight := range d.queue {
		metrics.InsightQueueDepth.Dec()
		if err := d.job.Run(context.Background(), insight); err != nil {
			d.logger.Error("insight job failed", "worker_id", id, "error", err)
		}
	}

	d.logger.Debug("insight worker stopped", "id", id)
}

// Dispatch queues insight without blocking.
func (d *dispatcher) Dispatch(_ context.Context, insight *core.Insight) error {
	metrics.InsightQueueDepth.Inc()
	select {
	case d.queue <- insight:
		return nil
	default:
		metrics.InsightQueueDepth.Dec()
		return ErrQueueFull
	}
}

// Stop closes the queue and waits for queued insights to be processed.
func (d *dispatcher) Stop() {
	d.stopOnce.Do(func() {
		d.logger.Info("stopping insight dispatcher")
		close(d.queue)
		d.wg.Wait()
		d.logger.Info("insight dispatcher stopped")
	})
}
