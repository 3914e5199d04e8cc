package queue

import (
	"context"
	"errors"
	"sync"
	"time"

	"marketplace-wallet/internal/core/domain"
	"marketplace-wallet/internal/core/ports"

	"github.com/rs/zerolog"
)

// ErrQueueClosed is returned by Enqueue after Close.
var ErrQueueClosed = errors.New("task queue closed")

// MemoryQueue is an in-process ports.TaskQueue with a fixed worker pool.
// Failed tasks are retried after a delay up to maxAttempts. Tasks do not
// survive a restart.
type MemoryQueue struct {
	tasks       chan *domain.Task
	workers     int
	maxAttempts int
	retryDelay  func(attempt int) time.Duration

	mu     sync.RWMutex
	closed bool
	log    zerolog.Logger
}

// NewMemoryQueue creates a queue with the given buffer and worker count.
func NewMemoryQueue(buffer, workers, maxAttempts int, log zerolog.Logger) *MemoryQueue {
	if workers < 1 {
		workers = 1
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &MemoryQueue{
		tasks:       make(chan *domain.Task, buffer),
		workers:     workers,
		maxAttempts: maxAttempts,
		retryDelay:  redeliveryDelay,
		log:         log,
	}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, task *domain.Task) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume runs the worker pool until ctx is done.
func (q *MemoryQueue) Consume(ctx context.Context, handler ports.TaskHandler) error {
	var wg sync.WaitGroup
	for i := 0; i < q.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case task, ok := <-q.tasks:
					if !ok {
						return
					}
					q.handle(ctx, handler, task)
				}
			}
		}()
	}
	wg.Wait()
	return ctx.Err()
}

func (q *MemoryQueue) handle(ctx context.Context, handler ports.TaskHandler, task *domain.Task) {
	task.Attempt++
	err := handler(ctx, task)
	if err == nil {
		return
	}

	if task.Attempt >= q.maxAttempts {
		q.log.Error().Err(err).
			Str("task_id", task.ID).
			Str("type", string(task.Type)).
			Int("attempt", task.Attempt).
			Msg("task failed, giving up")
		return
	}

	q.log.Warn().Err(err).
		Str("task_id", task.ID).
		Str("type", string(task.Type)).
		Int("attempt", task.Attempt).
		Msg("task failed, scheduling retry")

	time.AfterFunc(q.retryDelay(task.Attempt), func() {
		if err := q.requeue(task); err != nil {
			q.log.Warn().Err(err).Str("task_id", task.ID).Msg("task retry dropped")
		}
	})
}

var errQueueFull = errors.New("task queue full")

func (q *MemoryQueue) requeue(task *domain.Task) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.tasks <- task:
		return nil
	default:
		return errQueueFull
	}
}

// Close stops accepting tasks. Scheduled retries that fire afterwards are dropped.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	return nil
}
