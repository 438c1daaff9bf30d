// Package worker carries the asynchronous lane of the video pipeline: the job
// queue hand-off and the runner loop that drives jobs to a terminal state.
package worker

import (
	"context"
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Queue hands a job id to the asynchronous worker lane. Enqueue is
// fire-and-forget: the caller never waits for processing.
type Queue interface {
	Enqueue(ctx context.Context, jobID uint) error
}

// Handler processes one job id. Failures are persisted on the job record by
// the handler itself, so the runner only logs them.
type Handler func(ctx context.Context, jobID uint) error

// RedisQueue pushes job ids onto a Redis list.
type RedisQueue struct {
	client *redis.Client
	key    string
}

func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	return &RedisQueue{client: client, key: key}
}

func (q *RedisQueue) Enqueue(ctx context.Context, jobID uint) error {
	return q.client.LPush(ctx, q.key, strconv.FormatUint(uint64(jobID), 10)).Err()
}

// Runner consumes job ids from the Redis list and invokes the handler, one
// job at a time. Run blocks until the context is cancelled.
type Runner struct {
	client  *redis.Client
	key     string
	handler Handler
}

func NewRunner(client *redis.Client, key string, handler Handler) *Runner {
	return &Runner{client: client, key: key, handler: handler}
}

func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		values, err := r.client.BRPop(ctx, 5*time.Second, r.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("[worker] queue read failed: %v", err)
			time.Sleep(time.Second)
			continue
		}

		// BRPop returns [key, value]
		jobID, err := strconv.ParseUint(values[1], 10, 64)
		if err != nil {
			log.Printf("[worker] dropping malformed job id %q", values[1])
			continue
		}

		if err := r.handler(ctx, uint(jobID)); err != nil {
			log.Printf("[worker] job %d failed: %v", jobID, err)
		}
	}
}

// MemoryQueue is an in-process queue used by tests and single-binary setups.
// Enqueued ids are recorded and optionally dispatched to a handler on a
// separate goroutine.
type MemoryQueue struct {
	mu      sync.Mutex
	jobIDs  []uint
	handler Handler
}

func NewMemoryQueue(handler Handler) *MemoryQueue {
	return &MemoryQueue{handler: handler}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, jobID uint) error {
	q.mu.Lock()
	q.jobIDs = append(q.jobIDs, jobID)
	handler := q.handler
	q.mu.Unlock()

	if handler != nil {
		go func() {
			if err := handler(context.Background(), jobID); err != nil {
				log.Printf("[worker] job %d failed: %v", jobID, err)
			}
		}()
	}
	return nil
}

// Enqueued returns the ids handed off so far, in order.
func (q *MemoryQueue) Enqueued() []uint {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]uint, len(q.jobIDs))
	copy(out, q.jobIDs)
	return out
}
