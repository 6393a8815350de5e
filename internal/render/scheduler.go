package render

import (
	"context"
	"time"
)

// FrameQueue is a Scheduler whose callbacks run when the owner flushes it,
// typically once per display tick. It is not safe for concurrent use; the
// owner's goroutine is the rendering thread.
type FrameQueue struct {
	pending []func()
	spare   []func()
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

func (q *FrameQueue) RequestFrame(fn func()) {
	q.pending = append(q.pending, fn)
}

func (q *FrameQueue) Pending() int { return len(q.pending) }

// Flush runs the callbacks requested before the call. Callbacks requested
// while flushing wait for the next flush. It returns the number run.
func (q *FrameQueue) Flush() int {
	batch := q.pending
	q.pending = q.spare[:0]
	for i, fn := range batch {
		fn()
		batch[i] = nil
	}
	q.spare = batch[:0]
	return len(batch)
}

// Run flushes the queue every interval until ctx is done, the queue drains,
// or maxFrames flushes have run. A zero interval flushes back to back and
// a non-positive maxFrames means no limit.
func (q *FrameQueue) Run(ctx context.Context, interval time.Duration, maxFrames int) error {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for frames := 0; maxFrames <= 0 || frames < maxFrames; frames++ {
		if q.Pending() == 0 {
			return nil
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		q.Flush()
	}
	return nil
}
