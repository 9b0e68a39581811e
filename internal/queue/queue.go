// Package queue implements the bounded multi-producer/multi-consumer job
// hand-off between the scanner pool and the deleter pool. It is a thin
// wrapper around a buffered Go channel plus two monotonic counters:
// Go's channel already gives MPMC semantics and blocking-when-full
// backpressure for free, so the wrapper's only job is to track
// enqueued/dequeued totals for depth() and termination detection.
package queue

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/yourusername/fast-rm/internal/job"
)

// DefaultCapacity computes the bounded-queue capacity heuristic:
// max(10_000, scanThreads*1000). A handful of hundred jobs in flight per
// scanner is enough to hide per-unlink syscall latency without letting
// memory grow unbounded on a multi-million-file tree.
func DefaultCapacity(scanThreads int) int {
	c := scanThreads * 1000
	if c < 10_000 {
		c = 10_000
	}
	return c
}

// JobQueue is a bounded FIFO of job.DeleteJob with enqueued/dequeued
// counters. enqueued and dequeued are padded to their own cache lines: both
// scanners and deleters touch these on every single job, and without
// padding they'd false-share a cache line with each other (and, on a
// 32-byte struct, with unrelated JobQueue fields).
type JobQueue struct {
	ch chan job.DeleteJob

	enqueued atomic.Int64
	_        [56]byte
	dequeued atomic.Int64
	_        [56]byte
}

// New creates a JobQueue with the given capacity.
func New(capacity int) *JobQueue {
	return &JobQueue{ch: make(chan job.DeleteJob, capacity)}
}

// Send enqueues j, blocking while the queue is full or until ctx is
// cancelled. It returns ctx.Err() on cancellation.
func (q *JobQueue) Send(ctx context.Context, j job.DeleteJob) error {
	select {
	case q.ch <- j:
		q.enqueued.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySend enqueues j without blocking. It reports whether the job was
// accepted.
func (q *JobQueue) TrySend(j job.DeleteJob) bool {
	select {
	case q.ch <- j:
		q.enqueued.Add(1)
		return true
	default:
		return false
	}
}

// RecvTimeout waits up to timeout for a job. ok is false on timeout; closed
// is true if the channel was closed by the orchestrator (no ok in that
// case either).
func (q *JobQueue) RecvTimeout(timeout time.Duration) (j job.DeleteJob, ok bool, closed bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case j, open := <-q.ch:
		if !open {
			return job.DeleteJob{}, false, true
		}
		q.dequeued.Add(1)
		return j, true, false
	case <-timer.C:
		return job.DeleteJob{}, false, false
	}
}

// Close closes the underlying channel. Only the orchestrator should call
// this, and only after every scanner has finished sending.
func (q *JobQueue) Close() { close(q.ch) }

// Depth returns enqueued-total minus dequeued-total: the number of jobs
// currently sitting in the queue.
func (q *JobQueue) Depth() int64 {
	return q.enqueued.Load() - q.dequeued.Load()
}

// IsEmpty is equivalent to Depth() == 0.
func (q *JobQueue) IsEmpty() bool { return q.Depth() == 0 }

// EnqueuedTotal returns the monotonic total of jobs ever sent.
func (q *JobQueue) EnqueuedTotal() int64 { return q.enqueued.Load() }

// DequeuedTotal returns the monotonic total of jobs ever received.
func (q *JobQueue) DequeuedTotal() int64 { return q.dequeued.Load() }
