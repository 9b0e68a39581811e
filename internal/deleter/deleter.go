// Package deleter implements the deleter pool: a fixed set of worker
// goroutines that drain job.DeleteJob values from the shared queue
// and remove them through a backend.Backend. An EmptyDir job whose
// directory isn't actually empty yet (because a sibling worker hasn't
// finished unlinking one of its children) is retried with bounded
// escalating backoff rather than treated as failure, since the scanner's
// enqueue order only guarantees children are queued before their parent,
// not that they finish first.
package deleter

import (
	"context"
	"errors"
	"sync"
	"syscall"
	"time"

	"github.com/yourusername/fast-rm/internal/backend"
	"github.com/yourusername/fast-rm/internal/job"
	"github.com/yourusername/fast-rm/internal/logger"
	"github.com/yourusername/fast-rm/internal/progress"
	"github.com/yourusername/fast-rm/internal/queue"
	"github.com/yourusername/fast-rm/internal/rmerrors"
)

const (
	// pollInterval is how long a worker waits on an empty queue before
	// checking whether scanning has finished. Short enough that a run
	// doesn't idle past its own completion by more than a blink.
	pollInterval = 100 * time.Millisecond

	// maxRmdirRetries bounds the escalating backoff for ENOTEMPTY. Doubling
	// from 1ms and capped at 1s, 16 tries wait about 7 seconds in total,
	// which comfortably outlasts any realistic sibling-unlink race.
	maxRmdirRetries = 16
	rmdirBaseDelay  = time.Millisecond
	rmdirMaxDelay   = time.Second
)

// Pool drains a queue.JobQueue with a fixed number of worker goroutines.
type Pool struct {
	workers         int
	dryRun          bool
	continueOnError bool
	backend         backend.Backend
	queue           *queue.JobQueue
	core            *progress.Core

	// scansDone is set once every scanner goroutine has returned; workers
	// use it together with queue.IsEmpty to decide the run is over.
	scansDone func() bool
}

// NewPool builds a deleter Pool. scansDone must report whether the scanner
// pool has finished producing jobs — workers exit once it returns true and
// the queue is empty.
func NewPool(workers int, dryRun, continueOnError bool, b backend.Backend, q *queue.JobQueue, core *progress.Core, scansDone func() bool) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{
		workers:         workers,
		dryRun:          dryRun,
		continueOnError: continueOnError,
		backend:         b,
		queue:           q,
		core:            core,
		scansDone:       scansDone,
	}
}

// Run starts the worker pool and blocks until every worker has exited:
// scanning finished and the queue drained, the queue was closed, or (with
// continueOnError false) a fatal error cancelled ctx.
func (p *Pool) Run(ctx context.Context) error {
	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var firstErr firstErrorBox
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p.worker(cctx, id, cancel, &firstErr)
		}(i)
	}
	wg.Wait()

	return firstErr.get()
}

func (p *Pool) worker(ctx context.Context, id int, cancel context.CancelFunc, firstErr *firstErrorBox) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		j, ok, closed := p.queue.RecvTimeout(pollInterval)
		if closed {
			return
		}
		if !ok {
			if p.scansDone() && p.queue.IsEmpty() {
				return
			}
			continue
		}

		if err := p.process(ctx, j); err != nil {
			logger.Error("delete error", "worker", id, "path", j.Path, "kind", j.Kind, "error", err)
			p.core.RecordError(j.Path, err)
			if !p.continueOnError {
				firstErr.set(err)
				cancel()
				return
			}
			continue
		}
		p.core.IncDeleted()
	}
}

func (p *Pool) process(ctx context.Context, j job.DeleteJob) error {
	if p.dryRun {
		logger.Debug("dry-run: would delete", "path", j.Path, "kind", j.Kind)
		return nil
	}

	switch j.Kind {
	case job.RegularFile, job.Symlink:
		if err := p.backend.DeleteFile(j.Path); err != nil {
			return &rmerrors.UnlinkError{Path: j.Path, Err: err}
		}
		return nil
	case job.EmptyDir:
		return p.rmdirWithRetry(ctx, j.Path)
	default:
		return &rmerrors.UnsupportedType{Path: j.Path}
	}
}

// rmdirWithRetry removes an empty directory, retrying with escalating
// backoff if the directory isn't empty yet — a sibling worker may still be
// unlinking one of its children.
func (p *Pool) rmdirWithRetry(ctx context.Context, path string) error {
	delay := rmdirBaseDelay
	var lastErr error
	for attempt := 1; attempt <= maxRmdirRetries; attempt++ {
		lastErr = p.backend.DeleteDirectory(path)
		if lastErr == nil {
			return nil
		}
		if !isNotEmpty(lastErr) {
			return &rmerrors.RmdirError{Path: path, Err: lastErr, Tries: attempt}
		}

		select {
		case <-ctx.Done():
			return &rmerrors.RmdirError{Path: path, Err: ctx.Err(), Tries: attempt}
		case <-time.After(delay):
		}
		delay *= 2
		if delay > rmdirMaxDelay {
			delay = rmdirMaxDelay
		}
	}
	return &rmerrors.RmdirError{Path: path, Err: lastErr, Tries: maxRmdirRetries}
}

func isNotEmpty(err error) bool {
	return errors.Is(err, syscall.ENOTEMPTY)
}

// firstErrorBox records only the first error reported to it; later calls to
// set are no-ops. It exists so the deleter's worker goroutines can race to
// report a fatal error without a separate mutex.
type firstErrorBox struct {
	mu  sync.Mutex
	err error
}

func (b *firstErrorBox) set(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err == nil {
		b.err = err
	}
}

func (b *firstErrorBox) get() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}
