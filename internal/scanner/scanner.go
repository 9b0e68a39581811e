// Package scanner implements the scanner pool: a fork-join parallel
// directory walk that classifies every path it finds into a
// job.DeleteJob and enqueues it on the shared job queue. Each directory's
// own EmptyDir job is enqueued only after every child underneath it has
// been enqueued, satisfying the scanner's half of the child-before-parent
// ordering guarantee; the deleter pool's rmdir retry loop covers the rest
// (actual deletion completion order is not guaranteed by enqueue order
// alone, since multiple deleters drain the queue concurrently).
package scanner

import (
	"context"
	"os"
	"sync"
	"sync/atomic"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/yourusername/fast-rm/internal/job"
	"github.com/yourusername/fast-rm/internal/logger"
	"github.com/yourusername/fast-rm/internal/progress"
	"github.com/yourusername/fast-rm/internal/queue"
	"github.com/yourusername/fast-rm/internal/rmerrors"
)

// Pool walks one or more root paths concurrently and feeds a queue.JobQueue.
// Concurrency is bounded by a semaphore sized to scanThreads rather than one
// goroutine per directory, so a tree with millions of small directories
// can't explode the goroutine count.
type Pool struct {
	sem             chan struct{}
	queue           *queue.JobQueue
	core            *progress.Core
	continueOnError bool
}

// NewPool builds a scanner Pool. scanThreads must be positive; it is
// clamped to 1 otherwise.
func NewPool(scanThreads int, continueOnError bool, q *queue.JobQueue, core *progress.Core) *Pool {
	if scanThreads <= 0 {
		scanThreads = 1
	}
	return &Pool{
		sem:             make(chan struct{}, scanThreads),
		queue:           q,
		core:            core,
		continueOnError: continueOnError,
	}
}

// Run walks every root concurrently and blocks until all of them are fully
// scanned (or, with continueOnError false, until the first fatal error is
// observed and every in-flight goroutine has unwound). It does not close
// the queue; the orchestrator does that once every scanner and every root
// has finished.
func (p *Pool) Run(ctx context.Context, roots []string) error {
	cctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var firstErr atomic.Value
	record := func(err error) {
		logger.Error("scan error", "error", err)
		p.core.RecordError(errorPath(err), err)
		if !p.continueOnError {
			firstErr.CompareAndSwap(nil, err)
			cancel()
		}
	}

	var wg sync.WaitGroup
	for _, root := range roots {
		wg.Add(1)
		go func(root string) {
			defer wg.Done()
			p.scanEntry(cctx, root, record)
		}(root)
	}
	wg.Wait()

	if v := firstErr.Load(); v != nil {
		return v.(error)
	}
	return nil
}

// scanEntry classifies one path and either enqueues it directly (file,
// symlink) or recurses into it (directory).
func (p *Pool) scanEntry(ctx context.Context, path string, record func(error)) {
	select {
	case <-ctx.Done():
		return
	default:
	}

	info, err := os.Lstat(path)
	p.core.IncScanned(path)
	if err != nil {
		record(&rmerrors.MetadataError{Path: path, Err: err})
		return
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		p.enqueue(ctx, job.Link(path))
	case info.IsDir():
		p.scanDir(ctx, path, record)
	case info.Mode().IsRegular():
		p.enqueue(ctx, job.File(path))
	default:
		record(&rmerrors.UnsupportedType{Path: path})
	}
}

// scanDir lists dir's entries and fans each one out to its own goroutine,
// bounded by the pool's semaphore (a child is scanned on the calling
// goroutine when every slot is taken), then enqueues dir's own EmptyDir job
// once every child has been enqueued.
func (p *Pool) scanDir(ctx context.Context, dir string, record func(error)) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		record(&rmerrors.ReadDirError{Path: dir, Err: err})
		return
	}

	var wg sync.WaitGroup
	for _, entry := range entries {
		child, err := securejoin.SecureJoin(dir, entry.Name())
		if err != nil {
			record(&rmerrors.DirEntryError{Parent: dir, Err: err})
			continue
		}

		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case p.sem <- struct{}{}:
			wg.Add(1)
			go func(child string) {
				defer wg.Done()
				defer func() { <-p.sem }()
				p.scanEntry(ctx, child, record)
			}(child)
		default:
			// Ancestors may hold every slot; waiting for one could deadlock.
			p.scanEntry(ctx, child, record)
		}
	}
	wg.Wait()

	select {
	case <-ctx.Done():
		return
	default:
	}
	p.enqueue(ctx, job.Dir(dir))
}

func (p *Pool) enqueue(ctx context.Context, j job.DeleteJob) {
	if err := p.queue.Send(ctx, j); err != nil {
		logger.Debug("scan enqueue cancelled", "path", j.Path, "kind", j.Kind)
	}
}

// errorPath extracts the offending path from the scanner's own error kinds,
// for attaching to the progress core's error sample stream.
func errorPath(err error) string {
	switch e := err.(type) {
	case *rmerrors.MetadataError:
		return e.Path
	case *rmerrors.ReadDirError:
		return e.Path
	case *rmerrors.DirEntryError:
		return e.Parent
	case *rmerrors.UnsupportedType:
		return e.Path
	default:
		return ""
	}
}
