// Package progress implements the shared progress core: lock-free atomic
// counters shared by every scanner and deleter goroutine, plus two
// bounded "lossy" sample streams a dashboard can poll for recent activity
// without ever blocking a worker on a full channel.
package progress

import "sync/atomic"

// ErrorSample is one recorded failure, pushed to the lossy error stream.
type ErrorSample struct {
	Path string
	Err  error
}

// Snapshot is a point-in-time read of the three monotonic counters.
type Snapshot struct {
	Scanned int64
	Deleted int64
	Errors  int64
}

// cacheLinePad is sized to push the next field onto its own cache line on
// common 64-byte-line architectures, so the scanner pool's writes to
// Scanned don't false-share with the deleter pool's writes to Deleted.
type cacheLinePad [56]byte

// Core holds the run's shared counters and lossy sample streams. Every
// field workers touch concurrently is an atomic or a buffered channel; Core
// itself has no mutex because nothing here needs one.
type Core struct {
	scanned atomic.Int64
	_       cacheLinePad
	deleted atomic.Int64
	_       cacheLinePad
	errors  atomic.Int64
	_       cacheLinePad

	recentPaths  chan string
	recentErrors chan ErrorSample
}

const (
	recentPathsCapacity  = 1000
	recentErrorsCapacity = 100
)

// NewCore allocates a Core with the standard lossy-stream capacities
// (1000 recent paths, 100 recent errors).
func NewCore() *Core {
	return &Core{
		recentPaths:  make(chan string, recentPathsCapacity),
		recentErrors: make(chan ErrorSample, recentErrorsCapacity),
	}
}

// IncScanned records one more item discovered by the scanner pool and
// offers it to the recent-paths sample stream. The offer is lossy: if the
// stream is full, the sample is dropped rather than blocking the scanner.
func (c *Core) IncScanned(path string) {
	c.scanned.Add(1)
	select {
	case c.recentPaths <- path:
	default:
	}
}

// IncDeleted records one more item successfully removed by the deleter
// pool.
func (c *Core) IncDeleted() {
	c.deleted.Add(1)
}

// RecordError records a failure against a path and offers it to the
// recent-errors sample stream, lossily.
func (c *Core) RecordError(path string, err error) {
	c.errors.Add(1)
	select {
	case c.recentErrors <- ErrorSample{Path: path, Err: err}:
	default:
	}
}

// Snapshot reads all three counters. The three loads are independent
// atomics, not a single transaction, so a snapshot taken mid-run can be
// momentarily inconsistent (e.g. Deleted+Errors > Scanned by one in-flight
// item) — callers displaying a live dashboard should expect that; the
// orchestrator's final summary is only trusted after every worker has
// joined, at which point Scanned == Deleted+Errors exactly for a run that
// was not aborted. A run stopped by its first error (no -c) can leave
// scanned items that were neither deleted nor counted as errors.
func (c *Core) Snapshot() Snapshot {
	return Snapshot{
		Scanned: c.scanned.Load(),
		Deleted: c.deleted.Load(),
		Errors:  c.errors.Load(),
	}
}

// DrainRecentPaths non-blockingly drains up to n buffered recent paths, most
// recently offered last.
func (c *Core) DrainRecentPaths(n int) []string {
	out := make([]string, 0, n)
	for len(out) < n {
		select {
		case p := <-c.recentPaths:
			out = append(out, p)
		default:
			return out
		}
	}
	return out
}

// DrainRecentErrors non-blockingly drains up to n buffered error samples.
func (c *Core) DrainRecentErrors(n int) []ErrorSample {
	out := make([]ErrorSample, 0, n)
	for len(out) < n {
		select {
		case e := <-c.recentErrors:
			out = append(out, e)
		default:
			return out
		}
	}
	return out
}
