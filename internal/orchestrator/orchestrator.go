// Package orchestrator wires the path sanitizer, job queue, scanner pool,
// deleter pool, progress core, and dashboard together into one run: it
// sanitizes the requested roots, starts the deleter pool against a job
// queue, starts scanning, waits for both sides to finish, and reports a
// summary with the process exit code the CLI should use.
package orchestrator

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/yourusername/fast-rm/internal/backend"
	"github.com/yourusername/fast-rm/internal/config"
	"github.com/yourusername/fast-rm/internal/dashboard"
	"github.com/yourusername/fast-rm/internal/deleter"
	"github.com/yourusername/fast-rm/internal/logger"
	"github.com/yourusername/fast-rm/internal/monitor"
	"github.com/yourusername/fast-rm/internal/notify"
	"github.com/yourusername/fast-rm/internal/pathset"
	"github.com/yourusername/fast-rm/internal/progress"
	"github.com/yourusername/fast-rm/internal/queue"
	"github.com/yourusername/fast-rm/internal/scanner"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// printer formats the counts in Summary.Print with thousand separators —
// a run against a multi-million-file tree is much easier to read as
// "3,482,011" than "3482011".
var printer = message.NewPrinter(language.English)

// Exit codes the CLI forwards to os.Exit. The exit space is binary: 0 if
// every scanned item was deleted, 1 on any recorded error or fatal
// initialization failure.
const (
	ExitOK    = 0
	ExitError = 1
)

// notifyThreshold is the item count above which a run's completion fires a
// desktop notification — nobody needs a popup for deleting three files.
const notifyThreshold = 10_000

// Summary is the final report of a run, used for both the CLI's printed
// summary and its exit code.
type Summary struct {
	Scanned  int64
	Deleted  int64
	Errors   int64
	Duration time.Duration
	Fatal    error
}

// ExitCode reports the process exit code for this outcome: 0 if everything
// that was scanned was deleted, 1 if some items errored or a fatal error
// stopped the run early.
func (s Summary) ExitCode() int {
	switch {
	case s.Fatal != nil:
		return ExitError
	case s.Errors > 0:
		return ExitError
	default:
		return ExitOK
	}
}

// Run sanitizes roots, then scans and deletes them concurrently, rendering
// a dashboard at the configured verbosity. It returns once every scanner
// and deleter goroutine has joined.
func Run(ctx context.Context, cfg config.Config) Summary {
	start := time.Now()

	roots, err := pathset.Sanitize(cfg.Roots)
	if err != nil {
		logger.Error("path sanitize failed", "error", err)
		return Summary{Fatal: err, Duration: time.Since(start)}
	}

	core := progress.NewCore()
	q := queue.New(queue.DefaultCapacity(cfg.ScanThreads))
	be := backend.NewBackend()

	var scansDone atomic.Bool
	deleterPool := deleter.NewPool(cfg.DeleteThreads, cfg.DryRun, cfg.ContinueOnError, be, q, core, scansDone.Load)
	scanPool := scanner.NewPool(cfg.ScanThreads, cfg.ContinueOnError, q, core)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var mon *monitor.Monitor
	if cfg.Verbosity == config.Detailed {
		mon = monitor.New()
		go mon.Start(runCtx, time.Second, core)
	}

	dash := dashboard.New(core, mon, dashboardVerbosity(cfg.Verbosity), 0)
	dashDone := make(chan struct{})
	go func() {
		dash.Run(runCtx)
		close(dashDone)
	}()

	deleteErrCh := make(chan error, 1)
	go func() { deleteErrCh <- deleterPool.Run(runCtx) }()

	scanErr := scanPool.Run(runCtx, roots.Roots)
	scansDone.Store(true)
	q.Close()

	deleteErr := <-deleteErrCh
	cancel()
	<-dashDone

	snap := core.Snapshot()
	summary := Summary{
		Scanned:  snap.Scanned,
		Deleted:  snap.Deleted,
		Errors:   snap.Errors,
		Duration: time.Since(start),
	}
	if scanErr != nil {
		summary.Fatal = scanErr
	} else if deleteErr != nil {
		summary.Fatal = deleteErr
	}

	logger.Info("run complete",
		"scanned", summary.Scanned, "deleted", summary.Deleted, "errors", summary.Errors,
		"duration", summary.Duration)
	if mon != nil {
		logger.Info("primary bottleneck", "resource", mon.PrimaryBottleneck())
	}

	if summary.Fatal == nil && summary.Scanned > notifyThreshold {
		notify.RunComplete(summary.Deleted, summary.Errors, summary.Duration)
	}

	return summary
}

// Print writes the one-line human-readable summary the CLI shows after a
// run, regardless of verbosity.
func (s Summary) Print() string {
	if s.Fatal != nil {
		return printer.Sprintf("fast-rm: aborted after scanning %d, deleting %d (%d errors): %v",
			number.Decimal(s.Scanned), number.Decimal(s.Deleted), number.Decimal(s.Errors), s.Fatal)
	}
	return printer.Sprintf("fast-rm: scanned %d, deleted %d, errors %d, in %s",
		number.Decimal(s.Scanned), number.Decimal(s.Deleted), number.Decimal(s.Errors), s.Duration.Round(time.Millisecond))
}

func dashboardVerbosity(v config.Verbosity) dashboard.Verbosity {
	switch v {
	case config.Standard:
		return dashboard.Standard
	case config.Detailed:
		return dashboard.Detailed
	default:
		return dashboard.Summary
	}
}
