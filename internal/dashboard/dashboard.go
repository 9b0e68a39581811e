// Package dashboard renders a run's live progress to a terminal. It has
// three verbosity tiers (Summary, Standard, Detailed) matching the CLI's
// -v/-vv flags, polls the progress core at a fixed interval rather than on
// every counter update, and coalesces terminal resize events through a
// debouncer so a dragged window border doesn't trigger a render per pixel.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/bep/debounce"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/yourusername/fast-rm/internal/monitor"
	"github.com/yourusername/fast-rm/internal/progress"
)

var printer = message.NewPrinter(language.English)

// Verbosity selects how much a Dashboard renders.
type Verbosity int

const (
	// Summary renders nothing while the run is in progress; only the
	// orchestrator's final one-line summary is printed.
	Summary Verbosity = iota
	// Standard renders a single self-overwriting progress line.
	Standard
	// Detailed additionally renders resource metrics from internal/monitor.
	Detailed
)

const renderInterval = 50 * time.Millisecond

// Dashboard polls a progress.Core and renders its state to a terminal.
type Dashboard struct {
	core      *progress.Core
	mon       *monitor.Monitor
	verbosity Verbosity
	total     int64 // optional estimate of total items; 0 means unknown
	out       io.Writer
	interactive bool
	start     time.Time

	debouncedResize func(func())
}

// New builds a Dashboard for core at the given verbosity. total is an
// optional estimate of the item count (0 if unknown, in which case
// percentage and ETA are omitted). mon may be nil; if set, Detailed
// verbosity includes its metrics.
func New(core *progress.Core, mon *monitor.Monitor, verbosity Verbosity, total int64) *Dashboard {
	interactive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	var out io.Writer = os.Stderr
	if interactive {
		out = colorable.NewColorableStderr()
	}
	return &Dashboard{
		core:            core,
		mon:             mon,
		verbosity:       verbosity,
		total:           total,
		out:             out,
		interactive:     interactive,
		start:           time.Now(),
		debouncedResize: debounce.New(75 * time.Millisecond),
	}
}

// Run renders on a fixed interval until ctx is cancelled, then renders a
// final frame. Summary verbosity, and non-interactive output (piped to a
// file or another process), render nothing at all: Run only waits for ctx
// to be cancelled.
func (d *Dashboard) Run(ctx context.Context) {
	live := d.verbosity != Summary && d.interactive
	if !live {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(renderInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			d.render(true)
			return
		case <-ticker.C:
			d.render(false)
		}
	}
}

// NotifyResize should be called from a SIGWINCH handler; repeated calls
// within the debounce window collapse into a single re-render.
func (d *Dashboard) NotifyResize() {
	d.debouncedResize(func() { d.render(false) })
}

func (d *Dashboard) render(final bool) {
	snap := d.core.Snapshot()
	elapsed := time.Since(d.start)
	rate := rateFor(snap.Deleted+snap.Errors, elapsed)

	line := printer.Sprintf("scanned %d | deleted %d | errors %d | %d/sec | elapsed %s",
		number.Decimal(snap.Scanned), number.Decimal(snap.Deleted), number.Decimal(snap.Errors),
		number.Decimal(int64(rate)), formatDuration(elapsed))

	if d.total > 0 {
		pct := percentage(snap.Deleted+snap.Errors, d.total)
		eta := etaFor(snap.Deleted+snap.Errors, d.total, rate)
		line = printer.Sprintf("%s | %.1f%% | eta %s", line, pct, formatDuration(eta))
	}

	if d.verbosity == Detailed && d.mon != nil {
		m := d.mon.Latest()
		line = fmt.Sprintf("%s | goroutines %d | alloc %.1fMB", line, m.NumGoroutines, m.AllocMB)
	}

	if final {
		fmt.Fprintln(d.out, "\r"+line)
		return
	}
	fmt.Fprint(d.out, "\r"+line)
}

func rateFor(count int64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(count) / elapsed.Seconds()
}

func percentage(done, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}

func etaFor(done, total int64, rate float64) time.Duration {
	if rate <= 0 || done == 0 {
		return time.Duration(math.MaxInt64)
	}
	remaining := total - done
	if remaining <= 0 {
		return 0
	}
	return time.Duration(float64(remaining)/rate) * time.Second
}

// formatDuration renders d as "XhYmZs", dropping leading zero units, and
// "unknown" for an unbounded ETA.
func formatDuration(d time.Duration) string {
	if d >= time.Duration(math.MaxInt64) {
		return "unknown"
	}
	if d < 0 {
		return "0s"
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	switch {
	case hours > 0:
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
