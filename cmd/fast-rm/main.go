// Command fast-rm recursively deletes one or more directory trees using a
// concurrent scanner/deleter pipeline, built for trees with millions of
// small files where a single `rm -rf` process spends most of its time
// waiting on syscalls one at a time.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/yourusername/fast-rm/internal/config"
	"github.com/yourusername/fast-rm/internal/logger"
	"github.com/yourusername/fast-rm/internal/orchestrator"
)

func main() {
	initializeMemoryLimit()

	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "fast-rm: %v\n\n", err)
		printUsage()
		os.Exit(orchestrator.ExitError)
	}
	if cfg == nil {
		printUsage()
		os.Exit(orchestrator.ExitOK)
	}

	resolved, err := config.Resolve(*cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fast-rm: %v\n", err)
		os.Exit(orchestrator.ExitError)
	}

	closeLog, err := logger.Setup(resolved.Verbosity == config.Detailed, resolved.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fast-rm: failed to open log file: %v\n", err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary := orchestrator.Run(ctx, resolved)
	fmt.Println(summary.Print())
	os.Exit(summary.ExitCode())
}

// initializeMemoryLimit sets Go's soft memory limit to 25% of detected
// system RAM, capped at 6GB and floored at 512MB, so a run against a
// multi-million-file tree doesn't let GC heap growth run unchecked. A user
// who has already set GOMEMLIMIT is left alone.
func initializeMemoryLimit() {
	if os.Getenv("GOMEMLIMIT") != "" {
		return
	}

	total := totalSystemMemory()
	if total <= 0 {
		return
	}

	const (
		maxLimit = 6 * 1024 * 1024 * 1024
		minLimit = 512 * 1024 * 1024
	)

	limit := int64(float64(total) * 0.25)
	if limit > maxLimit {
		limit = maxLimit
	}
	if limit < minLimit {
		limit = minLimit
	}
	debug.SetMemoryLimit(limit)
}

// parseArgs parses the command line into a config.Config. It returns a nil
// config (and nil error) when no paths were given, which signals the
// caller to print usage and exit 0 rather than treat it as an error.
func parseArgs(args []string) (*config.Config, error) {
	fs := flag.NewFlagSet("fast-rm", flag.ContinueOnError)
	fs.Usage = func() {}

	dryRun := fs.Bool("dry-run", false, "")
	fs.BoolVar(dryRun, "n", false, "")
	continueOnError := fs.Bool("continue-on-error", false, "")
	fs.BoolVar(continueOnError, "c", false, "")
	threads := fs.Int("threads", 0, "")
	fs.IntVar(threads, "j", 0, "")
	scanThreads := fs.Int("scan-threads", 0, "")
	deleteThreads := fs.Int("delete-threads", 0, "")
	logFile := fs.String("log-file", "", "")
	var verbose int
	fs.Var(repeatFlag{&verbose, 1}, "v", "")
	fs.Var(repeatFlag{&verbose, 2}, "vv", "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	roots := fs.Args()
	if len(roots) == 0 {
		return nil, nil
	}

	if *threads < 0 {
		return nil, fmt.Errorf("--threads must be >= 0 (got %d)", *threads)
	}
	if *scanThreads < 0 {
		return nil, fmt.Errorf("--scan-threads must be >= 0 (got %d)", *scanThreads)
	}
	if *deleteThreads < 0 {
		return nil, fmt.Errorf("--delete-threads must be >= 0 (got %d)", *deleteThreads)
	}

	st, dt := *scanThreads, *deleteThreads
	if *threads > 0 {
		if st == 0 {
			st = *threads
		}
		if dt == 0 {
			dt = *threads
		}
	}

	return &config.Config{
		Roots:           roots,
		Verbosity:       config.VerbosityFromCount(verbose),
		DryRun:          *dryRun,
		ContinueOnError: *continueOnError,
		ScanThreads:     st,
		DeleteThreads:   dt,
		LogFile:         *logFile,
	}, nil
}

// repeatFlag implements flag.Value for a boolean-shaped flag that bumps a
// shared counter by a fixed amount each time it's given, so "-v" and "-vv"
// can both feed config.VerbosityFromCount's repeat count: "-v" contributes
// 1, "-vv" contributes 2, and "-v -v" reaches the same Detailed level by
// contributing 1 twice.
type repeatFlag struct {
	n  *int
	by int
}

func (r repeatFlag) String() string { return "" }

func (r repeatFlag) IsBoolFlag() bool { return true }

func (r repeatFlag) Set(string) error {
	*r.n += r.by
	return nil
}

func printUsage() {
	fmt.Println("fast-rm: concurrent recursive directory deletion")
	fmt.Println()
	fmt.Println("Usage: fast-rm [options] <path> [path...]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -n, --dry-run              scan and report without deleting anything")
	fmt.Println("  -c, --continue-on-error    keep going after a scan or delete error")
	fmt.Println("  -j, --threads N            worker count for both scanning and deleting")
	fmt.Println("      --scan-threads N       worker count for the scanner pool")
	fmt.Println("      --delete-threads N     worker count for the deleter pool")
	fmt.Println("      --log-file PATH        additionally write logs to PATH")
	fmt.Println("  -v, -vv                    increase verbosity (standard, then detailed)")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  fast-rm /tmp/build-cache")
	fmt.Println("  fast-rm -j 16 /var/log/old /tmp/scratch")
	fmt.Println("  fast-rm --dry-run -vv /data/staging")
}
