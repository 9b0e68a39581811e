// Package config resolves a run's final settings from CLI flags layered
// over platform-aware defaults, the way main.go's initializeMemoryLimit and
// parseArgs establish run-wide settings before the orchestrator starts.
package config

import (
	"fmt"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/adrg/xdg"
	"github.com/klauspost/cpuid/v2"
)

// Verbosity mirrors the CLI's -v/-vv repeat count.
type Verbosity int

const (
	// Quiet prints only the final summary line.
	Quiet Verbosity = iota
	// Standard (-v) prints a live progress line.
	Standard
	// Detailed (-vv) additionally prints resource metrics and debug logs.
	Detailed
)

// VerbosityFromCount maps a repeated -v flag count to a Verbosity level.
func VerbosityFromCount(count int) Verbosity {
	switch {
	case count <= 0:
		return Quiet
	case count == 1:
		return Standard
	default:
		return Detailed
	}
}

// Config holds a run's fully resolved settings.
type Config struct {
	Roots           []string
	Verbosity       Verbosity
	DryRun          bool
	ContinueOnError bool
	ScanThreads     int
	DeleteThreads   int
	LogFile         string
}

// defaults returns the platform-aware baseline a Config is layered over:
// one scan thread and one delete thread per physical core (not logical —
// directory traversal and unlink syscalls are I/O-bound enough that
// hyperthread siblings mostly contend rather than add throughput). The log
// file default is applied separately in Resolve, since it only kicks in
// when the caller asked for verbose output.
func defaults() Config {
	cores := cpuid.CPU.PhysicalCores
	if cores <= 0 {
		cores = 4
	}
	return Config{
		Verbosity:     Quiet,
		ScanThreads:   cores,
		DeleteThreads: cores,
	}
}

// defaultLogFile resolves the platform-appropriate state directory path a
// verbose run logs to when the caller didn't name one explicitly.
func defaultLogFile() string {
	logFile, err := xdg.StateFile(filepath.Join("fast-rm", "fast-rm.log"))
	if err != nil {
		return ""
	}
	return logFile
}

// Resolve merges overrides (typically parsed straight from CLI flags, with
// unset fields left at their Go zero value) onto the platform defaults.
// mergo.Merge with WithOverride copies only the non-zero override fields
// over the defaults, so an override of 0 scan threads means "use the
// default," not "use zero" —
// callers that need to force zero have no use case here, since zero
// threads would mean the pool never runs.
//
// The default log file is filled in after the merge, and only when the
// resolved run is verbose and no --log-file was given: a quiet run has no
// reason to open a log file it never asked for.
func Resolve(overrides Config) (Config, error) {
	cfg := defaults()
	if err := mergo.Merge(&cfg, overrides, mergo.WithOverride); err != nil {
		return Config{}, fmt.Errorf("merge config: %w", err)
	}
	if cfg.LogFile == "" && cfg.Verbosity != Quiet {
		cfg.LogFile = defaultLogFile()
	}
	return cfg, nil
}
