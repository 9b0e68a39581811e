package main

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/yourusername/fast-rm/internal/config"
)

func TestParseArgsNoPathsReturnsNilConfig(t *testing.T) {
	cfg, err := parseArgs(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg != nil {
		t.Fatalf("expected nil config, got %+v", cfg)
	}
}

func TestParseArgsSinglePath(t *testing.T) {
	cfg, err := parseArgs([]string{"/tmp/victim"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg == nil || len(cfg.Roots) != 1 || cfg.Roots[0] != "/tmp/victim" {
		t.Fatalf("Roots = %+v, want [/tmp/victim]", cfg)
	}
}

func TestParseArgsMultiplePaths(t *testing.T) {
	cfg, err := parseArgs([]string{"-n", "/tmp/a", "/tmp/b"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if !cfg.DryRun {
		t.Error("expected DryRun to be true")
	}
	if len(cfg.Roots) != 2 || cfg.Roots[0] != "/tmp/a" || cfg.Roots[1] != "/tmp/b" {
		t.Errorf("Roots = %v, want [/tmp/a /tmp/b]", cfg.Roots)
	}
}

func TestParseArgsThreadsFansOutToBothPools(t *testing.T) {
	cfg, err := parseArgs([]string{"-j", "8", "/tmp/victim"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.ScanThreads != 8 || cfg.DeleteThreads != 8 {
		t.Errorf("ScanThreads=%d DeleteThreads=%d, want both 8", cfg.ScanThreads, cfg.DeleteThreads)
	}
}

func TestParseArgsExplicitPoolSizesOverrideThreads(t *testing.T) {
	cfg, err := parseArgs([]string{"-j", "8", "--scan-threads", "2", "/tmp/victim"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if cfg.ScanThreads != 2 {
		t.Errorf("ScanThreads = %d, want 2 (explicit override)", cfg.ScanThreads)
	}
	if cfg.DeleteThreads != 8 {
		t.Errorf("DeleteThreads = %d, want 8 (from --threads)", cfg.DeleteThreads)
	}
}

func TestParseArgsVerbosityCount(t *testing.T) {
	tests := []struct {
		args []string
		want config.Verbosity
	}{
		{[]string{"/tmp/a"}, config.Quiet},
		{[]string{"-v", "/tmp/a"}, config.Standard},
		{[]string{"-v", "-v", "/tmp/a"}, config.Detailed},
		{[]string{"-vv", "/tmp/a"}, config.Detailed},
	}
	for _, tt := range tests {
		cfg, err := parseArgs(tt.args)
		if err != nil {
			t.Fatalf("parseArgs(%v): %v", tt.args, err)
		}
		if cfg.Verbosity != tt.want {
			t.Errorf("parseArgs(%v).Verbosity = %v, want %v", tt.args, cfg.Verbosity, tt.want)
		}
	}
}

func TestParseArgsRejectsNegativeThreadCounts(t *testing.T) {
	for _, args := range [][]string{
		{"-j", "-1", "/tmp/a"},
		{"--scan-threads", "-1", "/tmp/a"},
		{"--delete-threads", "-1", "/tmp/a"},
	} {
		if _, err := parseArgs(args); err == nil {
			t.Errorf("parseArgs(%v) should have rejected a negative thread count", args)
		}
	}
}

// Any combination of flags followed by one or more positional paths must
// parse without error and preserve every path in order.
func TestParseArgsPreservesPathOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(rt, "n")
		paths := make([]string, n)
		for i := range paths {
			paths[i] = fmt.Sprintf("/tmp/fast-rm-test-%d", i)
		}

		args := append([]string{"-c"}, paths...)
		cfg, err := parseArgs(args)
		if err != nil {
			rt.Fatalf("parseArgs(%v): %v", args, err)
		}
		if len(cfg.Roots) != len(paths) {
			rt.Fatalf("Roots = %v, want %v", cfg.Roots, paths)
		}
		for i, p := range paths {
			if cfg.Roots[i] != p {
				rt.Fatalf("Roots[%d] = %q, want %q", i, cfg.Roots[i], p)
			}
		}
		if !cfg.ContinueOnError {
			rt.Fatal("expected ContinueOnError to be true")
		}
	})
}
