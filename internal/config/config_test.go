package config

import "testing"

func TestResolveFillsDefaultsForZeroFields(t *testing.T) {
	cfg, err := Resolve(Config{Roots: []string{"/tmp/victim"}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.ScanThreads <= 0 {
		t.Error("ScanThreads should default to a positive core count")
	}
	if cfg.DeleteThreads <= 0 {
		t.Error("DeleteThreads should default to a positive core count")
	}
	if len(cfg.Roots) != 1 || cfg.Roots[0] != "/tmp/victim" {
		t.Errorf("Roots = %v, want [/tmp/victim]", cfg.Roots)
	}
}

func TestResolveOverridesDefaults(t *testing.T) {
	cfg, err := Resolve(Config{
		Roots:           []string{"/tmp/a"},
		ScanThreads:     7,
		DeleteThreads:   3,
		DryRun:          true,
		ContinueOnError: true,
		Verbosity:       Detailed,
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.ScanThreads != 7 {
		t.Errorf("ScanThreads = %d, want 7", cfg.ScanThreads)
	}
	if cfg.DeleteThreads != 3 {
		t.Errorf("DeleteThreads = %d, want 3", cfg.DeleteThreads)
	}
	if !cfg.DryRun || !cfg.ContinueOnError {
		t.Error("boolean overrides should propagate")
	}
	if cfg.Verbosity != Detailed {
		t.Errorf("Verbosity = %v, want Detailed", cfg.Verbosity)
	}
}

func TestResolveQuietRunHasNoDefaultLogFile(t *testing.T) {
	cfg, err := Resolve(Config{Roots: []string{"/tmp/victim"}})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.LogFile != "" {
		t.Errorf("LogFile = %q, want empty for a quiet run", cfg.LogFile)
	}
}

func TestResolveVerboseRunGetsDefaultLogFile(t *testing.T) {
	cfg, err := Resolve(Config{Roots: []string{"/tmp/victim"}, Verbosity: Standard})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.LogFile == "" {
		t.Error("LogFile should default to the XDG state path for a verbose run")
	}
}

func TestResolveExplicitLogFileOverridesDefault(t *testing.T) {
	cfg, err := Resolve(Config{Roots: []string{"/tmp/victim"}, Verbosity: Detailed, LogFile: "/tmp/custom.log"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.LogFile != "/tmp/custom.log" {
		t.Errorf("LogFile = %q, want /tmp/custom.log", cfg.LogFile)
	}
}

func TestVerbosityFromCount(t *testing.T) {
	tests := []struct {
		count int
		want  Verbosity
	}{
		{0, Quiet},
		{1, Standard},
		{2, Detailed},
		{5, Detailed},
	}
	for _, tt := range tests {
		if got := VerbosityFromCount(tt.count); got != tt.want {
			t.Errorf("VerbosityFromCount(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}
