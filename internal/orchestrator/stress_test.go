package orchestrator_test

import (
	"context"
	"testing"
	"time"

	"github.com/yourusername/fast-rm/internal/config"
	"github.com/yourusername/fast-rm/internal/orchestrator"
	"github.com/yourusername/fast-rm/internal/testutil"
)

// TestRunDeletesGeneratedTreeCompletely builds a randomly-shaped directory
// tree with testutil's fixture generator, sized by the configured test
// intensity (TEST_INTENSITY=thorough widens it considerably), and checks
// that a real end-to-end Run leaves nothing behind.
func TestRunDeletesGeneratedTreeCompletely(t *testing.T) {
	testutil.SkipIfSlow(t, "tree generation and deletion of up to 2000 files")

	cfg := testutil.GetTestConfig()
	filesPerDir := 3
	if cfg.Intensity == testutil.IntensityQuick {
		filesPerDir = 2
	}

	dir := testutil.CreateTestDirectoryWithTree(t, cfg, filesPerDir)

	before, err := testutil.CountFilesRecursive(dir)
	if err != nil {
		t.Fatalf("CountFilesRecursive: %v", err)
	}
	if before == 0 {
		t.Fatal("fixture generator produced an empty tree")
	}

	resolved, err := config.Resolve(config.Config{Roots: []string{dir}, ScanThreads: 4, DeleteThreads: 4})
	if err != nil {
		t.Fatalf("config.Resolve: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	start := time.Now()
	summary := orchestrator.Run(ctx, resolved)
	elapsed := time.Since(start)

	if summary.Fatal != nil {
		t.Fatalf("Run returned fatal error: %v", summary.Fatal)
	}
	if summary.Errors != 0 {
		t.Errorf("Errors = %d, want 0", summary.Errors)
	}
	if err := testutil.VerifyCleanup(dir); err != nil {
		t.Error(err)
	}
	if cfg.VerboseOutput {
		t.Logf("deleted %d items from a %d-file tree in %s", summary.Deleted, before, elapsed)
	}
}
