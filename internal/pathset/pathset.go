// Package pathset canonicalizes and validates the set of root paths a run
// was invoked with: every input is resolved to an absolute, symlink-free
// form, duplicates are dropped, and any pair
// where one root is an ancestor of another is rejected outright. Two
// workers must never be able to race on the same inode, and the only cheap
// way to guarantee that across a whole RootSet is to refuse overlap at
// startup.
package pathset

import (
	"fmt"
	"path/filepath"

	"github.com/samber/lo"

	"github.com/yourusername/fast-rm/internal/logger"
	"github.com/yourusername/fast-rm/internal/rmerrors"
)

// RootSet is an ordered, deduplicated, pairwise non-overlapping list of
// canonicalized root paths.
type RootSet struct {
	Roots []string
}

// Sanitize canonicalizes every path in roots, deduplicates by canonical
// form (preserving first-seen order), and fails with *rmerrors.PathOverlap
// if any two resulting roots are ancestor/descendant of each other.
func Sanitize(roots []string) (*RootSet, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("at least one path is required")
	}

	canonical := make([]string, 0, len(roots))
	for _, p := range roots {
		canonical = append(canonical, canonicalize(p))
	}

	// lo.UniqBy keeps first-seen order, which is what RootSet promises
	// callers (stable iteration order for the scanner driver).
	deduped := lo.UniqBy(canonical, func(p string) string { return p })

	if err := checkOverlap(deduped); err != nil {
		return nil, err
	}

	for _, p := range deduped {
		if err := checkProtected(p); err != nil {
			return nil, err
		}
	}

	return &RootSet{Roots: deduped}, nil
}

// canonicalize resolves path to an absolute, symlink-free form. If
// resolution fails (missing path, permission denied on a parent), the
// original path is used as-is for overlap-checking purposes, after a
// warning is logged, so Sanitize still makes progress in that case rather
// than aborting the whole run.
func canonicalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		logger.Warn("cannot resolve absolute path, using as-is", "path", path, "error", err)
		return path
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		logger.Warn("cannot canonicalize path, using as-is", "path", path, "error", err)
		return path
	}

	return resolved
}

// checkOverlap is O(n^2) on the root count, which is fine because n is
// small (a handful of command-line arguments, not the size of the tree).
func checkOverlap(paths []string) error {
	for i := range paths {
		for j := range paths {
			if i == j {
				continue
			}
			if rmerrors.IsAncestor(paths[i], paths[j]) {
				return &rmerrors.PathOverlap{Ancestor: paths[i], Descendant: paths[j]}
			}
		}
	}
	return nil
}
