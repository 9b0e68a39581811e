// Package rmerrors defines the domain error kinds produced by the scanner,
// deleter, and path sanitizer: each kind names where it came from and
// carries the path and underlying error so callers can decide to
// record-and-continue or abort a subtree.
package rmerrors

import (
	"fmt"
	"path/filepath"
)

// MetadataError wraps a failure to stat a path during scanning.
type MetadataError struct {
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("metadata failed for %s: %v", e.Path, e.Err)
}
func (e *MetadataError) Unwrap() error { return e.Err }

// ReadDirError wraps a failure to open a directory for iteration.
type ReadDirError struct {
	Path string
	Err  error
}

func (e *ReadDirError) Error() string {
	return fmt.Sprintf("read dir failed for %s: %v", e.Path, e.Err)
}
func (e *ReadDirError) Unwrap() error { return e.Err }

// DirEntryError wraps a failure returned while iterating one directory's
// entries (not the directory open itself).
type DirEntryError struct {
	Parent string
	Err    error
}

func (e *DirEntryError) Error() string {
	return fmt.Sprintf("directory entry error under %s: %v", e.Parent, e.Err)
}
func (e *DirEntryError) Unwrap() error { return e.Err }

// UnsupportedType is returned for an entry that is neither a regular file,
// symlink, nor directory (device, socket, FIFO, ...).
type UnsupportedType struct {
	Path string
}

func (e *UnsupportedType) Error() string {
	return fmt.Sprintf("%s is not a file, symlink, or directory fast-rm can remove", e.Path)
}

// UnlinkError wraps a failed unlink of a file or symlink.
type UnlinkError struct {
	Path string
	Err  error
}

func (e *UnlinkError) Error() string { return fmt.Sprintf("unlink %s: %v", e.Path, e.Err) }
func (e *UnlinkError) Unwrap() error { return e.Err }

// RmdirError wraps a failed rmdir, raised after the deleter's retry budget
// is exhausted.
type RmdirError struct {
	Path  string
	Err   error
	Tries int
}

func (e *RmdirError) Error() string {
	return fmt.Sprintf("rmdir %s: %v (after %d attempts)", e.Path, e.Err, e.Tries)
}
func (e *RmdirError) Unwrap() error { return e.Err }

// PathOverlap is a fatal startup error: two sanitized roots are ancestor and
// descendant of each other, or a root overlaps a protected system location.
type PathOverlap struct {
	Ancestor, Descendant string
}

func (e *PathOverlap) Error() string {
	return fmt.Sprintf("path overlap: %s is inside %s", e.Descendant, e.Ancestor)
}

// IsAncestor reports whether ancestor is a path-component-boundary prefix of
// descendant. Both paths are expected to already be cleaned/absolute.
func IsAncestor(ancestor, descendant string) bool {
	if ancestor == descendant {
		return false
	}
	rel, err := filepath.Rel(ancestor, descendant)
	if err != nil {
		return false
	}
	return rel != ".." && !hasDotDotPrefix(rel)
}

func hasDotDotPrefix(rel string) bool {
	return len(rel) >= 2 && rel[0] == '.' && rel[1] == '.' &&
		(len(rel) == 2 || rel[2] == filepath.Separator)
}
