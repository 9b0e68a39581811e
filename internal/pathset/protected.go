package pathset

import (
	"path/filepath"
	"runtime"

	"github.com/yourusername/fast-rm/internal/rmerrors"
)

// protectedPaths are system-critical directories fast-rm refuses to
// remove, or remove the ancestor of, even if the user asked for them by
// name. There is no --force flag to override this, and no interactive
// confirmation prompt either, so refusing outright is the only available
// safeguard.
var protectedPaths = []string{
	`C:\Windows`,
	`C:\Program Files`,
	`C:\Program Files (x86)`,
	`C:\ProgramData`,
	`C:\Users`,
	`C:\System Volume Information`,
	"/bin",
	"/sbin",
	"/usr",
	"/lib",
	"/lib64",
	"/etc",
	"/boot",
	"/sys",
	"/proc",
	"/dev",
}

// checkProtected rejects any root that either names a protected system
// directory or is an ancestor of one (deleting the ancestor would take the
// protected directory with it), plus any root that is a filesystem drive
// root (`/`, `C:\`) — removing a whole volume is never what a recursive
// delete invocation actually wants.
func checkProtected(path string) error {
	if isDriveRoot(path) {
		return &rmerrors.PathOverlap{Ancestor: path, Descendant: "(entire volume)"}
	}

	for _, protected := range protectedPaths {
		protectedAbs, err := filepath.Abs(protected)
		if err != nil {
			continue
		}
		if path == protectedAbs || rmerrors.IsAncestor(path, protectedAbs) {
			return &rmerrors.PathOverlap{Ancestor: path, Descendant: protected}
		}
	}
	return nil
}

func isDriveRoot(path string) bool {
	clean := filepath.Clean(path)
	if runtime.GOOS == "windows" {
		if len(clean) == 3 && clean[1] == ':' && (clean[2] == '\\' || clean[2] == '/') {
			return true
		}
		if len(clean) == 2 && clean[1] == ':' {
			return true
		}
		return false
	}
	return clean == "/"
}
