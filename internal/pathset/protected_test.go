package pathset

import (
	"runtime"
	"testing"
)

func TestCheckProtectedRejectsKnownSystemDirectory(t *testing.T) {
	if err := checkProtected("/etc"); err == nil {
		t.Fatal("expected /etc to be rejected")
	}
}

func TestCheckProtectedRejectsAncestorOfSystemDirectory(t *testing.T) {
	if err := checkProtected("/"); err == nil {
		t.Fatal("expected / to be rejected as a drive root")
	}
}

func TestCheckProtectedAllowsOrdinaryDirectory(t *testing.T) {
	if err := checkProtected("/home/someone/scratch"); err != nil {
		t.Errorf("checkProtected(/home/someone/scratch) = %v, want nil", err)
	}
}

func TestIsDriveRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		for _, p := range []string{`C:\`, `C:`, `D:\`} {
			if !isDriveRoot(p) {
				t.Errorf("isDriveRoot(%q) = false, want true", p)
			}
		}
		if isDriveRoot(`C:\Users\someone`) {
			t.Error("isDriveRoot(C:\\Users\\someone) = true, want false")
		}
		return
	}

	if !isDriveRoot("/") {
		t.Error("isDriveRoot(/) = false, want true")
	}
	if isDriveRoot("/home") {
		t.Error("isDriveRoot(/home) = true, want false")
	}
}
