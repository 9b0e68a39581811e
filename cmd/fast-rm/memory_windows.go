//go:build windows

package main

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// totalSystemMemory returns total physical RAM in bytes via
// GlobalMemoryStatusEx, the same Windows API family backend/windows.go
// already links against for its deletion paths.
func totalSystemMemory() int64 {
	var status windows.MemoryStatusEx
	status.Length = uint32(unsafe.Sizeof(status))
	if err := windows.GlobalMemoryStatusEx(&status); err != nil {
		return 0
	}
	return int64(status.TotalPhys)
}
