//go:build !windows

package main

import (
	"os"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"unsafe"
)

// totalSystemMemory returns total physical RAM in bytes. It returns 0 if
// detection fails or the platform isn't recognized, in which case the
// caller falls back to Go's own default memory limit.
func totalSystemMemory() int64 {
	switch runtime.GOOS {
	case "darwin":
		return totalMemoryDarwin()
	case "linux":
		return totalMemoryLinux()
	default:
		return 0
	}
}

func totalMemoryDarwin() int64 {
	var memsize int64
	mib := [2]int32{6 /* CTL_HW */, 24 /* HW_MEMSIZE */}
	n := uintptr(8)

	_, _, errno := syscall.Syscall6(
		syscall.SYS___SYSCTL,
		uintptr(unsafe.Pointer(&mib[0])),
		2,
		uintptr(unsafe.Pointer(&memsize)),
		uintptr(unsafe.Pointer(&n)),
		0,
		0,
	)
	if errno != 0 {
		return 0
	}
	return memsize
}

func totalMemoryLinux() int64 {
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return 0
	}

	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		kb, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0
		}
		return kb * 1024
	}
	return 0
}
