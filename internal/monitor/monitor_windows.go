//go:build windows

package monitor

import (
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32                 = windows.NewLazySystemDLL("kernel32.dll")
	procGetSystemTimes       = kernel32.NewProc("GetSystemTimes")
	procGetProcessIoCounters = kernel32.NewProc("GetProcessIoCounters")
)

// ioCounters mirrors the Win32 IO_COUNTERS structure returned by
// GetProcessIoCounters.
type ioCounters struct {
	ReadOperationCount  uint64
	WriteOperationCount uint64
	OtherOperationCount uint64
	ReadTransferCount   uint64
	WriteTransferCount  uint64
	OtherTransferCount  uint64
}

// windowsSampler holds the running state GetSystemTimes and
// GetProcessIoCounters need to turn cumulative counters into per-interval
// rates.
type windowsSampler struct {
	lastIdleTime   uint64
	lastKernelTime uint64
	lastUserTime   uint64
	lastIO         ioCounters
	lastIOTime     time.Time
}

// attachPlatformSamplers wires real CPU and disk I/O counters into m,
// replacing the portable goroutine-occupancy CPU estimate used elsewhere.
func attachPlatformSamplers(m *Monitor) {
	s := &windowsSampler{lastIOTime: time.Now()}
	m.cpuSampler = s.cpuPercent
	m.ioSampler = s.ioRates
}

// cpuPercent returns system-wide CPU usage since the previous call, via
// GetSystemTimes. The first call always returns 0 since it has no prior
// sample to diff against.
func (s *windowsSampler) cpuPercent() float64 {
	var idleTime, kernelTime, userTime windows.Filetime

	ret, _, _ := procGetSystemTimes.Call(
		uintptr(unsafe.Pointer(&idleTime)),
		uintptr(unsafe.Pointer(&kernelTime)),
		uintptr(unsafe.Pointer(&userTime)),
	)
	if ret == 0 {
		return 0
	}

	idle := uint64(idleTime.HighDateTime)<<32 | uint64(idleTime.LowDateTime)
	kernel := uint64(kernelTime.HighDateTime)<<32 | uint64(kernelTime.LowDateTime)
	user := uint64(userTime.HighDateTime)<<32 | uint64(userTime.LowDateTime)

	if s.lastIdleTime == 0 {
		s.lastIdleTime, s.lastKernelTime, s.lastUserTime = idle, kernel, user
		return 0
	}

	idleDelta := idle - s.lastIdleTime
	kernelDelta := kernel - s.lastKernelTime
	userDelta := user - s.lastUserTime
	s.lastIdleTime, s.lastKernelTime, s.lastUserTime = idle, kernel, user

	// Kernel time includes idle time, so subtract it back out.
	totalDelta := kernelDelta + userDelta
	if totalDelta == 0 {
		return 0
	}
	busyDelta := totalDelta - idleDelta
	return (float64(busyDelta) / float64(totalDelta)) * 100.0
}

// ioRates returns this process's disk read/write operations per second
// since the previous call, via GetProcessIoCounters.
func (s *windowsSampler) ioRates() (readOpsPerSec, writeOpsPerSec float64) {
	handle, err := windows.GetCurrentProcess()
	if err != nil {
		return 0, 0
	}

	var counters ioCounters
	ret, _, _ := procGetProcessIoCounters.Call(
		uintptr(handle),
		uintptr(unsafe.Pointer(&counters)),
	)
	if ret == 0 {
		return 0, 0
	}

	now := time.Now()
	elapsed := now.Sub(s.lastIOTime).Seconds()

	if s.lastIO.ReadOperationCount == 0 || elapsed <= 0 {
		s.lastIO, s.lastIOTime = counters, now
		return 0, 0
	}

	readOpsPerSec = float64(counters.ReadOperationCount-s.lastIO.ReadOperationCount) / elapsed
	writeOpsPerSec = float64(counters.WriteOperationCount-s.lastIO.WriteOperationCount) / elapsed

	s.lastIO, s.lastIOTime = counters, now
	return readOpsPerSec, writeOpsPerSec
}
