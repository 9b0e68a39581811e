// Package monitor provides real-time system resource monitoring during a
// run, feeding the dashboard's detailed verbosity tier. It tracks CPU usage,
// memory pressure, and GC pressure to identify whether a run is bound by
// CPU, memory, or (by elimination) disk I/O.
package monitor

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/yourusername/fast-rm/internal/logger"
	"github.com/yourusername/fast-rm/internal/progress"
)

// Bottleneck detection thresholds.
const (
	// MemoryPressureThreshold is the fraction of Sys memory that triggers a warning.
	MemoryPressureThreshold = 0.8
	// GCPressureThreshold is the GC cycles/sec rate that triggers a warning.
	GCPressureThreshold = 2.0
	// CPUSaturationThreshold is the CPU usage percentage that triggers a warning.
	CPUSaturationThreshold = 90.0
)

// SystemMetrics is a snapshot of system resource usage at a point in time,
// paired with the run's deletion rate at that moment.
type SystemMetrics struct {
	Timestamp time.Time

	NumGoroutines int
	NumCPU        int
	CPUPercent    float64

	AllocMB      float64
	TotalAllocMB float64
	SysMB        float64
	NumGC        uint32
	GCPauseMs    float64

	ItemsDeleted int64
	DeletionRate float64

	// ReadOpsPerSec and WriteOpsPerSec are populated from real OS counters
	// where a platform sampler is available (see monitor_windows.go); zero
	// otherwise.
	ReadOpsPerSec  float64
	WriteOpsPerSec float64

	MemoryPressure bool
	GCPressure     bool
	CPUSaturated   bool
	IOSaturated    bool
}

// Monitor tracks system resources during a run. On platforms with a
// sampler (currently Windows), CPUPercent and the IO fields come from real
// OS counters instead of the portable goroutine-occupancy estimate; see
// New.
type Monitor struct {
	mu              sync.RWMutex
	metrics         []SystemMetrics
	startTime       time.Time
	lastGCCount     uint32
	lastGCPauseNs   uint64
	lastDeleted     int64
	lastMeasureTime time.Time

	cpuSampler func() float64
	ioSampler  func() (readOpsPerSec, writeOpsPerSec float64)
}

// New creates a system resource monitor, wiring in a platform-specific CPU
// and disk I/O sampler when one is available.
func New() *Monitor {
	m := NewMonitor()
	attachPlatformSamplers(m)
	return m
}

// NewMonitor creates a new system resource monitor using only the portable
// goroutine-occupancy CPU estimate, with no platform sampler attached.
func NewMonitor() *Monitor {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return &Monitor{
		metrics:         make([]SystemMetrics, 0, 1000),
		startTime:       time.Now(),
		lastGCCount:     memStats.NumGC,
		lastGCPauseNs:   memStats.PauseTotalNs,
		lastMeasureTime: time.Now(),
	}
}

// Start samples core at interval until ctx is cancelled, recording metrics
// and logging bottleneck warnings as they're detected.
func (m *Monitor) Start(ctx context.Context, interval time.Duration, core *progress.Core) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := core.Snapshot()
			metrics := m.collectMetrics(snap.Deleted)
			m.recordMetrics(metrics)
			m.logBottlenecks(metrics)
		}
	}
}

func (m *Monitor) collectMetrics(deleted int64) SystemMetrics {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	now := time.Now()
	elapsed := now.Sub(m.lastMeasureTime).Seconds()

	gcCount := memStats.NumGC - m.lastGCCount
	gcPauseNs := memStats.PauseTotalNs - m.lastGCPauseNs
	gcPauseMs := float64(gcPauseNs) / 1e6

	var rate float64
	if elapsed > 0 {
		rate = float64(deleted-m.lastDeleted) / elapsed
	}

	numGoroutines := runtime.NumGoroutine()
	numCPU := runtime.NumCPU()

	var cpuPercent float64
	if m.cpuSampler != nil {
		cpuPercent = m.cpuSampler()
	} else {
		// No platform sampler available; goroutine occupancy relative to
		// logical CPU count is a rough but portable stand-in.
		cpuPercent = (float64(numGoroutines) / float64(numCPU)) * 10.0
		if cpuPercent > 100 {
			cpuPercent = 100
		}
	}

	var readOps, writeOps float64
	if m.ioSampler != nil {
		readOps, writeOps = m.ioSampler()
	}

	allocMB := float64(memStats.Alloc) / (1024 * 1024)
	sysMB := float64(memStats.Sys) / (1024 * 1024)
	memoryPressure := allocMB > (sysMB * MemoryPressureThreshold)
	gcPressure := elapsed > 0 && (float64(gcCount)/elapsed) > GCPressureThreshold
	cpuSaturated := cpuPercent > CPUSaturationThreshold
	ioSaturated := (readOps + writeOps) > 10000

	metrics := SystemMetrics{
		Timestamp:      now,
		NumGoroutines:  numGoroutines,
		NumCPU:         numCPU,
		CPUPercent:     cpuPercent,
		AllocMB:        allocMB,
		TotalAllocMB:   float64(memStats.TotalAlloc) / (1024 * 1024),
		SysMB:          sysMB,
		NumGC:          memStats.NumGC,
		GCPauseMs:      gcPauseMs,
		ItemsDeleted:   deleted,
		DeletionRate:   rate,
		ReadOpsPerSec:  readOps,
		WriteOpsPerSec: writeOps,
		MemoryPressure: memoryPressure,
		GCPressure:     gcPressure,
		CPUSaturated:   cpuSaturated,
		IOSaturated:    ioSaturated,
	}

	m.lastGCCount = memStats.NumGC
	m.lastGCPauseNs = memStats.PauseTotalNs
	m.lastDeleted = deleted
	m.lastMeasureTime = now

	return metrics
}

func (m *Monitor) recordMetrics(metrics SystemMetrics) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics = append(m.metrics, metrics)
}

func (m *Monitor) logBottlenecks(metrics SystemMetrics) {
	if metrics.MemoryPressure {
		logger.Warn("memory pressure detected", "alloc_mb", metrics.AllocMB, "sys_mb", metrics.SysMB)
	}
	if metrics.GCPressure {
		logger.Warn("gc pressure detected", "pause_ms", metrics.GCPauseMs)
	}
	if metrics.CPUSaturated {
		logger.Warn("cpu saturation detected", "goroutines", metrics.NumGoroutines, "cpus", metrics.NumCPU)
	}
	if metrics.IOSaturated {
		logger.Warn("disk i/o saturation detected",
			"read_ops_per_sec", metrics.ReadOpsPerSec,
			"write_ops_per_sec", metrics.WriteOpsPerSec,
			"cpu_percent", metrics.CPUPercent,
		)
	}
}

// GetMetrics returns a copy of all collected metrics.
func (m *Monitor) GetMetrics() []SystemMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]SystemMetrics, len(m.metrics))
	copy(result, m.metrics)
	return result
}

// Latest returns the most recently collected sample, or the zero value if
// none have been collected yet.
func (m *Monitor) Latest() SystemMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.metrics) == 0 {
		return SystemMetrics{}
	}
	return m.metrics[len(m.metrics)-1]
}

// PrimaryBottleneck names the dominant resource constraint observed across
// the run, for the orchestrator's final summary.
func (m *Monitor) PrimaryBottleneck() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.metrics) == 0 {
		return "unknown"
	}

	var memoryPressureCount, gcPressureCount, cpuSaturatedCount int
	for _, sample := range m.metrics {
		if sample.MemoryPressure {
			memoryPressureCount++
		}
		if sample.GCPressure {
			gcPressureCount++
		}
		if sample.CPUSaturated {
			cpuSaturatedCount++
		}
	}

	total := len(m.metrics)
	memPct := float64(memoryPressureCount) / float64(total) * 100
	gcPct := float64(gcPressureCount) / float64(total) * 100
	cpuPct := float64(cpuSaturatedCount) / float64(total) * 100

	switch {
	case memPct > 50:
		return fmt.Sprintf("memory (%.0f%% of samples)", memPct)
	case gcPct > 30:
		return fmt.Sprintf("gc (%.0f%% of samples)", gcPct)
	case cpuPct > 70:
		return fmt.Sprintf("cpu (%.0f%% of samples)", cpuPct)
	default:
		return "disk i/o (no cpu, memory, or gc pressure detected)"
	}
}
