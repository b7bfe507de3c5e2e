// Periodic memory usage monitor for debug mode
package debug

import (
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/sirupsen/logrus"
)

// Monitor logs heap and process memory statistics at a fixed interval while
// enabled. The Mat counters in this package are reported alongside so leaks
// show up as a growing alloc/release gap.
type Monitor struct {
	logger   *logrus.Logger
	enabled  bool
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewMonitor(logger *logrus.Logger, enabled bool) *Monitor {
	return &Monitor{
		logger:   logger,
		enabled:  enabled,
		interval: 30 * time.Second,
	}
}

// Start launches the periodic snapshot loop. No-op when disabled.
func (m *Monitor) Start() {
	if !m.enabled || m.stop != nil {
		return
	}

	m.stop = make(chan struct{})
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.Snapshot()
			case <-m.stop:
				return
			}
		}
	}()

	m.logger.Debug("Memory monitor started")
}

// Stop terminates the snapshot loop and logs a final summary.
func (m *Monitor) Stop() {
	if m.stop == nil {
		return
	}
	close(m.stop)
	<-m.done
	m.stop = nil

	m.Summary()
}

// Snapshot logs one memory reading.
func (m *Monitor) Snapshot() {
	if !m.enabled {
		return
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	fields := logrus.Fields{
		"heap_alloc_mb": float64(stats.Alloc) / 1024 / 1024,
		"heap_sys_mb":   float64(stats.Sys) / 1024 / 1024,
		"num_gc":        stats.NumGC,
	}

	if rss, ok := processRSS(); ok {
		fields["rss_mb"] = float64(rss) / 1024 / 1024
	}

	allocs, releases := MatBalance()
	fields["mat_allocs"] = allocs
	fields["mat_releases"] = releases

	m.logger.WithFields(fields).Debug("Memory snapshot")
}

// Summary logs final totals, flagging any Mat alloc/release imbalance.
func (m *Monitor) Summary() {
	if !m.enabled {
		return
	}

	allocs, releases := MatBalance()
	entry := m.logger.WithFields(logrus.Fields{
		"mat_allocs":   allocs,
		"mat_releases": releases,
	})

	if allocs != releases {
		entry.Warn("Mat accounting imbalance at shutdown")
		return
	}
	entry.Info("Mat accounting balanced at shutdown")
}

func processRSS() (uint64, bool) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, false
	}
	info, err := proc.MemoryInfo()
	if err != nil || info == nil {
		return 0, false
	}
	return info.RSS, true
}
