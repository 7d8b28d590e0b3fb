package monitor

import (
	"runtime"
	"sort"
	"sync"
	"time"
)

// Monitor collects per-operation counters and a runtime snapshot for the
// debug overlay. It is an explicit optional capability: a nil *Monitor
// is valid and every method on it is a no-op, so business logic never
// has to care whether monitoring is on.
type Monitor struct {
	mu      sync.Mutex
	counts  map[string]uint64
	started time.Time
}

func New() *Monitor {
	return &Monitor{
		counts:  make(map[string]uint64),
		started: time.Now(),
	}
}

// Record bumps the counter for one named operation.
func (m *Monitor) Record(name string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.counts[name]++
	m.mu.Unlock()
}

type OperationCount struct {
	Name  string `json:"name"`
	Count uint64 `json:"count"`
}

type Snapshot struct {
	UptimeSeconds float64          `json:"uptime_seconds"`
	Goroutines    int              `json:"goroutines"`
	HeapAllocMB   float64          `json:"heap_alloc_mb"`
	HeapSysMB     float64          `json:"heap_sys_mb"`
	NumGC         uint32           `json:"num_gc"`
	LastGCPauseMS float64          `json:"last_gc_pause_ms"`
	Operations    []OperationCount `json:"operations"`
}

// Snapshot returns a point-in-time read-only view. A disabled monitor
// yields the zero snapshot.
func (m *Monitor) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	snap := Snapshot{
		UptimeSeconds: time.Since(m.started).Seconds(),
		Goroutines:    runtime.NumGoroutine(),
		HeapAllocMB:   float64(mem.HeapAlloc) / (1 << 20),
		HeapSysMB:     float64(mem.HeapSys) / (1 << 20),
		NumGC:         mem.NumGC,
	}
	if mem.NumGC > 0 {
		snap.LastGCPauseMS = float64(mem.PauseNs[(mem.NumGC+255)%256]) / 1e6
	}

	m.mu.Lock()
	for name, count := range m.counts {
		snap.Operations = append(snap.Operations, OperationCount{Name: name, Count: count})
	}
	m.mu.Unlock()

	sort.Slice(snap.Operations, func(i, j int) bool {
		return snap.Operations[i].Name < snap.Operations[j].Name
	})
	return snap
}
