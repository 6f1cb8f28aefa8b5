package ecs

import "sync/atomic"

// Metrics holds lightweight, always-on performance counters for a
// Registry: lifetime spawn/kill totals plus a snapshot accessor for
// per-pool component counts. Unlike the teacher's sprawling
// PerformanceMetrics/StorageStats structs, every field here is actually
// updated somewhere in the core.
type Metrics struct {
	totalSpawns atomic.Int64
	totalKills  atomic.Int64
}

func newMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordSpawn() { m.totalSpawns.Add(1) }
func (m *Metrics) recordKill()  { m.totalKills.Add(1) }

// TotalSpawns returns the lifetime count of Spawn calls.
func (m *Metrics) TotalSpawns() int64 { return m.totalSpawns.Load() }

// TotalKills returns the lifetime count of successful Kill calls.
func (m *Metrics) TotalKills() int64 { return m.totalKills.Load() }

// PoolSizes returns a snapshot of live component counts, keyed by the
// component type's name, across every pool the registry has created so
// far.
func (r *Registry) PoolSizes() map[string]int {
	r.poolsMu.RLock()
	defer r.poolsMu.RUnlock()

	out := make(map[string]int, len(r.pools))
	for t, p := range r.pools {
		out[t.String()] = p.Size()
	}
	return out
}
