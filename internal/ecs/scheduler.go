package ecs

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// System is a unit of per-frame work scheduled against a Registry.
type System func(r *Registry) error

type systemRecord struct {
	name    string
	fn      System
	deps    []string
	enabled bool
}

// Scheduler holds a named, dependency-ordered set of systems and runs them
// in topological order every frame, recomputing the order only when the
// graph has actually changed since the last Run.
type Scheduler struct {
	mu      sync.Mutex
	systems map[string]*systemRecord
	order   []string
	stale   bool
	logger  *zap.Logger
	timings map[string]time.Duration
}

// NewScheduler returns an empty Scheduler. A nil logger is replaced with a
// no-op logger.
func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		systems: make(map[string]*systemRecord),
		logger:  logger,
		timings: make(map[string]time.Duration),
	}
}

// Add registers a system under name with the given dependency names (which
// must run before it). Returns a DuplicateSystem error if name is already
// registered.
func (s *Scheduler) Add(name string, fn System, deps ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.systems[name]; ok {
		return duplicateSystemErr(name)
	}
	depsCopy := append([]string(nil), deps...)
	s.systems[name] = &systemRecord{name: name, fn: fn, deps: depsCopy, enabled: true}
	s.stale = true
	return nil
}

// Remove unregisters a system by name. A no-op if it isn't registered.
func (s *Scheduler) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.systems[name]; !ok {
		return
	}
	delete(s.systems, name)
	s.stale = true
}

// SetEnabled toggles whether name participates in Run without removing it
// (and without requiring a topological recompute, since disabled systems
// are simply skipped during the walk).
func (s *Scheduler) SetEnabled(name string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.systems[name]; ok {
		rec.enabled = enabled
	}
}

// IsEnabled reports whether name is registered and enabled.
func (s *Scheduler) IsEnabled(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.systems[name]
	return ok && rec.enabled
}

// recompute rebuilds s.order via Kahn's algorithm, breaking ties between
// simultaneously-ready systems alphabetically so that Run's ordering is
// deterministic across processes given the same registration set — the
// distilled spec leaves tie-breaking unspecified, and alphabetical order is
// the cheapest deterministic choice that doesn't depend on registration
// order.
func (s *Scheduler) recompute() error {
	indegree := make(map[string]int, len(s.systems))
	dependents := make(map[string][]string, len(s.systems))

	for name, rec := range s.systems {
		indegree[name] = 0
		for _, dep := range rec.deps {
			if _, ok := s.systems[dep]; !ok {
				err := unknownDependencyErr(name, dep)
				s.logger.Error("scheduler: unknown dependency", zap.String("system", name), zap.String("dependency", dep))
				return err
			}
		}
	}
	for name, rec := range s.systems {
		for _, dep := range rec.deps {
			indegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var ready []string
	for name, deg := range indegree {
		if deg == 0 {
			ready = append(ready, name)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(s.systems))
	for len(ready) > 0 {
		sort.Strings(ready)
		name := ready[0]
		ready = ready[1:]
		order = append(order, name)

		for _, dep := range dependents[name] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(order) != len(s.systems) {
		s.logger.Error("scheduler: cycle detected", zap.Int("ordered", len(order)), zap.Int("total", len(s.systems)))
		return cycleDetectedErr()
	}

	s.order = order
	s.stale = false
	return nil
}

// Run recomputes the execution order if the graph has changed since the
// last call, then runs every enabled system in order against r. It stops
// and returns the first system error encountered.
func (s *Scheduler) Run(r *Registry) error {
	s.mu.Lock()
	if s.stale {
		if err := s.recompute(); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	order := append([]string(nil), s.order...)
	s.mu.Unlock()

	for _, name := range order {
		s.mu.Lock()
		rec, ok := s.systems[name]
		s.mu.Unlock()
		if !ok || !rec.enabled {
			continue
		}

		start := time.Now()
		err := rec.fn(r)
		elapsed := time.Since(start)

		s.mu.Lock()
		s.timings[name] = elapsed
		s.mu.Unlock()

		if err != nil {
			return err
		}
	}
	return nil
}

// RunNamed runs a single registered system by name, bypassing the
// dependency graph entirely. Useful for tests and for one-off systems
// triggered outside the regular frame loop.
func (s *Scheduler) RunNamed(name string, r *Registry) error {
	s.mu.Lock()
	rec, ok := s.systems[name]
	s.mu.Unlock()
	if !ok {
		return unknownDependencyErr(name, name)
	}
	return rec.fn(r)
}

// Timing returns the duration of name's most recent run, and whether it has
// run at all yet.
func (s *Scheduler) Timing(name string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.timings[name]
	return d, ok
}
