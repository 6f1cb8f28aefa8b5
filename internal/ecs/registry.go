package ecs

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Registry is the coordinator that owns every entity, component pool,
// singleton, and the dispatcher/relationship table built on top of them.
// All mutating access goes through the free generic functions below
// (Emplace, Get, Remove, ...) rather than methods, since Go forbids
// generic methods on a concrete receiver type.
type Registry struct {
	allocator *entityAllocator

	poolsMu sync.RWMutex
	pools   map[reflect.Type]PoolBase

	componentsMu     sync.Mutex
	entityComponents map[uint32]map[reflect.Type]struct{}

	singletonsMu sync.RWMutex
	singletons   map[reflect.Type]any

	serializersMu sync.RWMutex
	serializers   map[reflect.Type]ComponentSerializer

	dispatcher    *Dispatcher
	relationships *Relationships
	prefabs       *PrefabRegistry
	metrics       *Metrics
	logger        *zap.Logger
}

// NewRegistry returns an empty Registry. A nil logger is replaced with a
// no-op logger, matching the rest of the core's nil-safe logging contract.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		allocator:        newEntityAllocator(),
		pools:            make(map[reflect.Type]PoolBase),
		entityComponents: make(map[uint32]map[reflect.Type]struct{}),
		singletons:       make(map[reflect.Type]any),
		serializers:      make(map[reflect.Type]ComponentSerializer),
		relationships:    newRelationships(),
		metrics:          newMetrics(),
		logger:           logger,
	}
	r.dispatcher = newDispatcher(logger)
	r.prefabs = newPrefabRegistry(r)
	return r
}

// Dispatcher returns the registry's signal dispatcher, for registering
// OnConstruct/OnDestroy callbacks.
func (r *Registry) Dispatcher() *Dispatcher { return r.dispatcher }

// Relationships returns the registry's parent/child table.
func (r *Registry) Relationships() *Relationships { return r.relationships }

// Prefabs returns the registry's prefab facility.
func (r *Registry) Prefabs() *PrefabRegistry { return r.prefabs }

// Metrics returns the registry's live performance counters.
func (r *Registry) Metrics() *Metrics { return r.metrics }

// Spawn allocates and returns a new, live Entity.
func (r *Registry) Spawn() Entity {
	e := r.allocator.allocate()
	r.metrics.recordSpawn()
	return e
}

// Reserve pre-sizes the entity allocator's backing storage for n entities.
func (r *Registry) Reserve(n int) { r.allocator.reserve(n) }

// IsAlive reports whether e refers to a currently live entity.
func (r *Registry) IsAlive(e Entity) bool { return r.allocator.isAlive(e) }

// Kill destroys e: every component it owns is removed (firing destroy
// signals along the way), its relationship edges are dropped, and its
// slot is retired. A no-op if e is already dead.
func (r *Registry) Kill(e Entity) bool {
	if !r.allocator.isAlive(e) {
		return false
	}

	r.componentsMu.Lock()
	types := r.entityComponents[e.Index()]
	var typeList []reflect.Type
	for t := range types {
		typeList = append(typeList, t)
	}
	delete(r.entityComponents, e.Index())
	r.componentsMu.Unlock()

	// Retire the slot before dispatching any destroy signals, so a
	// re-entrant Kill(e) from inside a destroy callback (spec.md §9) sees
	// e as already dead and silently no-ops instead of retiring it twice.
	r.allocator.retire(e)

	for _, t := range typeList {
		r.poolsMu.RLock()
		pool := r.pools[t]
		r.poolsMu.RUnlock()
		if pool != nil {
			pool.Remove(e)
		}
	}

	r.relationships.RemoveEntity(e)
	r.metrics.recordKill()
	return true
}

// CleanupTombstones reclaims every slot whose generation counter wrapped,
// returning the number reclaimed. A non-zero count is also logged at info
// level, since it's informational, not failure-bearing.
func (r *Registry) CleanupTombstones() int {
	n := r.allocator.cleanupTombstones()
	if n > 0 {
		r.logger.Info("reclaimed tombstoned entity slots", zap.Int("count", n))
	}
	return n
}

// Entities calls fn for every currently live entity.
func (r *Registry) Entities(fn func(Entity)) { r.allocator.live(fn) }

// LiveCount returns the number of currently live entities.
func (r *Registry) LiveCount() int { return r.allocator.liveCount() }

func componentType[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// getOrCreateTypedPool returns the pool for T, creating it on first use.
// Lookup takes the read lock; creation is double-checked under the write
// lock so concurrent first-accesses never race to create two pools for the
// same type.
func getOrCreateTypedPool[T any](r *Registry) typedPool[T] {
	t := componentType[T]()

	r.poolsMu.RLock()
	if p, ok := r.pools[t]; ok {
		r.poolsMu.RUnlock()
		return p.(typedPool[T])
	}
	r.poolsMu.RUnlock()

	r.poolsMu.Lock()
	defer r.poolsMu.Unlock()
	if p, ok := r.pools[t]; ok {
		return p.(typedPool[T])
	}

	var created typedPool[T]
	if isZeroSized[T]() {
		created = newTagPool[T](t, r.dispatcher)
	} else {
		created = newDensePool[T](t, r.dispatcher)
	}
	r.pools[t] = created
	return created
}

func (r *Registry) trackComponent(e Entity, t reflect.Type) {
	r.componentsMu.Lock()
	defer r.componentsMu.Unlock()
	set, ok := r.entityComponents[e.Index()]
	if !ok {
		set = make(map[reflect.Type]struct{})
		r.entityComponents[e.Index()] = set
	}
	set[t] = struct{}{}
}

func (r *Registry) untrackComponent(e Entity, t reflect.Type) {
	r.componentsMu.Lock()
	defer r.componentsMu.Unlock()
	set, ok := r.entityComponents[e.Index()]
	if !ok {
		return
	}
	delete(set, t)
	if len(set) == 0 {
		delete(r.entityComponents, e.Index())
	}
}

// ==============================================
// Component operations
// ==============================================

// Emplace attaches value as e's component of type T, returning a pointer
// to the stored value. Returns a DeadEntity error if e is not alive.
func Emplace[T any](r *Registry, e Entity, value T) (*T, error) {
	if !r.allocator.isAlive(e) {
		return nil, deadEntityErr(e)
	}
	pool := getOrCreateTypedPool[T](r)
	ptr, _ := pool.Emplace(e, value)
	r.trackComponent(e, componentType[T]())
	return ptr, nil
}

// GetOrEmplace returns e's existing component of type T if present,
// otherwise attaches fallback and returns a pointer to it.
func GetOrEmplace[T any](r *Registry, e Entity, fallback T) (*T, error) {
	if !r.allocator.isAlive(e) {
		return nil, deadEntityErr(e)
	}
	pool := getOrCreateTypedPool[T](r)
	if existing, ok := pool.Get(e); ok {
		return existing, nil
	}
	ptr, _ := pool.Emplace(e, fallback)
	r.trackComponent(e, componentType[T]())
	return ptr, nil
}

// Remove detaches e's component of type T, if any. Returns whether a
// component was actually removed.
func Remove[T any](r *Registry, e Entity) bool {
	pool := getOrCreateTypedPool[T](r)
	removed := pool.Remove(e)
	if removed {
		r.untrackComponent(e, componentType[T]())
	}
	return removed
}

// Has reports whether e currently owns a component of type T.
func Has[T any](r *Registry, e Entity) bool {
	return getOrCreateTypedPool[T](r).Contains(e)
}

// Get returns a pointer to e's component of type T, and a MissingComponent
// error if it doesn't own one.
func Get[T any](r *Registry, e Entity) (*T, error) {
	ptr, ok := getOrCreateTypedPool[T](r).Get(e)
	if !ok {
		return nil, missingComponentErr(e, componentType[T]())
	}
	return ptr, nil
}

// Patch applies fn to e's component of type T in place, returning a
// MissingComponent error if it doesn't own one. No construct/destroy
// signal fires — Patch is an in-place mutation, not a re-emplace.
func Patch[T any](r *Registry, e Entity, fn func(*T)) error {
	ptr, err := Get[T](r, e)
	if err != nil {
		return err
	}
	fn(ptr)
	return nil
}

// Count returns the number of entities currently owning a component of
// type T.
func Count[T any](r *Registry) int { return getOrCreateTypedPool[T](r).Size() }

// ClearPool removes every entity's component of type T.
func ClearPool[T any](r *Registry) { getOrCreateTypedPool[T](r).Clear() }

// ReservePool pre-sizes the pool for type T to hold n components.
func ReservePool[T any](r *Registry, n int) { getOrCreateTypedPool[T](r).Reserve(n) }

// CompactPool releases any spare capacity held by the pool for type T.
func CompactPool[T any](r *Registry) { getOrCreateTypedPool[T](r).Shrink() }

// RemoveWhere kills every currently live entity for which pred returns true.
// Matches are collected before any Kill runs, so pred sees a consistent
// snapshot of live entities rather than one shrinking as the sweep proceeds.
func (r *Registry) RemoveWhere(pred func(Entity) bool) {
	var matches []Entity
	r.Entities(func(e Entity) {
		if pred(e) {
			matches = append(matches, e)
		}
	})
	for _, e := range matches {
		r.Kill(e)
	}
}

// Compact shrinks every pool the registry has created so far, releasing any
// spare dense/packed capacity across the board rather than one type at a
// time via CompactPool.
func (r *Registry) Compact() {
	r.poolsMu.RLock()
	pools := make([]PoolBase, 0, len(r.pools))
	for _, p := range r.pools {
		pools = append(pools, p)
	}
	r.poolsMu.RUnlock()

	for _, p := range pools {
		p.Shrink()
	}
}

// ==============================================
// Singletons
// ==============================================

// SetSingleton sets the single, registry-wide value of type T.
func SetSingleton[T any](r *Registry, value T) {
	r.singletonsMu.Lock()
	defer r.singletonsMu.Unlock()
	r.singletons[componentType[T]()] = value
}

// GetSingleton returns the registry-wide value of type T, and a
// MissingSingleton error if none has been set.
func GetSingleton[T any](r *Registry) (T, error) {
	r.singletonsMu.RLock()
	defer r.singletonsMu.RUnlock()
	var zero T
	v, ok := r.singletons[componentType[T]()]
	if !ok {
		return zero, missingSingletonErr(componentType[T]())
	}
	return v.(T), nil
}

// HasSingleton reports whether a value of type T has been set.
func HasSingleton[T any](r *Registry) bool {
	r.singletonsMu.RLock()
	defer r.singletonsMu.RUnlock()
	_, ok := r.singletons[componentType[T]()]
	return ok
}

// RemoveSingleton clears the registry-wide value of type T.
func RemoveSingleton[T any](r *Registry) {
	r.singletonsMu.Lock()
	defer r.singletonsMu.Unlock()
	delete(r.singletons, componentType[T]())
}
