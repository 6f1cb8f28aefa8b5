package ecs

import "sync"

// Handle identifies either a real, already-allocated Entity or a
// not-yet-spawned placeholder created within a CommandBuffer. Components
// queued against a placeholder are remapped to the real entity at Flush
// time, which is what lets deferred commands reference entities that don't
// exist yet (e.g. "spawn a bullet, then attach a Physics component to it").
type Handle struct {
	real        Entity
	placeholder uint32
	isReal      bool
}

func realHandle(e Entity) Handle { return Handle{real: e, isReal: true} }

// IsPlaceholder reports whether h refers to an entity not yet allocated.
func (h Handle) IsPlaceholder() bool { return !h.isReal }

type deferredOp func(r *Registry, resolve func(Handle) Entity)

// CommandBuffer records mutations to apply to a Registry later, in the
// order recorded, under a single flush-time lock. This is the escape hatch
// for mutating a Registry from within iteration over one of its own views,
// where mutating directly would invalidate the pool being iterated.
type CommandBuffer struct {
	mu  sync.Mutex
	ops []deferredOp

	nextPlaceholder uint32
}

// NewCommandBuffer returns an empty CommandBuffer.
func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{}
}

// SpawnDeferred reserves a placeholder handle for an entity that will be
// created when the buffer is flushed. The placeholder can be passed to
// EmplaceDeferred/DestroyDeferred/RemoveDeferred before the real entity
// exists.
func (b *CommandBuffer) SpawnDeferred() Handle {
	b.mu.Lock()
	defer b.mu.Unlock()

	h := Handle{placeholder: b.nextPlaceholder}
	b.nextPlaceholder++
	b.ops = append(b.ops, func(r *Registry, resolve func(Handle) Entity) {
		resolve(h)
	})
	return h
}

// DestroyDeferred queues destruction of the entity h resolves to.
func (b *CommandBuffer) DestroyDeferred(h Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops = append(b.ops, func(r *Registry, resolve func(Handle) Entity) {
		r.Kill(resolve(h))
	})
}

// EmplaceDeferred queues emplacing value as component T on the entity h
// resolves to.
func EmplaceDeferred[T any](b *CommandBuffer, h Handle, value T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops = append(b.ops, func(r *Registry, resolve func(Handle) Entity) {
		Emplace(r, resolve(h), value)
	})
}

// RemoveDeferred queues removal of component T from the entity h resolves
// to.
func RemoveDeferred[T any](b *CommandBuffer, h Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops = append(b.ops, func(r *Registry, resolve func(Handle) Entity) {
		Remove[T](r, resolve(h))
	})
}

// Flush applies every queued operation to r, in recording order, and then
// clears the buffer. Each placeholder is resolved to a real Entity the
// first time it's encountered (a SpawnDeferred op resolves itself first,
// since it was recorded first); operations run at most once per Flush.
func (b *CommandBuffer) Flush(r *Registry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ops := b.ops
	b.ops = nil
	b.nextPlaceholder = 0

	if len(ops) == 0 {
		return
	}

	resolved := make(map[uint32]Entity)
	resolve := func(h Handle) Entity {
		if h.isReal {
			return h.real
		}
		if e, ok := resolved[h.placeholder]; ok {
			return e
		}
		e := r.Spawn()
		resolved[h.placeholder] = e
		return e
	}

	for _, op := range ops {
		op(r, resolve)
	}
}

// Clear drops every queued operation without executing it.
func (b *CommandBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ops = nil
	b.nextPlaceholder = 0
}

// Len reports how many operations are currently queued.
func (b *CommandBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.ops)
}
