package ecs

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Phase identifies which lifecycle signal fired.
type Phase int

const (
	PhaseConstruct Phase = iota
	PhaseDestroy
)

// Callback observes a single component construct or destroy event.
type Callback func(e Entity)

type callbackList struct {
	construct []Callback
	destroy   []Callback
}

// Dispatcher routes per-component-type construct/destroy signals to
// registered observers. Callbacks are copied out from under the lock before
// being invoked, so a callback is free to mutate the registry — including
// registering further callbacks — without deadlocking. There is no
// operation for unregistering a callback.
type Dispatcher struct {
	mu     sync.RWMutex
	subs   map[reflect.Type]*callbackList
	logger *zap.Logger
}

func newDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{subs: make(map[reflect.Type]*callbackList), logger: logger}
}

func (d *Dispatcher) listFor(t reflect.Type) *callbackList {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.subs[t]
	if !ok {
		l = &callbackList{}
		d.subs[t] = l
	}
	return l
}

// OnConstruct registers fn to run whenever a component of type T is added
// to an entity (including overwrite-free first emplace, not re-emplace).
func OnConstruct[T any](d *Dispatcher, fn Callback) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	l := d.listFor(t)
	d.mu.Lock()
	l.construct = append(l.construct, fn)
	d.mu.Unlock()
}

// OnDestroy registers fn to run whenever a component of type T is removed
// from an entity, including removal caused by entity destruction.
func OnDestroy[T any](d *Dispatcher, fn Callback) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	l := d.listFor(t)
	d.mu.Lock()
	l.destroy = append(l.destroy, fn)
	d.mu.Unlock()
}

func (d *Dispatcher) dispatch(t reflect.Type, phase Phase, e Entity) {
	d.mu.RLock()
	l, ok := d.subs[t]
	d.mu.RUnlock()
	if !ok {
		return
	}

	d.mu.RLock()
	var callbacks []Callback
	switch phase {
	case PhaseConstruct:
		callbacks = append(callbacks, l.construct...)
	case PhaseDestroy:
		callbacks = append(callbacks, l.destroy...)
	}
	d.mu.RUnlock()

	for _, cb := range callbacks {
		d.invoke(cb, phase, e)
	}
}

// invoke runs cb, recovering and logging a panic from a destroy callback
// rather than letting it unwind into the pool that triggered it — a
// destroy fires during entity teardown, where the caller has no reasonable
// way to react to a propagated panic anyway.
func (d *Dispatcher) invoke(cb Callback, phase Phase, e Entity) {
	if phase != PhaseDestroy {
		cb(e)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("destroy callback panicked", zap.Any("recovered", r), zap.Stringer("entity", e))
		}
	}()
	cb(e)
}
