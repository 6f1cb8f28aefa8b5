package ecs

import "testing"

func TestDispatcherMultipleObservers(t *testing.T) {
	d := newDispatcher(nil)
	typ := componentType[testPosition]()

	var a, b int
	OnConstruct[testPosition](d, func(Entity) { a++ })
	OnConstruct[testPosition](d, func(Entity) { b++ })

	d.dispatch(typ, PhaseConstruct, newEntity(0, 0))

	if a != 1 || b != 1 {
		t.Fatalf("a=%d b=%d, want both 1", a, b)
	}
}

func TestDispatcherRecoversDestroyPanic(t *testing.T) {
	d := newDispatcher(nil)
	typ := componentType[testPosition]()

	ran := false
	OnDestroy[testPosition](d, func(Entity) { panic("boom") })
	OnDestroy[testPosition](d, func(Entity) { ran = true })

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("dispatch must recover destroy panics itself, got %v", r)
			}
		}()
		d.dispatch(typ, PhaseDestroy, newEntity(0, 0))
	}()

	if !ran {
		t.Fatal("a later destroy callback must still run after an earlier one panics")
	}
}

func TestDispatcherUnknownTypeIsNoop(t *testing.T) {
	d := newDispatcher(nil)
	typ := componentType[testPosition]()
	d.dispatch(typ, PhaseConstruct, newEntity(0, 0))
}

