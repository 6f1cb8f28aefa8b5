package ecs

import "testing"

func TestEntityPackingRoundTrip(t *testing.T) {
	cases := []struct {
		index, gen uint32
	}{
		{0, 0},
		{1, 1},
		{indexMask - 1, generationMask - 1},
		{42, 7},
	}
	for _, c := range cases {
		e := newEntity(c.index, c.gen)
		if e.Index() != c.index {
			t.Fatalf("Index() = %d, want %d", e.Index(), c.index)
		}
		if e.Generation() != c.gen {
			t.Fatalf("Generation() = %d, want %d", e.Generation(), c.gen)
		}
	}
}

func TestEntityNullIsDistinctFromZero(t *testing.T) {
	if Null.IsNull() != true {
		t.Fatal("Null.IsNull() = false, want true")
	}
	zero := newEntity(0, 0)
	if zero.IsNull() {
		t.Fatal("a real entity at index 0 generation 0 must not be treated as null")
	}
	if zero == Null {
		t.Fatal("zero-valued entity must not equal Null")
	}
}

func TestAllocatorAllocateAndRetire(t *testing.T) {
	a := newEntityAllocator()

	e1 := a.allocate()
	if !a.isAlive(e1) {
		t.Fatal("freshly allocated entity must be alive")
	}

	if ok := a.retire(e1); !ok {
		t.Fatal("retire of a live entity must return true")
	}
	if a.isAlive(e1) {
		t.Fatal("retired entity must not be alive")
	}
	if ok := a.retire(e1); ok {
		t.Fatal("retiring an already-dead entity must return false")
	}
}

func TestAllocatorRecyclesIndexWithBumpedGeneration(t *testing.T) {
	a := newEntityAllocator()

	e1 := a.allocate()
	a.retire(e1)
	e2 := a.allocate()

	if e2.Index() != e1.Index() {
		t.Fatalf("expected index reuse, got %d want %d", e2.Index(), e1.Index())
	}
	if e2.Generation() != e1.Generation()+1 {
		t.Fatalf("expected generation bump, got %d want %d", e2.Generation(), e1.Generation()+1)
	}
	if a.isAlive(e1) {
		t.Fatal("stale handle e1 must read as dead after recycling")
	}
	if !a.isAlive(e2) {
		t.Fatal("recycled handle e2 must read as alive")
	}
}

func TestAllocatorTombstonesWrappedGeneration(t *testing.T) {
	a := newEntityAllocator()
	e := a.allocate()
	idx := e.Index()

	a.generations[idx] = TombstoneGeneration - 1
	a.retire(e)

	if a.tombstoneCount() != 1 {
		t.Fatalf("tombstoneCount() = %d, want 1", a.tombstoneCount())
	}

	reclaimed := a.cleanupTombstones()
	if reclaimed != 1 {
		t.Fatalf("cleanupTombstones() = %d, want 1", reclaimed)
	}
	if a.tombstoneCount() != 0 {
		t.Fatal("tombstones must be empty after cleanup")
	}

	next := a.allocate()
	if next.Index() != idx {
		t.Fatalf("expected reclaimed index %d to be reused, got %d", idx, next.Index())
	}
	if next.Generation() != 0 {
		t.Fatalf("reclaimed slot must restart at generation 0, got %d", next.Generation())
	}
}

func TestAllocatorLiveEnumeration(t *testing.T) {
	a := newEntityAllocator()
	e1 := a.allocate()
	e2 := a.allocate()
	e3 := a.allocate()
	a.retire(e2)

	var seen []Entity
	a.live(func(e Entity) { seen = append(seen, e) })

	if len(seen) != 2 {
		t.Fatalf("live() visited %d entities, want 2", len(seen))
	}
	for _, e := range seen {
		if e == e2 {
			t.Fatal("live() must not visit a retired entity")
		}
	}
	if seen[0] != e1 || seen[1] != e3 {
		t.Fatalf("live() must visit in ascending index order, got %v", seen)
	}
}

func TestEntityStringFormatting(t *testing.T) {
	if Null.String() != "Entity(null)" {
		t.Fatalf("Null.String() = %q", Null.String())
	}
	e := newEntity(3, 1)
	if e.String() != "Entity(3#1)" {
		t.Fatalf("String() = %q, want Entity(3#1)", e.String())
	}
}
