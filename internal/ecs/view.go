package ecs

// smallest returns the index of the shortest packed array among the given
// sizes, the iteration heuristic spec.md §4.4 calls for: drive the walk
// from whichever component pool currently has the fewest entries, since
// every other pool lookup is an O(1) Contains check.
func smallest(sizes ...int) int {
	best := 0
	for i := 1; i < len(sizes); i++ {
		if sizes[i] < sizes[best] {
			best = i
		}
	}
	return best
}

// ==============================================
// View1..3 — read/write iteration over entities owning every listed
// component type.
// ==============================================

// View1 iterates entities owning a component of type A.
type View1[A any] struct {
	r *Registry
}

func NewView1[A any](r *Registry) View1[A] { return View1[A]{r: r} }

// Each calls fn for every entity owning A, in the underlying pool's packed
// order. fn may freely mutate A's value through the pointer it receives.
func (v View1[A]) Each(fn func(e Entity, a *A)) {
	pa := getOrCreateTypedPool[A](v.r)
	for _, e := range pa.Packed() {
		if a, ok := pa.Get(e); ok {
			fn(e, a)
		}
	}
}

// Size returns the number of entities owning A.
func (v View1[A]) Size() int { return getOrCreateTypedPool[A](v.r).Size() }

// View2 iterates entities owning both A and B, driven by whichever of the
// two pools is currently smaller.
type View2[A, B any] struct {
	r *Registry
}

func NewView2[A, B any](r *Registry) View2[A, B] { return View2[A, B]{r: r} }

func (v View2[A, B]) Each(fn func(e Entity, a *A, b *B)) {
	pa := getOrCreateTypedPool[A](v.r)
	pb := getOrCreateTypedPool[B](v.r)

	switch smallest(pa.Size(), pb.Size()) {
	case 0:
		for _, e := range pa.Packed() {
			a, ok := pa.Get(e)
			if !ok {
				continue
			}
			b, ok := pb.Get(e)
			if !ok {
				continue
			}
			fn(e, a, b)
		}
	default:
		for _, e := range pb.Packed() {
			b, ok := pb.Get(e)
			if !ok {
				continue
			}
			a, ok := pa.Get(e)
			if !ok {
				continue
			}
			fn(e, a, b)
		}
	}
}

// View3 iterates entities owning A, B, and C, driven by whichever of the
// three pools is currently smallest.
type View3[A, B, C any] struct {
	r *Registry
}

func NewView3[A, B, C any](r *Registry) View3[A, B, C] { return View3[A, B, C]{r: r} }

func (v View3[A, B, C]) Each(fn func(e Entity, a *A, b *B, c *C)) {
	pa := getOrCreateTypedPool[A](v.r)
	pb := getOrCreateTypedPool[B](v.r)
	pc := getOrCreateTypedPool[C](v.r)

	driver := smallest(pa.Size(), pb.Size(), pc.Size())
	var driverEntities []Entity
	switch driver {
	case 0:
		driverEntities = pa.Packed()
	case 1:
		driverEntities = pb.Packed()
	default:
		driverEntities = pc.Packed()
	}

	for _, e := range driverEntities {
		a, ok := pa.Get(e)
		if !ok {
			continue
		}
		b, ok := pb.Get(e)
		if !ok {
			continue
		}
		c, ok := pc.Get(e)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}

// ==============================================
// Exclude1..2 — like View, but further requires the entity own none of a
// second, excluded set of component types.
// ==============================================

// Exclude1 iterates entities owning A but none of Without.
func Exclude1[A, Without any](r *Registry, fn func(e Entity, a *A)) {
	pa := getOrCreateTypedPool[A](r)
	pw := getOrCreateTypedPool[Without](r)
	for _, e := range pa.Packed() {
		if pw.Contains(e) {
			continue
		}
		if a, ok := pa.Get(e); ok {
			fn(e, a)
		}
	}
}

// Exclude2 iterates entities owning both A and B but neither of Without.
func Exclude2[A, B, Without any](r *Registry, fn func(e Entity, a *A, b *B)) {
	pa := getOrCreateTypedPool[A](r)
	pb := getOrCreateTypedPool[B](r)
	pw := getOrCreateTypedPool[Without](r)

	driveOnA := pa.Size() <= pb.Size()
	if driveOnA {
		for _, e := range pa.Packed() {
			if pw.Contains(e) {
				continue
			}
			a, ok := pa.Get(e)
			if !ok {
				continue
			}
			b, ok := pb.Get(e)
			if !ok {
				continue
			}
			fn(e, a, b)
		}
		return
	}
	for _, e := range pb.Packed() {
		if pw.Contains(e) {
			continue
		}
		b, ok := pb.Get(e)
		if !ok {
			continue
		}
		a, ok := pa.Get(e)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

// ==============================================
// Group2..3 — like View, but caches its matching set until explicitly
// rebuilt, trading staleness for avoiding a re-scan every call.
// ==============================================

// Group2 caches the set of entities owning both A and B as of the last
// Rebuild call.
type Group2[A, B any] struct {
	r       *Registry
	entries []Entity
}

func NewGroup2[A, B any](r *Registry) *Group2[A, B] {
	g := &Group2[A, B]{r: r}
	g.Rebuild()
	return g
}

// Rebuild recomputes the cached entity set from current pool contents.
func (g *Group2[A, B]) Rebuild() {
	pa := getOrCreateTypedPool[A](g.r)
	pb := getOrCreateTypedPool[B](g.r)

	var entries []Entity
	small := pa.Packed()
	large := pb
	if pb.Size() < pa.Size() {
		small = pb.Packed()
		large = pa
	}
	for _, e := range small {
		if large.Contains(e) {
			entries = append(entries, e)
		}
	}
	g.entries = entries
}

// Each calls fn for every cached entity, re-fetching current component
// pointers (which may have moved since Rebuild due to swap-and-pop
// removals elsewhere). An entity that no longer owns both components by
// the time Each runs is silently skipped — callers needing a guaranteed
// fresh set should Rebuild first.
func (g *Group2[A, B]) Each(fn func(e Entity, a *A, b *B)) {
	pa := getOrCreateTypedPool[A](g.r)
	pb := getOrCreateTypedPool[B](g.r)
	for _, e := range g.entries {
		a, ok := pa.Get(e)
		if !ok {
			continue
		}
		b, ok := pb.Get(e)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

func (g *Group2[A, B]) Size() int { return len(g.entries) }

// Group3 caches the set of entities owning A, B, and C as of the last
// Rebuild call.
type Group3[A, B, C any] struct {
	r       *Registry
	entries []Entity
}

func NewGroup3[A, B, C any](r *Registry) *Group3[A, B, C] {
	g := &Group3[A, B, C]{r: r}
	g.Rebuild()
	return g
}

func (g *Group3[A, B, C]) Rebuild() {
	pa := getOrCreateTypedPool[A](g.r)
	pb := getOrCreateTypedPool[B](g.r)
	pc := getOrCreateTypedPool[C](g.r)

	driver := smallest(pa.Size(), pb.Size(), pc.Size())
	var driverEntities []Entity
	switch driver {
	case 0:
		driverEntities = pa.Packed()
	case 1:
		driverEntities = pb.Packed()
	default:
		driverEntities = pc.Packed()
	}

	var entries []Entity
	for _, e := range driverEntities {
		if pa.Contains(e) && pb.Contains(e) && pc.Contains(e) {
			entries = append(entries, e)
		}
	}
	g.entries = entries
}

func (g *Group3[A, B, C]) Each(fn func(e Entity, a *A, b *B, c *C)) {
	pa := getOrCreateTypedPool[A](g.r)
	pb := getOrCreateTypedPool[B](g.r)
	pc := getOrCreateTypedPool[C](g.r)
	for _, e := range g.entries {
		a, ok := pa.Get(e)
		if !ok {
			continue
		}
		b, ok := pb.Get(e)
		if !ok {
			continue
		}
		c, ok := pc.Get(e)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}

func (g *Group3[A, B, C]) Size() int { return len(g.entries) }
