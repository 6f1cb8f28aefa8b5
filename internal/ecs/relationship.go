package ecs

import "sync"

// Relationships maintains a parent/child forest over entity indices. It is
// deliberately index-keyed rather than Entity-keyed: once an entity is
// destroyed its edges are dropped by RemoveEntity, so staleness is never a
// concern and a plain uint32 key avoids a generation mismatch on lookup.
type Relationships struct {
	mu       sync.RWMutex
	parent   map[uint32]Entity
	children map[uint32]map[uint32]Entity
}

func newRelationships() *Relationships {
	return &Relationships{
		parent:   make(map[uint32]Entity),
		children: make(map[uint32]map[uint32]Entity),
	}
}

func (r *Relationships) addChildLocked(parent, child Entity) {
	set, ok := r.children[parent.Index()]
	if !ok {
		set = make(map[uint32]Entity)
		r.children[parent.Index()] = set
	}
	set[child.Index()] = child
}

func (r *Relationships) removeChildLocked(parent, child Entity) {
	if set, ok := r.children[parent.Index()]; ok {
		delete(set, child.Index())
		if len(set) == 0 {
			delete(r.children, parent.Index())
		}
	}
}

// isAncestorLocked reports whether candidate already appears among of's
// ancestors, walking the parent chain.
func (r *Relationships) isAncestorLocked(candidate, of Entity) bool {
	cur, ok := r.parent[of.Index()]
	for ok {
		if cur == candidate {
			return true
		}
		cur, ok = r.parent[cur.Index()]
	}
	return false
}

// SetParent links child under parent, detaching child from any existing
// parent first. Returns false without modifying anything if parent equals
// child, or if parent is already a descendant of child (which would create
// a cycle).
func (r *Relationships) SetParent(child, parent Entity) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if child == parent {
		return false
	}
	if r.isAncestorLocked(child, parent) {
		return false
	}

	if old, ok := r.parent[child.Index()]; ok {
		r.removeChildLocked(old, child)
	}
	r.parent[child.Index()] = parent
	r.addChildLocked(parent, child)
	return true
}

// SetParentErr is SetParent with a RelationshipCycle error in place of a
// bool, for callers that want to propagate the failure through the same
// error-returning convention as the rest of the core.
func (r *Relationships) SetParentErr(child, parent Entity) error {
	if !r.SetParent(child, parent) {
		return &Error{Kind: ErrRelationshipCycle, Message: "setting parent would create a cycle", Entity: child}
	}
	return nil
}

// RemoveParent detaches child from its current parent, if any.
func (r *Relationships) RemoveParent(child Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.parent[child.Index()]
	if !ok {
		return
	}
	delete(r.parent, child.Index())
	r.removeChildLocked(old, child)
}

// GetParent returns child's parent and whether one is set.
func (r *Relationships) GetParent(child Entity) (Entity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parent[child.Index()]
	return p, ok
}

// GetChildren returns a snapshot of parent's direct children.
func (r *Relationships) GetChildren(parent Entity) []Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.children[parent.Index()]
	if !ok {
		return nil
	}
	out := make([]Entity, 0, len(set))
	for _, c := range set {
		out = append(out, c)
	}
	return out
}

// ChildCount reports the number of direct children of parent.
func (r *Relationships) ChildCount(parent Entity) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.children[parent.Index()])
}

// GetDescendants returns every entity reachable from root by following
// child edges, in depth-first order.
func (r *Relationships) GetDescendants(root Entity) []Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Entity
	var walk func(Entity)
	walk = func(e Entity) {
		for _, c := range r.children[e.Index()] {
			out = append(out, c)
			walk(c)
		}
	}
	walk(root)
	return out
}

// GetAncestors returns child's parent chain, nearest first.
func (r *Relationships) GetAncestors(child Entity) []Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Entity
	cur, ok := r.parent[child.Index()]
	for ok {
		out = append(out, cur)
		cur, ok = r.parent[cur.Index()]
	}
	return out
}

// IsAncestor reports whether candidate is an ancestor of e.
func (r *Relationships) IsAncestor(candidate, e Entity) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isAncestorLocked(candidate, e)
}

// Depth returns the number of ancestors above e (0 for a root entity).
func (r *Relationships) Depth(e Entity) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	depth := 0
	cur, ok := r.parent[e.Index()]
	for ok {
		depth++
		cur, ok = r.parent[cur.Index()]
	}
	return depth
}

// RemoveEntity detaches e from its parent and re-parents every direct child
// of e to nothing (orphaning them), called when e is destroyed so the
// relationship table never holds an edge to a dead index.
func (r *Relationships) RemoveEntity(e Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.parent[e.Index()]; ok {
		delete(r.parent, e.Index())
		r.removeChildLocked(old, e)
	}

	for _, c := range r.children[e.Index()] {
		delete(r.parent, c.Index())
	}
	delete(r.children, e.Index())
}
