package ecs

import "testing"

func TestSetParentAndGetChildren(t *testing.T) {
	r := newRelationships()
	parent := newEntity(0, 0)
	child := newEntity(1, 0)

	if ok := r.SetParent(child, parent); !ok {
		t.Fatal("SetParent must succeed for a fresh edge")
	}

	got, ok := r.GetParent(child)
	if !ok || got != parent {
		t.Fatalf("GetParent() = (%v, %v), want (%v, true)", got, ok, parent)
	}

	children := r.GetChildren(parent)
	if len(children) != 1 || children[0] != child {
		t.Fatalf("GetChildren() = %v, want [%v]", children, child)
	}
}

func TestSetParentRejectsSelfParenting(t *testing.T) {
	r := newRelationships()
	e := newEntity(0, 0)
	if ok := r.SetParent(e, e); ok {
		t.Fatal("an entity must not be able to parent itself")
	}
}

func TestSetParentRejectsCycle(t *testing.T) {
	r := newRelationships()
	a := newEntity(0, 0)
	b := newEntity(1, 0)
	c := newEntity(2, 0)

	r.SetParent(b, a) // a -> b
	r.SetParent(c, b) // b -> c

	if ok := r.SetParent(a, c); ok {
		t.Fatal("setting a's parent to its own descendant must be rejected")
	}
	if _, ok := r.GetParent(a); ok {
		t.Fatal("a rejected SetParent must not partially apply")
	}
}

func TestSetParentReparentsAwayFromOldParent(t *testing.T) {
	r := newRelationships()
	oldParent := newEntity(0, 0)
	newParent := newEntity(1, 0)
	child := newEntity(2, 0)

	r.SetParent(child, oldParent)
	r.SetParent(child, newParent)

	if len(r.GetChildren(oldParent)) != 0 {
		t.Fatal("old parent must lose the child on reparent")
	}
	children := r.GetChildren(newParent)
	if len(children) != 1 || children[0] != child {
		t.Fatal("new parent must gain the child on reparent")
	}
}

func TestGetDescendantsAndAncestors(t *testing.T) {
	r := newRelationships()
	root := newEntity(0, 0)
	mid := newEntity(1, 0)
	leaf := newEntity(2, 0)

	r.SetParent(mid, root)
	r.SetParent(leaf, mid)

	descendants := r.GetDescendants(root)
	if len(descendants) != 2 {
		t.Fatalf("GetDescendants(root) = %v, want 2 entries", descendants)
	}

	ancestors := r.GetAncestors(leaf)
	if len(ancestors) != 2 || ancestors[0] != mid || ancestors[1] != root {
		t.Fatalf("GetAncestors(leaf) = %v, want [mid, root]", ancestors)
	}

	if !r.IsAncestor(root, leaf) {
		t.Fatal("root must be recognized as an ancestor of leaf")
	}
	if r.IsAncestor(leaf, root) {
		t.Fatal("leaf must not be an ancestor of root")
	}
	if r.Depth(leaf) != 2 {
		t.Fatalf("Depth(leaf) = %d, want 2", r.Depth(leaf))
	}
}

func TestRemoveEntityOrphansChildren(t *testing.T) {
	r := newRelationships()
	root := newEntity(0, 0)
	child := newEntity(1, 0)
	grandchild := newEntity(2, 0)

	r.SetParent(child, root)
	r.SetParent(grandchild, child)

	r.RemoveEntity(child)

	if _, ok := r.GetParent(grandchild); ok {
		t.Fatal("destroying a middle node must orphan its children rather than reattach them")
	}
	if len(r.GetChildren(root)) != 0 {
		t.Fatal("root must lose child once child is destroyed")
	}
}
