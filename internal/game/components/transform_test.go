package components

import (
	"math"
	"testing"
)

func TestNewTransformComponentIsIdentity(t *testing.T) {
	tr := NewTransformComponent()
	if tr.Position != (Vector2{}) {
		t.Fatal("expected zero position")
	}
	if tr.Scale != (Vector2{X: 1, Y: 1}) {
		t.Fatal("expected unit scale")
	}
	if tr.Rotation != 0 {
		t.Fatal("expected zero rotation")
	}
}

func TestTransformMatrixIdentity(t *testing.T) {
	tr := NewTransformComponent()
	m := tr.Matrix()
	want := TransformMatrix{1, 0, 0, 0, 1, 0, 0, 0, 1}
	if m != want {
		t.Fatalf("Matrix() = %v, want %v", m, want)
	}
}

func TestTransformMatrixTranslation(t *testing.T) {
	tr := NewTransformComponent()
	tr.Position = Vector2{X: 5, Y: -3}
	m := tr.Matrix()
	if m[6] != 5 || m[7] != -3 {
		t.Fatalf("translation row = (%v, %v), want (5, -3)", m[6], m[7])
	}
}

func TestComposeTranslatesChildIntoParentSpace(t *testing.T) {
	parent := NewTransformComponent()
	parent.Position = Vector2{X: 10, Y: 0}

	child := NewTransformComponent()
	child.Position = Vector2{X: 0, Y: 5}

	world := Compose(parent, child)
	if math.Abs(world.Position.X-10) > 1e-9 || math.Abs(world.Position.Y-5) > 1e-9 {
		t.Fatalf("world position = %v, want (10, 5)", world.Position)
	}
}

func TestComposeAccumulatesRotationAndScale(t *testing.T) {
	parent := NewTransformComponent()
	parent.Rotation = math.Pi / 2
	parent.Scale = Vector2{X: 2, Y: 2}

	child := NewTransformComponent()
	child.Rotation = math.Pi / 4
	child.Scale = Vector2{X: 3, Y: 3}

	world := Compose(parent, child)
	if math.Abs(world.Rotation-(math.Pi/2+math.Pi/4)) > 1e-9 {
		t.Fatalf("world rotation = %v, want 3*pi/4", world.Rotation)
	}
	if math.Abs(world.Scale.X-6) > 1e-9 {
		t.Fatalf("world scale.X = %v, want 6", world.Scale.X)
	}
}

func TestComposeRotatesChildOffsetByParentRotation(t *testing.T) {
	parent := NewTransformComponent()
	parent.Rotation = math.Pi / 2

	child := NewTransformComponent()
	child.Position = Vector2{X: 1, Y: 0}

	world := Compose(parent, child)
	if math.Abs(world.Position.X) > 1e-9 || math.Abs(world.Position.Y-1) > 1e-9 {
		t.Fatalf("world position = %v, want approximately (0, 1)", world.Position)
	}
}
