package components

import "math"

// TransformMatrix is a 3x3 2D affine transform in column-major order.
type TransformMatrix [9]float64

// TransformComponent is an entity's local position, rotation, and scale.
// It holds no parent or child links; hierarchy lives in the registry's
// relationship table, and Compose folds a parent transform into a child's.
// No system in this repo walks that table: systems.MovementSystem and the
// other systems read and write local positions only.
type TransformComponent struct {
	Position Vector2
	Rotation float64
	Scale    Vector2
}

// NewTransformComponent returns an identity transform.
func NewTransformComponent() TransformComponent {
	return TransformComponent{
		Position: Vector2{X: 0, Y: 0},
		Rotation: 0,
		Scale:    Vector2{X: 1, Y: 1},
	}
}

// Matrix returns the local transform as a 3x3 matrix.
func (t TransformComponent) Matrix() TransformMatrix {
	cos := math.Cos(t.Rotation)
	sin := math.Sin(t.Rotation)
	return TransformMatrix{
		t.Scale.X * cos, t.Scale.X * sin, 0,
		-t.Scale.Y * sin, t.Scale.Y * cos, 0,
		t.Position.X, t.Position.Y, 1,
	}
}

// Compose returns the transform obtained by applying child relative to
// parent — used to fold a chain of ancestor transforms into a single
// world-space transform.
func Compose(parent, child TransformComponent) TransformComponent {
	cos := math.Cos(parent.Rotation)
	sin := math.Sin(parent.Rotation)

	worldX := (child.Position.X*cos-child.Position.Y*sin)*parent.Scale.X + parent.Position.X
	worldY := (child.Position.X*sin+child.Position.Y*cos)*parent.Scale.Y + parent.Position.Y

	return TransformComponent{
		Position: Vector2{X: worldX, Y: worldY},
		Rotation: parent.Rotation + child.Rotation,
		Scale:    Vector2{X: parent.Scale.X * child.Scale.X, Y: parent.Scale.Y * child.Scale.Y},
	}
}
