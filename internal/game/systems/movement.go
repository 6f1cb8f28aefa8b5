package systems

import (
	"math"

	"ironvolley/internal/ecs"
	"ironvolley/internal/game/components"
)

// MovementSystem integrates velocity into position for every entity that
// owns both a TransformComponent and a PhysicsComponent, then clamps the
// result to an optional boundary.
type MovementSystem struct {
	MaxSpeed float64
	Boundary *Rectangle
}

// NewMovementSystem returns a movement system with no speed limit or
// boundary.
func NewMovementSystem() *MovementSystem {
	return &MovementSystem{MaxSpeed: -1}
}

// System integrates one frame of movement. Depends on "physics" having
// already applied forces for the frame.
func (ms *MovementSystem) System(r *ecs.Registry) error {
	dt := deltaTime(r)
	view := ecs.NewView2[components.TransformComponent, components.PhysicsComponent](r)
	view.Each(func(e ecs.Entity, t *components.TransformComponent, p *components.PhysicsComponent) {
		p.UpdateVelocity(dt)
		ms.limitSpeed(&p.Velocity)

		t.Position.X += p.Velocity.X * dt
		t.Position.Y += p.Velocity.Y * dt

		ms.clampToBoundary(&t.Position)
	})
	return nil
}

// SetBoundary constrains entity positions to the given rectangle.
func (ms *MovementSystem) SetBoundary(x, y, width, height float64) {
	ms.Boundary = &Rectangle{X: x, Y: y, Width: width, Height: height}
}

func (ms *MovementSystem) limitSpeed(velocity *components.Vector2) {
	if ms.MaxSpeed <= 0 {
		return
	}
	speed := math.Sqrt(velocity.X*velocity.X + velocity.Y*velocity.Y)
	if speed > ms.MaxSpeed {
		scale := ms.MaxSpeed / speed
		velocity.X *= scale
		velocity.Y *= scale
	}
}

func (ms *MovementSystem) clampToBoundary(position *components.Vector2) {
	if ms.Boundary == nil {
		return
	}
	if position.X < ms.Boundary.X {
		position.X = ms.Boundary.X
	} else if position.X > ms.Boundary.X+ms.Boundary.Width {
		position.X = ms.Boundary.X + ms.Boundary.Width
	}
	if position.Y < ms.Boundary.Y {
		position.Y = ms.Boundary.Y
	} else if position.Y > ms.Boundary.Y+ms.Boundary.Height {
		position.Y = ms.Boundary.Y + ms.Boundary.Height
	}
}
