package systems

import (
	"sync"

	"ironvolley/internal/ecs"
	"ironvolley/internal/game/components"
)

// PhysicsMaterial defines the surface properties of a static collider.
type PhysicsMaterial struct {
	Friction    float64
	Restitution float64
	Density     float64
}

// Collider is a static collision shape that moving bodies are resolved
// against — walls, floors, level geometry.
type Collider struct {
	Bounds    Rectangle
	IsTrigger bool
	Material  PhysicsMaterial
}

// Collision records one contact between a moving entity and a static
// collider, detected during the most recent System run.
type Collision struct {
	Entity ecs.Entity
	Normal components.Vector2
	Depth  float64
}

// PhysicsSystem applies gravity, friction, and static-collider resolution
// to every physics body, ahead of MovementSystem integrating the result
// into position.
type PhysicsSystem struct {
	Gravity         components.Vector2
	StaticColliders []Collider

	mu         sync.Mutex
	collisions []Collision
}

// NewPhysicsSystem returns a physics system with standard downward gravity.
func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		Gravity: components.Vector2{X: 0, Y: 980},
	}
}

// AddStaticCollider registers a static collision shape with default
// material properties.
func (ps *PhysicsSystem) AddStaticCollider(bounds Rectangle) {
	ps.StaticColliders = append(ps.StaticColliders, Collider{
		Bounds:   bounds,
		Material: PhysicsMaterial{Friction: 0.5, Restitution: 0.3, Density: 1.0},
	})
}

// Collisions returns the collisions detected during the last System run.
func (ps *PhysicsSystem) Collisions() []Collision {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return append([]Collision(nil), ps.collisions...)
}

// System applies forces and resolves static collisions for one frame.
func (ps *PhysicsSystem) System(r *ecs.Registry) error {
	dt := deltaTime(r)

	var frame []Collision
	view := ecs.NewView2[components.TransformComponent, components.PhysicsComponent](r)
	view.Each(func(e ecs.Entity, t *components.TransformComponent, p *components.PhysicsComponent) {
		p.ApplyGravity(ps.Gravity)
		p.ApplyFriction(dt)
		p.ApplySpeedLimit()

		for _, collider := range ps.StaticColliders {
			if collider.IsTrigger {
				continue
			}
			if !collider.Bounds.Contains(t.Position.X, t.Position.Y) {
				continue
			}
			normal, depth := resolveAgainstCollider(t.Position, collider.Bounds)
			t.Position.X += normal.X * depth
			t.Position.Y += normal.Y * depth
			p.Velocity.X *= collider.Material.Friction
			p.Velocity.Y *= collider.Material.Friction
			frame = append(frame, Collision{Entity: e, Normal: normal, Depth: depth})
		}
	})

	ps.mu.Lock()
	ps.collisions = frame
	ps.mu.Unlock()
	return nil
}

// resolveAgainstCollider returns the minimum-translation normal and
// penetration depth needed to push position out of bounds.
func resolveAgainstCollider(position components.Vector2, bounds Rectangle) (components.Vector2, float64) {
	left := position.X - bounds.X
	right := (bounds.X + bounds.Width) - position.X
	top := position.Y - bounds.Y
	bottom := (bounds.Y + bounds.Height) - position.Y

	depth := left
	normal := components.Vector2{X: -1}
	if right < depth {
		depth, normal = right, components.Vector2{X: 1}
	}
	if top < depth {
		depth, normal = top, components.Vector2{Y: -1}
	}
	if bottom < depth {
		depth, normal = bottom, components.Vector2{Y: 1}
	}
	return normal, depth
}
