package components

import (
	"errors"
	"math"
)

// PhysicsComponent holds the simulation parameters a movement system reads
// and writes every frame.
type PhysicsComponent struct {
	Velocity     Vector2
	Acceleration Vector2
	Mass         float64
	Friction     float64
	Gravity      bool
	IsStatic     bool
	MaxSpeed     float64
}

// NewPhysicsComponent returns a physics body with sane defaults.
func NewPhysicsComponent() PhysicsComponent {
	return PhysicsComponent{
		Mass:     1.0,
		MaxSpeed: 10000.0,
	}
}

// ApplyForce sets acceleration from F = ma. A no-op on static or massless
// bodies.
func (p *PhysicsComponent) ApplyForce(force Vector2) {
	if p.IsStatic || p.Mass <= 0 {
		return
	}
	p.Acceleration.X = force.X / p.Mass
	p.Acceleration.Y = force.Y / p.Mass
}

// UpdateVelocity integrates acceleration into velocity over deltaTime.
func (p *PhysicsComponent) UpdateVelocity(deltaTime float64) {
	if p.IsStatic {
		return
	}
	p.Velocity.X += p.Acceleration.X * deltaTime
	p.Velocity.Y += p.Acceleration.Y * deltaTime
}

// ApplyFriction damps velocity by a linear friction model.
func (p *PhysicsComponent) ApplyFriction(deltaTime float64) {
	if p.IsStatic || p.Friction <= 0 {
		return
	}
	factor := 1.0 - (p.Friction * deltaTime)
	if factor < 0 {
		factor = 0
	}
	p.Velocity.X *= factor
	p.Velocity.Y *= factor
}

// ApplySpeedLimit clamps velocity magnitude to MaxSpeed.
func (p *PhysicsComponent) ApplySpeedLimit() {
	if p.IsStatic || math.IsInf(p.MaxSpeed, 1) {
		return
	}
	speed := math.Sqrt(p.Velocity.X*p.Velocity.X + p.Velocity.Y*p.Velocity.Y)
	if speed > p.MaxSpeed && speed > 0 {
		scale := p.MaxSpeed / speed
		p.Velocity.X *= scale
		p.Velocity.Y *= scale
	}
}

// ApplyGravity adds a gravitational force directly into acceleration,
// bypassing mass (gravity applies uniformly regardless of mass).
func (p *PhysicsComponent) ApplyGravity(gravityForce Vector2) {
	if p.IsStatic || !p.Gravity {
		return
	}
	p.Acceleration.X += gravityForce.X
	p.Acceleration.Y += gravityForce.Y
}

// Validate reports whether the component's numeric fields are sane.
func (p PhysicsComponent) Validate() error {
	if p.Mass < 0 {
		return errors.New("mass cannot be negative")
	}
	if p.Friction < 0 {
		return errors.New("friction cannot be negative")
	}
	if p.MaxSpeed < 0 {
		return errors.New("max speed cannot be negative")
	}
	return nil
}
