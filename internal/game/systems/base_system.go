// Package systems provides the concrete per-frame game systems run by the
// scheduler: movement integration, physics, audio, and rendering. Each
// system is a plain struct holding its own configuration and a System
// method of type ecs.System, registered into an *ecs.Scheduler by name so
// ordering between them is expressed as dependency edges rather than
// priority numbers.
package systems

import "ironvolley/internal/ecs"

// DeltaTime is the per-frame timestep, published as a registry singleton by
// the game loop before Scheduler.Run executes each tick.
type DeltaTime float64

// deltaTime reads the current frame's timestep, defaulting to zero if the
// game loop hasn't published one yet (e.g. a system run in isolation by a
// test).
func deltaTime(r *ecs.Registry) float64 {
	dt, err := ecs.GetSingleton[DeltaTime](r)
	if err != nil {
		return 0
	}
	return float64(dt)
}

// Rectangle is an axis-aligned region used for movement bounds, static
// colliders, and the rendering viewport.
type Rectangle struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) falls within the rectangle.
func (rect Rectangle) Contains(x, y float64) bool {
	return x >= rect.X && x <= rect.X+rect.Width && y >= rect.Y && y <= rect.Y+rect.Height
}

// Intersects reports whether rect overlaps other.
func (rect Rectangle) Intersects(other Rectangle) bool {
	return !(rect.X+rect.Width < other.X ||
		other.X+other.Width < rect.X ||
		rect.Y+rect.Height < other.Y ||
		other.Y+other.Height < rect.Y)
}
