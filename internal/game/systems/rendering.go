package systems

import (
	"sort"
	"sync"

	"ironvolley/internal/ecs"
	"ironvolley/internal/game/components"
)

// Camera is the rendering viewport's position, zoom, and rotation.
type Camera struct {
	Position components.Vector2
	Zoom     float64
	Rotation float64
}

// RenderableEntity is one entity's resolved draw data for a single frame,
// produced by RenderingSystem.System and consumed by the game's Draw call.
type RenderableEntity struct {
	Entity    ecs.Entity
	Transform components.TransformComponent
	Sprite    components.SpriteComponent
	ScreenPos components.Vector2
	ZOrder    int
}

// RenderingSystem collects every visible, transformed, sprited entity each
// frame, culls it against the viewport, and sorts it back-to-front by
// Z-order for the renderer to draw in a single pass.
type RenderingSystem struct {
	Viewport *Rectangle
	Camera   Camera

	mu      sync.Mutex
	visible []RenderableEntity
}

// NewRenderingSystem returns a rendering system with an unzoomed,
// unrotated camera at the origin.
func NewRenderingSystem() *RenderingSystem {
	return &RenderingSystem{Camera: Camera{Zoom: 1.0}}
}

// SetViewport constrains culling to the given rectangle. A nil viewport
// disables culling.
func (rs *RenderingSystem) SetViewport(x, y, width, height float64) {
	rs.Viewport = &Rectangle{X: x, Y: y, Width: width, Height: height}
}

// Visible returns the entities collected during the last System run, sorted
// by ascending Z-order.
func (rs *RenderingSystem) Visible() []RenderableEntity {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]RenderableEntity(nil), rs.visible...)
}

// System gathers every visible sprite this frame, depending on "movement"
// having already settled entity positions.
func (rs *RenderingSystem) System(r *ecs.Registry) error {
	var frame []RenderableEntity

	view := ecs.NewView2[components.TransformComponent, components.SpriteComponent](r)
	view.Each(func(e ecs.Entity, t *components.TransformComponent, s *components.SpriteComponent) {
		if !s.Visible {
			return
		}
		if !rs.isInViewport(t, s) {
			return
		}
		frame = append(frame, RenderableEntity{
			Entity:    e,
			Transform: *t,
			Sprite:    *s,
			ScreenPos: rs.transformToScreen(t.Position),
			ZOrder:    s.ZOrder,
		})
	})

	sort.Slice(frame, func(i, j int) bool { return frame[i].ZOrder < frame[j].ZOrder })

	rs.mu.Lock()
	rs.visible = frame
	rs.mu.Unlock()
	return nil
}

func (rs *RenderingSystem) isInViewport(t *components.TransformComponent, s *components.SpriteComponent) bool {
	if rs.Viewport == nil {
		return true
	}
	spriteWidth := s.SourceRect.Max.X - s.SourceRect.Min.X
	spriteHeight := s.SourceRect.Max.Y - s.SourceRect.Min.Y

	entity := Rectangle{X: t.Position.X, Y: t.Position.Y, Width: spriteWidth, Height: spriteHeight}
	return entity.Intersects(*rs.Viewport)
}

func (rs *RenderingSystem) transformToScreen(worldPos components.Vector2) components.Vector2 {
	return components.Vector2{
		X: (worldPos.X - rs.Camera.Position.X) * rs.Camera.Zoom,
		Y: (worldPos.Y - rs.Camera.Position.Y) * rs.Camera.Zoom,
	}
}
