package components

import "errors"

// SpriteComponent is the 2D rendering state for an entity.
type SpriteComponent struct {
	TextureID  string
	SourceRect AABB
	Color      Color
	ZOrder     int
	Visible    bool
	FlipX      bool
	FlipY      bool
}

// NewSpriteComponent returns a visible, untinted sprite with no texture
// bound yet.
func NewSpriteComponent() SpriteComponent {
	return SpriteComponent{
		Color:   Color{R: 255, G: 255, B: 255, A: 255},
		Visible: true,
	}
}

// SetTexture binds a texture and its source rectangle within the atlas.
func (s *SpriteComponent) SetTexture(textureID string, sourceRect AABB) {
	s.TextureID = textureID
	s.SourceRect = sourceRect
}

// Validate reports whether the sprite's source rectangle is well-formed.
func (s SpriteComponent) Validate() error {
	if s.SourceRect.Max.X < s.SourceRect.Min.X || s.SourceRect.Max.Y < s.SourceRect.Min.Y {
		return errors.New("invalid source rectangle: max must be >= min")
	}
	return nil
}
