package components

import "testing"

func TestSpriteComponentDefaults(t *testing.T) {
	s := NewSpriteComponent()
	if !s.Visible {
		t.Fatal("sprite must default to visible")
	}
	if s.Color != (Color{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("Color = %v, want opaque white", s.Color)
	}
}

func TestSpriteComponentSetTexture(t *testing.T) {
	s := NewSpriteComponent()
	rect := AABB{Min: Vector2{X: 0, Y: 0}, Max: Vector2{X: 32, Y: 32}}
	s.SetTexture("player.png", rect)

	if s.TextureID != "player.png" {
		t.Fatalf("TextureID = %q, want player.png", s.TextureID)
	}
	if s.SourceRect != rect {
		t.Fatalf("SourceRect = %v, want %v", s.SourceRect, rect)
	}
}

func TestSpriteComponentValidateRejectsInvertedRect(t *testing.T) {
	s := NewSpriteComponent()
	s.SourceRect = AABB{Min: Vector2{X: 10, Y: 10}, Max: Vector2{X: 0, Y: 0}}
	if err := s.Validate(); err == nil {
		t.Fatal("expected an error for an inverted source rectangle")
	}
}

func TestSpriteComponentValidateAcceptsZeroRect(t *testing.T) {
	s := NewSpriteComponent()
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
