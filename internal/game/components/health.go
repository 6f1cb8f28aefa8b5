package components

import (
	"errors"
	"time"
)

// HealthComponent tracks an entity's hit points, shield, and active status
// effects.
type HealthComponent struct {
	CurrentHealth    int
	MaxHealth        int
	Shield           int
	IsInvincible     bool
	LastDamageTime   time.Time
	RegenerationRate float64
	StatusEffects    []StatusEffect
}

// NewHealthComponent returns a full-health component with the given cap.
func NewHealthComponent(maxHealth int) HealthComponent {
	return HealthComponent{
		CurrentHealth: maxHealth,
		MaxHealth:     maxHealth,
	}
}

// TakeDamage applies damage (shield absorbs first) and returns the amount
// actually subtracted from health.
func (h *HealthComponent) TakeDamage(damage int) int {
	if h.IsInvincible || damage <= 0 {
		return 0
	}

	remaining := damage
	if h.Shield > 0 {
		if h.Shield >= remaining {
			h.Shield -= remaining
			return 0
		}
		remaining -= h.Shield
		h.Shield = 0
	}

	if h.CurrentHealth < remaining {
		remaining = h.CurrentHealth
	}
	h.CurrentHealth -= remaining
	h.LastDamageTime = time.Now()
	return remaining
}

// Heal restores health up to MaxHealth and returns the amount restored.
func (h *HealthComponent) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if h.CurrentHealth+amount > h.MaxHealth {
		actual = h.MaxHealth - h.CurrentHealth
	}
	h.CurrentHealth += actual
	return actual
}

// UpdateRegeneration applies passive regen over deltaTime.
func (h *HealthComponent) UpdateRegeneration(deltaTime float64) {
	if h.RegenerationRate <= 0 || h.CurrentHealth >= h.MaxHealth {
		return
	}
	next := float64(h.CurrentHealth) + h.RegenerationRate*deltaTime
	if next > float64(h.MaxHealth) {
		next = float64(h.MaxHealth)
	}
	h.CurrentHealth = int(next)
}

// IsDead reports whether current health has reached zero.
func (h HealthComponent) IsDead() bool { return h.CurrentHealth <= 0 }

// AddStatusEffect adds effect, replacing any existing effect of the same
// type.
func (h *HealthComponent) AddStatusEffect(effect StatusEffect) {
	for i, existing := range h.StatusEffects {
		if existing.Type == effect.Type {
			h.StatusEffects[i] = effect
			return
		}
	}
	effect.StartTime = time.Now()
	h.StatusEffects = append(h.StatusEffects, effect)
}

// RemoveStatusEffect removes the first effect of the given type, if any.
func (h *HealthComponent) RemoveStatusEffect(effectType StatusType) {
	for i, effect := range h.StatusEffects {
		if effect.Type == effectType {
			h.StatusEffects = append(h.StatusEffects[:i], h.StatusEffects[i+1:]...)
			return
		}
	}
}

// UpdateStatusEffects ticks every active effect's duration down and drops
// the ones that have expired.
func (h *HealthComponent) UpdateStatusEffects(deltaTime float64) {
	remaining := h.StatusEffects[:0]
	for _, effect := range h.StatusEffects {
		effect.Duration -= deltaTime
		if effect.Duration > 0 {
			remaining = append(remaining, effect)
		}
	}
	h.StatusEffects = remaining
}

// HasStatusEffect reports whether effectType is currently active.
func (h HealthComponent) HasStatusEffect(effectType StatusType) bool {
	for _, effect := range h.StatusEffects {
		if effect.Type == effectType {
			return true
		}
	}
	return false
}

// Validate reports whether the component's numeric fields are sane.
func (h HealthComponent) Validate() error {
	if h.CurrentHealth < 0 {
		return errors.New("current health cannot be negative")
	}
	if h.MaxHealth <= 0 {
		return errors.New("max health must be positive")
	}
	if h.Shield < 0 {
		return errors.New("shield cannot be negative")
	}
	if h.RegenerationRate < 0 {
		return errors.New("regeneration rate cannot be negative")
	}
	return nil
}
