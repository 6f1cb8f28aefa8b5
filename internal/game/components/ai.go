package components

import (
	"errors"
	"math"
	"time"

	"ironvolley/internal/ecs"
)

// AIComponent drives a single NPC's behavior state machine.
type AIComponent struct {
	State           AIState
	Target          ecs.Entity
	PatrolPoints    []Vector2
	DetectionRadius float64
	AttackRange     float64
	Speed           float64
	Behavior        AIBehavior
	LastStateChange time.Time

	currentPatrolIndex int
	stateHistory       []AIState
}

// NewAIComponent returns an idle AI component with no target.
func NewAIComponent() AIComponent {
	return AIComponent{
		State:           AIStateIdle,
		Target:          ecs.Null,
		DetectionRadius: 50.0,
		AttackRange:     10.0,
		Speed:           100.0,
		Behavior:        AIBehaviorNeutral,
	}
}

// SetState transitions to state, recording the change if it's new.
func (a *AIComponent) SetState(state AIState) {
	if a.State == state {
		return
	}
	a.State = state
	a.stateHistory = append(a.stateHistory, state)
	a.LastStateChange = time.Now()
}

// SetTarget sets the entity this AI is tracking.
func (a *AIComponent) SetTarget(target ecs.Entity) { a.Target = target }

// ClearTarget drops the current target.
func (a *AIComponent) ClearTarget() { a.Target = ecs.Null }

// SetPatrolPoints replaces the patrol route and resets progress along it.
func (a *AIComponent) SetPatrolPoints(points []Vector2) {
	a.PatrolPoints = append([]Vector2(nil), points...)
	a.currentPatrolIndex = 0
}

// GetNextPatrolPoint returns the next patrol waypoint and advances the
// route, wrapping back to the start.
func (a *AIComponent) GetNextPatrolPoint() Vector2 {
	if len(a.PatrolPoints) == 0 {
		return Vector2{}
	}
	point := a.PatrolPoints[a.currentPatrolIndex]
	a.currentPatrolIndex = (a.currentPatrolIndex + 1) % len(a.PatrolPoints)
	return point
}

// SetBehavior changes how this AI reacts to a detected target.
func (a *AIComponent) SetBehavior(behavior AIBehavior) { a.Behavior = behavior }

// IsInDetectionRange reports whether targetPosition is within detection
// radius of aiPosition.
func (a AIComponent) IsInDetectionRange(aiPosition, targetPosition Vector2) bool {
	return distance(aiPosition, targetPosition) <= a.DetectionRadius
}

// IsInAttackRange reports whether targetPosition is within attack range of
// aiPosition.
func (a AIComponent) IsInAttackRange(aiPosition, targetPosition Vector2) bool {
	return distance(aiPosition, targetPosition) <= a.AttackRange
}

// StateHistory returns a copy of every state this AI has transitioned
// through.
func (a AIComponent) StateHistory() []AIState {
	return append([]AIState(nil), a.stateHistory...)
}

func distance(a, b Vector2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Validate reports whether the component's numeric fields are sane.
func (a AIComponent) Validate() error {
	if a.DetectionRadius < 0 {
		return errors.New("detection radius cannot be negative")
	}
	if a.AttackRange < 0 {
		return errors.New("attack range cannot be negative")
	}
	if a.Speed < 0 {
		return errors.New("speed cannot be negative")
	}
	return nil
}
