// Package ecs provides the core Entity Component System runtime for ironvolley.
package ecs

import (
	"fmt"
	"reflect"
)

// Kind is the stable error taxonomy for the ECS core (see spec §7).
type Kind string

const (
	ErrDeadEntity        Kind = "DEAD_ENTITY"
	ErrMissingComponent  Kind = "MISSING_COMPONENT"
	ErrMissingSingleton  Kind = "MISSING_SINGLETON"
	ErrPrefabNotFound    Kind = "PREFAB_NOT_FOUND"
	ErrCycleDetected     Kind = "CYCLE_DETECTED"
	ErrUnknownDependency Kind = "UNKNOWN_DEPENDENCY"
	ErrDuplicateSystem   Kind = "DUPLICATE_SYSTEM"
	ErrRelationshipCycle Kind = "RELATIONSHIP_CYCLE"
)

// Error is the concrete error type returned by every ECS core operation that
// can fail. It carries enough context to let a caller branch on Kind without
// parsing a message string.
type Error struct {
	Kind      Kind
	Message   string
	Entity    Entity
	Component reflect.Type
	System    string
}

func (e *Error) Error() string {
	switch {
	case e.Entity != Null && e.Component != nil:
		return fmt.Sprintf("[%s] %s (entity=%s, component=%s)", e.Kind, e.Message, e.Entity, e.Component)
	case e.Entity != Null:
		return fmt.Sprintf("[%s] %s (entity=%s)", e.Kind, e.Message, e.Entity)
	case e.System != "":
		return fmt.Sprintf("[%s] %s (system=%s)", e.Kind, e.Message, e.System)
	default:
		return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	}
}

// Is lets errors.Is match on Kind alone, so callers can write
// errors.Is(err, &ecs.Error{Kind: ecs.ErrDeadEntity}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func deadEntityErr(e Entity) *Error {
	return &Error{Kind: ErrDeadEntity, Message: "entity is not alive", Entity: e}
}

func missingComponentErr(e Entity, t reflect.Type) *Error {
	return &Error{Kind: ErrMissingComponent, Message: "entity does not own this component", Entity: e, Component: t}
}

func missingSingletonErr(t reflect.Type) *Error {
	return &Error{Kind: ErrMissingSingleton, Message: "singleton not set", Entity: Null, Component: t}
}

func prefabNotFoundErr(name string) *Error {
	return &Error{Kind: ErrPrefabNotFound, Message: fmt.Sprintf("unknown prefab %q", name), Entity: Null}
}

func cycleDetectedErr() *Error {
	return &Error{Kind: ErrCycleDetected, Message: "system dependency graph has a cycle", Entity: Null}
}

func unknownDependencyErr(system, dep string) *Error {
	return &Error{Kind: ErrUnknownDependency, Message: fmt.Sprintf("dependency %q is not registered", dep), Entity: Null, System: system}
}

func duplicateSystemErr(name string) *Error {
	return &Error{Kind: ErrDuplicateSystem, Message: "system already registered", Entity: Null, System: name}
}
