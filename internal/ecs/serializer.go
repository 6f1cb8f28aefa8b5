package ecs

import (
	"fmt"
	"reflect"
)

// ComponentSerializer is the external hook a client registers per
// component type to make that type participate in save/load. The core
// deliberately does not pick a wire format (spec.md §6 leaves that to the
// collaborator); this is the seam a client plugs a format into.
type ComponentSerializer interface {
	// Encode returns a serialized representation of the component value
	// owned by e.
	Encode(r *Registry, e Entity) ([]byte, error)
	// Decode attaches a component built from data to e.
	Decode(r *Registry, e Entity, data []byte) error
}

// RegisterSerializer associates a ComponentSerializer with component type
// T. Registering again for the same T replaces the previous serializer.
func RegisterSerializer[T any](r *Registry, s ComponentSerializer) {
	r.serializersMu.Lock()
	defer r.serializersMu.Unlock()
	r.serializers[componentType[T]()] = s
}

// EntitySnapshot is one entity's worth of serialized component data, keyed
// by the component type's reflect.Type name.
type EntitySnapshot struct {
	Components map[string][]byte
}

// SaveAll walks every live entity and every component type with a
// registered serializer, producing one EntitySnapshot per entity that owns
// at least one serializable component. Entities with no serializable
// components are omitted.
func SaveAll(r *Registry) (map[Entity]EntitySnapshot, error) {
	r.serializersMu.RLock()
	serializers := make(map[reflect.Type]ComponentSerializer, len(r.serializers))
	for t, s := range r.serializers {
		serializers[t] = s
	}
	r.serializersMu.RUnlock()

	out := make(map[Entity]EntitySnapshot)
	var outerErr error
	r.Entities(func(e Entity) {
		if outerErr != nil {
			return
		}
		r.componentsMu.Lock()
		owned := r.entityComponents[e.Index()]
		var ownedTypes []reflect.Type
		for t := range owned {
			ownedTypes = append(ownedTypes, t)
		}
		r.componentsMu.Unlock()

		snap := EntitySnapshot{Components: make(map[string][]byte)}
		for _, t := range ownedTypes {
			s, ok := serializers[t]
			if !ok {
				continue
			}
			data, err := s.Encode(r, e)
			if err != nil {
				outerErr = fmt.Errorf("encode %s for %s: %w", t, e, err)
				return
			}
			snap.Components[t.String()] = data
		}
		if len(snap.Components) > 0 {
			out[e] = snap
		}
	})
	if outerErr != nil {
		return nil, outerErr
	}
	return out, nil
}

// LoadAll spawns one fresh entity per snapshot and decodes each of its
// serialized components through the matching registered serializer,
// looked up by type name. A component whose name has no registered
// serializer is silently skipped.
func LoadAll(r *Registry, snapshots map[Entity]EntitySnapshot) (map[Entity]Entity, error) {
	r.serializersMu.RLock()
	byName := make(map[string]ComponentSerializer, len(r.serializers))
	for t, s := range r.serializers {
		byName[t.String()] = s
	}
	r.serializersMu.RUnlock()

	remap := make(map[Entity]Entity, len(snapshots))
	for old, snap := range snapshots {
		e := r.Spawn()
		remap[old] = e
		for name, data := range snap.Components {
			s, ok := byName[name]
			if !ok {
				continue
			}
			if err := s.Decode(r, e, data); err != nil {
				return remap, fmt.Errorf("decode %s for %s: %w", name, e, err)
			}
		}
	}
	return remap, nil
}
