package systems

import (
	"math"
	"sync"

	"ironvolley/internal/ecs"
	"ironvolley/internal/game/components"
)

// AudioEngine abstracts actual sound playback so AudioSystem can be tested
// and driven without a real audio backend.
type AudioEngine interface {
	PlaySound(soundID string, volume, pitch float64, loop bool) error
	StopSound(soundID string) error
	SetListenerPosition(position components.Vector2) error
}

// AudioSystem drives every entity's AudioComponent each frame: starting and
// stopping playback, and recomputing volume from listener distance for 3D
// sounds.
type AudioSystem struct {
	Engine           AudioEngine
	ListenerPosition components.Vector2
	MasterVolume     float64

	mu      sync.Mutex
	playing map[ecs.Entity]struct{}
}

// NewAudioSystem returns an audio system at full master volume with no
// engine attached (System becomes a no-op bookkeeping pass until one is
// set).
func NewAudioSystem() *AudioSystem {
	return &AudioSystem{
		MasterVolume: 1.0,
		playing:      make(map[ecs.Entity]struct{}),
	}
}

// SetListener moves the audio listener, typically tracked to the player
// entity's transform each frame by the caller.
func (as *AudioSystem) SetListener(position components.Vector2) {
	as.ListenerPosition = position
	if as.Engine != nil {
		as.Engine.SetListenerPosition(position)
	}
}

// System starts newly-playing sounds, stops ones that have finished, and
// recomputes 3D volume for entities that also own a TransformComponent.
func (as *AudioSystem) System(r *ecs.Registry) error {
	view := ecs.NewView1[components.AudioComponent](r)
	view.Each(func(e ecs.Entity, audio *components.AudioComponent) {
		if !audio.IsActive() {
			as.stop(e, audio)
			return
		}

		volume := audio.Volume * as.MasterVolume
		if audio.Is3D {
			if transform, err := ecs.Get[components.TransformComponent](r, e); err == nil {
				volume = as.calculate3DVolume(transform.Position, audio.Volume, audio.MaxDistance) * as.MasterVolume
			}
		}

		as.mu.Lock()
		_, started := as.playing[e]
		as.mu.Unlock()

		if started {
			return
		}
		if as.Engine != nil {
			if err := as.Engine.PlaySound(audio.SoundID, volume, audio.Pitch, audio.IsLoop); err != nil {
				return
			}
		}
		as.mu.Lock()
		as.playing[e] = struct{}{}
		as.mu.Unlock()
	})
	return nil
}

func (as *AudioSystem) stop(e ecs.Entity, audio *components.AudioComponent) {
	as.mu.Lock()
	_, started := as.playing[e]
	delete(as.playing, e)
	as.mu.Unlock()

	if !started || as.Engine == nil {
		return
	}
	as.Engine.StopSound(audio.SoundID)
}

// calculate3DVolume computes volume based on distance from the listener,
// using a linear falloff out to maxDistance.
func (as *AudioSystem) calculate3DVolume(audioPos components.Vector2, baseVolume, maxDistance float64) float64 {
	dist := math.Sqrt(
		math.Pow(audioPos.X-as.ListenerPosition.X, 2) +
			math.Pow(audioPos.Y-as.ListenerPosition.Y, 2),
	)
	if maxDistance <= 0 || dist >= maxDistance {
		return 0
	}
	return baseVolume * (1.0 - dist/maxDistance)
}
