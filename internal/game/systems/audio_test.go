package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironvolley/internal/ecs"
	"ironvolley/internal/game/components"
)

type fakeAudioEngine struct {
	played  []string
	stopped []string
}

func (f *fakeAudioEngine) PlaySound(soundID string, volume, pitch float64, loop bool) error {
	f.played = append(f.played, soundID)
	return nil
}

func (f *fakeAudioEngine) StopSound(soundID string) error {
	f.stopped = append(f.stopped, soundID)
	return nil
}

func (f *fakeAudioEngine) SetListenerPosition(position components.Vector2) error { return nil }

func TestAudioSystemStartsActiveSounds(t *testing.T) {
	r := newTestRegistry(0)
	e := r.Spawn()
	audio := components.NewAudioComponent("explosion")
	audio.Play()
	ecs.Emplace(r, e, audio)

	engine := &fakeAudioEngine{}
	as := NewAudioSystem()
	as.Engine = engine

	require.NoError(t, as.System(r))
	assert.Equal(t, []string{"explosion"}, engine.played)
}

func TestAudioSystemDoesNotRestartAlreadyPlayingSound(t *testing.T) {
	r := newTestRegistry(0)
	e := r.Spawn()
	audio := components.NewAudioComponent("loop")
	audio.Play()
	ecs.Emplace(r, e, audio)

	engine := &fakeAudioEngine{}
	as := NewAudioSystem()
	as.Engine = engine

	require.NoError(t, as.System(r))
	require.NoError(t, as.System(r))
	assert.Len(t, engine.played, 1)
}

func TestAudioSystemStopsInactiveSounds(t *testing.T) {
	r := newTestRegistry(0)
	e := r.Spawn()
	audio := components.NewAudioComponent("ambient")
	audio.Play()
	ecs.Emplace(r, e, audio)

	engine := &fakeAudioEngine{}
	as := NewAudioSystem()
	as.Engine = engine
	require.NoError(t, as.System(r))

	ecs.Patch[components.AudioComponent](r, e, func(a *components.AudioComponent) { a.Stop() })
	require.NoError(t, as.System(r))

	assert.Equal(t, []string{"ambient"}, engine.stopped)
}

func TestAudioSystemAttenuatesByDistance(t *testing.T) {
	r := newTestRegistry(0)
	e := r.Spawn()

	transform := components.NewTransformComponent()
	transform.Position = components.Vector2{X: 50, Y: 0}
	ecs.Emplace(r, e, transform)

	audio := components.NewAudioComponent("footstep")
	audio.Play()
	audio.Set3D(true, 100, 1, 1)
	ecs.Emplace(r, e, audio)

	as := NewAudioSystem()
	volume := as.calculate3DVolume(transform.Position, audio.Volume, audio.MaxDistance)
	assert.InDelta(t, 0.5, volume, 1e-9)
}
