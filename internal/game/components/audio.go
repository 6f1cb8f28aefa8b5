package components

import "errors"

// AudioComponent drives 3D positional audio playback for an entity:
// distance-based attenuation, looping, and a fade-in ramp. FadeOut is
// stored but not applied by EffectiveVolume or any system.
type AudioComponent struct {
	SoundID string

	Volume    float64
	Pitch     float64
	IsPlaying bool
	IsLoop    bool
	IsPaused  bool

	Is3D        bool
	MaxDistance float64
	MinDistance float64
	Rolloff     float64

	PlaybackPosition float64
	FadeIn           float64
	FadeOut          float64

	Priority   int
	AudioGroup string
}

// NewAudioComponent returns a full-volume, non-looping audio component for
// soundID.
func NewAudioComponent(soundID string) AudioComponent {
	return AudioComponent{
		SoundID:     soundID,
		Volume:      1.0,
		Pitch:       1.0,
		MaxDistance: 100.0,
		MinDistance: 1.0,
		Rolloff:     1.0,
		AudioGroup:  "sfx",
	}
}

// Play starts (or resumes from stop) playback.
func (ac *AudioComponent) Play() {
	ac.IsPlaying = true
	ac.IsPaused = false
}

// Stop halts playback and resets position.
func (ac *AudioComponent) Stop() {
	ac.IsPlaying = false
	ac.IsPaused = false
	ac.PlaybackPosition = 0
}

// Pause suspends playback without resetting position.
func (ac *AudioComponent) Pause() { ac.IsPaused = true }

// Resume continues playback from a paused state.
func (ac *AudioComponent) Resume() { ac.IsPaused = false }

// SetVolume clamps and sets the playback volume.
func (ac *AudioComponent) SetVolume(volume float64) {
	switch {
	case volume < 0.0:
		ac.Volume = 0.0
	case volume > 1.0:
		ac.Volume = 1.0
	default:
		ac.Volume = volume
	}
}

// SetPitch sets the playback pitch; non-positive values are rejected.
func (ac *AudioComponent) SetPitch(pitch float64) {
	if pitch > 0.0 {
		ac.Pitch = pitch
	}
}

// Set3D enables or disables distance-based attenuation.
func (ac *AudioComponent) Set3D(enable bool, maxDistance, minDistance, rolloff float64) {
	ac.Is3D = enable
	if enable {
		ac.MaxDistance = maxDistance
		ac.MinDistance = minDistance
		ac.Rolloff = rolloff
	}
}

// IsActive reports whether the sound is currently audible.
func (ac AudioComponent) IsActive() bool { return ac.IsPlaying && !ac.IsPaused }

// EffectiveVolume returns Volume adjusted for the fade-in ramp at
// currentTime seconds into playback.
func (ac AudioComponent) EffectiveVolume(currentTime float64) float64 {
	volume := ac.Volume
	if ac.FadeIn > 0 && currentTime < ac.FadeIn {
		volume *= currentTime / ac.FadeIn
	}
	return volume
}

// Validate reports whether the component's fields are within legal ranges.
func (ac AudioComponent) Validate() error {
	if ac.SoundID == "" {
		return errors.New("AudioComponent: SoundID cannot be empty")
	}
	if ac.Volume < 0.0 || ac.Volume > 1.0 {
		return errors.New("AudioComponent: Volume must be between 0.0 and 1.0")
	}
	if ac.Pitch <= 0.0 {
		return errors.New("AudioComponent: Pitch must be greater than 0.0")
	}
	if ac.MaxDistance <= 0.0 {
		return errors.New("AudioComponent: MaxDistance must be greater than 0.0")
	}
	if ac.MinDistance < 0.0 || ac.MinDistance > ac.MaxDistance {
		return errors.New("AudioComponent: MinDistance must be between 0.0 and MaxDistance")
	}
	return nil
}
