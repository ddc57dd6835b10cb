package sim

// Flags is process-wide state that survives session resets. It is created
// once by the owner of the session and passed in with WithFlags.
type Flags struct {
	// SoundOn gates every audio signal. Toggled by the user.
	SoundOn bool
	// GameFinish is true between a session end and the next reset.
	GameFinish bool
	// AliveHouses is the alive target count, refreshed on reset and end.
	AliveHouses int
}

// NewFlags returns the process-start flags: sound on, no finished session.
func NewFlags() *Flags {
	return &Flags{SoundOn: true}
}

// ToggleSound flips SoundOn and returns the new value.
func (f *Flags) ToggleSound() bool {
	f.SoundOn = !f.SoundOn
	return f.SoundOn
}
