package playback

// Transition describes how the backend should move between music states.
type Transition struct {
	// CrossfadeMS is the fade duration between the outgoing and incoming
	// track in milliseconds.
	CrossfadeMS int
	// LoopSingle keeps the incoming track looping instead of reporting
	// completion.
	LoopSingle bool
}

// State is one full music playback intent.
type State struct {
	Mood      string
	Intensity float64
	// TrackPath is the absolute path of the track to play. Empty means
	// stop all music playback.
	TrackPath  string
	Transition Transition
}

// Backend executes playback intents. Implementations are side-effecting and
// may fail; callers treat every method as best-effort and must stay
// internally consistent when a call errors.
type Backend interface {
	// SetVolumes applies the mixer volumes, each in [0,100].
	SetVolumes(master, music, effects int, muted bool) error

	// ApplyState swaps or crossfades to the given music state. An empty
	// track path stops all music playback.
	ApplyState(state State) error

	// PlaySFX fires a one-shot sound effect. Implementations clean up
	// their own resources on completion.
	PlaySFX(path, category string) error

	// PlaySFXLoop starts or replaces the looped effect on a channel.
	PlaySFXLoop(path, channel string) error

	// StopSFXLoop silences a loop channel.
	StopSFXLoop(channel string) error

	// SetIntensity ramps the perceived intensity over rampMS milliseconds.
	// Backends without intensity shaping may treat this as a no-op.
	SetIntensity(value float64, rampMS int) error
}
