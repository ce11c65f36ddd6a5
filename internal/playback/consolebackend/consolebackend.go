// Package consolebackend provides a playback backend that logs every
// instruction instead of producing audio. It backs the demo binary and any
// deployment where the real mixer lives in another process.
package consolebackend

import (
	"log"

	"github.com/hollowvale/bard/internal/playback"
)

// Backend logs playback instructions via the standard logger.
type Backend struct{}

// New creates a console backend.
func New() *Backend {
	return &Backend{}
}

// SetVolumes implements playback.Backend.
func (b *Backend) SetVolumes(master, music, effects int, muted bool) error {
	log.Printf("playback: volumes master=%d music=%d effects=%d muted=%t", master, music, effects, muted)
	return nil
}

// ApplyState implements playback.Backend.
func (b *Backend) ApplyState(state playback.State) error {
	log.Printf("playback: state mood=%s intensity=%.2f track=%s crossfade=%dms loop=%t",
		state.Mood, state.Intensity, state.TrackPath, state.Transition.CrossfadeMS, state.Transition.LoopSingle)
	return nil
}

// PlaySFX implements playback.Backend.
func (b *Backend) PlaySFX(path, category string) error {
	log.Printf("playback: sfx category=%s path=%s", category, path)
	return nil
}

// PlaySFXLoop implements playback.Backend.
func (b *Backend) PlaySFXLoop(path, channel string) error {
	log.Printf("playback: loop channel=%s path=%s", channel, path)
	return nil
}

// StopSFXLoop implements playback.Backend.
func (b *Backend) StopSFXLoop(channel string) error {
	log.Printf("playback: loop channel=%s stopped", channel)
	return nil
}

// SetIntensity implements playback.Backend.
func (b *Backend) SetIntensity(value float64, rampMS int) error {
	log.Printf("playback: intensity value=%.2f ramp=%dms", value, rampMS)
	return nil
}

var _ playback.Backend = (*Backend)(nil)
