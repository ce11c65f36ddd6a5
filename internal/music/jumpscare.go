package music

import (
	"log"
	"time"
)

// Jumpscare runs a transient intensity spike in the background: ramp to
// peak over attack, hold, then restore the previous intensity over release.
// At most one jumpscare is in flight; requests made while one is active are
// dropped. It reports whether the sequence was started.
func (d *Director) Jumpscare(peak float64, attack, hold, release time.Duration) bool {
	d.mu.Lock()
	if d.jumpscaring {
		d.mu.Unlock()
		return false
	}
	d.jumpscaring = true
	previous := d.intensity
	d.intensity = clampUnit(peak)
	if err := d.backend.SetIntensity(d.intensity, int(attack.Milliseconds())); err != nil {
		log.Printf("music: backend jumpscare attack: %v", err)
	}
	d.emitLocked("jumpscare_attack")
	d.mu.Unlock()

	go func() {
		time.Sleep(attack + hold)

		d.mu.Lock()
		defer d.mu.Unlock()
		d.intensity = previous
		if err := d.backend.SetIntensity(previous, int(release.Milliseconds())); err != nil {
			log.Printf("music: backend jumpscare release: %v", err)
		}
		d.emitLocked("jumpscare_release")
		d.jumpscaring = false
	}()
	return true
}
