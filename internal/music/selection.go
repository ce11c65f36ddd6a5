package music

import (
	"path/filepath"
	"strings"
)

// Bias weight applied to candidates whose filename mentions the current
// major location; everything else weighs 1.0.
const contextBiasWeight = 2.0

// CrossfadeMS maps intensity to a crossfade duration: higher intensity
// yields a snappier transition. The result is clamped to [400, 4000] ms.
func CrossfadeMS(intensity float64) int {
	fade := 3000 - 2200*intensity
	if fade < 400 {
		fade = 400
	}
	if fade > 4000 {
		fade = 4000
	}
	return int(fade)
}

// selectNextTrackLocked picks the next track for a mood.
//
// The rotation pool guarantees fairness: tracks already played in the mood
// are excluded until the whole pool has been heard, at which point the
// played set resets. The current track is excluded when alternatives exist.
// With context bias enabled, candidates mentioning the current major
// location in their filename are twice as likely to be drawn.
func (d *Director) selectNextTrackLocked(mood string, forceUnplayed bool) string {
	pool := d.rotation[mood]
	if len(pool) == 0 {
		// No tracks for this mood; keep whatever is playing.
		return d.currentTrack
	}

	played := d.played[mood]
	if played == nil {
		played = map[string]bool{}
		d.played[mood] = played
	}

	unplayed := make([]string, 0, len(pool))
	for _, track := range pool {
		if !played[track] {
			unplayed = append(unplayed, track)
		}
	}
	if len(unplayed) == 0 {
		// Full rotation heard; reset the pool.
		for track := range played {
			delete(played, track)
		}
		unplayed = append(unplayed, pool...)
	}

	candidates := unplayed
	if !forceUnplayed {
		candidates = pool
	}

	if len(candidates) > 1 {
		trimmed := make([]string, 0, len(candidates))
		for _, track := range candidates {
			if track != d.currentTrack {
				trimmed = append(trimmed, track)
			}
		}
		if len(trimmed) > 0 {
			candidates = trimmed
		}
	}

	chosen := d.drawLocked(candidates)
	played[chosen] = true
	return chosen
}

// drawLocked performs the candidate draw: a cumulative-weight roulette when
// a context bias is active, a uniform draw otherwise.
func (d *Director) drawLocked(candidates []string) string {
	if len(candidates) == 1 {
		return candidates[0]
	}

	bias := strings.ToLower(strings.TrimSpace(d.locationMajor))
	if d.cfg.DisableContextBias || bias == "" {
		return candidates[d.rng.Intn(len(candidates))]
	}

	weights := make([]float64, len(candidates))
	total := 0.0
	for i, track := range candidates {
		weight := 1.0
		if strings.Contains(strings.ToLower(filepath.Base(track)), bias) {
			weight = contextBiasWeight
		}
		weights[i] = weight
		total += weight
	}

	roll := d.rng.Float64() * total
	cumulative := 0.0
	for i, weight := range weights {
		cumulative += weight
		if roll < cumulative {
			return candidates[i]
		}
	}
	return candidates[len(candidates)-1]
}
