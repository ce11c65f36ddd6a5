package sfx

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hollowvale/bard/internal/playback"
	"github.com/hollowvale/bard/internal/scene"
)

// loopTarget is the outcome of scoring one loop channel against a context:
// the best file to play (empty to stop the channel) and the directory pool
// used for later rotation swaps.
type loopTarget struct {
	path string
	pool []string
}

// environmentTarget resolves the environment ambience for a context. The
// candidate token is the major location, falling back to biome, region,
// then venue; files in loop/<token> are scored by token and time-of-day
// mentions plus a small bonus for loop-named stems.
func (m *Manager) environmentTarget(sc scene.Context) loopTarget {
	token := firstNonEmpty(
		deref(sc.LocationMajor),
		deref(sc.Biome),
		deref(sc.Region),
		deref(sc.LocationVenue),
	)
	if token == "" {
		return loopTarget{}
	}

	dir := filepath.Join(m.cfg.SoundRoot, "loop", token)
	pool := listLoopFiles(dir)
	if len(pool) == 0 {
		return loopTarget{}
	}

	timeOfDay := deref(sc.TimeOfDay)
	best := pool[0]
	bestScore := -1
	for _, path := range pool {
		name := strings.ToLower(filepath.Base(path))
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		score := 0
		if strings.Contains(name, token) {
			score += 2
		}
		if strings.Contains(stem, "loop") {
			score++
		}
		if timeOfDay != "" && strings.Contains(name, timeOfDay) {
			score += 2
		}
		if score > bestScore {
			best = path
			bestScore = score
		}
	}
	return loopTarget{path: best, pool: pool}
}

// weatherTarget resolves the weather ambience for a context. Unlike the
// environment channel, a zero score means no confident match and stops the
// loop.
func (m *Manager) weatherTarget(sc scene.Context) loopTarget {
	weather := deref(sc.WeatherType)
	if weather == "" {
		return loopTarget{}
	}

	dir := filepath.Join(m.cfg.SoundRoot, "loop", "weather")
	pool := listLoopFiles(dir)
	if len(pool) == 0 {
		return loopTarget{}
	}

	best := ""
	bestScore := 0
	for _, path := range pool {
		name := strings.ToLower(filepath.Base(path))
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		score := 0
		if strings.Contains(name, weather) {
			score += 3
		}
		if weather == "storm" && strings.Contains(name, "storm") {
			score++
		}
		if (weather == "storm" || weather == "thunder") && strings.Contains(name, "thunder") {
			score++
		}
		if strings.Contains(stem, "loop") {
			score++
		}
		if score > bestScore {
			best = path
			bestScore = score
		}
	}
	if best == "" {
		// No confident match; silence beats a wrong ambience.
		return loopTarget{}
	}
	return loopTarget{path: best, pool: pool}
}

// applyLoopLocked retargets one loop channel, rate-limited by
// LoopMinInterval. A change skipped by the rate limit is picked up on the
// next context evaluation.
func (m *Manager) applyLoopLocked(channel string, target loopTarget) {
	loop := m.loops[channel]
	if loop == nil {
		return
	}
	if target.path == loop.active {
		// Same target; refresh the rotation pool only.
		loop.pool = target.pool
		return
	}

	now := m.now()
	if !loop.lastChange.IsZero() && now.Sub(loop.lastChange) < m.cfg.LoopMinInterval {
		return
	}

	if target.path == "" {
		if err := m.backend.StopSFXLoop(channel); err != nil {
			log.Printf("sfx: stop %s loop: %v", channel, err)
		}
		loop.active = ""
		loop.pool = nil
		loop.lastChange = now
		return
	}

	if err := m.backend.PlaySFXLoop(target.path, channel); err != nil {
		log.Printf("sfx: start %s loop: %v", channel, err)
		return
	}
	loop.active = target.path
	loop.pool = target.pool
	loop.lastChange = now
	loop.nextSwap = now.Add(m.cfg.RotationPeriod)
	m.notifyLocked("loop", target.path, channel)
}

// listLoopFiles returns the sorted playable files in a loop directory.
func listLoopFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !playback.AcceptedExtension(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
