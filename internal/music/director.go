package music

import (
	"context"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hollowvale/bard/internal/playback"
)

const tracerName = "github.com/hollowvale/bard/internal/music"

// Config holds the director's tuning knobs. Zero values fall back to the
// documented defaults.
type Config struct {
	// MusicRoot is the directory holding one subdirectory of tracks per
	// mood.
	MusicRoot string
	// SuggestThreshold is the minimum confidence for a suggested mood
	// change to be accepted. Default 0.7.
	SuggestThreshold float64
	// MoodCooldown is the minimum time between accepted mood changes.
	// Default 5s.
	MoodCooldown time.Duration
	// IntensityAlpha is the smoothing factor of the intensity EMA.
	// Default 0.35.
	IntensityAlpha float64
	// DisableContextBias turns off filename-based context weighting in
	// track selection.
	DisableContextBias bool
}

const (
	defaultSuggestThreshold = 0.7
	defaultMoodCooldown     = 5 * time.Second
	defaultIntensityAlpha   = 0.35
	intensityRampMS         = 250
)

// Suggestion is a policy-gated mood change request from an upstream signal
// source such as the narrator.
type Suggestion struct {
	Mood       string
	Intensity  float64
	Source     string
	Confidence float64
	Evidence   string
}

// State is the snapshot fanned out to listeners on every state change.
type State struct {
	Mood      string
	Intensity float64
	// Track is the basename of the current track, empty when silent.
	Track     string
	TrackPath string
	// URL is the web-relative path of the track when it lies under the
	// music root.
	URL     string
	Muted   bool
	Master  int
	Music   int
	Effects int
	Reason  string
}

// Listener receives state snapshots. Listeners are invoked synchronously in
// registration order; a panicking listener is contained and logged.
type Listener func(State)

// Director owns mood, intensity, volume, and rotation state for background
// music. All mutable state is guarded by a single mutex.
type Director struct {
	cfg     Config
	backend playback.Backend
	tracer  trace.Tracer
	now     func() time.Time

	mu             sync.Mutex
	rng            *rand.Rand
	mood           string
	intensity      float64
	intensityEMA   float64
	muted          bool
	master         int
	musicVol       int
	effects        int
	currentTrack   string
	rotation       map[string][]string
	played         map[string]map[string]bool
	locationMajor  string
	lastMoodChange time.Time
	jumpscaring    bool
	listeners      map[uuid.UUID]Listener
	listenerOrder  []uuid.UUID
}

// NewDirector constructs a director with rotation pools scanned from
// cfg.MusicRoot. The RNG drives track selection and must be seeded by the
// caller; tests pass a fixed seed for reproducible draws. A nil now falls
// back to time.Now.
func NewDirector(cfg Config, backend playback.Backend, rng *rand.Rand, now func() time.Time) *Director {
	if cfg.SuggestThreshold <= 0 {
		cfg.SuggestThreshold = defaultSuggestThreshold
	}
	if cfg.MoodCooldown <= 0 {
		cfg.MoodCooldown = defaultMoodCooldown
	}
	if cfg.IntensityAlpha <= 0 {
		cfg.IntensityAlpha = defaultIntensityAlpha
	}
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Director{
		cfg:       cfg,
		backend:   backend,
		tracer:    otel.Tracer(tracerName),
		now:       now,
		rng:       rng,
		master:    100,
		musicVol:  100,
		effects:   100,
		rotation:  scanRotation(cfg.MusicRoot),
		played:    map[string]map[string]bool{},
		listeners: map[uuid.UUID]Listener{},
	}
}

// scanRotation builds the per-mood rotation pools from a
// <root>/<mood>/<track> directory layout. A missing root yields empty pools.
func scanRotation(root string) map[string][]string {
	pools := map[string][]string{}
	if root == "" {
		return pools
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		log.Printf("music: cannot read music root %s: %v", root, err)
		return pools
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		mood := entry.Name()
		files, err := os.ReadDir(filepath.Join(root, mood))
		if err != nil {
			continue
		}
		var tracks []string
		for _, file := range files {
			if file.IsDir() || !playback.AcceptedExtension(file.Name()) {
				continue
			}
			tracks = append(tracks, filepath.Join(root, mood, file.Name()))
		}
		sort.Strings(tracks)
		if len(tracks) > 0 {
			pools[mood] = tracks
		}
	}
	return pools
}

// AddStateListener registers a state-change subscriber and returns a handle
// for unregistration.
func (d *Director) AddStateListener(fn Listener) uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := uuid.New()
	d.listeners[id] = fn
	d.listenerOrder = append(d.listenerOrder, id)
	return id
}

// RemoveStateListener unregisters a subscriber. Unknown handles are ignored.
func (d *Director) RemoveStateListener(id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.listeners[id]; !ok {
		return
	}
	delete(d.listeners, id)
	for i, existing := range d.listenerOrder {
		if existing == id {
			d.listenerOrder = append(d.listenerOrder[:i], d.listenerOrder[i+1:]...)
			break
		}
	}
}

// SetContext updates the major-location bias used by track selection.
// All other state is untouched.
func (d *Director) SetContext(locationMajor string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.locationMajor = locationMajor
	d.emitLocked("context")
}

// SetVolumes clamps each volume to [0,100], forwards them to the backend,
// and emits the new state.
func (d *Director) SetVolumes(master, music, effects int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.master = clampVolume(master)
	d.musicVol = clampVolume(music)
	d.effects = clampVolume(effects)
	if err := d.backend.SetVolumes(d.master, d.musicVol, d.effects, d.muted); err != nil {
		log.Printf("music: backend set volumes: %v", err)
	}
	d.emitLocked("volumes")
}

// SetMuted forwards the mute flag to the backend and emits the new state.
func (d *Director) SetMuted(muted bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.muted = muted
	if err := d.backend.SetVolumes(d.master, d.musicVol, d.effects, d.muted); err != nil {
		log.Printf("music: backend set volumes: %v", err)
	}
	d.emitLocked("muted")
}

// HardSet unconditionally switches to the given mood, selects the next
// track for it, and applies the result. A negative intensity keeps the
// current value.
func (d *Director) HardSet(ctx context.Context, mood string, intensity float64, reason string) {
	_, span := d.tracer.Start(ctx, "music.HardSet",
		trace.WithAttributes(
			attribute.String("mood", mood),
			attribute.String("reason", reason),
		))
	defer span.End()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.mood = mood
	d.lastMoodChange = d.now()
	if intensity >= 0 {
		d.intensity = clampUnit(intensity)
		d.intensityEMA = d.intensity
	}
	d.currentTrack = d.selectNextTrackLocked(mood, true)
	d.applyLocked(reason)
}

// Suggest applies a policy-gated mood change. The suggestion's intensity
// always feeds the intensity EMA, even when the mood change is rejected.
// It reports whether the mood change was accepted.
func (d *Director) Suggest(ctx context.Context, s Suggestion) bool {
	_, span := d.tracer.Start(ctx, "music.Suggest",
		trace.WithAttributes(
			attribute.String("mood", s.Mood),
			attribute.String("source", s.Source),
			attribute.Float64("confidence", s.Confidence),
		))
	defer span.End()

	d.mu.Lock()
	defer d.mu.Unlock()

	alpha := d.cfg.IntensityAlpha
	d.intensityEMA = alpha*clampUnit(s.Intensity) + (1-alpha)*d.intensityEMA
	d.intensity = d.intensityEMA
	if err := d.backend.SetIntensity(d.intensity, intensityRampMS); err != nil {
		log.Printf("music: backend set intensity: %v", err)
	}

	now := d.now()
	accepted := s.Mood != "" &&
		s.Mood != d.mood &&
		s.Confidence >= d.cfg.SuggestThreshold &&
		now.Sub(d.lastMoodChange) >= d.cfg.MoodCooldown

	span.SetAttributes(attribute.Bool("accepted", accepted))

	if !accepted {
		d.emitLocked("suggest_intensity")
		return false
	}

	d.mood = s.Mood
	d.lastMoodChange = now
	d.currentTrack = d.selectNextTrackLocked(s.Mood, true)
	d.applyLocked("suggest:" + s.Source)
	return true
}

// NextTrack forces selection of an unplayed track in the current mood.
func (d *Director) NextTrack(ctx context.Context, reason string) {
	_, span := d.tracer.Start(ctx, "music.NextTrack",
		trace.WithAttributes(attribute.String("reason", reason)))
	defer span.End()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mood == "" {
		return
	}
	d.currentTrack = d.selectNextTrackLocked(d.mood, true)
	d.applyLocked(reason)
}

// OnTrackEnded is the backend's track-completion callback. It advances the
// rotation within the current mood.
func (d *Director) OnTrackEnded() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mood == "" {
		return
	}
	d.currentTrack = d.selectNextTrackLocked(d.mood, true)
	d.applyLocked("track_end")
}

// Snapshot returns the current state without emitting a notification.
func (d *Director) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked("snapshot")
}

// applyLocked pushes the current state to the backend with the computed
// crossfade and emits a state notification. Backend failures are logged and
// contained; the director's own state stays consistent.
func (d *Director) applyLocked(reason string) {
	state := playback.State{
		Mood:      d.mood,
		Intensity: d.intensity,
		TrackPath: d.currentTrack,
		Transition: playback.Transition{
			CrossfadeMS: CrossfadeMS(d.intensity),
		},
	}
	if err := d.backend.ApplyState(state); err != nil {
		log.Printf("music: backend apply state: %v", err)
	}
	d.emitLocked(reason)
}

// emitLocked fans out the current state to all listeners, in registration
// order, under the lock. A failing listener must not block or crash the
// others.
func (d *Director) emitLocked(reason string) {
	snapshot := d.snapshotLocked(reason)
	for _, id := range d.listenerOrder {
		fn := d.listeners[id]
		if fn == nil {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("music: state listener panic: %v", r)
				}
			}()
			fn(snapshot)
		}()
	}
}

func (d *Director) snapshotLocked(reason string) State {
	track := ""
	if d.currentTrack != "" {
		track = filepath.Base(d.currentTrack)
	}
	return State{
		Mood:      d.mood,
		Intensity: d.intensity,
		Track:     track,
		TrackPath: d.currentTrack,
		URL:       playback.WebPath(d.cfg.MusicRoot, d.currentTrack),
		Muted:     d.muted,
		Master:    d.master,
		Music:     d.musicVol,
		Effects:   d.effects,
		Reason:    reason,
	}
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
