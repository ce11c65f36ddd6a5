package sfx

import (
	"context"
	"log"
	"math/rand"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/hollowvale/bard/internal/playback"
	"github.com/hollowvale/bard/internal/scene"
)

const tracerName = "github.com/hollowvale/bard/internal/sfx"

// Loop ambience channels.
const (
	ChannelEnvironment = "environment"
	ChannelWeather     = "weather"
)

// Config holds the manager's tuning knobs. Zero values fall back to the
// documented defaults.
type Config struct {
	// SoundRoot is the directory holding one-shot files and the
	// loop/<major-location> and loop/weather ambience directories.
	SoundRoot string
	// MinInterval debounces context-driven one-shots per category.
	// Default 500ms.
	MinInterval time.Duration
	// LoopMinInterval rate-limits loop channel changes. Default 1s.
	LoopMinInterval time.Duration
	// RotationPeriod is the delay between ambience pool swaps.
	// Default 120s.
	RotationPeriod time.Duration
	// Observer, when set, is invoked after every sound that reaches the
	// backend. Channel is empty for one-shots. Observers run under the
	// manager lock and must not call back into the manager.
	Observer func(category, path, channel string)
}

const (
	defaultMinInterval     = 500 * time.Millisecond
	defaultLoopMinInterval = time.Second
	defaultRotationPeriod  = 120 * time.Second
)

type loopChannel struct {
	active     string
	lastChange time.Time
	pool       []string
	nextSwap   time.Time
}

// Manager owns one-shot debouncing and the two ambience loop channels.
// All mutable state is guarded by a single mutex.
type Manager struct {
	cfg     Config
	backend playback.Backend
	tracer  trace.Tracer
	now     func() time.Time

	mu       sync.Mutex
	rng      *rand.Rand
	mapping  map[string]map[string]string
	lastPlay map[string]time.Time
	loops    map[string]*loopChannel
}

// NewManager constructs an SFX manager. A nil mapping falls back to the
// compiled-in table; a nil now falls back to time.Now. The RNG drives loop
// rotation draws and must be seeded by the caller.
func NewManager(cfg Config, backend playback.Backend, mapping map[string]map[string]string, rng *rand.Rand, now func() time.Time) *Manager {
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = defaultMinInterval
	}
	if cfg.LoopMinInterval <= 0 {
		cfg.LoopMinInterval = defaultLoopMinInterval
	}
	if cfg.RotationPeriod <= 0 {
		cfg.RotationPeriod = defaultRotationPeriod
	}
	if mapping == nil {
		mapping = defaultMapping()
	}
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Manager{
		cfg:      cfg,
		backend:  backend,
		tracer:   otel.Tracer(tracerName),
		now:      now,
		rng:      rng,
		mapping:  mapping,
		lastPlay: map[string]time.Time{},
		loops: map[string]*loopChannel{
			ChannelEnvironment: {},
			ChannelWeather:     {},
		},
	}
}

// ApplyContext reacts to a canonical context update: it fires debounced
// one-shots for the venue, weather, and crowd categories and retargets the
// ambience loop channels. An empty changedKeys means everything may have
// changed.
func (m *Manager) ApplyContext(ctx context.Context, sc scene.Context, changedKeys []string) {
	_, span := m.tracer.Start(ctx, "sfx.ApplyContext",
		trace.WithAttributes(attribute.Int("changed_keys", len(changedKeys))))
	defer span.End()

	changed := map[string]bool{}
	for _, key := range changedKeys {
		changed[key] = true
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if relevant(changed, "location_venue", "location", "location_name") {
		m.triggerOneShotLocked(CategoryVenue, deref(sc.LocationVenue))
	}
	if relevant(changed, "weather_type", "weather") {
		m.triggerOneShotLocked(CategoryWeather, deref(sc.WeatherType))
	}
	if relevant(changed, "crowd_level", "crowd") {
		m.triggerOneShotLocked(CategoryCrowd, deref(sc.CrowdLevel))
	}

	m.applyLoopLocked(ChannelEnvironment, m.environmentTarget(sc))
	m.applyLoopLocked(ChannelWeather, m.weatherTarget(sc))
}

// PlayOneShot triggers a programmatic cue (UI, event, magic). It is not
// debounced against the context-driven one-shots. Unresolved cues are
// no-ops.
func (m *Manager) PlayOneShot(category, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rel, ok := m.mapping[category][name]
	if !ok {
		log.Printf("sfx: no mapping for %s/%s", category, name)
		return
	}
	abs := filepath.Join(m.cfg.SoundRoot, rel)
	if err := m.backend.PlaySFX(abs, category); err != nil {
		log.Printf("sfx: play %s/%s: %v", category, name, err)
		return
	}
	m.notifyLocked(category, abs, "")
}

// triggerOneShotLocked fires one context-driven cue, debounced per
// category.
func (m *Manager) triggerOneShotLocked(category, value string) {
	if value == "" {
		return
	}
	rel, ok := m.mapping[category][value]
	if !ok {
		return
	}

	now := m.now()
	if last, seen := m.lastPlay[category]; seen && now.Sub(last) < m.cfg.MinInterval {
		return
	}

	abs := filepath.Join(m.cfg.SoundRoot, rel)
	if err := m.backend.PlaySFX(abs, category); err != nil {
		log.Printf("sfx: play %s/%s: %v", category, value, err)
		return
	}
	m.lastPlay[category] = now
	m.notifyLocked(category, abs, "")
}

func (m *Manager) notifyLocked(category, path, channel string) {
	if m.cfg.Observer == nil {
		return
	}
	m.cfg.Observer(category, path, channel)
}

func relevant(changed map[string]bool, keys ...string) bool {
	if len(changed) == 0 {
		return true
	}
	for _, key := range keys {
		if changed[key] {
			return true
		}
	}
	return false
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
