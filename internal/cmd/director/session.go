package director

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hollowvale/bard/internal/music"
	"github.com/hollowvale/bard/internal/playback/consolebackend"
	"github.com/hollowvale/bard/internal/playlog"
	"github.com/hollowvale/bard/internal/random"
	"github.com/hollowvale/bard/internal/scene"
	"github.com/hollowvale/bard/internal/sfx"
)

// session wires the canonicalizer, director, SFX manager, and journal into
// one interactive runtime.
type session struct {
	canon    *scene.Canonicalizer
	director *music.Director
	manager  *sfx.Manager
	journal  *playlog.Store
	out      io.Writer

	// current is the running scene context, merged across updates.
	current scene.Context
}

// runSession builds the runtime from cfg and processes commands from in until
// EOF, "quit", or context cancellation.
func runSession(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	musicRNG, sfxRNG, err := newRNGs(cfg.Seed)
	if err != nil {
		return err
	}

	vocab := scene.LoadVocab(
		filepath.Join(cfg.DataDir, "enums.json"),
		filepath.Join(cfg.DataDir, "synonyms.json"),
	)
	catalog := scene.LoadCatalog(filepath.Join(cfg.DataDir, "locations.json"))
	mapping := sfx.LoadMapping(filepath.Join(cfg.DataDir, "sfx.json"))

	s := &session{
		canon: scene.NewCanonicalizer(vocab, catalog),
		out:   out,
	}

	if cfg.JournalPath != "" {
		journal, err := playlog.Open(cfg.JournalPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := journal.Close(); err != nil {
				log.Printf("close journal: %v", err)
			}
		}()
		s.journal = journal
	}

	backend := consolebackend.New()
	s.director = music.NewDirector(music.Config{MusicRoot: cfg.MusicRoot}, backend, musicRNG, nil)
	s.manager = sfx.NewManager(sfx.Config{
		SoundRoot: cfg.SoundRoot,
		Observer:  s.journalSFX,
	}, backend, mapping, sfxRNG, nil)

	if s.journal != nil {
		s.director.AddStateListener(s.journalState)
	}

	// The rotation worker stops when the session ends, not only on signal.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.manager.RunRotation(ctx)

	return s.commandLoop(ctx, in)
}

// newRNGs derives independent generators for the director and the SFX
// manager; they run on different goroutines and must not share one source.
func newRNGs(seed int64) (*rand.Rand, *rand.Rand, error) {
	if seed != 0 {
		return rand.New(rand.NewSource(seed)), rand.New(rand.NewSource(seed + 1)), nil
	}
	musicRNG, err := random.NewRand()
	if err != nil {
		return nil, nil, err
	}
	sfxRNG, err := random.NewRand()
	if err != nil {
		return nil, nil, err
	}
	return musicRNG, sfxRNG, nil
}

func (s *session) journalState(state music.State) {
	err := s.journal.AppendStateChange(context.Background(), playlog.Entry{
		OccurredAt: time.Now(),
		Mood:       state.Mood,
		Intensity:  state.Intensity,
		Track:      state.Track,
		TrackPath:  state.TrackPath,
		Reason:     state.Reason,
	})
	if err != nil {
		log.Printf("journal state change: %v", err)
	}
}

func (s *session) journalSFX(category, path, channel string) {
	if s.journal == nil {
		return
	}
	err := s.journal.AppendSFX(context.Background(), playlog.SFXEntry{
		OccurredAt: time.Now(),
		Category:   category,
		Path:       path,
		Channel:    channel,
	})
	if err != nil {
		log.Printf("journal sfx: %v", err)
	}
}

// commandLoop reads one command per line. Input is drained on a separate
// goroutine so cancellation is honored even while blocked on a read.
func (s *session) commandLoop(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			// Signal-driven shutdown is a clean exit.
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if done := s.dispatch(ctx, line); done {
				return nil
			}
		}
	}
}

// dispatch executes one command line; it returns true on "quit".
func (s *session) dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		s.printHelp()
	case "ctx":
		s.applyContext(ctx, args)
	case "set":
		s.hardSet(ctx, args)
	case "suggest":
		s.suggest(ctx, args)
	case "next":
		s.director.NextTrack(ctx, "manual")
	case "ended":
		s.director.OnTrackEnded()
	case "sfx":
		if len(args) != 2 {
			s.printf("usage: sfx <category> <name>")
			return false
		}
		s.manager.PlayOneShot(args[0], args[1])
	case "vol":
		s.setVolumes(args)
	case "mute":
		s.director.SetMuted(true)
	case "unmute":
		s.director.SetMuted(false)
	case "scare":
		s.jumpscare(args)
	case "status":
		s.printStatus()
	case "recent":
		s.recentTracks(ctx, args)
	default:
		s.printf("unknown command %q (try \"help\")", cmd)
	}
	return false
}

// applyContext parses key=value pairs, canonicalizes them, merges the result
// into the running context, and fans it out to the director and SFX manager.
func (s *session) applyContext(ctx context.Context, args []string) {
	in, changedKeys, err := parseContextArgs(args)
	if err != nil {
		s.printf("ctx: %v", err)
		return
	}

	update, warnings := s.canon.Canonicalize(in)
	for field, warning := range warnings {
		s.printf("ctx: %s: %s", field, warning)
	}

	merged := s.current.Merge(update)
	if merged.LocationName != "" {
		merged = s.canon.Enrich(merged, merged.LocationName, "")
	}
	s.current = merged

	s.manager.ApplyContext(ctx, merged, changedKeys)
	if merged.LocationMajor != nil {
		s.director.SetContext(*merged.LocationMajor)
	}
}

// parseContextArgs turns "venue=tavern weather=rain" into an Input plus the
// canonical names of the keys that were present.
func parseContextArgs(args []string) (scene.Input, []string, error) {
	var in scene.Input
	var changed []string
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return scene.Input{}, nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		switch key {
		case "location", "location_name", "name":
			in.LocationName = value
			changed = append(changed, "location_name")
		case "major", "location_major":
			in.LocationMajor = value
			changed = append(changed, "location_major")
		case "venue", "location_venue":
			in.LocationVenue = value
			changed = append(changed, "location_venue")
		case "weather", "weather_type":
			in.WeatherType = value
			changed = append(changed, "weather_type")
		case "time", "time_of_day":
			in.TimeOfDay = value
			changed = append(changed, "time_of_day")
		case "biome":
			in.Biome = value
			changed = append(changed, "biome")
		case "region":
			in.Region = value
			changed = append(changed, "region")
		case "crowd", "crowd_level":
			in.CrowdLevel = value
			changed = append(changed, "crowd_level")
		case "danger", "danger_level":
			in.DangerLevel = value
			changed = append(changed, "danger_level")
		case "interior":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return scene.Input{}, nil, fmt.Errorf("interior: %w", err)
			}
			in.Interior = &b
			changed = append(changed, "interior")
		case "underground":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return scene.Input{}, nil, fmt.Errorf("underground: %w", err)
			}
			in.Underground = &b
			changed = append(changed, "underground")
		default:
			return scene.Input{}, nil, fmt.Errorf("unknown context key %q", key)
		}
	}
	return in, changed, nil
}

func (s *session) hardSet(ctx context.Context, args []string) {
	if len(args) == 0 {
		s.printf("usage: set <mood> [intensity]")
		return
	}
	intensity := -1.0
	if len(args) > 1 {
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			s.printf("set: intensity: %v", err)
			return
		}
		intensity = value
	}
	s.director.HardSet(ctx, args[0], intensity, "manual")
}

func (s *session) suggest(ctx context.Context, args []string) {
	if len(args) < 3 {
		s.printf("usage: suggest <mood> <intensity> <confidence> [source]")
		return
	}
	intensity, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		s.printf("suggest: intensity: %v", err)
		return
	}
	confidence, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		s.printf("suggest: confidence: %v", err)
		return
	}
	source := "console"
	if len(args) > 3 {
		source = args[3]
	}
	accepted := s.director.Suggest(ctx, music.Suggestion{
		Mood:       args[0],
		Intensity:  intensity,
		Confidence: confidence,
		Source:     source,
	})
	if accepted {
		s.printf("suggestion accepted")
	} else {
		s.printf("suggestion rejected")
	}
}

func (s *session) setVolumes(args []string) {
	if len(args) != 3 {
		s.printf("usage: vol <master> <music> <effects>")
		return
	}
	values := make([]int, 3)
	for i, arg := range args {
		value, err := strconv.Atoi(arg)
		if err != nil {
			s.printf("vol: %v", err)
			return
		}
		values[i] = value
	}
	s.director.SetVolumes(values[0], values[1], values[2])
}

func (s *session) jumpscare(args []string) {
	peak := 1.0
	if len(args) > 0 {
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			s.printf("scare: %v", err)
			return
		}
		peak = value
	}
	if !s.director.Jumpscare(peak, 250*time.Millisecond, time.Second, 2*time.Second) {
		s.printf("jumpscare already in flight")
	}
}

func (s *session) printStatus() {
	state := s.director.Snapshot()
	s.printf("mood=%s intensity=%.2f track=%s muted=%t volumes=%d/%d/%d",
		state.Mood, state.Intensity, state.Track, state.Muted,
		state.Master, state.Music, state.Effects)
}

func (s *session) recentTracks(ctx context.Context, args []string) {
	if s.journal == nil {
		s.printf("journaling is disabled")
		return
	}
	mood := ""
	if len(args) > 0 {
		mood = args[0]
	}
	entries, err := s.journal.RecentTracks(ctx, mood, 10)
	if err != nil {
		s.printf("recent: %v", err)
		return
	}
	if len(entries) == 0 {
		s.printf("no tracks journaled yet")
		return
	}
	for _, entry := range entries {
		s.printf("%s  %-10s %.2f  %s  (%s)",
			entry.OccurredAt.Format(time.RFC3339), entry.Mood, entry.Intensity,
			entry.Track, entry.Reason)
	}
}

func (s *session) printHelp() {
	s.printf(`commands:
  ctx key=value ...   update scene context (venue=tavern weather=rain ...)
  set <mood> [i]      hard-set mood, optional intensity 0..1
  suggest <mood> <i> <conf> [source]
  next                advance to the next track
  ended               signal natural track end
  sfx <cat> <name>    fire a programmatic cue (e.g. sfx ui click)
  vol <m> <mu> <fx>   set volumes 0..100
  mute / unmute
  scare [peak]        jumpscare intensity spike
  status              print director state
  recent [mood]       list recently journaled tracks
  quit`)
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format+"\n", args...)
}
