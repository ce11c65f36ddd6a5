package director

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hollowvale/bard/internal/music"
	"github.com/hollowvale/bard/internal/playlog"
)

func writeAssets(t *testing.T) Config {
	t.Helper()
	root := t.TempDir()
	musicRoot := filepath.Join(root, "music")
	soundRoot := filepath.Join(root, "sounds")
	for _, dir := range []string{
		filepath.Join(musicRoot, "calm"),
		filepath.Join(musicRoot, "combat"),
		filepath.Join(soundRoot, "oneshot"),
		filepath.Join(soundRoot, "ui"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	files := []string{
		filepath.Join(musicRoot, "calm", "creek.ogg"),
		filepath.Join(musicRoot, "combat", "drums.ogg"),
		filepath.Join(soundRoot, "oneshot", "tavern_door.ogg"),
		filepath.Join(soundRoot, "ui", "click.ogg"),
	}
	for _, file := range files {
		if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", file, err)
		}
	}
	return Config{
		MusicRoot:   musicRoot,
		SoundRoot:   soundRoot,
		DataDir:     filepath.Join(root, "data"),
		JournalPath: filepath.Join(root, "journal.db"),
		Seed:        1,
	}
}

func TestRunSessionScriptedCommands(t *testing.T) {
	cfg := writeAssets(t)
	script := strings.Join([]string{
		"ctx venue=tavern weather=rain",
		"set combat 0.8",
		"next",
		"sfx ui click",
		"status",
		"recent",
		"quit",
	}, "\n")

	var out bytes.Buffer
	if err := runSession(context.Background(), cfg, strings.NewReader(script), &out); err != nil {
		t.Fatalf("run session: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "mood=combat") {
		t.Fatalf("status output missing mood, got:\n%s", output)
	}
	if !strings.Contains(output, "drums.ogg") {
		t.Fatalf("expected journaled combat track in recent listing, got:\n%s", output)
	}

	// The journal survives the session and holds the state changes.
	journal, err := playlog.Open(cfg.JournalPath)
	if err != nil {
		t.Fatalf("reopen journal: %v", err)
	}
	defer journal.Close()
	entries, err := journal.RecentTracks(context.Background(), "combat", 10)
	if err != nil {
		t.Fatalf("recent tracks: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected journaled combat entries")
	}
}

func TestRunSessionEOFStops(t *testing.T) {
	cfg := writeAssets(t)
	cfg.JournalPath = ""

	var out bytes.Buffer
	if err := runSession(context.Background(), cfg, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run session: %v", err)
	}
}

func TestRunSessionUnknownCommandIsReported(t *testing.T) {
	cfg := writeAssets(t)
	cfg.JournalPath = ""

	var out bytes.Buffer
	if err := runSession(context.Background(), cfg, strings.NewReader("bogus\nquit\n"), &out); err != nil {
		t.Fatalf("run session: %v", err)
	}
	if !strings.Contains(out.String(), "unknown command") {
		t.Fatalf("expected unknown command notice, got:\n%s", out.String())
	}
}

func TestParseContextArgs(t *testing.T) {
	in, changed, err := parseContextArgs([]string{"venue=tavern", "weather=rain", "interior=true"})
	if err != nil {
		t.Fatalf("parse context args: %v", err)
	}
	if in.LocationVenue != "tavern" || in.WeatherType != "rain" {
		t.Fatalf("unexpected input: %+v", in)
	}
	if in.Interior == nil || !*in.Interior {
		t.Fatal("expected interior=true")
	}
	want := []string{"location_venue", "weather_type", "interior"}
	if len(changed) != len(want) {
		t.Fatalf("changed keys = %v, want %v", changed, want)
	}
	for i, key := range want {
		if changed[i] != key {
			t.Fatalf("changed keys = %v, want %v", changed, want)
		}
	}
}

func TestParseContextArgsRejectsBadPairs(t *testing.T) {
	if _, _, err := parseContextArgs([]string{"tavern"}); err == nil {
		t.Fatal("expected error for missing equals sign")
	}
	if _, _, err := parseContextArgs([]string{"moonphase=full"}); err == nil {
		t.Fatal("expected error for unknown key")
	}
	if _, _, err := parseContextArgs([]string{"interior=maybe"}); err == nil {
		t.Fatal("expected error for bad bool")
	}
}

func TestSessionContextMergesAcrossUpdates(t *testing.T) {
	cfg := writeAssets(t)
	cfg.JournalPath = ""
	script := strings.Join([]string{
		"ctx venue=tavern",
		"ctx weather=rain",
		"quit",
	}, "\n")

	var out bytes.Buffer
	if err := runSession(context.Background(), cfg, strings.NewReader(script), &out); err != nil {
		t.Fatalf("run session: %v", err)
	}
	// Both commands must canonicalize cleanly; a lost merge would surface as
	// a warning on the second update.
	if strings.Contains(out.String(), "Unrecognized") {
		t.Fatalf("unexpected warnings:\n%s", out.String())
	}
}

func TestJournalStateListenerToleratesFailure(t *testing.T) {
	cfg := writeAssets(t)

	journal, err := playlog.Open(cfg.JournalPath)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	if err := journal.Close(); err != nil {
		t.Fatalf("close journal: %v", err)
	}

	s := &session{journal: journal, out: &bytes.Buffer{}}
	// Appending to a closed journal logs the failure and keeps running.
	s.journalState(music.State{Mood: "calm", Track: "creek.ogg", Reason: "manual"})
	s.journalSFX("ui", "/sounds/ui/click.ogg", "")
}
