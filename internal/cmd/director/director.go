// Package director parses audio director flags and launches the runtime.
package director

import (
	"context"
	"flag"
	"os"

	entrypoint "github.com/hollowvale/bard/internal/platform/cmd"
)

// Config holds director command configuration.
type Config struct {
	MusicRoot   string `env:"BARD_MUSIC_ROOT" envDefault:"assets/music"`
	SoundRoot   string `env:"BARD_SOUND_ROOT" envDefault:"assets/sounds"`
	DataDir     string `env:"BARD_DATA_DIR" envDefault:"assets/data"`
	JournalPath string `env:"BARD_JOURNAL_PATH"`
	Seed        int64  `env:"BARD_SEED"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.MusicRoot, "music-root", cfg.MusicRoot, "Directory holding per-mood music folders")
	fs.StringVar(&cfg.SoundRoot, "sound-root", cfg.SoundRoot, "Directory holding one-shot and loop sound folders")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory holding vocab, catalog, and SFX mapping files")
	fs.StringVar(&cfg.JournalPath, "journal", cfg.JournalPath, "SQLite play journal path (empty disables journaling)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed override for reproducible runs (0 uses a random seed)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the audio director runtime with an interactive command loop on
// stdin.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceDirector, func(ctx context.Context) error {
		return runSession(ctx, cfg, os.Stdin, os.Stdout)
	})
}
