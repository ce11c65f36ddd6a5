// Package playlog persists the session's audio history in SQLite. The journal
// is advisory: the director keeps running when appends fail, so callers are
// expected to log errors rather than abort on them.
package playlog

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	platformerrors "github.com/hollowvale/bard/internal/platform/errors"
	"github.com/hollowvale/bard/internal/platform/storage/sqlitemigrate"
	"github.com/hollowvale/bard/internal/playlog/migrations"
	_ "modernc.org/sqlite"
)

// Entry records one director state change.
type Entry struct {
	OccurredAt time.Time
	Mood       string
	Intensity  float64
	Track      string
	TrackPath  string
	Reason     string
}

// SFXEntry records one triggered sound effect. Channel is empty for one-shots.
type SFXEntry struct {
	OccurredAt time.Time
	Category   string
	Path       string
	Channel    string
}

// Store persists journal rows in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite journal at path and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, platformerrors.New(platformerrors.CodePlaylogOpenFailed, "journal path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.CodePlaylogOpenFailed, "open journal db", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, platformerrors.Wrap(platformerrors.CodePlaylogOpenFailed, "ping journal db", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, platformerrors.Wrap(platformerrors.CodePlaylogOpenFailed, "run journal migrations", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// AppendStateChange inserts one state change row.
func (s *Store) AppendStateChange(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return platformerrors.New(platformerrors.CodePlaylogAppendFailed, "journal is not configured")
	}
	occurredAt := entry.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO state_changes (
		   occurred_at, mood, intensity, track, track_path, reason
		 ) VALUES (?, ?, ?, ?, ?, ?)`,
		toMillis(occurredAt),
		entry.Mood,
		entry.Intensity,
		entry.Track,
		entry.TrackPath,
		entry.Reason,
	)
	if err != nil {
		return platformerrors.Wrap(platformerrors.CodePlaylogAppendFailed, "append state change", err)
	}
	return nil
}

// AppendSFX inserts one SFX trigger row.
func (s *Store) AppendSFX(ctx context.Context, entry SFXEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return platformerrors.New(platformerrors.CodePlaylogAppendFailed, "journal is not configured")
	}
	occurredAt := entry.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO sfx_triggers (
		   occurred_at, category, path, channel
		 ) VALUES (?, ?, ?, ?)`,
		toMillis(occurredAt),
		entry.Category,
		entry.Path,
		entry.Channel,
	)
	if err != nil {
		return platformerrors.Wrap(platformerrors.CodePlaylogAppendFailed, "append sfx trigger", err)
	}
	return nil
}

// RecentTracks returns the newest journal entries that carry a track, most
// recent first. A non-empty mood restricts the result to that mood.
func (s *Store) RecentTracks(ctx context.Context, mood string, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, platformerrors.New(platformerrors.CodePlaylogAppendFailed, "journal is not configured")
	}
	if limit <= 0 {
		limit = 20
	}
	mood = strings.TrimSpace(mood)

	var (
		rows *sql.Rows
		err  error
	)
	if mood == "" {
		rows, err = s.sqlDB.QueryContext(
			ctx,
			`SELECT occurred_at, mood, intensity, track, track_path, reason
			   FROM state_changes
			  WHERE track != ''
			  ORDER BY occurred_at DESC, id DESC
			  LIMIT ?`,
			limit,
		)
	} else {
		rows, err = s.sqlDB.QueryContext(
			ctx,
			`SELECT occurred_at, mood, intensity, track, track_path, reason
			   FROM state_changes
			  WHERE track != '' AND mood = ?
			  ORDER BY occurred_at DESC, id DESC
			  LIMIT ?`,
			mood,
			limit,
		)
	}
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.CodePlaylogAppendFailed, "list recent tracks", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var occurredAt int64
		if err := rows.Scan(
			&occurredAt,
			&entry.Mood,
			&entry.Intensity,
			&entry.Track,
			&entry.TrackPath,
			&entry.Reason,
		); err != nil {
			return nil, platformerrors.Wrap(platformerrors.CodePlaylogAppendFailed, "list recent tracks", err)
		}
		entry.OccurredAt = fromMillis(occurredAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, platformerrors.Wrap(platformerrors.CodePlaylogAppendFailed, "list recent tracks", err)
	}
	return entries, nil
}
