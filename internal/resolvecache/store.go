package resolvecache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"boardshelf/internal/collection"
)

// Resolution is one cached identity resolution.
type Resolution struct {
	OriginalLine string
	GameName     string
	BGGID        string
	MatchedName  string
	Year         string
	Status       string
	Confidence   collection.Confidence
	ResolvedAt   time.Time
}

// Store manages resolution persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open initializes or connects to the resolution cache database.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("cache path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the cached resolution for an input line, if present.
func (s *Store) Get(ctx context.Context, originalLine string) (*Resolution, bool, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `
		SELECT original_line, game_name, bgg_id, matched_name, year, status, confidence, resolved_at
		FROM resolutions WHERE original_line = ?`, originalLine)

	var res Resolution
	var confidence, resolvedAt string
	err := row.Scan(&res.OriginalLine, &res.GameName, &res.BGGID, &res.MatchedName,
		&res.Year, &res.Status, &confidence, &resolvedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query resolution: %w", err)
	}
	res.Confidence = collection.Confidence(confidence)
	if ts, parseErr := time.Parse(time.RFC3339, resolvedAt); parseErr == nil {
		res.ResolvedAt = ts
	}
	return &res, true, nil
}

// Put stores or replaces the resolution for an input line.
func (s *Store) Put(ctx context.Context, res *Resolution) error {
	if res == nil || strings.TrimSpace(res.OriginalLine) == "" {
		return errors.New("resolution requires an original line")
	}
	resolvedAt := res.ResolvedAt
	if resolvedAt.IsZero() {
		resolvedAt = time.Now()
	}
	return s.execWithoutResultRetry(ensureContext(ctx), `
		INSERT INTO resolutions (original_line, game_name, bgg_id, matched_name, year, status, confidence, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(original_line) DO UPDATE SET
			game_name = excluded.game_name,
			bgg_id = excluded.bgg_id,
			matched_name = excluded.matched_name,
			year = excluded.year,
			status = excluded.status,
			confidence = excluded.confidence,
			resolved_at = excluded.resolved_at`,
		res.OriginalLine, res.GameName, res.BGGID, res.MatchedName,
		res.Year, res.Status, string(res.Confidence), resolvedAt.UTC().Format(time.RFC3339))
}

// Count returns the number of cached resolutions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ensureContext(ctx), "SELECT COUNT(1) FROM resolutions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count resolutions: %w", err)
	}
	return count, nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithoutResultRetry(ctx context.Context, query string, args ...any) error {
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}
