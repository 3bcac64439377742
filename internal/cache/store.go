package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"winnow/internal/logging"
)

// Store manages hash cache persistence backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

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

// Open initializes or connects to the hash cache database at path. Schema
// creation is idempotent; the store is long-lived and closed only at process
// exit.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("cache database path required")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	// Pragmas ride in the DSN so every pooled connection gets them; an Exec
	// after Open would configure only the one connection it happened to run
	// on, leaving fresh connections with busy_timeout=0.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	store := &Store{db: db, path: path, logger: logging.NewComponentLogger(logger, "cache")}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Get returns the cached hash for path when the stored mtime and size match
// exactly. A mismatch or absent row is a miss, never an error.
func (s *Store) Get(ctx context.Context, path string, mtime time.Time, size int64) (string, bool, error) {
	ctx = ensureContext(ctx)

	var (
		storedMtime int64
		storedSize  int64
		hash        string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT mtime, size, hash FROM hash_cache WHERE path = ?", path,
	).Scan(&storedMtime, &storedSize, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query hash cache: %w", err)
	}

	if storedMtime != mtime.UnixNano() || storedSize != size {
		return "", false, nil
	}
	return hash, true, nil
}

// Put replaces the row for path with the given identity and hash. At most one
// live entry exists per path.
func (s *Store) Put(ctx context.Context, path string, mtime time.Time, size int64, hash string) error {
	ctx = ensureContext(ctx)

	err := retryOnBusy(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx,
			`INSERT INTO hash_cache (path, mtime, size, hash, updated_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(path) DO UPDATE SET
			   mtime = excluded.mtime,
			   size = excluded.size,
			   hash = excluded.hash,
			   updated_at = excluded.updated_at`,
			path, mtime.UnixNano(), size, hash, time.Now().UTC().Format(time.RFC3339))
		return execErr
	})
	if err != nil {
		return fmt.Errorf("store hash cache entry: %w", err)
	}

	s.logger.Debug("cached hash",
		logging.String("path", path),
		logging.Int64("size", size))
	return nil
}

// Count returns the number of cached entries.
func (s *Store) Count(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM hash_cache").Scan(&count); err != nil {
		return 0, fmt.Errorf("count hash cache entries: %w", err)
	}
	return count, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
