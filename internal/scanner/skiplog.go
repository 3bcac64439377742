package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"winnow/internal/hashing"
)

// SkipLog is the shared append-only record of files excluded from grouping.
// Lines are tab-separated: timestamp, reason, path, optional detail. Each
// entry is a single O_APPEND write guarded by an advisory file lock, so
// concurrent workers (including separate `winnow worker` processes) never
// interleave lines.
type SkipLog struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
	file *os.File
}

// OpenSkipLog opens (creating if absent) the skip log at path.
func OpenSkipLog(path string) (*SkipLog, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create skip log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open skip log: %w", err)
	}
	return &SkipLog{
		path: path,
		lock: flock.New(path),
		file: file,
	}, nil
}

// Record appends one entry. Failures are returned but callers treat them as
// non-fatal; a lost skip record never aborts a scan.
func (l *SkipLog) Record(reason hashing.Reason, path, detail string) error {
	line := fmt.Sprintf("%s\t%s\t%s\t%s\n",
		time.Now().UTC().Format(time.RFC3339),
		reason,
		sanitizeField(path),
		sanitizeField(detail))

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.lock.Lock(); err != nil {
		return fmt.Errorf("lock skip log: %w", err)
	}
	defer func() { _ = l.lock.Unlock() }()

	if _, err := l.file.WriteString(line); err != nil {
		return fmt.Errorf("append skip log: %w", err)
	}
	return nil
}

// Path returns the skip log location.
func (l *SkipLog) Path() string {
	return l.path
}

// Close releases the underlying file handle.
func (l *SkipLog) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

func sanitizeField(value string) string {
	value = strings.ReplaceAll(value, "\t", " ")
	value = strings.ReplaceAll(value, "\n", " ")
	return value
}
