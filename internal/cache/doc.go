// Package cache persists normalized hashes keyed by file identity
// (path, mtime, size) in SQLite. A lookup hits only when the stored mtime and
// size exactly match the file's current values; any mismatch is a miss. The
// store tolerates concurrent readers and retries briefly on write contention.
package cache
