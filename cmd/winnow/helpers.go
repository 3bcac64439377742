package main

import (
	"fmt"

	"winnow/internal/cache"
	"winnow/internal/logging"
)

// exitCodeError carries a specific process exit code through cobra's error
// return. A nil wrapped error exits silently (compare uses exit 1 to mean
// "files differ", which is not a failure to report).
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitCodeError) Unwrap() error {
	return e.err
}

func exitWithCode(code int, err error) error {
	return &exitCodeError{code: code, err: err}
}

// openCacheUnlessDisabled opens the hash cache at path, or returns a nil
// store (and a no-op closer) when caching is bypassed.
func openCacheUnlessDisabled(path string, disabled bool) (*cache.Store, func(), error) {
	if disabled {
		return nil, func() {}, nil
	}
	store, err := cache.Open(path, logging.NewNop())
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}
