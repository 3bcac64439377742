package media

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Discover walks root and returns every regular file beneath it, in walk
// order. Kind and size checks happen later, per file, so that one odd entry
// never aborts enumeration; an invalid root is the only fatal condition.
func Discover(root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve scan root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("scan root %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", abs)
	}

	var paths []string
	walkErr := filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees surface later as per-file skips; keep walking.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", abs, walkErr)
	}
	return paths, nil
}
