package media

import "time"

// File describes a discovered candidate. Path is always absolute.
type File struct {
	Path    string
	Size    int64
	ModTime time.Time
	Kind    Kind
}
