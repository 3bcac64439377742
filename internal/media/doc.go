// Package media models candidate files and their media kinds. A file's cache
// identity is the triple (path, size, mtime); any change to size or mtime
// invalidates cached state for the path.
package media
