// Package scanner runs the per-file hashing pipeline (cache lookup,
// normalization, digest, cache write-back) under a bounded worker pool and
// records non-comparable files in a shared append-only skip log.
package scanner
