// Package group aggregates per-file hashing results into duplicate groups.
// Aggregation is single-threaded and runs after the worker pool has drained.
package group
