// Package report persists the structured scan report and aggregate
// statistics for external presentation layers. A prior report is renamed
// with a timestamp suffix before a new one is written, never overwritten
// silently.
package report
