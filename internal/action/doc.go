// Package action applies the configured disposition to duplicate group
// members. Per-member failures are logged and skipped; one failure never
// aborts the group or the scan, and no sequence of steps leaves a duplicate
// path without valid content.
package action
