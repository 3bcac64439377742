// Package logging provides slog-based structured logging with a compact
// console handler and a JSON handler, plus attribute helpers shared by all
// winnow components.
package logging
