// Package slogobs implements [observability.Observer] on top of the standard
// library's log/slog. It is the default observer wired into the CLI and dev
// server binaries.
package slogobs
