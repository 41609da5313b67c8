// Package inmemory implements [memory.Provider] with a mutex-guarded slice.
// History is lost when the process exits, which matches the dev server's
// default thread semantics.
package inmemory
