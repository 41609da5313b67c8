// Package observability defines the minimal logging surface used across the
// agent: a structured [Observer] carried through context.Context, plus typed
// [Attribute] constructors and the shared attribute-key vocabulary.
//
// Components resolve the observer with [ObserverFromContext] and treat a nil
// result as "observability disabled", so hot paths pay nothing when no
// observer is installed. The default implementation lives in the slogobs
// subpackage and is backed by log/slog.
package observability
