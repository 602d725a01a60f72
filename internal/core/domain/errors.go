package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidLabel is returned when a label string cannot be parsed.
	ErrInvalidLabel = zerr.New("invalid label")

	// ErrMissingLabel is returned when a dependency is constructed without a label.
	ErrMissingLabel = zerr.New("missing label")

	// ErrMissingConfiguration is returned when a configured dependency is constructed
	// without a configuration. Callers that want an unconfigured edge must say so
	// explicitly via UnconfiguredDependency.
	ErrMissingConfiguration = zerr.New("missing configuration")

	// ErrMissingAspectConfiguration is returned when a per-aspect dependency is
	// constructed with a nil aspect configuration map. An empty map is legal, an
	// absent one is a caller bug.
	ErrMissingAspectConfiguration = zerr.New("missing aspect configuration map")

	// ErrAspectNotAttached is returned when an aspect configuration is queried for
	// a descriptor the edge carries no mapping for. This is a precondition
	// violation on the caller side, never recovered internally.
	ErrAspectNotAttached = zerr.New("aspect not attached to dependency")

	// ErrTargetAlreadyExists is returned when adding a target whose label is
	// already present in the graph.
	ErrTargetAlreadyExists = zerr.New("target already exists")

	// ErrMissingTarget is returned when a target references a dependency label
	// that does not exist in the graph.
	ErrMissingTarget = zerr.New("missing target")

	// ErrTargetNotFound is returned when a requested target is not in the graph.
	ErrTargetNotFound = zerr.New("target not found")

	// ErrCycleDetected is returned when a cycle is detected in the target graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrUnknownConfiguration is returned when a manifest references a
	// configuration mnemonic that is not declared.
	ErrUnknownConfiguration = zerr.New("unknown configuration")

	// ErrUnknownAspect is returned when a target attaches an aspect that is not
	// declared in the manifest.
	ErrUnknownAspect = zerr.New("unknown aspect")

	// ErrConfigReadFailed is returned when the manifest file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read manifest file")

	// ErrConfigParseFailed is returned when the manifest file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse manifest file")

	// ErrNoTargetsSpecified is returned when an analysis run has nothing to analyze.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrAnalysisFailed is returned when the analysis run fails.
	ErrAnalysisFailed = zerr.New("analysis failed")
)

// WithDetail attaches a metadata pair to a sentinel while keeping it
// matchable with errors.Is. zerr.With on a bare sentinel returns a detached
// copy, so the pair is attached to a wrapper whose cause is the sentinel.
func WithDetail(sentinel error, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, ""), key, value)
}
