package types

import "errors"

// Sentinel error kinds from §7. Callers wrap these with fmt.Errorf("...: %w", ErrX)
// so errors.Is still matches across the pipeline.
var (
	// ErrCancelled is returned when cooperative cancellation was observed.
	ErrCancelled = errors.New("cancelled")
	// ErrNotFound is returned when a file or directory the caller expected is absent.
	ErrNotFound = errors.New("not found")
	// ErrIO wraps an underlying read/write failure.
	ErrIO = errors.New("io error")
	// ErrParse marks malformed input the parser could not recover from.
	ErrParse = errors.New("parse error")
	// ErrConfig marks a missing or mistyped settings key the caller declared mandatory.
	ErrConfig = errors.New("config error")
	// ErrAnalyzer marks a single analyzer failure; never aborts the run.
	ErrAnalyzer = errors.New("analyzer error")
	// ErrInternal marks an invariant violation, surfaced to the caller verbatim.
	ErrInternal = errors.New("internal error")
)
