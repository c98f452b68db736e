package rules

import "errors"

// Sentinel errors for registry construction.
var (
	// ErrInvalidRule indicates a rule definition with missing or conflicting fields.
	ErrInvalidRule = errors.New("invalid rule")
	// ErrInvalidPattern indicates a detection pattern that does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")
)
