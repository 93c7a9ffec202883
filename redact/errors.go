package redact

import "errors"

// Sentinel errors returned when a [Redactor] or [RedactingFormatter] is
// constructed from bad settings. Compare with [errors.Is].
var (
	// ErrInvalidField is returned for a field name that is empty or contains
	// the separator, "=", or a regular-expression metacharacter.
	ErrInvalidField = errors.New("redact: invalid field name")

	// ErrInvalidSeparator is returned when the separator is not exactly one
	// character.
	ErrInvalidSeparator = errors.New("redact: separator must be a single character")
)
