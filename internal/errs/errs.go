package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the recruitment core. Handlers map these onto HTTP
// status codes in the central fiber error handler; services wrap them with
// context via fmt.Errorf("...: %w", err).
var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrPreconditionFailed  = errors.New("precondition failed")
	ErrConflict            = errors.New("conflict")
	ErrUpstreamService     = errors.New("upstream service error")
	ErrMalformedAIResponse = errors.New("malformed AI response")

	// Conflict family.
	ErrStepInUse            = fmt.Errorf("%w: step is in use by applicants", ErrConflict)
	ErrDuplicateApplication = fmt.Errorf("%w: application already exists for this job", ErrConflict)
	ErrAlreadyCompleted     = fmt.Errorf("%w: this step has already been completed", ErrConflict)

	// Document extraction family.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrEmptyDocument     = errors.New("document contains no extractable text")

	// Interview analysis.
	ErrTranscriptTooShort = errors.New("interview transcript is too short or empty")
)

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

// Preconditionf wraps ErrPreconditionFailed with a formatted message.
func Preconditionf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrPreconditionFailed}, args...)...)
}

// Upstreamf wraps ErrUpstreamService with a formatted message.
func Upstreamf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrUpstreamService}, args...)...)
}
