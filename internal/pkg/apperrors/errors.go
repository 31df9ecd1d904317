package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the lesson generation pipeline.
// Leaf components wrap these with %w so callers can branch with errors.Is.
var (
	// ErrCurriculumNotFound signals that no reference material exists for the
	// requested subject/topic/level. This is a data-absence condition, never retried.
	ErrCurriculumNotFound = errors.New("curriculum not found")

	// ErrMissingVariable signals a prompt template rendered without a binding
	// for one of its declared placeholders.
	ErrMissingVariable = errors.New("missing template variable")

	// ErrMalformedOutput signals that no valid JSON payload could be located
	// in a model response.
	ErrMalformedOutput = errors.New("malformed model output")

	// ErrGenerationFailed signals a transport/provider failure from the LLM gateway.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrUnauthorized signals a credential or ownership failure.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionNotFound covers both a missing session and a session owned by
	// another user. The two are indistinguishable on purpose.
	ErrSessionNotFound = errors.New("session not found")

	// ErrStageNotReady signals that a stage was requested before the previous
	// stage's required fields were persisted.
	ErrStageNotReady = errors.New("stage prerequisites not met")
)

// MalformedOutputError carries the raw model text for diagnostics.
type MalformedOutputError struct {
	Raw string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed model output (raw length %d)", len(e.Raw))
}

func (e *MalformedOutputError) Unwrap() error { return ErrMalformedOutput }

// MissingVariableError names the unbound placeholder and its template.
type MissingVariableError struct {
	Template string
	Variable string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("template %q: no binding for {%s}", e.Template, e.Variable)
}

func (e *MissingVariableError) Unwrap() error { return ErrMissingVariable }

// GenerationError attaches the underlying transport cause.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Cause)
}

func (e *GenerationError) Unwrap() error { return ErrGenerationFailed }

// IsRetryable reports whether the retry policy may re-attempt after err.
// Bad model samples (malformed output, missing variables) and transport
// failures are retryable; data-absence and ownership conditions are not.
func IsRetryable(err error) bool {
	switch {
	case errors.Is(err, ErrCurriculumNotFound),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrStageNotReady):
		return false
	default:
		return true
	}
}
