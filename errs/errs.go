// Package errs implements the invoice core's error taxonomy: a stable kind, a
// short message and optional structured details, instead of exception-style
// unwinding across the artifact pipeline.
package errs

import "fmt"

// Kind is one of the error categories the invoice core can signal.
type Kind string

const (
	Validation          Kind = "VALIDATION"
	NotFound            Kind = "NOT_FOUND"
	Conflict            Kind = "CONFLICT"
	ReferenceInUse      Kind = "REFERENCE_IN_USE"
	FA3ValidationFailed Kind = "FA3_VALIDATION_FAILED"
	IOError             Kind = "IO_ERROR"
	Internal            Kind = "INTERNAL"
)

// Issue is one entry of a validation failure list: a field path plus a
// human-readable message.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the single error type every public boundary of the core returns.
type Error struct {
	Kind    Kind
	Message string
	Issues  []Issue // populated for Kind == Validation
	Details string  // e.g. validator stderr for Kind == FA3ValidationFailed
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return string(e.Kind) + ": " + e.Message
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf extracts the Kind of err, defaulting to Internal for unrecognised errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return Internal
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

func ValidationIssues(issues []Issue) *Error {
	return &Error{Kind: Validation, Message: "validation failed", Issues: issues}
}

func NotFoundf(format string, args ...any) *Error       { return New(NotFound, format, args...) }
func Conflictf(format string, args ...any) *Error       { return New(Conflict, format, args...) }
func ReferenceInUsef(format string, args ...any) *Error { return New(ReferenceInUse, format, args...) }
func Internalf(format string, args ...any) *Error       { return New(Internal, format, args...) }

// FA3Failed builds the FA3_VALIDATION_FAILED error carrying the external
// validator's stderr verbatim in Details.
func FA3Failed(stderr string) *Error {
	return &Error{Kind: FA3ValidationFailed, Message: "FA(3) XML failed schema validation", Details: stderr}
}

func IOErrorf(cause error, format string, args ...any) *Error {
	return Wrap(IOError, cause, format, args...)
}
