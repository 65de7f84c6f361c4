package domain

import "fmt"

// ErrorKind classifies failures surfaced inside pipeline results.
type ErrorKind string

const (
	KindMissingInput        ErrorKind = "missing_input"
	KindTimeout             ErrorKind = "timeout"
	KindTransport           ErrorKind = "transport_error"
	KindUnexpectedFetch     ErrorKind = "unexpected_fetch_error"
	KindEmptyContent        ErrorKind = "empty_content"
	KindMetricComputation   ErrorKind = "metric_computation_error"
	KindJudgmentFormat      ErrorKind = "judgment_format_error"
	KindJudgmentUnavailable ErrorKind = "judgment_unavailable"
)

// Sentinels usable with errors.Is against any *Error of the same kind.
var (
	ErrMissingInput        = &Error{Kind: KindMissingInput}
	ErrTimeout             = &Error{Kind: KindTimeout}
	ErrTransport           = &Error{Kind: KindTransport}
	ErrUnexpectedFetch     = &Error{Kind: KindUnexpectedFetch}
	ErrEmptyContent        = &Error{Kind: KindEmptyContent}
	ErrMetricComputation   = &Error{Kind: KindMetricComputation}
	ErrJudgmentFormat      = &Error{Kind: KindJudgmentFormat}
	ErrJudgmentUnavailable = &Error{Kind: KindJudgmentUnavailable}
)

// Error is a classified failure with a human-readable message.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	cause   error
}

// NewError wraps cause under the given kind.
func NewError(kind ErrorKind, cause error) *Error {
	e := &Error{Kind: kind, cause: cause}
	if cause != nil {
		e.Message = cause.Error()
	}
	return e
}

// Errorf builds a classified error from a format string.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return NewError(kind, fmt.Errorf(format, args...))
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error with the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
