// Package apperr defines the error kinds shared by the data, service and
// transport layers. Callers classify failures with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDependency reports that an optional backend is unavailable.
	ErrMissingDependency = errors.New("missing dependency")
	// ErrDataValidation reports Parquet contents that violate the expected schema.
	ErrDataValidation = errors.New("data validation")
	// ErrNotFound reports an unknown id, table or file.
	ErrNotFound = errors.New("not found")
)

type kindError struct {
	kind error
	msg  string
	err  error
}

func (e *kindError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *kindError) Unwrap() []error {
	if e.err != nil {
		return []error{e.kind, e.err}
	}
	return []error{e.kind}
}

// MissingDependency builds an ErrMissingDependency error.
func MissingDependency(format string, args ...any) error {
	return &kindError{kind: ErrMissingDependency, msg: fmt.Sprintf(format, args...)}
}

// DataValidation builds an ErrDataValidation error.
func DataValidation(format string, args ...any) error {
	return &kindError{kind: ErrDataValidation, msg: fmt.Sprintf(format, args...)}
}

// NotFound builds an ErrNotFound error.
func NotFound(format string, args ...any) error {
	return &kindError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind to an underlying cause, keeping both reachable
// through errors.Is and errors.As.
func Wrap(kind, cause error, format string, args ...any) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(format, args...), err: cause}
}

// Kind names the error kind of err for banners and API error codes.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrDataValidation):
		return "DATA_VALIDATION"
	case errors.Is(err, ErrMissingDependency):
		return "MISSING_DEPENDENCY"
	default:
		return "INTERNAL"
	}
}
