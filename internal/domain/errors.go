package domain

import (
	"errors"
	"net/http"
)

// Code classifies an AppError. Each code maps to exactly one HTTP status.
type Code int

const (
	CodeNotFound Code = iota + 1
	CodeAlreadyExists
	CodeValidation
	CodeInternal
	CodeMissingPathSegment
	CodeInvalidPathSegment
	CodeInvalidReference
)

var codeStatus = map[Code]int{
	CodeNotFound:           http.StatusNotFound,
	CodeAlreadyExists:      http.StatusConflict,
	CodeValidation:         http.StatusBadRequest,
	CodeInternal:           http.StatusInternalServerError,
	CodeMissingPathSegment: http.StatusNotFound,
	CodeInvalidPathSegment: http.StatusBadRequest,
	CodeInvalidReference:   http.StatusUnprocessableEntity,
}

// Status returns the HTTP status for c, or 500 for an unknown code.
func (c Code) Status() int {
	if s, ok := codeStatus[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// AppError is an error the HTTP layer knows how to render: Code picks the
// status and Message is safe to show to clients. Err keeps the cause for logs.
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any *AppError carrying the same code, so
// errors.Is(err, ErrNotFound) holds for every not-found error, not just the
// sentinel itself.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// ErrNotFound is the sentinel for errors.Is comparisons. Construct new
// instances with NewAppError when a message or cause is needed.
var ErrNotFound = &AppError{Code: CodeNotFound, Message: "not found"}

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code Code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// MissingPathSegment reports that the matched route did not carry the named
// primary key segment. The path does not address a resource, so it maps to 404.
func MissingPathSegment(segment string) *AppError {
	return NewAppError(CodeMissingPathSegment, "missing path segment "+segment, nil)
}

// InvalidPathSegment reports that the named primary key segment could not be
// parsed into its column type.
func InvalidPathSegment(segment string, err error) *AppError {
	return NewAppError(CodeInvalidPathSegment, "invalid path segment "+segment, err)
}

// IsNotFound reports whether err carries CodeNotFound.
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }

// CodeOf returns the code of the first *AppError in err's chain, or 0 when
// there is none.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return 0
}

// HTTPStatusCode maps err to an HTTP status. Errors that are not an
// *AppError are internal.
func HTTPStatusCode(err error) int {
	return CodeOf(err).Status()
}
