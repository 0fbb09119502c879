// Package apierror defines the error format rendered by the notes API.
package apierror

import "net/http"

type (
	// An Error represents the error format that can be rendered by the notes server.
	Error struct {
		HTTPCode   int `json:"-"`
		FieldError err `json:"error"`
	}

	err struct {
		Tag     string            `json:"tag,omitempty"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields,omitempty"`
	}
)

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if apierr, ok := err.(*Error); ok && apierr.HTTPCode > 0 {
		return apierr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new Error with the given message.
func New(message string) *Error {
	return &Error{FieldError: err{Message: message}}
}

// NewWithTagCode returns a new Error with the given code, tag and message.
func NewWithTagCode(code int, tag, message string) *Error {
	return &Error{HTTPCode: code, FieldError: err{Tag: tag, Message: message}}
}

// Validation returns a 400 error carrying field-level details.
func Validation(message string, fields map[string]string) *Error {
	return &Error{
		HTTPCode:   http.StatusBadRequest,
		FieldError: err{Tag: "validation", Message: message, Fields: fields},
	}
}

// NotFound returns a 404 error.
// It is also used for mutations on foreign notes so their existence is not leaked.
func NotFound(message string) *Error {
	return NewWithTagCode(http.StatusNotFound, "not-found", message)
}

// Unauthorized returns a 401 error.
func Unauthorized(message string) *Error {
	return NewWithTagCode(http.StatusUnauthorized, "invalid-auth", message)
}

// Error implements error interface.
func (e *Error) Error() string {
	return e.FieldError.Message
}

// Tag returns the error classification tag.
func (e *Error) Tag() string {
	return e.FieldError.Tag
}
