package libnotes

import (
	"encoding/json"
	"io"
)

// An APIError represents an HTTP error returned by the notes server.
type APIError struct {
	StatusCode int
	Err        struct {
		Tag     string            `json:"tag"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func parseAPIError(r io.Reader, code int) error {
	var apierr APIError
	dec := json.NewDecoder(r)
	if err := dec.Decode(&apierr); err != nil {
		return err
	}
	apierr.StatusCode = code
	return &apierr
}

func (e *APIError) Error() string {
	return e.Err.Message
}
