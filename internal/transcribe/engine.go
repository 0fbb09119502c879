// Package transcribe turns a live recognition stream into an accumulating
// transcript. The recognition engine itself is a capability: environments
// without one plug in a mock and the capture flow still works headless.
package transcribe

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnsupported is returned when no recognition engine is available.
	ErrUnsupported = errors.New("speech recognition is not supported in this environment")
	// ErrPermissionDenied is returned when microphone access is refused.
	ErrPermissionDenied = errors.New("microphone access denied")
	// ErrAlreadyRecording is returned by Start while a session is active.
	ErrAlreadyRecording = errors.New("a recording session is already active")
)

type (
	// An Event is one recognition result for the segment at Index.
	// Later events for the same Index replace the previous text, so interim
	// results are refined in place instead of being appended.
	Event struct {
		Index int
		Text  string
		Final bool
		// Err reports a terminal engine failure; the stream ends after it.
		Err error
	}

	// An Engine is a continuous, interim-enabled recognition stream.
	Engine interface {
		// Start opens the stream. The returned channel is closed once the
		// engine has flushed its last refinement after Stop.
		Start(ctx context.Context) (<-chan Event, error)
		// Stop requests end-of-stream. It is safe to call it more than once.
		Stop()
	}
)

// An EngineError carries the recognition engine's error code.
// Callers must treat it as "no transcript available", not as a fatal error.
type EngineError struct {
	Code string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("speech recognition error: %s", e.Code)
}
