package transcribe

import (
	"context"
	"sync"
	"time"
)

// A MockEngine plays a scripted recognition stream. It backs the headless
// test environments and the server-side transcription endpoint.
type MockEngine struct {
	// StartErr makes Start fail, e.g. with ErrUnsupported.
	StartErr error
	// Events is the script played once the stream is started.
	Events []Event
	// Interval is an optional delay between scripted events.
	Interval time.Duration
	// Hang keeps the stream open after the script until Stop is called.
	Hang bool

	mu      sync.Mutex
	stop    chan struct{}
	stopped bool
}

// NewMockEngine returns an engine scripting the given interim texts, each
// one refining the same growing transcript like a live recognizer does.
func NewMockEngine(texts ...string) *MockEngine {
	engine := &MockEngine{}
	for i, text := range texts {
		engine.Events = append(engine.Events, Event{Index: 0, Text: text, Final: i == len(texts)-1})
	}
	return engine
}

// Start implements Engine.
func (e *MockEngine) Start(ctx context.Context) (<-chan Event, error) {
	if e.StartErr != nil {
		return nil, e.StartErr
	}

	e.mu.Lock()
	e.stop = make(chan struct{})
	e.stopped = false
	stop := e.stop
	e.mu.Unlock()

	events := make(chan Event)
	go func() {
		defer close(events)

		for _, event := range e.Events {
			if e.Interval > 0 {
				select {
				case <-time.After(e.Interval):
				case <-stop:
					return
				case <-ctx.Done():
					return
				}
			}

			// Pending refinements are flushed even when a stop was
			// requested, like a live recognizer finalizing its results.
			events <- event
		}

		if e.Hang {
			select {
			case <-stop:
			case <-ctx.Done():
			}
		}
	}()

	return events, nil
}

// Stop implements Engine.
func (e *MockEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stop == nil || e.stopped {
		return
	}
	e.stopped = true
	close(e.stop)
}
