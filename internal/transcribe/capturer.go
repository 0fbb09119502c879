package transcribe

import (
	"context"
	"strings"
	"sync"
	"time"
)

// A State is a step of the capture lifecycle.
type State int

const (
	// StateIdle means no recording happened yet.
	StateIdle State = iota
	// StateRecording means a recognition stream is active.
	StateRecording
	// StateStopped means the stream ended and the transcript is final.
	StateStopped
	// StateError means the engine failed; no transcript is available.
	StateError
)

// MaxRecordingDuration is the watchdog limit of one recording session.
const MaxRecordingDuration = 60 * time.Second

// A Capturer accumulates the transcript of one recording session.
// Only one session may be active per capturer.
type Capturer struct {
	mu       sync.Mutex
	engine   Engine
	state    State
	segments []string
	err      error

	done     chan struct{}
	watchdog *time.Timer

	// MaxDuration is the forced-stop limit, MaxRecordingDuration by default.
	MaxDuration time.Duration
}

// NewCapturer returns an idle capturer using the given engine.
func NewCapturer(engine Engine) *Capturer {
	return &Capturer{
		engine:      engine,
		MaxDuration: MaxRecordingDuration,
	}
}

// State returns the current lifecycle state.
func (c *Capturer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Transcript returns the visible transcript: the in-order join of all
// segments observed so far. While recording it grows monotonically, with
// later refinements overwriting prior interim text.
func (c *Capturer) Transcript() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transcript()
}

// Start opens a recognition stream and transitions Idle to Recording.
// Starting while already recording is rejected with ErrAlreadyRecording.
func (c *Capturer) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateRecording {
		return ErrAlreadyRecording
	}

	events, err := c.engine.Start(ctx)
	if err != nil {
		return err
	}

	c.state = StateRecording
	c.segments = nil
	c.err = nil
	c.done = make(chan struct{})
	c.watchdog = time.AfterFunc(c.MaxDuration, c.engine.Stop)

	go c.consume(events, c.done, c.watchdog)
	return nil
}

// Stop finalizes the session and resolves with the accumulated transcript.
// With no active stream it resolves immediately with the last known
// transcript (possibly empty). An engine failure is reported as an
// EngineError and means "no transcript available".
func (c *Capturer) Stop() (string, error) {
	c.mu.Lock()
	if c.state != StateRecording {
		defer c.mu.Unlock()
		if c.err != nil {
			return "", c.err
		}
		return c.transcript(), nil
	}
	done := c.done
	c.mu.Unlock()

	c.engine.Stop()
	<-done // wait for the engine's last refinement

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return "", c.err
	}
	return c.transcript(), nil
}

// consume drains one recognition stream. done and watchdog are the session
// the stream belongs to: a restart after an engine failure replaces c.done,
// and a stale stream must not touch the session that replaced it.
func (c *Capturer) consume(events <-chan Event, done chan struct{}, watchdog *time.Timer) {
	for event := range events {
		c.mu.Lock()
		if c.done != done {
			c.mu.Unlock()
			continue
		}
		if event.Err != nil {
			c.state = StateError
			c.err = &EngineError{Code: event.Err.Error()}
			c.mu.Unlock()
			continue
		}

		for len(c.segments) <= event.Index {
			c.segments = append(c.segments, "")
		}
		c.segments[event.Index] = event.Text
		c.mu.Unlock()
	}

	c.mu.Lock()
	if c.done == done && c.state == StateRecording {
		c.state = StateStopped
	}
	watchdog.Stop()
	close(done)
	c.mu.Unlock()
}

func (c *Capturer) transcript() string {
	segments := make([]string, 0, len(c.segments))
	for _, segment := range c.segments {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return strings.Join(segments, " ")
}
