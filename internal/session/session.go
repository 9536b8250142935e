// Package session manages the lifecycle of one recording-and-
// transcription attempt over a speech engine.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jwulff/stenogram/internal/speech"
)

// Start preconditions.
var (
	ErrNotAuthorized    = errors.New("speech recognition not authorized")
	ErrAlreadyRecording = errors.New("recording already in progress")
)

// Update is one state change pushed toward the UI. The transcript text
// is a full replacement, never a delta. Elapsed is live while
// recording; the first non-recording update after a stop carries the
// frozen final duration.
type Update struct {
	Text      string
	Recording bool
	Err       string
	Elapsed   time.Duration
}

// Session coordinates audio capture, the recognition stream, and
// duration tracking for a single recording at a time. Recognition
// results are produced on a background goroutine and forwarded over
// the updates channel to a single consumer.
type Session struct {
	engine speech.Engine

	mu          sync.Mutex
	recording   bool
	text        string
	errMsg      string
	startedAt   time.Time
	lastElapsed time.Duration
	cancel      context.CancelFunc

	updates chan Update
}

// New creates an idle session over the given engine.
func New(engine speech.Engine) *Session {
	return &Session{
		engine:  engine,
		updates: make(chan Update, 16),
	}
}

// RequestAuthorization asks the engine for permission.
func (s *Session) RequestAuthorization() speech.AuthStatus {
	return s.engine.RequestAuthorization()
}

// Authorization reports the engine's current permission status.
func (s *Session) Authorization() speech.AuthStatus {
	return s.engine.Authorization()
}

// Start opens the recognition stream and transitions to recording.
// Failures are non-fatal: they set the session error, leave the state
// idle, and release anything already acquired.
func (s *Session) Start() error {
	s.mu.Lock()
	if s.recording {
		s.mu.Unlock()
		return ErrAlreadyRecording
	}
	if s.engine.Authorization() != speech.AuthAuthorized {
		s.errMsg = ErrNotAuthorized.Error()
		s.mu.Unlock()
		s.notify()
		return ErrNotAuthorized
	}
	// Discard any previous attempt before acquiring anything.
	s.text = ""
	s.errMsg = ""
	s.lastElapsed = 0
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	results, err := s.engine.Start(ctx)
	if err != nil {
		cancel()
		s.mu.Lock()
		s.errMsg = fmt.Sprintf("recording failed to start: %v", err)
		s.mu.Unlock()
		s.notify()
		return fmt.Errorf("start recognition: %w", err)
	}

	s.mu.Lock()
	s.cancel = cancel
	s.startedAt = time.Now()
	s.recording = true
	s.mu.Unlock()

	go s.consume(results)
	s.notify()
	return nil
}

// consume is the single reader of the recognition stream. Each
// non-terminal result replaces the transcript; a terminal result stops
// the session, surfacing the error (if any) after teardown.
func (s *Session) consume(results <-chan speech.Result) {
	for r := range results {
		if r.Err != nil {
			s.finish("recognition error: " + r.Err.Error())
			return
		}

		s.mu.Lock()
		s.text = r.Text
		s.mu.Unlock()
		s.notify()

		if r.Final {
			s.finish("")
			return
		}
	}
	// Stream closed without a terminal result (engine stopped or the
	// session was cancelled).
	s.finish("")
}

// finish tears down after a terminal recognition event. Idempotent with
// respect to a concurrent Stop.
func (s *Session) finish(errMsg string) {
	s.mu.Lock()
	if s.recording {
		s.stopLocked()
	}
	if errMsg != "" {
		s.errMsg = errMsg
	}
	s.mu.Unlock()
	s.notify()
}

// Stop tears down the recognition stream and returns the transcript
// and elapsed duration captured at stop time. Calling Stop when idle
// is a no-op that returns the current text and a zero duration.
func (s *Session) Stop() (string, time.Duration) {
	s.mu.Lock()
	if !s.recording {
		text := s.text
		s.mu.Unlock()
		return text, 0
	}
	text, elapsed := s.stopLocked()
	s.mu.Unlock()
	s.notify()
	return text, elapsed
}

// stopLocked releases all session handles. Caller holds the lock and
// has checked s.recording.
func (s *Session) stopLocked() (string, time.Duration) {
	elapsed := time.Since(s.startedAt)
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.startedAt = time.Time{}
	s.recording = false
	s.lastElapsed = elapsed
	return s.text, elapsed
}

// Reset clears the transcript and error without touching the recording
// state. Used to discard an unsaved transcript.
func (s *Session) Reset() {
	s.mu.Lock()
	s.text = ""
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()
}

// Recording reports whether a recording is in progress.
func (s *Session) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}

// Transcript returns the accumulated best hypothesis.
func (s *Session) Transcript() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Err returns the current user-visible error message, if any.
func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Elapsed returns the live recording duration, or zero when idle.
// Callers that need the final duration must capture it from Stop.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.recording {
		return 0
	}
	return time.Since(s.startedAt)
}

// Updates returns the channel of state changes. Intended for a single
// consumer; sends never block the producer.
func (s *Session) Updates() <-chan Update {
	return s.updates
}

func (s *Session) notify() {
	s.mu.Lock()
	u := Update{Text: s.text, Recording: s.recording, Err: s.errMsg, Elapsed: s.lastElapsed}
	if s.recording {
		u.Elapsed = time.Since(s.startedAt)
	}
	s.mu.Unlock()

	select {
	case s.updates <- u:
	default:
	}
}
