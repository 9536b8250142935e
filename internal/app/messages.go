package app

import (
	"github.com/jwulff/stenogram/internal/session"
	"github.com/jwulff/stenogram/internal/speech"
)

// SessionUpdateMsg wraps a state change streamed from the recording
// session.
type SessionUpdateMsg struct {
	Update session.Update
}

// AuthorizationMsg carries the result of an authorization request.
type AuthorizationMsg struct {
	Status speech.AuthStatus
}

// TickMsg refreshes the elapsed-time display while recording.
type TickMsg struct{}

// SummaryReadyMsg delivers an asynchronously generated summary.
type SummaryReadyMsg struct {
	ID      string // transcript the summary belongs to
	Gen     int    // generation counter; stale results are dropped
	Summary string
	Err     error
}

// ExportDoneMsg reports the outcome of an export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// ClearWarningMsg clears a transient warning after a timeout.
type ClearWarningMsg struct{}
