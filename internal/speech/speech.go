// Package speech defines the boundary to the external speech-recognition
// capability: an authorization model and a stream of incremental
// best-hypothesis results.
package speech

import "context"

// AuthStatus mirrors the platform authorization states for microphone
// and speech recognition.
type AuthStatus int

const (
	AuthUndetermined AuthStatus = iota
	AuthAuthorized
	AuthDenied
	AuthRestricted
)

func (s AuthStatus) String() string {
	switch s {
	case AuthAuthorized:
		return "authorized"
	case AuthDenied:
		return "denied"
	case AuthRestricted:
		return "restricted"
	default:
		return "undetermined"
	}
}

// Result is one incremental recognition event. Text carries the best
// hypothesis for the entire utterance so far; consumers replace, never
// append. Final and Err are the two end-of-stream variants: after
// either, no further results arrive and the channel closes.
type Result struct {
	Text  string
	Final bool
	Err   error
}

// Engine abstracts a speech-recognition backend.
type Engine interface {
	// RequestAuthorization asks the backend for permission and returns
	// the resulting status.
	RequestAuthorization() AuthStatus

	// Authorization reports the current status without prompting.
	Authorization() AuthStatus

	// Start opens audio capture and begins streaming results. A failed
	// start leaves no partial resources attached. Cancel ctx to stop;
	// the results channel closes after a terminal event or cancellation.
	Start(ctx context.Context) (<-chan Result, error)
}

// deliver sends a result unless ctx is done. It reports whether the
// result was delivered.
func deliver(ctx context.Context, ch chan<- Result, r Result) bool {
	select {
	case ch <- r:
		return true
	case <-ctx.Done():
		return false
	}
}
