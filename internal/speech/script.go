package speech

import (
	"context"
	"sync"
	"time"
)

// ScriptEngine replays a fixed sequence of results. It backs the
// --simulate recording mode and the test suite.
type ScriptEngine struct {
	// Script is the sequence of results to emit, in order. Emission
	// stops early after a terminal result.
	Script []Result

	// Delay is the pause before each result.
	Delay time.Duration

	// Grant is the status RequestAuthorization moves to.
	// The zero value grants authorization.
	Grant AuthStatus

	mu     sync.Mutex
	status AuthStatus
}

// NewScriptEngine returns an engine that replays script once started.
// It begins undetermined and grants authorization on request.
func NewScriptEngine(script ...Result) *ScriptEngine {
	return &ScriptEngine{Script: script, Grant: AuthAuthorized}
}

func (e *ScriptEngine) RequestAuthorization() AuthStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = e.Grant
	return e.status
}

func (e *ScriptEngine) Authorization() AuthStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// SetAuthorization forces the current status. Test hook.
func (e *ScriptEngine) SetAuthorization(status AuthStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = status
}

func (e *ScriptEngine) Start(ctx context.Context) (<-chan Result, error) {
	ch := make(chan Result)
	go func() {
		defer close(ch)
		for _, r := range e.Script {
			if e.Delay > 0 {
				select {
				case <-time.After(e.Delay):
				case <-ctx.Done():
					return
				}
			}
			if !deliver(ctx, ch, r) {
				return
			}
			if r.Final || r.Err != nil {
				return
			}
		}
		// Script exhausted without a terminal result: wait for stop.
		<-ctx.Done()
	}()
	return ch, nil
}
