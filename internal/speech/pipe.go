package speech

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"sync"
)

// PipeEngine streams recognition results from an external recognizer
// process that writes NDJSON events to stdout, one per line:
//
//	{"text":"hello wor","final":false}
//	{"text":"hello world","final":true}
//	{"error":"microphone unavailable"}
type PipeEngine struct {
	command string
	args    []string

	mu     sync.Mutex
	status AuthStatus
}

// NewPipeEngine returns an engine backed by the given recognizer
// command.
func NewPipeEngine(command string, args ...string) *PipeEngine {
	return &PipeEngine{command: command, args: args}
}

// RequestAuthorization resolves the recognizer command; a missing
// command maps to denied.
func (e *PipeEngine) RequestAuthorization() AuthStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := exec.LookPath(e.command); err != nil {
		e.status = AuthDenied
	} else {
		e.status = AuthAuthorized
	}
	return e.status
}

func (e *PipeEngine) Authorization() AuthStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// pipeEvent mirrors one NDJSON line from the recognizer.
type pipeEvent struct {
	Text  string `json:"text"`
	Final bool   `json:"final,omitempty"`
	Error string `json:"error,omitempty"`
}

func (e *PipeEngine) Start(ctx context.Context) (<-chan Result, error) {
	cmd := exec.CommandContext(ctx, e.command, e.args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("recognizer stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start recognizer: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024) // 1MB buffer

	ch := make(chan Result)
	go func() {
		defer close(ch)
		defer cmd.Wait()

		for scanner.Scan() {
			var ev pipeEvent
			if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
				deliver(ctx, ch, Result{Err: fmt.Errorf("unmarshal event: %w", err)})
				return
			}
			if ev.Error != "" {
				deliver(ctx, ch, Result{Err: errors.New(ev.Error)})
				return
			}
			if !deliver(ctx, ch, Result{Text: ev.Text, Final: ev.Final}) {
				return
			}
			if ev.Final {
				return
			}
		}
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			deliver(ctx, ch, Result{Err: fmt.Errorf("read event: %w", err)})
		}
	}()

	return ch, nil
}
