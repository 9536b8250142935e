package speech

import (
	"context"
	"errors"
	"testing"
)

func TestScriptEngineAuthorization(t *testing.T) {
	e := NewScriptEngine()

	if got := e.Authorization(); got != AuthUndetermined {
		t.Errorf("initial status = %v, want undetermined", got)
	}
	if got := e.RequestAuthorization(); got != AuthAuthorized {
		t.Errorf("after request = %v, want authorized", got)
	}
	if got := e.Authorization(); got != AuthAuthorized {
		t.Errorf("status = %v, want authorized", got)
	}
}

func TestScriptEngineDenies(t *testing.T) {
	e := NewScriptEngine()
	e.Grant = AuthDenied

	if got := e.RequestAuthorization(); got != AuthDenied {
		t.Errorf("after request = %v, want denied", got)
	}
}

func TestScriptEngineReplay(t *testing.T) {
	e := NewScriptEngine(
		Result{Text: "hello"},
		Result{Text: "hello wor"},
		Result{Text: "hello world", Final: true},
	)
	e.RequestAuthorization()

	results, err := e.Start(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	var got []Result
	for r := range results {
		got = append(got, r)
	}

	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	if got[2].Text != "hello world" || !got[2].Final {
		t.Errorf("last result = %+v, want final 'hello world'", got[2])
	}
}

func TestScriptEngineStopsAfterError(t *testing.T) {
	e := NewScriptEngine(
		Result{Text: "partial"},
		Result{Err: errors.New("engine fault")},
		Result{Text: "never delivered"},
	)
	e.RequestAuthorization()

	results, err := e.Start(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	var got []Result
	for r := range results {
		got = append(got, r)
	}

	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[1].Err == nil {
		t.Error("second result should carry the error")
	}
}

func TestScriptEngineCancellation(t *testing.T) {
	// No terminal result in the script: the stream must end on cancel.
	e := NewScriptEngine(Result{Text: "only"})
	e.RequestAuthorization()

	ctx, cancel := context.WithCancel(context.Background())
	results, err := e.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if r := <-results; r.Text != "only" {
		t.Errorf("text = %q, want %q", r.Text, "only")
	}

	cancel()
	if _, open := <-results; open {
		t.Error("channel should close after cancellation")
	}
}

func TestAuthStatusString(t *testing.T) {
	if got := AuthRestricted.String(); got != "restricted" {
		t.Errorf("String = %q, want %q", got, "restricted")
	}
	if got := AuthUndetermined.String(); got != "undetermined" {
		t.Errorf("String = %q, want %q", got, "undetermined")
	}
}
