package cli

import (
	"testing"

	"github.com/jwulff/stenogram/internal/db"
	"github.com/jwulff/stenogram/internal/transcript"
)

func newTestStore(t *testing.T) *transcript.Store {
	t.Helper()
	slots, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { slots.Close() })
	return transcript.NewStore(slots)
}

func TestResolveByPosition(t *testing.T) {
	store := newTestStore(t)
	store.Create(transcript.New("Older", "a", 0))
	store.Create(transcript.New("Newer", "b", 0))

	got, err := resolve(store, "1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Title != "Newer" {
		t.Errorf("position 1 = %q, want newest", got.Title)
	}

	got, err = resolve(store, "2")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.Title != "Older" {
		t.Errorf("position 2 = %q, want Older", got.Title)
	}
}

func TestResolvePositionOutOfRange(t *testing.T) {
	store := newTestStore(t)
	store.Create(transcript.New("Only", "a", 0))

	if _, err := resolve(store, "0"); err == nil {
		t.Error("position 0 should fail")
	}
	if _, err := resolve(store, "2"); err == nil {
		t.Error("position past the end should fail")
	}
}

func TestResolveByIDPrefix(t *testing.T) {
	store := newTestStore(t)
	tr := transcript.New("Target", "a", 0)
	store.Create(tr)

	got, err := resolve(store, tr.ID[:8])
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.ID != tr.ID {
		t.Errorf("resolved %q, want %q", got.ID, tr.ID)
	}
}

func TestResolveNoMatch(t *testing.T) {
	store := newTestStore(t)

	if _, err := resolve(store, "deadbeef"); err == nil {
		t.Error("unknown prefix should fail")
	}
}
