package transcript

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jwulff/stenogram/internal/db"
)

// slotKey names the slot holding the serialized collection.
const slotKey = "transcripts"

// envelopeVersion tags the serialized form for future migration.
const envelopeVersion = 1

type envelope struct {
	Version     int          `json:"version"`
	Transcripts []Transcript `json:"transcripts"`
}

// Store holds the transcript collection, newest first. Every mutation
// rewrites the whole collection into a single slot; there is no
// incremental persistence. Save errors are returned to the caller so
// the UI can warn, load errors degrade to an empty collection.
type Store struct {
	mu          sync.Mutex
	slots       *db.Store
	transcripts []Transcript
}

// NewStore creates a store backed by the given slot database and loads
// any previously persisted collection. Missing or unparseable data
// leaves the store empty.
func NewStore(slots *db.Store) *Store {
	s := &Store{slots: slots}
	s.load()
	return s
}

func (s *Store) load() {
	data, ok, err := s.slots.Get(slotKey)
	if err != nil || !ok {
		return
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return
	}
	s.transcripts = env.Transcripts
}

// save must be called with the lock held.
func (s *Store) save() error {
	env := envelope{Version: envelopeVersion, Transcripts: s.transcripts}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode transcripts: %w", err)
	}
	if err := s.slots.Put(slotKey, data); err != nil {
		return fmt.Errorf("persist transcripts: %w", err)
	}
	return nil
}

// Create inserts the transcript at the front of the collection.
func (s *Store) Create(t Transcript) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcripts = append([]Transcript{t}, s.transcripts...)
	return s.save()
}

// Update replaces the transcript with the same ID, keeping its
// position. An unknown ID is a no-op, not an error.
func (s *Store) Update(t Transcript) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.transcripts {
		if s.transcripts[i].ID == t.ID {
			s.transcripts[i] = t
			return s.save()
		}
	}
	return nil
}

// Delete removes the transcript with the given ID.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.transcripts {
		if s.transcripts[i].ID == id {
			s.transcripts = append(s.transcripts[:i], s.transcripts[i+1:]...)
			return s.save()
		}
	}
	return nil
}

// DeleteAt removes the transcripts at the given positions, preserving
// the relative order of the remainder. Out-of-range positions are
// ignored.
func (s *Store) DeleteAt(positions ...int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[int]bool, len(positions))
	for _, p := range positions {
		if p >= 0 && p < len(s.transcripts) {
			drop[p] = true
		}
	}
	if len(drop) == 0 {
		return nil
	}

	kept := s.transcripts[:0]
	for i, t := range s.transcripts {
		if !drop[i] {
			kept = append(kept, t)
		}
	}
	s.transcripts = kept
	return s.save()
}

// Get returns the transcript with the given ID.
func (s *Store) Get(id string) (Transcript, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.transcripts {
		if t.ID == id {
			return t, true
		}
	}
	return Transcript{}, false
}

// All returns a copy of the collection, newest first.
func (s *Store) All() []Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Transcript, len(s.transcripts))
	copy(out, s.transcripts)
	return out
}

// Len returns the number of stored transcripts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transcripts)
}
