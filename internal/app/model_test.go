package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jwulff/stenogram/internal/db"
	"github.com/jwulff/stenogram/internal/export"
	"github.com/jwulff/stenogram/internal/session"
	"github.com/jwulff/stenogram/internal/speech"
	"github.com/jwulff/stenogram/internal/summary"
	"github.com/jwulff/stenogram/internal/transcript"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	slots, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { slots.Close() })

	store := transcript.NewStore(slots)
	sess := session.New(speech.NewScriptEngine())
	sess.RequestAuthorization()
	m := New(store, sess, &summary.Extractive{}, export.Exporter{Dir: t.TempDir()})
	m.width = 80
	m.height = 24
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t)

	if m.recording {
		t.Error("new model should not be recording")
	}
	if m.screen != ScreenRecord {
		t.Error("new model should start on the record screen")
	}
	if m.authStatus != speech.AuthAuthorized {
		t.Errorf("authStatus = %v, want authorized", m.authStatus)
	}
}

func TestSessionUpdateReplacesTranscript(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(SessionUpdateMsg{Update: session.Update{
		Text:      "hello",
		Recording: true,
	}})
	model := updated.(Model)

	if model.liveText != "hello" {
		t.Errorf("liveText = %q, want %q", model.liveText, "hello")
	}
	if !model.recording {
		t.Error("should be recording")
	}

	updated, _ = model.Update(SessionUpdateMsg{Update: session.Update{
		Text:      "hello world",
		Recording: true,
	}})
	model = updated.(Model)

	if model.liveText != "hello world" {
		t.Errorf("liveText = %q, want replacement, not append", model.liveText)
	}
}

func TestSessionUpdateCarriesError(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(SessionUpdateMsg{Update: session.Update{
		Err: "recognizer went away",
	}})
	model := updated.(Model)

	if model.errorMessage != "recognizer went away" {
		t.Errorf("errorMessage = %q", model.errorMessage)
	}
	if model.recording {
		t.Error("should not be recording after error update")
	}
}

func TestSaveCreatesTranscriptAndOpensDetail(t *testing.T) {
	m := newTestModel(t)
	m.liveText = "meeting notes"
	m.elapsed = 65 * time.Second

	updated, _ := m.Update(keyRune('s'))
	model := updated.(Model)

	if model.store.Len() != 1 {
		t.Fatalf("store has %d transcripts, want 1", model.store.Len())
	}
	saved := model.store.All()[0]
	if saved.Text != "meeting notes" {
		t.Errorf("text = %q", saved.Text)
	}
	if saved.Duration != 65 {
		t.Errorf("duration = %v, want 65", saved.Duration)
	}
	if model.screen != ScreenDetail {
		t.Error("save should open the detail screen")
	}
	if model.detailID != saved.ID {
		t.Errorf("detailID = %q, want %q", model.detailID, saved.ID)
	}
	if model.liveText != "" {
		t.Error("live text should be cleared after save")
	}
}

func TestSaveIgnoredWhileRecording(t *testing.T) {
	m := newTestModel(t)
	m.recording = true
	m.liveText = "still going"

	updated, _ := m.Update(keyRune('s'))
	model := updated.(Model)

	if model.store.Len() != 0 {
		t.Error("save should be ignored while recording")
	}
	if model.screen != ScreenRecord {
		t.Error("screen should not change")
	}
}

func TestSaveIgnoredWhenEmpty(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(keyRune('s'))
	model := updated.(Model)

	if model.store.Len() != 0 {
		t.Error("save with no text should be a no-op")
	}
}

func TestClearResetsDraft(t *testing.T) {
	m := newTestModel(t)
	m.liveText = "scratch that"
	m.elapsed = 12 * time.Second
	m.errorMessage = "old error"

	updated, _ := m.Update(keyRune('c'))
	model := updated.(Model)

	if model.liveText != "" || model.elapsed != 0 || model.errorMessage != "" {
		t.Error("clear should drop text, elapsed, and error")
	}
	if model.store.Len() != 0 {
		t.Error("clear should not create a transcript")
	}
}

func TestTabTogglesScreens(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	model := updated.(Model)
	if model.screen != ScreenList {
		t.Error("tab should switch to list")
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	model = updated.(Model)
	if model.screen != ScreenRecord {
		t.Error("tab should switch back to record")
	}
}

func TestListNavigationAndOpen(t *testing.T) {
	m := newTestModel(t)
	m.store.Create(transcript.New("First", "a", 0))
	m.store.Create(transcript.New("Second", "b", 0))
	m.refresh()
	m.screen = ScreenList

	updated, _ := m.Update(keyRune('j'))
	model := updated.(Model)
	if model.selected != 1 {
		t.Errorf("selected = %d, want 1", model.selected)
	}

	// Clamp at the bottom.
	updated, _ = model.Update(keyRune('j'))
	model = updated.(Model)
	if model.selected != 1 {
		t.Errorf("selected = %d, want 1 at bottom", model.selected)
	}

	updated, _ = model.Update(keyRune('k'))
	model = updated.(Model)
	if model.selected != 0 {
		t.Errorf("selected = %d, want 0", model.selected)
	}

	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)
	if model.screen != ScreenDetail {
		t.Error("enter should open detail")
	}
	// Newest-first: Second was created last, so it is row 0.
	if got, _ := model.store.Get(model.detailID); got.Title != "Second" {
		t.Errorf("opened %q, want Second", got.Title)
	}
}

func TestListDelete(t *testing.T) {
	m := newTestModel(t)
	m.store.Create(transcript.New("Keep", "a", 0))
	m.store.Create(transcript.New("Drop", "b", 0))
	m.refresh()
	m.screen = ScreenList

	// Row 0 is Drop (newest first).
	updated, _ := m.Update(keyRune('x'))
	model := updated.(Model)

	if model.store.Len() != 1 {
		t.Fatalf("store has %d transcripts, want 1", model.store.Len())
	}
	if model.transcripts[0].Title != "Keep" {
		t.Errorf("remaining = %q, want Keep", model.transcripts[0].Title)
	}
	if model.selected != 0 {
		t.Errorf("selected = %d, want 0 after delete", model.selected)
	}
}

func TestTitleEdit(t *testing.T) {
	m := newTestModel(t)
	tr := transcript.New("Old title", "body", 0)
	m.store.Create(tr)
	m.refresh()
	m.openDetail(tr.ID)

	updated, _ := m.Update(keyRune('t'))
	model := updated.(Model)
	if !model.editingTitle {
		t.Fatal("t should start title editing")
	}
	if model.titleInput != "Old title" {
		t.Errorf("titleInput = %q, want current title", model.titleInput)
	}

	for range "Old title" {
		updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		model = updated.(Model)
	}
	for _, r := range "New" {
		updated, _ = model.Update(keyRune(r))
		model = updated.(Model)
	}
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)

	if model.editingTitle {
		t.Error("enter should finish editing")
	}
	got, _ := model.store.Get(tr.ID)
	if got.Title != "New" {
		t.Errorf("title = %q, want New", got.Title)
	}
}

func TestTextEdit(t *testing.T) {
	m := newTestModel(t)
	tr := transcript.New("Notes", "draft", 0)
	m.store.Create(tr)
	m.refresh()
	m.openDetail(tr.ID)
	before, _ := m.store.Get(tr.ID)

	updated, _ := m.Update(keyRune('i'))
	model := updated.(Model)
	if !model.editingText {
		t.Fatal("i should start text editing")
	}
	if model.textInput != "draft" {
		t.Errorf("textInput = %q, want current text", model.textInput)
	}

	for _, r := range " two" {
		msg := keyRune(r)
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace}
		}
		updated, _ = model.Update(msg)
		model = updated.(Model)
	}
	updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model = updated.(Model)

	got, _ := model.store.Get(tr.ID)
	if got.Text != "draft two" {
		t.Errorf("text = %q, want %q", got.Text, "draft two")
	}
	if !got.UpdatedAt.After(before.UpdatedAt) && !got.UpdatedAt.Equal(before.UpdatedAt) {
		t.Error("UpdatedAt should not move backwards")
	}
}

func TestTitleEditCancel(t *testing.T) {
	m := newTestModel(t)
	tr := transcript.New("Untouched", "body", 0)
	m.store.Create(tr)
	m.refresh()
	m.openDetail(tr.ID)
	m.editingTitle = true
	m.titleInput = "half typed"

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model := updated.(Model)

	if model.editingTitle {
		t.Error("esc should cancel editing")
	}
	got, _ := model.store.Get(tr.ID)
	if got.Title != "Untouched" {
		t.Errorf("title = %q, want Untouched", got.Title)
	}
}

func TestSummaryReadyAppliesResult(t *testing.T) {
	m := newTestModel(t)
	tr := transcript.New("Notes", "Some content here.", 0)
	m.store.Create(tr)
	m.refresh()
	m.openDetail(tr.ID)
	m.generating = true

	updated, _ := m.Update(SummaryReadyMsg{
		ID:      tr.ID,
		Gen:     m.summaryGen,
		Summary: "Summary: Some content here.",
	})
	model := updated.(Model)

	if model.generating {
		t.Error("generating should be cleared")
	}
	got, _ := model.store.Get(tr.ID)
	if got.Summary != "Summary: Some content here." {
		t.Errorf("summary = %q", got.Summary)
	}
}

func TestStaleSummaryDropped(t *testing.T) {
	m := newTestModel(t)
	tr := transcript.New("Notes", "Some content here.", 0)
	m.store.Create(tr)
	m.refresh()
	m.openDetail(tr.ID)
	m.generating = true

	updated, _ := m.Update(SummaryReadyMsg{
		ID:      tr.ID,
		Gen:     m.summaryGen - 1,
		Summary: "outdated result",
	})
	model := updated.(Model)

	got, _ := model.store.Get(tr.ID)
	if got.Summary != "" {
		t.Errorf("stale summary applied: %q", got.Summary)
	}
	if !model.generating {
		t.Error("stale result should not clear generating")
	}
}

func TestSummaryForOtherTranscriptDropped(t *testing.T) {
	m := newTestModel(t)
	a := transcript.New("A", "Alpha text.", 0)
	b := transcript.New("B", "Beta text.", 0)
	m.store.Create(a)
	m.store.Create(b)
	m.refresh()
	m.openDetail(a.ID)
	gen := m.summaryGen
	m.openDetail(b.ID)

	updated, _ := m.Update(SummaryReadyMsg{ID: a.ID, Gen: gen, Summary: "for a"})
	model := updated.(Model)

	got, _ := model.store.Get(a.ID)
	if got.Summary != "" {
		t.Error("summary for a previously viewed transcript should be dropped")
	}
	if model.warning != "" {
		t.Errorf("warning = %q, want none", model.warning)
	}
}

func TestSummaryErrorBecomesWarning(t *testing.T) {
	m := newTestModel(t)
	tr := transcript.New("Notes", "text", 0)
	m.store.Create(tr)
	m.refresh()
	m.openDetail(tr.ID)
	m.generating = true

	updated, cmd := m.Update(SummaryReadyMsg{
		ID:  tr.ID,
		Gen: m.summaryGen,
		Err: errors.New("model unavailable"),
	})
	model := updated.(Model)

	if !strings.Contains(model.warning, "model unavailable") {
		t.Errorf("warning = %q", model.warning)
	}
	if cmd == nil {
		t.Error("warning should schedule a clear")
	}

	updated, _ = model.Update(ClearWarningMsg{})
	model = updated.(Model)
	if model.warning != "" {
		t.Error("warning should clear")
	}
}

func TestExportDone(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(ExportDoneMsg{Path: "/tmp/exports/notes.txt"})
	model := updated.(Model)
	if model.exportPath != "/tmp/exports/notes.txt" {
		t.Errorf("exportPath = %q", model.exportPath)
	}

	updated, _ = model.Update(ExportDoneMsg{Err: errors.New("disk full")})
	model = updated.(Model)
	if !strings.Contains(model.warning, "disk full") {
		t.Errorf("warning = %q", model.warning)
	}
}

func TestRecordViewShowsAuthorizationPrompt(t *testing.T) {
	m := newTestModel(t)
	m.authStatus = speech.AuthUndetermined

	view := m.View()
	if !strings.Contains(view, "Permission Required") {
		t.Errorf("view should prompt for permission:\n%s", view)
	}
}

func TestRecordViewShowsLiveText(t *testing.T) {
	m := newTestModel(t)
	m.recording = true
	m.liveText = "the quick brown fox"
	m.elapsed = 83 * time.Second

	view := m.View()
	if !strings.Contains(view, "the quick brown fox") {
		t.Error("view should show live transcript")
	}
	if !strings.Contains(view, "01:23") {
		t.Errorf("view should show elapsed time:\n%s", view)
	}
	if !strings.Contains(view, "REC") {
		t.Error("view should show recording indicator")
	}
}

func TestListViewEmpty(t *testing.T) {
	m := newTestModel(t)
	m.screen = ScreenList

	view := m.View()
	if !strings.Contains(view, "No transcripts yet") {
		t.Error("empty list should say so")
	}
}

func TestDetailView(t *testing.T) {
	m := newTestModel(t)
	tr := transcript.New("Standup notes", "We discussed the roadmap.", 125*time.Second)
	tr.SetSummary("Roadmap discussion.")
	m.store.Create(tr)
	m.refresh()
	m.openDetail(tr.ID)

	view := m.View()
	for _, want := range []string{"Standup notes", "We discussed the roadmap.", "Roadmap discussion.", "02:05"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestDetailViewNoSummary(t *testing.T) {
	m := newTestModel(t)
	tr := transcript.New("Plain", "body", 0)
	m.store.Create(tr)
	m.refresh()
	m.openDetail(tr.ID)

	view := m.View()
	if !strings.Contains(view, "No summary generated yet") {
		t.Error("view should show summary placeholder")
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %v, want %v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}
