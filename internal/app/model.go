package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwulff/stenogram/internal/export"
	"github.com/jwulff/stenogram/internal/session"
	"github.com/jwulff/stenogram/internal/speech"
	"github.com/jwulff/stenogram/internal/summary"
	"github.com/jwulff/stenogram/internal/transcript"
	"github.com/jwulff/stenogram/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// Screen identifies the active view.
type Screen int

const (
	ScreenRecord Screen = iota
	ScreenList
	ScreenDetail
)

// Model is the root bubbletea model for the stenogram TUI.
type Model struct {
	// Services, injected at construction
	store      *transcript.Store
	sess       *session.Session
	summarizer summary.Summarizer
	exporter   export.Exporter

	screen Screen

	// Recording state
	authStatus   speech.AuthStatus
	recording    bool
	liveText     string
	elapsed      time.Duration
	errorMessage string

	// List state
	transcripts []transcript.Transcript
	selected    int

	// Detail state
	detailID     string
	editingTitle bool
	titleInput   string
	editingText  bool
	textInput    string
	generating   bool
	summaryGen   int
	exportPath   string

	// Transient warning (persistence failures and the like)
	warning string

	// UI state
	width  int
	height int
}

// New assembles the root model from its services.
func New(store *transcript.Store, sess *session.Session, summarizer summary.Summarizer, exporter export.Exporter) Model {
	return Model{
		store:       store,
		sess:        sess,
		summarizer:  summarizer,
		exporter:    exporter,
		authStatus:  sess.Authorization(),
		transcripts: store.All(),
	}
}

// Init starts consuming the session's update stream.
func (m Model) Init() tea.Cmd {
	return listenCmd(m.sess)
}

// listenCmd reads the next session update. Re-issued per update so the
// background recognition feed is consumed on the UI's own terms.
func listenCmd(s *session.Session) tea.Cmd {
	return func() tea.Msg {
		return SessionUpdateMsg{Update: <-s.Updates()}
	}
}

// requestAuthCmd asks the engine for permission off the UI loop.
func requestAuthCmd(s *session.Session) tea.Cmd {
	return func() tea.Msg {
		return AuthorizationMsg{Status: s.RequestAuthorization()}
	}
}

// tickCmd drives the elapsed-time display while recording.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// summarizeCmd generates a summary in the background. The generation
// counter lets Update drop results that were superseded.
func summarizeCmd(s summary.Summarizer, id string, gen int, text string) tea.Cmd {
	return func() tea.Msg {
		out, err := s.Summarize(context.Background(), text)
		return SummaryReadyMsg{ID: id, Gen: gen, Summary: out, Err: err}
	}
}

// exportCmd runs one export and reports the written path.
func exportCmd(run func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		path, err := run()
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// clearWarningCmd fires after a delay to clear transient warnings.
func clearWarningCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearWarningMsg{}
	})
}

// Update processes messages and returns the updated model and any
// commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SessionUpdateMsg:
		u := msg.Update
		wasRecording := m.recording
		m.recording = u.Recording
		m.liveText = u.Text
		m.elapsed = u.Elapsed
		m.errorMessage = u.Err

		cmds := []tea.Cmd{listenCmd(m.sess)}
		if u.Recording && !wasRecording {
			cmds = append(cmds, tickCmd())
		}
		return m, tea.Batch(cmds...)

	case TickMsg:
		if !m.recording {
			return m, nil
		}
		m.elapsed = m.sess.Elapsed()
		return m, tickCmd()

	case AuthorizationMsg:
		m.authStatus = msg.Status
		if msg.Status != speech.AuthAuthorized {
			m.errorMessage = fmt.Sprintf("Speech recognition %s", msg.Status)
		}
		return m, nil

	case SummaryReadyMsg:
		// Drop stale results: a newer request or another transcript
		// owns the detail screen now.
		if msg.Gen != m.summaryGen || msg.ID != m.detailID {
			return m, nil
		}
		m.generating = false
		if msg.Err != nil {
			m.warning = "Summary failed: " + msg.Err.Error()
			return m, clearWarningCmd()
		}
		tr, ok := m.store.Get(msg.ID)
		if !ok {
			return m, nil
		}
		tr.SetSummary(msg.Summary)
		if err := m.store.Update(tr); err != nil {
			m.warning = "Save failed: " + err.Error()
			m.refresh()
			return m, clearWarningCmd()
		}
		m.refresh()
		return m, nil

	case ExportDoneMsg:
		if msg.Err != nil {
			m.warning = "Export failed: " + msg.Err.Error()
			return m, clearWarningCmd()
		}
		m.exportPath = msg.Path
		return m, nil

	case ClearWarningMsg:
		m.warning = ""
		return m, nil
	}

	return m, nil
}

// refresh re-reads the collection and clamps the selection.
func (m *Model) refresh() {
	m.transcripts = m.store.All()
	if m.selected >= len(m.transcripts) {
		m.selected = max(0, len(m.transcripts)-1)
	}
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editingTitle || m.editingText {
		return m.handleEditKey(msg)
	}

	switch msg.String() {
	case KeyQuit, KeyQuitUpper, KeyCtrlC:
		if m.recording {
			m.sess.Stop()
		}
		return m, tea.Quit

	case KeyTab:
		switch m.screen {
		case ScreenRecord:
			m.screen = ScreenList
			m.refresh()
		default:
			m.screen = ScreenRecord
		}
		return m, nil
	}

	switch m.screen {
	case ScreenRecord:
		return m.handleRecordKey(msg)
	case ScreenList:
		return m.handleListKey(msg)
	case ScreenDetail:
		return m.handleDetailKey(msg)
	}
	return m, nil
}

func (m Model) handleRecordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyGrant:
		return m, requestAuthCmd(m.sess)

	case KeySpace:
		if m.recording {
			m.sess.Stop()
			return m, nil
		}
		if err := m.sess.Start(); err != nil {
			m.errorMessage = m.sess.Err()
		}
		return m, nil

	case KeySave:
		if m.recording || m.liveText == "" {
			return m, nil
		}
		tr := transcript.New("", m.liveText, m.elapsed)
		var cmd tea.Cmd
		if err := m.store.Create(tr); err != nil {
			m.warning = "Save failed: " + err.Error()
			cmd = clearWarningCmd()
		}
		m.sess.Reset()
		m.liveText = ""
		m.elapsed = 0
		m.refresh()
		m.openDetail(tr.ID)
		return m, cmd

	case KeyClear:
		if !m.recording {
			m.sess.Reset()
			m.liveText = ""
			m.elapsed = 0
			m.errorMessage = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyJ, KeyDown:
		if m.selected < len(m.transcripts)-1 {
			m.selected++
		}
		return m, nil

	case KeyK, KeyUp:
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case KeyEnter:
		if m.selected < len(m.transcripts) {
			m.openDetail(m.transcripts[m.selected].ID)
		}
		return m, nil

	case KeyDelete:
		if m.selected < len(m.transcripts) {
			var cmd tea.Cmd
			if err := m.store.Delete(m.transcripts[m.selected].ID); err != nil {
				m.warning = "Save failed: " + err.Error()
				cmd = clearWarningCmd()
			}
			m.refresh()
			return m, cmd
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tr, ok := m.store.Get(m.detailID)
	if !ok {
		m.screen = ScreenList
		return m, nil
	}

	switch msg.String() {
	case KeyEsc:
		m.screen = ScreenList
		m.refresh()
		return m, nil

	case KeyEditTitle:
		m.editingTitle = true
		m.titleInput = tr.Title
		return m, nil

	case KeyEditText:
		m.editingText = true
		m.textInput = tr.Text
		return m, nil

	case KeySummarize:
		if m.generating || tr.Text == "" {
			return m, nil
		}
		m.generating = true
		m.summaryGen++
		return m, summarizeCmd(m.summarizer, tr.ID, m.summaryGen, tr.Text)

	case KeyExportText:
		return m, exportCmd(func() (string, error) { return m.exporter.AsText(tr) })

	case KeyExportDoc:
		return m, exportCmd(func() (string, error) { return m.exporter.AsDocument(tr) })
	}
	return m, nil
}

// handleEditKey edits the active input (title or body) until enter
// commits or esc cancels.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	input := &m.titleInput
	if m.editingText {
		input = &m.textInput
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m.commitEdit()

	case tea.KeyEsc:
		m.editingTitle = false
		m.editingText = false
		return m, nil

	case tea.KeyBackspace:
		if len(*input) > 0 {
			runes := []rune(*input)
			*input = string(runes[:len(runes)-1])
		}
		return m, nil

	case tea.KeyRunes:
		*input += string(msg.Runes)
		return m, nil

	case tea.KeySpace:
		*input += " "
		return m, nil
	}
	return m, nil
}

func (m Model) commitEdit() (tea.Model, tea.Cmd) {
	tr, ok := m.store.Get(m.detailID)
	if !ok {
		m.editingTitle = false
		m.editingText = false
		return m, nil
	}

	switch {
	case m.editingTitle:
		tr.SetTitle(strings.TrimSpace(m.titleInput))
	case m.editingText:
		tr.SetText(m.textInput)
	}
	m.editingTitle = false
	m.editingText = false

	var cmd tea.Cmd
	if err := m.store.Update(tr); err != nil {
		m.warning = "Save failed: " + err.Error()
		cmd = clearWarningCmd()
	}
	m.refresh()
	return m, cmd
}

// openDetail switches to the detail screen, resetting per-transcript
// state so in-flight summaries for other transcripts are dropped.
func (m *Model) openDetail(id string) {
	m.screen = ScreenDetail
	m.detailID = id
	m.editingTitle = false
	m.editingText = false
	m.generating = false
	m.summaryGen++
	m.exportPath = ""
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	switch m.screen {
	case ScreenRecord:
		sections = append(sections, m.renderRecord())
	case ScreenList:
		sections = append(sections, m.renderList())
	case ScreenDetail:
		sections = append(sections, m.renderDetail())
	}

	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	if m.warning != "" {
		sections = append(sections, ui.WarningStyle.Render("Warning: "+m.warning))
	}
	if m.errorMessage != "" {
		sections = append(sections, ui.ErrorStyle.Render("Error: ")+ui.ErrorTextStyle.Render(m.errorMessage))
	}
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("STENOGRAM")

	var status string
	if m.recording {
		status = "  " + ui.RecordingDotStyle.Render("● REC "+formatElapsed(m.elapsed))
	} else {
		status = "  " + ui.IdleDotStyle.Render("○ IDLE")
	}

	var screen string
	switch m.screen {
	case ScreenRecord:
		screen = "Record"
	case ScreenList:
		screen = fmt.Sprintf("Transcripts (%d)", len(m.transcripts))
	case ScreenDetail:
		screen = "Detail"
	}

	return title + status + ui.DimStyle.Render("  — "+screen)
}

func (m Model) renderRecord() string {
	var lines []string

	if m.authStatus != speech.AuthAuthorized {
		lines = append(lines, "")
		lines = append(lines, ui.PanelTitleStyle.Render("  Speech Recognition Permission Required"))
		lines = append(lines, ui.DimStyle.Render("  Grant permission to transcribe your voice"))
		lines = append(lines, "")
		lines = append(lines, "  "+ui.FooterKeyStyle.Render("g")+ui.FooterDescStyle.Render(" Grant permission"))
		return m.padBody(lines)
	}

	if m.recording {
		lines = append(lines, "")
		lines = append(lines, "  "+ui.RecordingDotStyle.Render("Recording... ")+ui.TimestampStyle.Render(formatElapsed(m.elapsed)))
	} else {
		lines = append(lines, "")
		lines = append(lines, "  "+ui.PanelTitleStyle.Render("Ready to Record"))
	}

	lines = append(lines, "")
	if m.liveText != "" {
		style := ui.PartialTextStyle
		if !m.recording {
			style = lipgloss.NewStyle()
		}
		for _, l := range wrapText(m.liveText, max(20, m.width-4)) {
			lines = append(lines, "  "+style.Render(l))
		}
	} else if !m.recording {
		lines = append(lines, ui.DimStyle.Render("  Press Space to start recording"))
	}

	return m.padBody(lines)
}

func (m Model) renderList() string {
	var lines []string

	if len(m.transcripts) == 0 {
		lines = append(lines, "")
		lines = append(lines, ui.DimStyle.Render("  No transcripts yet"))
		lines = append(lines, ui.DimStyle.Render("  Tab to the record screen to create one"))
		return m.padBody(lines)
	}

	for i, tr := range m.transcripts {
		meta := ui.TimestampStyle.Render(fmt.Sprintf("%s  %s", tr.FormattedDate(), tr.FormattedDuration()))
		row := fmt.Sprintf("%s  %s", tr.Title, meta)
		if i == m.selected {
			lines = append(lines, ui.SelectedStyle.Render("> ")+ui.SelectedStyle.Render(tr.Title)+"  "+meta)
		} else {
			lines = append(lines, "  "+row)
		}
	}

	return m.padBody(lines)
}

func (m Model) renderDetail() string {
	tr, ok := m.store.Get(m.detailID)
	if !ok {
		return m.padBody([]string{ui.DimStyle.Render("  Transcript not found")})
	}

	var lines []string
	if m.editingTitle {
		lines = append(lines, "  "+ui.PanelTitleStyle.Render("Title: ")+m.titleInput+ui.PartialTextStyle.Render("▌"))
	} else {
		lines = append(lines, "  "+ui.PanelTitleStyle.Render(tr.Title))
	}
	lines = append(lines, "  "+ui.TimestampStyle.Render(fmt.Sprintf("%s | %s", tr.FormattedDate(), tr.FormattedDuration())))
	lines = append(lines, "")

	body := tr.Text
	if m.editingText {
		body = m.textInput + "▌"
	}
	for _, l := range wrapText(body, max(20, m.width-4)) {
		lines = append(lines, "  "+l)
	}

	lines = append(lines, "")
	switch {
	case m.generating:
		lines = append(lines, ui.DimStyle.Render("  Generating summary..."))
	case tr.Summary != "":
		lines = append(lines, ui.PanelTitleStyle.Render("  Summary"))
		for _, l := range wrapText(tr.Summary, max(20, m.width-4)) {
			lines = append(lines, "  "+ui.SummaryStyle.Render(l))
		}
	default:
		lines = append(lines, ui.DimStyle.Render("  No summary generated yet"))
	}

	if m.exportPath != "" {
		lines = append(lines, "")
		lines = append(lines, ui.DimStyle.Render("  Exported to "+m.exportPath))
	}

	return m.padBody(lines)
}

func (m Model) renderFooter() string {
	var parts []string
	key := func(k, desc string) string {
		return ui.FooterKeyStyle.Render(k) + ui.FooterDescStyle.Render(" "+desc)
	}

	switch m.screen {
	case ScreenRecord:
		if m.recording {
			parts = append(parts, key("Space", "Stop"))
		} else {
			parts = append(parts, key("Space", "Record"))
			if m.liveText != "" {
				parts = append(parts, key("s", "Save"), key("c", "Clear"))
			}
		}
		parts = append(parts, key("Tab", "Transcripts"))
	case ScreenList:
		parts = append(parts, key("j/k", "Nav"), key("Enter", "Open"), key("x", "Delete"), key("Tab", "Record"))
	case ScreenDetail:
		if m.editingTitle || m.editingText {
			parts = append(parts, key("Enter", "Apply"), key("Esc", "Cancel"))
		} else {
			parts = append(parts, key("t", "Title"), key("i", "Text"), key("s", "Summarize"),
				key("e", "Export txt"), key("d", "Export doc"), key("Esc", "Back"))
		}
	}
	parts = append(parts, key("q", "Quit"))

	return strings.Join(parts, "  ")
}

// padBody pads screen content to a stable height so the footer stays
// put.
func (m Model) padBody(lines []string) string {
	// Reserve: header(1) + dividers(2) + footer(1) + error/warning(2)
	visible := max(5, m.height-6)
	if len(lines) > visible {
		lines = lines[:visible]
	}
	for len(lines) < visible {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func formatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Helpers

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
