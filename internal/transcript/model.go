// Package transcript defines the saved-recording model and its durable,
// newest-first collection store.
package transcript

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// dateLayout renders the short date/time used in default titles and
// export headers, e.g. "3/1/24, 10:02 AM".
const dateLayout = "1/2/06, 3:04 PM"

// Transcript is one saved recording: the recognized text plus metadata.
type Transcript struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Summary   string    `json:"summary,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Duration  float64   `json:"duration"` // seconds
}

// New creates a transcript with a fresh ID and timestamps. An empty
// title falls back to a formatted creation date.
func New(title, text string, duration time.Duration) Transcript {
	now := time.Now()
	secs := duration.Seconds()
	if secs < 0 {
		secs = 0
	}
	t := Transcript{
		ID:        uuid.NewString(),
		Title:     title,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
		Duration:  secs,
	}
	if t.Title == "" {
		t.Title = "Transcript " + now.Format(dateLayout)
	}
	return t
}

// SetTitle updates the title, falling back to the default when empty.
func (t *Transcript) SetTitle(title string) {
	if title == "" {
		title = "Transcript " + t.CreatedAt.Format(dateLayout)
	}
	t.Title = title
	t.touch()
}

// SetText replaces the transcript body.
func (t *Transcript) SetText(text string) {
	t.Text = text
	t.touch()
}

// SetSummary attaches a generated summary.
func (t *Transcript) SetSummary(summary string) {
	t.Summary = summary
	t.touch()
}

func (t *Transcript) touch() {
	t.UpdatedAt = time.Now()
}

// FormattedDate returns the creation time in short form.
func (t Transcript) FormattedDate() string {
	return t.CreatedAt.Format(dateLayout)
}

// FormattedDuration returns the recording length as MM:SS.
func (t Transcript) FormattedDuration() string {
	minutes := int(t.Duration) / 60
	seconds := int(t.Duration) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
