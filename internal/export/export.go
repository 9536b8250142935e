// Package export materializes transcripts as standalone files for
// sharing.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/jwulff/stenogram/internal/transcript"
)

// Exporter writes export artifacts into a target directory. Both
// formats are synchronous and idempotent, and never touch the store.
type Exporter struct {
	// Dir is the target directory. Empty means the system temp dir.
	Dir string
}

func (e Exporter) dir() string {
	if e.Dir != "" {
		return e.Dir
	}
	return os.TempDir()
}

// AsText writes a plain-text rendering and returns its path.
func (e Exporter) AsText(t transcript.Transcript) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", t.Title)
	fmt.Fprintf(&b, "Date: %s\n", t.FormattedDate())
	fmt.Fprintf(&b, "Duration: %s\n", t.FormattedDuration())
	b.WriteString("\nTRANSCRIPT:\n")
	b.WriteString(t.Text)
	b.WriteString("\n")
	if t.Summary != "" {
		b.WriteString("\nSUMMARY:\n")
		b.WriteString(t.Summary)
		b.WriteString("\n")
	}

	return e.write(Slug(t.Title)+".txt", b.String())
}

// AsDocument writes a paginated markdown document: title, metadata, and
// body on the first page; the summary, when present, on a second page.
func (e Exporter) AsDocument(t transcript.Transcript) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Title)
	fmt.Fprintf(&b, "_Date: %s | Duration: %s_\n\n", t.FormattedDate(), t.FormattedDuration())
	b.WriteString("---\n\n")
	b.WriteString(t.Text)
	b.WriteString("\n")
	if t.Summary != "" {
		b.WriteString("\n\\newpage\n\n")
		b.WriteString("## Summary\n\n")
		b.WriteString(t.Summary)
		b.WriteString("\n")
	}

	return e.write(Slug(t.Title)+".md", b.String())
}

func (e Exporter) write(name, content string) (string, error) {
	path := filepath.Join(e.dir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// Slug makes a title safe for use as a filename: lowercase, dashes for
// separators, everything else dropped.
func Slug(title string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "transcript"
	}
	return slug
}
