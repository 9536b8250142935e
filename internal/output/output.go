package output

import (
	"fmt"
	"io"

	"github.com/jwulff/stenogram/internal/transcript"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) ListHeader(n int) {
	fmt.Fprintf(f.w, "🎙  Transcripts (%d):\n\n", n)
}

func (f *Formatter) ListItem(i int, t transcript.Transcript) {
	status := ""
	if t.Summary != "" {
		status = " 📋"
	}
	fmt.Fprintf(f.w, "  %2d. %s  (%s, %s)%s\n",
		i+1, t.Title, t.FormattedDate(), t.FormattedDuration(), status)
}

func (f *Formatter) Transcript(t transcript.Transcript) {
	fmt.Fprintf(f.w, "%s\n", t.Title)
	fmt.Fprintf(f.w, "%s | %s\n\n", t.FormattedDate(), t.FormattedDuration())
	fmt.Fprintf(f.w, "%s\n", t.Text)
	if t.Summary != "" {
		fmt.Fprintf(f.w, "\n--- Summary ---\n%s\n", t.Summary)
	}
}

func (f *Formatter) ExportDone(path string) {
	fmt.Fprintf(f.w, "✅ Exported: %s\n", path)
}

func (f *Formatter) SummaryDone(t transcript.Transcript) {
	fmt.Fprintf(f.w, "✅ Summary saved for %q:\n\n%s\n", t.Title, t.Summary)
}

func (f *Formatter) CheckItem(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  ✅ %s: %s\n", name, detail)
	} else {
		fmt.Fprintf(f.w, "  ❌ %s: %s\n", name, detail)
	}
}
