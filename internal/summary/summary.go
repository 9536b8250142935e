// Package summary produces short synopses of transcript text. Every
// implementation satisfies the same contract — text in, summary out —
// so swapping the heuristic for a hosted model is transparent to
// callers.
package summary

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Summarizer produces a short synopsis of transcript text. Callers run
// it off their own thread of control; implementations must honor ctx.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

const (
	noContent   = "No content to summarize."
	noSentences = "No complete sentences found."
	tip         = "💡 Tip: For AI-powered summaries, integrate OpenAI or Claude API."
)

// Extractive is the built-in summarizer: the first few sentences of the
// input plus word and sentence counts.
type Extractive struct {
	// Delay simulates hosted-model latency. Zero disables it; empty
	// input never waits.
	Delay time.Duration
}

func (e Extractive) Summarize(ctx context.Context, text string) (string, error) {
	if text == "" {
		return noContent, nil
	}

	if e.Delay > 0 {
		select {
		case <-time.After(e.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	sentences := splitSentences(text)
	wordCount := len(strings.Fields(text))
	sentenceCount := len(sentences)

	head := sentences
	if len(head) > 3 {
		head = head[:3]
	}
	summaryText := strings.Join(head, ". ")
	if summaryText == "" {
		summaryText = noSentences
	} else {
		summaryText += "."
	}

	return fmt.Sprintf("Summary:\n%s\n\n📊 Stats: %d words, %d sentences\n\n%s",
		summaryText, wordCount, sentenceCount, tip), nil
}

// splitSentences breaks text on sentence punctuation, trimming
// whitespace and dropping empty pieces.
func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	var sentences []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}
