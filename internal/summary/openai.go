package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const summarizePrompt = "You are a helpful assistant that summarizes transcripts concisely."

// OpenAI summarizes transcripts with a hosted chat model.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI returns a hosted summarizer. An empty model selects
// gpt-4o-mini.
func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAI{client: openai.NewClient(apiKey), model: model}
}

func (o *OpenAI) Summarize(ctx context.Context, text string) (string, error) {
	if text == "" {
		return noContent, nil
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: 150,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarizePrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Summarize this transcript in 2-3 sentences:\n\n" + text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("summarize transcript: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
