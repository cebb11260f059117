package summarize

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// implements Summarizer using OpenAI Chat Completions
type OpenAISummarizer struct {
	client  openai.Client
	options Options
}

func NewOpenAISummarizer(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*OpenAISummarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	return &OpenAISummarizer{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		options: opts.normalized("gpt-4o-mini"),
	}, nil
}

func (s *OpenAISummarizer) Name() string {
	return "openai/" + s.options.Model
}

func (s *OpenAISummarizer) Summarize(
	ctx context.Context,
	req Request,
) (string, error) {
	completion, err := s.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(
					"You summarize video transcripts into precise, scannable markdown.",
				),
				openai.UserMessage(BuildPrompt(s.options, req)),
			},
			Model:       s.options.Model,
			MaxTokens:   openai.Int(int64(s.options.MaxTokens)),
			Temperature: openai.Float(s.options.Temperature),
		},
	)
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}

	if completion == nil || len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	text := completion.Choices[0].Message.Content
	if text == "" {
		return "", fmt.Errorf("no text in OpenAI response")
	}

	return cleanMarkdown(text), nil
}

func (s *OpenAISummarizer) Close() error {
	return nil
}
