package summarize

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// implements Summarizer using Google Gemini
type GeminiSummarizer struct {
	client  *genai.Client
	options Options
}

func NewGeminiSummarizer(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*GeminiSummarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiSummarizer{
		client:  client,
		options: opts.normalized("gemini-2.5-flash"),
	}, nil
}

func (s *GeminiSummarizer) Name() string {
	return "gemini/" + s.options.Model
}

func (s *GeminiSummarizer) Summarize(
	ctx context.Context,
	req Request,
) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(BuildPrompt(s.options, req)),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := s.client.Models.GenerateContent(ctx, s.options.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("summarization failed: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var text string
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				text += part.Text
			}
		}
		if text != "" {
			break
		}
	}
	if text == "" {
		return "", fmt.Errorf("no text in Gemini response")
	}

	return cleanMarkdown(text), nil
}

func (s *GeminiSummarizer) Close() error {
	return nil
}
