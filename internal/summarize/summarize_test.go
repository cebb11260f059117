package summarize

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/recapkit/recap/internal/transcript"
)

func TestFactoryReturnsOpenAISummarizer(t *testing.T) {
	ctx := context.Background()
	s, err := Factory(ctx, ProviderOpenAI, "fake-key", Options{})
	if err != nil {
		t.Fatalf("Factory(ProviderOpenAI) returned error: %v", err)
	}
	if _, ok := s.(*OpenAISummarizer); !ok {
		t.Errorf("expected *OpenAISummarizer, got %T", s)
	}
	if got := s.Name(); got != "openai/gpt-4o-mini" {
		t.Errorf("Name() = %q, want %q", got, "openai/gpt-4o-mini")
	}
}

func TestFactoryReturnsGeminiSummarizer(t *testing.T) {
	ctx := context.Background()
	s, err := Factory(ctx, ProviderGemini, "fake-key", Options{})
	if err != nil {
		t.Fatalf("Factory(ProviderGemini) returned error: %v", err)
	}
	if _, ok := s.(*GeminiSummarizer); !ok {
		t.Errorf("expected *GeminiSummarizer, got %T", s)
	}
}

func TestFactoryReturnsAnthropicSummarizer(t *testing.T) {
	ctx := context.Background()
	s, err := Factory(ctx, ProviderAnthropic, "fake-key", Options{})
	if err != nil {
		t.Fatalf("Factory(ProviderAnthropic) returned error: %v", err)
	}
	if _, ok := s.(*AnthropicSummarizer); !ok {
		t.Errorf("expected *AnthropicSummarizer, got %T", s)
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	ctx := context.Background()
	_, err := Factory(ctx, Provider("unknown"), "fake-key", Options{})
	if err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestFactoryRequiresAPIKey(t *testing.T) {
	ctx := context.Background()
	for _, provider := range []Provider{ProviderOpenAI, ProviderGemini, ProviderAnthropic} {
		if _, err := Factory(ctx, provider, "", Options{}); err == nil {
			t.Errorf("expected error for %s with empty API key", provider)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}.normalized("some-model")
	if opts.Model != "some-model" {
		t.Errorf("Model = %q, want %q", opts.Model, "some-model")
	}
	if opts.MaxTokens != DefaultMaxTokens {
		t.Errorf("MaxTokens = %d, want %d", opts.MaxTokens, DefaultMaxTokens)
	}
	if opts.Temperature != DefaultTemperature {
		t.Errorf("Temperature = %v, want %v", opts.Temperature, DefaultTemperature)
	}

	explicit := Options{Model: "custom", MaxTokens: 900, Temperature: 0.7}.normalized("some-model")
	if explicit.Model != "custom" || explicit.MaxTokens != 900 || explicit.Temperature != 0.7 {
		t.Errorf("explicit options overwritten: %+v", explicit)
	}
}

func TestBuildPromptIncludesChapters(t *testing.T) {
	req := Request{
		Title:      "Learning Go",
		Transcript: "some transcript text",
		Chapters: []transcript.Chapter{
			{Start: 0, Title: "Intro"},
			{Start: 90 * time.Second, Title: "Types"},
		},
	}

	prompt := BuildPrompt(Options{}, req)
	if !strings.Contains(prompt, `"Learning Go"`) {
		t.Error("prompt missing video title")
	}
	if !strings.Contains(prompt, "1. Intro (00:00:00)") {
		t.Error("prompt missing first chapter line")
	}
	if !strings.Contains(prompt, "2. Types (00:01:30)") {
		t.Error("prompt missing second chapter line")
	}
	if !strings.Contains(prompt, "some transcript text") {
		t.Error("prompt missing transcript")
	}
}

func TestBuildPromptWithoutChapters(t *testing.T) {
	prompt := BuildPrompt(Options{}, Request{Title: "T", Transcript: "body"})
	if strings.Contains(prompt, "Chapters:\n") {
		t.Error("prompt should not list chapters when there are none")
	}
}

func TestBuildPromptExtraInstructions(t *testing.T) {
	prompt := BuildPrompt(Options{Prompt: "focus on pricing"}, Request{Title: "T", Transcript: "body"})
	if !strings.Contains(prompt, "focus on pricing") {
		t.Error("prompt missing additional instructions")
	}
}

func TestTruncateTranscript(t *testing.T) {
	short := "short text"
	if got := truncateTranscript(short); got != short {
		t.Errorf("short transcript changed: %q", got)
	}

	long := strings.Repeat("a", maxTranscriptChars+100)
	got := truncateTranscript(long)
	if !strings.HasSuffix(got, "[transcript truncated]") {
		t.Error("long transcript missing truncation marker")
	}
	if len(got) > maxTranscriptChars+len("\n[transcript truncated]") {
		t.Errorf("truncated length = %d", len(got))
	}
}

func TestCleanMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "## 🎯 Overview\n- point",
			want:  "## 🎯 Overview\n- point",
		},
		{
			name:  "fence wrapper stripped",
			input: "```\n## Overview\n- point\n```",
			want:  "## Overview\n- point",
		},
		{
			name:  "markdown fence wrapper stripped",
			input: "```markdown\n## Overview\n```",
			want:  "## Overview",
		},
		{
			name:  "inner fence kept",
			input: "```markdown\n## Code\n```go\nfmt.Println()\n```\ntrailing\n```",
			want:  "## Code\n```go\nfmt.Println()\n```\ntrailing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanMarkdown(tt.input); got != tt.want {
				t.Errorf("cleanMarkdown() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Integration test: only runs if OPENAI_API_KEY is set
func TestOpenAISummarizerIntegration(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY not set; skipping integration test")
	}

	ctx := context.Background()
	s, err := NewOpenAISummarizer(ctx, apiKey, Options{})
	if err != nil {
		t.Fatalf("NewOpenAISummarizer error: %v", err)
	}

	summary, err := s.Summarize(ctx, Request{
		Title:      "Test Video",
		Transcript: "This video explains how to write table-driven tests in Go using subtests.",
	})
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if summary == "" {
		t.Error("expected a non-empty summary")
	}
}
