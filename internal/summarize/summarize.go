package summarize

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/recapkit/recap/internal/transcript"
)

// summarization service provider
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
)

const (
	DefaultMaxTokens   = 500
	DefaultTemperature = 0.3

	// transcripts are cut to this many bytes before prompting
	maxTranscriptChars = 12000
)

// one transcript to summarize
type Request struct {
	Title      string
	Transcript string
	Chapters   []transcript.Chapter
}

// interface for transcript summarization
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (string, error)
	// Name identifies the provider and model, e.g. "openai/gpt-4o-mini".
	Name() string
}

type Options struct {
	Model       string
	MaxTokens   int
	Temperature float64
	Prompt      string // extra instructions appended to the prompt
}

func (o Options) normalized(defaultModel string) Options {
	if o.Model == "" {
		o.Model = defaultModel
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	if o.Temperature <= 0 {
		o.Temperature = DefaultTemperature
	}
	return o
}

// creates a Summarizer based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Summarizer, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAISummarizer(ctx, apiKey, opts)
	case ProviderGemini:
		return NewGeminiSummarizer(ctx, apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicSummarizer(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported summary provider: %s", provider)
	}
}

// BuildPrompt creates the summary prompt for LLM providers
func BuildPrompt(opts Options, req Request) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(
		"Summarize the transcript of the video %q as well-structured markdown.\n\n",
		req.Title,
	))

	sb.WriteString("Use these sections, in this order:\n")
	sb.WriteString("## 🎯 Overview\n")
	sb.WriteString("## 📚 Chapter Breakdown\n")
	sb.WriteString("## 📝 Main Topics\n")
	sb.WriteString("## 💡 Key Takeaways\n")
	sb.WriteString("## 🎯 Actionable Strategies\n")
	sb.WriteString("## 📊 Specific Details\n")
	sb.WriteString("## ⚠️ Critical Warnings\n")
	sb.WriteString("## 🔗 Resources\n\n")

	sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
	sb.WriteString("1. Keep specific numbers, names, and tools that are mentioned.\n")
	sb.WriteString("2. Use bullet points inside every section.\n")
	sb.WriteString("3. Omit the Chapter Breakdown section when no chapters are listed.\n")
	sb.WriteString("4. Omit Critical Warnings and Resources when there is nothing to report.\n")
	sb.WriteString("5. Return ONLY the markdown summary, with no preamble.\n\n")

	if opts.Prompt != "" {
		sb.WriteString(fmt.Sprintf("Additional instructions: %s\n\n", opts.Prompt))
	}

	if len(req.Chapters) > 0 {
		sb.WriteString("Chapters:\n")
		for i, ch := range req.Chapters {
			sb.WriteString(fmt.Sprintf(
				"%d. %s (%s)\n",
				i+1,
				ch.Title,
				transcript.FormatTimestamp(ch.Start),
			))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Transcript:\n")
	sb.WriteString(truncateTranscript(req.Transcript))

	return sb.String()
}

func truncateTranscript(text string) string {
	if len(text) <= maxTranscriptChars {
		return text
	}
	cut := maxTranscriptChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "\n[transcript truncated]"
}

// cleanMarkdown strips a code fence wrapping the whole response while
// leaving fences inside the summary alone.
func cleanMarkdown(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	idx := strings.IndexByte(s, '\n')
	if idx < 0 {
		return s
	}
	body := strings.TrimSpace(s[idx+1:])
	body = strings.TrimSuffix(body, "```")

	return strings.TrimSpace(body)
}
