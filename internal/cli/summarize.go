package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/recapkit/recap/internal/store"
	"github.com/recapkit/recap/internal/summarize"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [transcript_file...]",
	Short: "Summarize stored transcripts with an AI provider",
	Long: `Summarize transcripts into structured markdown using an AI provider.

With no arguments every transcript in the transcripts directory that
does not have a summary yet is processed. Passing file paths
summarizes exactly those transcripts.

The provider API key is read from --api-key or the provider's
environment variable (OPENAI_API_KEY, GEMINI_API_KEY, ANTHROPIC_API_KEY).
With the openai provider, OPENAI_MODEL, OPENAI_MAX_TOKENS and
OPENAI_TEMPERATURE override the config file defaults.

Examples:
  recap summarize
  recap summarize transcripts/2024-03-15_My_Video.txt
  recap summarize --provider anthropic --docx
  recap summarize --provider openai --model gpt-4o --max-tokens 900`,
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().
		String("provider", "", "Summary provider (openai, gemini, anthropic)")
	summarizeCmd.Flags().
		StringP("api-key", "k", "", "Provider API key (or set the provider's env var)")
	summarizeCmd.Flags().
		String("model", "", "Model to use (provider-specific, uses sensible defaults)")
	summarizeCmd.Flags().
		Int("max-tokens", 0, "Maximum tokens in the summary")
	summarizeCmd.Flags().
		Float64("temperature", 0, "Sampling temperature")
	summarizeCmd.Flags().
		String("prompt", "", "Additional instructions for the summary prompt")
	summarizeCmd.Flags().
		Bool("force", false, "Re-summarize transcripts that already have a summary")
	summarizeCmd.Flags().
		Bool("docx", false, "Also write each summary as a .docx document")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	force, _ := cmd.Flags().GetBool("force")
	writeDocx, _ := cmd.Flags().GetBool("docx")

	summarizer, err := buildSummarizer(ctx, cmd)
	if err != nil {
		return err
	}

	st := newStore()
	targets := args
	if len(targets) == 0 {
		targets, err = unsummarizedTranscripts(st, force)
		if err != nil {
			return err
		}
	}
	if len(targets) == 0 {
		fmt.Println("Nothing to summarize")
		return nil
	}

	logger.Infow("summarizing transcripts",
		"count", len(targets),
		"provider", summarizer.Name(),
	)

	failed := 0
	for _, path := range targets {
		if err := summarizeTranscript(ctx, summarizer, st, path, writeDocx); err != nil {
			failed++
			logger.Warnw("failed to summarize transcript",
				"file", path,
				"error", err,
			)
		}
	}

	if err := refreshIndex(st); err != nil {
		logger.Warnw("failed to refresh summary index", "error", err)
	}

	fmt.Printf("Summaries written: %d\n", len(targets)-failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d summaries failed", failed, len(targets))
	}

	return nil
}

// buildSummarizer resolves provider, API key, and model settings from
// flags, config, and environment.
func buildSummarizer(ctx context.Context, cmd *cobra.Command) (summarize.Summarizer, error) {
	providerStr := cfg.Summarize.Provider
	if cmd.Flags().Changed("provider") {
		providerStr, _ = cmd.Flags().GetString("provider")
	}
	provider := summarize.Provider(providerStr)

	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnvVar(provider))
	}
	if apiKey == "" {
		return nil, fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			apiKeyEnvVar(provider),
		)
	}

	opts := summarize.Options{
		Model:       cfg.Summarize.Model,
		MaxTokens:   cfg.Summarize.MaxTokens,
		Temperature: cfg.Summarize.Temperature,
		Prompt:      cfg.Summarize.Prompt,
	}
	opts = envSummaryOptions(provider, opts)
	if cmd.Flags().Changed("model") {
		opts.Model, _ = cmd.Flags().GetString("model")
	}
	if cmd.Flags().Changed("max-tokens") {
		opts.MaxTokens, _ = cmd.Flags().GetInt("max-tokens")
	}
	if cmd.Flags().Changed("temperature") {
		opts.Temperature, _ = cmd.Flags().GetFloat64("temperature")
	}
	if cmd.Flags().Changed("prompt") {
		opts.Prompt, _ = cmd.Flags().GetString("prompt")
	}

	summarizer, err := summarize.Factory(ctx, provider, apiKey, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create summarizer: %w", err)
	}
	return summarizer, nil
}

// envSummaryOptions layers environment settings over the config file
// values; flags still win. The OPENAI_* settings keys apply to the
// openai provider only.
func envSummaryOptions(provider summarize.Provider, opts summarize.Options) summarize.Options {
	if provider != summarize.ProviderOpenAI {
		return opts
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		opts.Model = v
	}
	if v := os.Getenv("OPENAI_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.MaxTokens = n
		}
	}
	if v := os.Getenv("OPENAI_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opts.Temperature = f
		}
	}
	return opts
}

// apiKeyEnvVar names the environment variable holding the API key for
// a provider.
func apiKeyEnvVar(provider summarize.Provider) string {
	switch provider {
	case summarize.ProviderOpenAI:
		return "OPENAI_API_KEY"
	case summarize.ProviderGemini:
		return "GEMINI_API_KEY"
	case summarize.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "API_KEY"
	}
}

// unsummarizedTranscripts lists stored transcripts without a summary,
// or all of them when force is set.
func unsummarizedTranscripts(st *store.Store, force bool) ([]string, error) {
	all, err := st.Transcripts()
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %w", err)
	}
	if force {
		return all, nil
	}

	var pending []string
	for _, path := range all {
		if !st.HasSummary(store.BaseFromPath(path)) {
			pending = append(pending, path)
		}
	}
	return pending, nil
}

// summarizeTranscript summarizes one transcript file and writes the
// summary (and optional docx) next to the store's other summaries.
func summarizeTranscript(
	ctx context.Context,
	summarizer summarize.Summarizer,
	st *store.Store,
	path string,
	writeDocx bool,
) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read transcript: %w", err)
	}

	base := store.BaseFromPath(path)
	title, date, ok := store.ParseBaseName(base)
	if !ok {
		// file not named by this tool; fall back to what we have
		title = base
		if info, statErr := os.Stat(path); statErr == nil {
			date = info.ModTime()
		}
	}

	body, err := summarizer.Summarize(ctx, summarize.Request{
		Title:      title,
		Transcript: string(content),
		Chapters:   store.ParseChapterIndex(string(content)),
	})
	if err != nil {
		return err
	}

	sum := store.Summary{
		Title:      title,
		Date:       date,
		SourceFile: filepath.Base(path),
		Body:       body,
		Model:      summarizer.Name(),
	}
	summaryPath, err := st.WriteSummary(base, sum)
	if err != nil {
		return err
	}
	logger.Infow("summary saved", "file", summaryPath, "model", summarizer.Name())

	if writeDocx {
		docxPath := st.DocxPath(base)
		if err := store.WriteDocx(docxPath, title, body); err != nil {
			logger.Warnw("failed to write docx summary",
				"file", docxPath,
				"error", err,
			)
		} else {
			logger.Infow("docx summary saved", "file", docxPath)
		}
	}

	return nil
}

func refreshIndex(st *store.Store) error {
	_, err := st.WriteIndex(filepath.Join(cfg.SummariesDir, "index.json"))
	return err
}
