package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/recapkit/recap/internal/store"
	"github.com/recapkit/recap/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the transcripts directory and summarize new transcripts",
	Long: `Watch the transcripts directory and summarize every transcript that
appears there, until interrupted.

Pairs with the channel command on a schedule: one job fetches new
transcripts, the watcher turns them into summaries as they land.

Examples:
  recap watch
  recap watch --provider anthropic --concurrency 2 --docx`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().
		String("provider", "", "Summary provider (openai, gemini, anthropic)")
	watchCmd.Flags().
		StringP("api-key", "k", "", "Provider API key (or set the provider's env var)")
	watchCmd.Flags().
		String("model", "", "Model to use (provider-specific, uses sensible defaults)")
	watchCmd.Flags().
		Int("max-tokens", 0, "Maximum tokens in the summary")
	watchCmd.Flags().
		Float64("temperature", 0, "Sampling temperature")
	watchCmd.Flags().
		String("prompt", "", "Additional instructions for the summary prompt")
	watchCmd.Flags().
		Bool("docx", false, "Also write each summary as a .docx document")
	watchCmd.Flags().
		Int("concurrency", 0, "Number of transcripts to summarize in parallel")
}

func runWatch(cmd *cobra.Command, args []string) error {
	writeDocx, _ := cmd.Flags().GetBool("docx")
	concurrency := cfg.Concurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency, _ = cmd.Flags().GetInt("concurrency")
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	summarizer, err := buildSummarizer(ctx, cmd)
	if err != nil {
		return err
	}

	st := newStore()
	if err := os.MkdirAll(cfg.TranscriptsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create transcripts directory: %w", err)
	}

	handler := func(ctx context.Context, path string) error {
		if st.HasSummary(store.BaseFromPath(path)) {
			logger.Debugw("summary already exists", "file", path)
			return nil
		}
		if err := summarizeTranscript(ctx, summarizer, st, path, writeDocx); err != nil {
			return err
		}
		if err := refreshIndex(st); err != nil {
			logger.Warnw("failed to refresh summary index", "error", err)
		}
		return nil
	}

	w, err := watch.New(cfg.TranscriptsDir, handler, logger, concurrency)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Stop()

	fmt.Printf("Watching %s for new transcripts (Ctrl+C to stop)\n", cfg.TranscriptsDir)

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Println("Watcher stopped")
	return nil
}
