package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/recapkit/recap/internal/store"
	"github.com/recapkit/recap/internal/youtube"
)

var channelCmd = &cobra.Command{
	Use:   "channel [url...]",
	Short: "Fetch transcripts for recent videos of a channel or playlist",
	Long: `Fetch transcripts for the most recent videos of one or more channels
or playlists.

Videos that already have a transcript are skipped, so the command can
run on a schedule to keep a channel archive current. A video that
fails (no captions, network error) is logged and skipped; it never
stops the rest of the batch.

With no arguments the channels from the config file are used.

Examples:
  recap channel https://www.youtube.com/@GoogleDevelopers
  recap channel https://www.youtube.com/@GoogleDevelopers --max 50
  recap channel --concurrency 5`,
	RunE: runChannel,
}

func init() {
	rootCmd.AddCommand(channelCmd)

	channelCmd.Flags().Int("max", 0, "Maximum number of videos per channel")
	channelCmd.Flags().Int("concurrency", 0, "Number of parallel video fetches")
	channelCmd.Flags().Bool("force", false, "Overwrite existing transcripts")
}

func runChannel(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	maxVideos := cfg.MaxVideos
	if cmd.Flags().Changed("max") {
		maxVideos, _ = cmd.Flags().GetInt("max")
	}
	concurrency := cfg.Concurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency, _ = cmd.Flags().GetInt("concurrency")
	}
	force, _ := cmd.Flags().GetBool("force")

	channels := args
	if len(channels) == 0 {
		channels = cfg.Channels
	}
	if len(channels) == 0 {
		return fmt.Errorf("no channels given: pass a URL or list channels in the config file")
	}

	client, err := youtube.NewClient(logger)
	if err != nil {
		return fmt.Errorf("failed to set up yt-dlp: %w", err)
	}

	var entries []youtube.Entry
	for _, channel := range channels {
		logger.Infow("listing channel videos", "channel", channel, "max", maxVideos)

		found, err := client.Channel(ctx, channel, maxVideos)
		if err != nil {
			return fmt.Errorf("failed to list videos for %s: %w", channel, err)
		}
		entries = append(entries, found...)
	}

	if len(entries) == 0 {
		fmt.Println("No videos found")
		return nil
	}

	logger.Infow("fetching transcripts",
		"videos", len(entries),
		"concurrency", concurrency,
	)

	stats := fetchAll(ctx, client, newStore(), entries, concurrency, force)

	fmt.Printf("Processed %d videos\n", len(entries))
	fmt.Printf("  Saved: %d\n", stats.saved)
	fmt.Printf("  Already present: %d\n", stats.skipped)
	fmt.Printf("  Without captions: %d\n", stats.noCaptions)
	if stats.failed > 0 {
		fmt.Printf("  Failed: %d\n", stats.failed)
	}

	return nil
}

type batchStats struct {
	saved      int
	skipped    int
	noCaptions int
	failed     int
}

type entryResult struct {
	entry  youtube.Entry
	result videoResult
	err    error
}

// fetchAll runs processVideo over all entries with a bounded worker
// pool. Failures are logged per video and never abort the batch.
func fetchAll(
	ctx context.Context,
	client *youtube.Client,
	st *store.Store,
	entries []youtube.Entry,
	concurrency int,
	force bool,
) batchStats {
	if concurrency <= 0 {
		concurrency = 3
	}

	workChan := make(chan youtube.Entry, len(entries))
	resultChan := make(chan entryResult, len(entries))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Go(func() {
			for entry := range workChan {
				result, err := processVideo(ctx, client, st, entry.URL, force)
				resultChan <- entryResult{
					entry:  entry,
					result: result,
					err:    err,
				}
			}
		})
	}

	for _, entry := range entries {
		workChan <- entry
	}
	close(workChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var stats batchStats
	for r := range resultChan {
		switch {
		case errors.Is(r.err, youtube.ErrNoCaptions):
			stats.noCaptions++
			logger.Infow("no captions for video",
				"title", r.entry.Title,
				"url", r.entry.URL,
			)
		case r.err != nil:
			stats.failed++
			logger.Warnw("failed to fetch video",
				"title", r.entry.Title,
				"url", r.entry.URL,
				"error", r.err,
			)
		case r.result.skipped:
			stats.skipped++
		default:
			stats.saved++
		}
	}

	return stats
}
