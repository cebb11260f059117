package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/recapkit/recap/internal/store"
	"github.com/recapkit/recap/internal/transcript"
	"github.com/recapkit/recap/internal/youtube"
)

var videoCmd = &cobra.Command{
	Use:   "video [url]",
	Short: "Fetch captions for a video and save a transcript",
	Long: `Fetch captions and chapter markers for a single video and save a
readable transcript into the transcripts directory.

The file name is derived from the upload date and title, so running
the command twice skips videos that already have a transcript.

Examples:
  recap video https://www.youtube.com/watch?v=jNQXAC9IVRw
  recap video https://youtu.be/jNQXAC9IVRw --language es --force`,
	Args: cobra.ExactArgs(1),
	RunE: runVideo,
}

func init() {
	rootCmd.AddCommand(videoCmd)

	videoCmd.Flags().Bool("force", false, "Overwrite an existing transcript")
}

func runVideo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	force, _ := cmd.Flags().GetBool("force")

	client, err := youtube.NewClient(logger)
	if err != nil {
		return fmt.Errorf("failed to set up yt-dlp: %w", err)
	}

	result, err := processVideo(ctx, client, newStore(), args[0], force)
	if err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(result.path)
	if result.skipped {
		fmt.Printf("Transcript already exists: %s (use --force to overwrite)\n", absOutput)
		return nil
	}

	fmt.Printf("Transcript saved: %s\n", absOutput)
	fmt.Printf("  Title: %s\n", result.title)
	fmt.Printf("  Chapters: %d\n", result.chapters)

	return nil
}

type videoResult struct {
	path     string
	title    string
	chapters int
	skipped  bool
}

// processVideo fetches metadata and captions for one video and writes
// the rebuilt transcript unless one already exists.
func processVideo(
	ctx context.Context,
	client *youtube.Client,
	st *store.Store,
	url string,
	force bool,
) (videoResult, error) {
	video, err := client.Metadata(ctx, url)
	if err != nil {
		return videoResult{}, fmt.Errorf("failed to fetch metadata: %w", err)
	}

	base := store.BaseName(video.Title, video.UploadDate)
	if !force && st.HasTranscript(base) {
		return videoResult{
			path:    st.TranscriptPath(base),
			title:   video.Title,
			skipped: true,
		}, nil
	}

	// the metadata already lists caption languages; skip the download
	// attempt when the requested one is absent
	if !video.HasCaptions(cfg.Language) {
		return videoResult{}, fmt.Errorf("failed to fetch captions: %w", youtube.ErrNoCaptions)
	}

	raw, err := client.Captions(ctx, url, cfg.Language)
	if err != nil {
		return videoResult{}, fmt.Errorf("failed to fetch captions: %w", err)
	}

	doc, warnings, err := transcript.Reconstruct(
		raw,
		video.Chapters,
		transcript.DefaultOptions(),
	)
	for _, w := range warnings {
		logger.Warnw("skipping malformed cue",
			"video", video.Title,
			"line", w.Line,
			"reason", w.Reason,
		)
	}
	if err != nil {
		return videoResult{}, fmt.Errorf("failed to rebuild transcript: %w", err)
	}

	path, err := st.WriteTranscript(base, store.RenderDocument(doc, video.Chapters))
	if err != nil {
		return videoResult{}, err
	}

	logger.Infow("transcript saved",
		"file", path,
		"title", video.Title,
		"chapters", len(video.Chapters),
	)

	return videoResult{
		path:     path,
		title:    video.Title,
		chapters: len(video.Chapters),
	}, nil
}
