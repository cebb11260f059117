package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/recapkit/recap/internal/store"
	"github.com/recapkit/recap/internal/transcript"
)

var transcriptCmd = &cobra.Command{
	Use:   "transcript [caption_file]",
	Short: "Rebuild a readable transcript from a caption file",
	Long: `Rebuild a readable transcript from a local WebVTT or SRT caption file.

Auto-generated captions repeat most of their text from one cue to the
next. The command strips that overlap, groups the remaining text into
paragraphs, and writes the result next to the input file.

Chapter markers can be supplied as a JSON file in the same shape
yt-dlp prints them: [{"start_time": 0, "title": "Intro"}, ...].

Examples:
  recap transcript captions.vtt
  recap transcript captions.srt --chapters chapters.json
  recap transcript captions.vtt -o transcript.txt --copy
  recap transcript captions.vtt --sentences 3 --timestamp-every 5`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscript,
}

func init() {
	rootCmd.AddCommand(transcriptCmd)

	transcriptCmd.Flags().
		String("chapters", "", "JSON file with chapter markers")
	transcriptCmd.Flags().
		Bool("copy", false, "Copy the transcript to the clipboard")
	transcriptCmd.Flags().
		Int("width", 0, "Wrap paragraph lines at this many characters")
	transcriptCmd.Flags().
		Int("sentences", 0, "Sentences per paragraph")
	transcriptCmd.Flags().
		Int("max-paragraph-chars", 0, "Paragraph length cap for unpunctuated captions")
	transcriptCmd.Flags().
		Int("timestamp-every", 0, "Paragraphs between timestamp markers")
}

func runTranscript(cmd *cobra.Command, args []string) error {
	captionPath := args[0]

	chaptersPath, _ := cmd.Flags().GetString("chapters")
	copyToClipboard, _ := cmd.Flags().GetBool("copy")
	outputPath, _ := cmd.Flags().GetString("output")

	raw, err := os.ReadFile(captionPath)
	if err != nil {
		return fmt.Errorf("failed to read caption file: %w", err)
	}

	var chapters []transcript.Chapter
	if chaptersPath != "" {
		chapters, err = loadChapters(chaptersPath)
		if err != nil {
			return err
		}
	}

	doc, warnings, err := transcript.Reconstruct(
		string(raw),
		chapters,
		formatterOptions(cmd),
	)
	for _, w := range warnings {
		logger.Warnw("skipping malformed cue",
			"line", w.Line,
			"reason", w.Reason,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to rebuild transcript: %w", err)
	}

	rendered := store.RenderDocument(doc, chapters)

	if outputPath == "" {
		outputPath = strings.TrimSuffix(captionPath, filepath.Ext(captionPath)) + ".txt"
	}
	if err := os.WriteFile(outputPath, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}

	if copyToClipboard {
		if err := clipboard.WriteAll(rendered); err != nil {
			logger.Warnw("failed to copy transcript to clipboard", "error", err)
		} else {
			fmt.Println("Transcript copied to clipboard")
		}
	}

	paragraphs := 0
	for _, block := range doc.Blocks {
		paragraphs += len(block.Paragraphs)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Transcript saved: %s\n", absOutput)
	fmt.Printf("  Chapters: %d\n", len(chapters))
	fmt.Printf("  Paragraphs: %d\n", paragraphs)
	if len(warnings) > 0 {
		fmt.Printf("  Skipped cues: %d\n", len(warnings))
	}

	return nil
}

// formatterOptions applies any formatting flags over the defaults.
func formatterOptions(cmd *cobra.Command) transcript.Options {
	opts := transcript.DefaultOptions()
	if cmd.Flags().Changed("width") {
		opts.WrapWidth, _ = cmd.Flags().GetInt("width")
	}
	if cmd.Flags().Changed("sentences") {
		opts.SentencesPerParagraph, _ = cmd.Flags().GetInt("sentences")
	}
	if cmd.Flags().Changed("max-paragraph-chars") {
		opts.MaxParagraphChars, _ = cmd.Flags().GetInt("max-paragraph-chars")
	}
	if cmd.Flags().Changed("timestamp-every") {
		opts.TimestampEvery, _ = cmd.Flags().GetInt("timestamp-every")
	}
	return opts
}

// loadChapters reads chapter markers from a yt-dlp style JSON file.
func loadChapters(path string) ([]transcript.Chapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chapters file: %w", err)
	}
	chapters, err := parseChapters(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chapters file: %w", err)
	}
	return chapters, nil
}

func parseChapters(data []byte) ([]transcript.Chapter, error) {
	var raw []struct {
		StartTime float64 `json:"start_time"`
		Title     string  `json:"title"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	chapters := make([]transcript.Chapter, 0, len(raw))
	for _, c := range raw {
		chapters = append(chapters, transcript.Chapter{
			Start: time.Duration(c.StartTime * float64(time.Second)),
			Title: c.Title,
		})
	}
	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Start < chapters[j].Start
	})
	return chapters, nil
}
