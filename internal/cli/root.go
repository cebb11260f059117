package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/recapkit/recap/internal/config"
	"github.com/recapkit/recap/internal/logging"
	"github.com/recapkit/recap/internal/store"
)

var (
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "recap",
	Short: "Turn YouTube captions into readable transcripts and summaries",
	Long: `Recap rebuilds readable transcripts from YouTube caption tracks.

It fetches captions and chapter markers with yt-dlp, strips the
duplicated text that rolling captions carry, groups the result into
chapter sections and paragraphs, and can summarize each transcript
with an AI provider.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		// a .env file is optional
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("transcripts-dir") {
			cfg.TranscriptsDir, _ = cmd.Flags().GetString("transcripts-dir")
		}
		if cmd.Flags().Changed("summaries-dir") {
			cfg.SummariesDir, _ = cmd.Flags().GetString("summaries-dir")
		}
		if cmd.Flags().Changed("language") {
			cfg.Language, _ = cmd.Flags().GetString("language")
		}

		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func newStore() *store.Store {
	return store.New(cfg.TranscriptsDir, cfg.SummariesDir)
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "recap.yaml", "Path to config file")
	rootCmd.PersistentFlags().
		String("transcripts-dir", "", "Directory for transcript files")
	rootCmd.PersistentFlags().
		String("summaries-dir", "", "Directory for summary files")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Caption language code (e.g., en, es, fr)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
