package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the JSON index of summaries",
	Long: `Rebuild the JSON index of all stored summaries.

The index lists title, date, file name, overview, and main topics per
summary, newest first. The summarize and watch commands keep it
current automatically; this command rebuilds it from scratch.

Examples:
  recap index
  recap index -o site/summaries.json`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = filepath.Join(cfg.SummariesDir, "index.json")
	}

	entries, err := newStore().WriteIndex(outputPath)
	if err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Index written: %s\n", absOutput)
	fmt.Printf("  Summaries: %d\n", len(entries))

	return nil
}
