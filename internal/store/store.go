package store

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

const maxTitleRunes = 80

var unsafeChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// Store places transcripts and summaries under two directories.
type Store struct {
	TranscriptsDir string
	SummariesDir   string
}

func New(transcriptsDir, summariesDir string) *Store {
	return &Store{
		TranscriptsDir: transcriptsDir,
		SummariesDir:   summariesDir,
	}
}

// BaseName derives the shared file stem for one video. Unsafe filename
// characters in the title are replaced and the title is capped at 80
// runes; a zero date falls back to today.
func BaseName(title string, date time.Time) string {
	if date.IsZero() {
		date = time.Now()
	}
	return date.Format("2006-01-02") + "_" + sanitizeTitle(title)
}

// ParseBaseName splits a "{date}_{title}" stem back into its parts.
func ParseBaseName(base string) (title string, date time.Time, ok bool) {
	if len(base) < 12 || base[10] != '_' {
		return base, time.Time{}, false
	}
	parsed, err := time.Parse("2006-01-02", base[:10])
	if err != nil {
		return base, time.Time{}, false
	}
	return base[11:], parsed, true
}

// BaseFromPath strips the directory and .txt extension from a
// transcript path.
func BaseFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".txt")
}

func sanitizeTitle(title string) string {
	clean := unsafeChars.ReplaceAllString(title, "_")
	clean = strings.Join(strings.Fields(clean), " ")
	runes := []rune(clean)
	if len(runes) > maxTitleRunes {
		clean = strings.TrimSpace(string(runes[:maxTitleRunes]))
	}
	if clean == "" {
		clean = "untitled"
	}
	return clean
}

func (s *Store) TranscriptPath(base string) string {
	return filepath.Join(s.TranscriptsDir, base+".txt")
}

func (s *Store) SummaryPath(base string) string {
	return filepath.Join(s.SummariesDir, base+"_summary.txt")
}

func (s *Store) DocxPath(base string) string {
	return filepath.Join(s.SummariesDir, base+"_summary.docx")
}

func (s *Store) HasTranscript(base string) bool {
	return fileExists(s.TranscriptPath(base))
}

func (s *Store) HasSummary(base string) bool {
	return fileExists(s.SummaryPath(base))
}

// WriteTranscript writes rendered transcript text, creating the
// directory as needed, and returns the file path.
func (s *Store) WriteTranscript(base, content string) (string, error) {
	path := s.TranscriptPath(base)
	if err := writeFile(path, content); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	return path, nil
}

// WriteSummary writes a rendered summary file and returns its path.
func (s *Store) WriteSummary(base string, sum Summary) (string, error) {
	path := s.SummaryPath(base)
	if err := writeFile(path, RenderSummary(sum)); err != nil {
		return "", fmt.Errorf("failed to write summary: %w", err)
	}
	return path, nil
}

// Transcripts lists transcript files sorted by name.
func (s *Store) Transcripts() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.TranscriptsDir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

func writeFile(path, content string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
