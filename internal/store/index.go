package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// one summary in the JSON index consumed by the web viewer
type IndexEntry struct {
	Title    string   `json:"title"`
	Date     string   `json:"date"`
	File     string   `json:"file"`
	Overview string   `json:"overview"`
	Topics   []string `json:"topics,omitempty"`
}

// BuildIndex parses every summary file into index entries, newest first.
func (s *Store) BuildIndex() ([]IndexEntry, error) {
	matches, err := filepath.Glob(filepath.Join(s.SummariesDir, "*_summary.txt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	sort.Strings(matches)

	var entries []IndexEntry
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read summary: %w", err)
		}
		entry := parseSummary(string(data))
		entry.File = filepath.Base(path)
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})

	return entries, nil
}

// WriteIndex renders the index as JSON at path and returns the
// entries it wrote.
func (s *Store) WriteIndex(path string) ([]IndexEntry, error) {
	entries, err := s.BuildIndex()
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []IndexEntry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode index: %w", err)
	}
	if err := ensureDir(path); err != nil {
		return nil, fmt.Errorf("failed to create index dir: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write index: %w", err)
	}
	return entries, nil
}

func parseSummary(content string) IndexEntry {
	entry := IndexEntry{}
	section := ""
	var overview []string

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "---":
			section = ""
		case strings.HasPrefix(trimmed, "## "):
			section = headingKey(trimmed)
		case strings.HasPrefix(trimmed, "# ") && entry.Title == "":
			entry.Title = strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
		case strings.HasPrefix(trimmed, "**Date:**"):
			entry.Date = strings.TrimSpace(strings.TrimPrefix(trimmed, "**Date:**"))
		case section == "overview" && trimmed != "":
			overview = append(overview, trimmed)
		case section == "topics" && (strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ")):
			entry.Topics = append(entry.Topics, strings.TrimSpace(trimmed[2:]))
		}
	}

	entry.Overview = strings.Join(overview, " ")
	return entry
}

// headingKey classifies a summary section heading regardless of the
// emoji in front of it.
func headingKey(heading string) string {
	h := strings.ToLower(heading)
	switch {
	case strings.Contains(h, "overview"):
		return "overview"
	case strings.Contains(h, "main topics"):
		return "topics"
	default:
		return ""
	}
}
