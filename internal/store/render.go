package store

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/recapkit/recap/internal/transcript"
)

// summary file metadata and body
type Summary struct {
	Title      string
	Date       time.Time
	SourceFile string
	Body       string
	Model      string
}

// RenderDocument serializes a reconstructed document into the plain-text
// transcript layout: a chapter index followed by headed sections, or a
// single timestamped stream when no chapters exist.
func RenderDocument(doc *transcript.Document, chapters []transcript.Chapter) string {
	var sb strings.Builder

	if len(chapters) > 0 {
		sb.WriteString("=== VIDEO CHAPTERS ===\n")
		for i, ch := range chapters {
			sb.WriteString(fmt.Sprintf(
				"%d. %s (%s)\n",
				i+1,
				ch.Title,
				transcript.FormatTimestamp(ch.Start),
			))
		}
		sb.WriteString("\n=== TRANSCRIPT BY CHAPTERS ===\n")
	} else {
		sb.WriteString("=== TRANSCRIPT WITH TIMESTAMPS ===\n")
	}

	for _, block := range doc.Blocks {
		if block.Heading != "" {
			sb.WriteString(fmt.Sprintf("\n## %s\n", block.Heading))
		}
		if len(block.Paragraphs) == 0 {
			sb.WriteString("\nNo content found for this chapter.\n")
			continue
		}
		for _, p := range block.Paragraphs {
			sb.WriteString("\n")
			if p.Timestamp != nil {
				sb.WriteString(fmt.Sprintf("[%s]\n", transcript.FormatTimestamp(*p.Timestamp)))
			}
			sb.WriteString(p.Text)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

var chapterLineRegex = regexp.MustCompile(`^\d+\. (.+) \((\d+):(\d{2}):(\d{2})\)$`)

// ParseChapterIndex reads the chapter banner back out of a rendered
// transcript, for callers that only have the text file. Returns nil
// when the transcript has no chapter block.
func ParseChapterIndex(content string) []transcript.Chapter {
	var chapters []transcript.Chapter
	inBanner := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "=== VIDEO CHAPTERS ===":
			inBanner = true
		case strings.HasPrefix(line, "==="):
			if inBanner {
				return chapters
			}
		case inBanner:
			m := chapterLineRegex.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			h, _ := strconv.Atoi(m[2])
			min, _ := strconv.Atoi(m[3])
			sec, _ := strconv.Atoi(m[4])
			chapters = append(chapters, transcript.Chapter{
				Start: time.Duration(h)*time.Hour +
					time.Duration(min)*time.Minute +
					time.Duration(sec)*time.Second,
				Title: m[1],
			})
		}
	}
	return chapters
}

// RenderSummary serializes a summary into its markdown file layout.
func RenderSummary(s Summary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", s.Title))
	sb.WriteString(fmt.Sprintf("**Date:** %s\n", s.Date.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("**Original File:** %s\n\n", s.SourceFile))
	sb.WriteString("---\n\n")
	sb.WriteString(strings.TrimSpace(s.Body))
	sb.WriteString("\n\n---\n")
	sb.WriteString(fmt.Sprintf("*Summary generated by %s*\n", s.Model))

	return sb.String()
}
