package store

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	docxFont     = "Calibri"
	docxFontSize = 12
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet  = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumber  = regexp.MustCompile(`^\d+\.\s+(.+)$`)
)

// WriteDocx renders a markdown summary as a styled .docx file.
func WriteDocx(path, title, markdown string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("failed to create docx: %w", err)
	}

	styledText(doc.AddParagraph(""), title, 16, true)

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			styledText(doc.AddParagraph(""), m[2], headingSize(len(m[1])), true)
			continue
		}
		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			inlineText(doc.AddParagraph(""), "• "+m[1])
			continue
		}
		if reNumber.MatchString(trimmed) {
			inlineText(doc.AddParagraph(""), trimmed)
			continue
		}
		inlineText(doc.AddParagraph(""), trimmed)
	}

	if err := ensureDir(path); err != nil {
		return fmt.Errorf("failed to create docx dir: %w", err)
	}
	if err := doc.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save docx: %w", err)
	}
	return nil
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 14
	case 3:
		return 13
	default:
		return docxFontSize
	}
}

func styledText(p *docx.Paragraph, text string, size uint64, bold bool) {
	run := p.AddText(stripMarks(text)).Font(docxFont).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

// inlineText writes one line, turning **bold** spans into bold runs.
func inlineText(p *docx.Paragraph, text string) {
	locs := reBold.FindAllStringSubmatchIndex(text, -1)
	pos := 0
	for _, loc := range locs {
		if loc[0] > pos {
			addRun(p, text[pos:loc[0]], false)
		}
		addRun(p, text[loc[2]:loc[3]], true)
		pos = loc[1]
	}
	if pos < len(text) {
		addRun(p, text[pos:], false)
	}
}

func addRun(p *docx.Paragraph, text string, bold bool) {
	text = stripMarks(text)
	if text == "" {
		return
	}
	run := p.AddText(text).Font(docxFont).Size(docxFontSize).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func stripMarks(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
