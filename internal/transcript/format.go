package transcript

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// controls paragraph segmentation and timestamp markers
type Options struct {
	// columns per wrapped line
	WrapWidth int
	// sentences accumulated before a paragraph break
	SentencesPerParagraph int
	// character budget forcing a break when the text carries no
	// sentence punctuation
	MaxParagraphChars int
	// paragraph interval between leading timestamps within a section
	TimestampEvery int
}

// DefaultOptions returns the formatting used by the CLI commands.
func DefaultOptions() Options {
	return Options{
		WrapWidth:             100,
		SentencesPerParagraph: 4,
		MaxParagraphChars:     600,
		TimestampEvery:        3,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.WrapWidth <= 0 {
		o.WrapWidth = d.WrapWidth
	}
	if o.SentencesPerParagraph <= 0 {
		o.SentencesPerParagraph = d.SentencesPerParagraph
	}
	if o.MaxParagraphChars <= 0 {
		o.MaxParagraphChars = d.MaxParagraphChars
	}
	if o.TimestampEvery <= 0 {
		o.TimestampEvery = d.TimestampEvery
	}
	return o
}

// FormatDocument renders ordered sections into headed blocks of wrapped
// paragraphs. Every cue's text appears exactly once, in cue order, and
// paragraph timestamps never decrease.
func FormatDocument(sections []Section, opts Options) *Document {
	opts = opts.withDefaults()

	doc := &Document{}
	for _, section := range sections {
		block := Block{}
		if section.Chapter != nil {
			block.Heading = fmt.Sprintf("%s %s", FormatTimestamp(section.Chapter.Start), section.Chapter.Title)
		}
		block.Paragraphs = buildParagraphs(section.Cues, opts)
		doc.Blocks = append(doc.Blocks, block)
	}

	return doc
}

// a cue's position in the concatenated section text
type textRun struct {
	offset int
	start  time.Duration
}

func buildParagraphs(cues []Cue, opts Options) []Paragraph {
	var sb strings.Builder
	var runs []textRun
	for _, cue := range cues {
		text := normalizeSpace(cue.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		runs = append(runs, textRun{offset: sb.Len(), start: cue.Start})
		sb.WriteString(text)
	}
	buffer := sb.String()
	if buffer == "" {
		return nil
	}

	var paragraphs []Paragraph
	ri := 0
	for pi, span := range splitParagraphs(buffer, opts) {
		for ri+1 < len(runs) && runs[ri+1].offset <= span.offset {
			ri++
		}
		p := Paragraph{Text: wrapText(span.text, opts.WrapWidth)}
		if pi%opts.TimestampEvery == 0 {
			ts := runs[ri].start
			p.Timestamp = &ts
		}
		paragraphs = append(paragraphs, p)
	}

	return paragraphs
}

type paragraphSpan struct {
	offset int
	text   string
}

// splitParagraphs cuts the running text into paragraph spans. A span
// closes after the configured number of sentences, or at the first space
// past the character budget when no sentence boundary arrives. Breaks
// land on whitespace only, so words stay whole.
func splitParagraphs(buffer string, opts Options) []paragraphSpan {
	var spans []paragraphSpan
	start := 0
	sentences := 0

	for i := 0; i < len(buffer); i++ {
		c := buffer[i]
		if (c == '.' || c == '!' || c == '?') && i+1 < len(buffer) && buffer[i+1] == ' ' {
			sentences++
			if sentences >= opts.SentencesPerParagraph {
				spans = append(spans, paragraphSpan{offset: start, text: buffer[start : i+1]})
				start = i + 2
				sentences = 0
			}
			continue
		}
		if c == ' ' && i-start >= opts.MaxParagraphChars {
			spans = append(spans, paragraphSpan{offset: start, text: buffer[start:i]})
			start = i + 1
			sentences = 0
		}
	}

	if start < len(buffer) {
		spans = append(spans, paragraphSpan{offset: start, text: buffer[start:]})
	}

	return spans
}

// wrapText breaks text into lines of at most width columns, splitting
// only at whitespace. Words longer than the width stay on one line.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	var line strings.Builder
	lineLen := 0
	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)
		if lineLen > 0 && lineLen+1+wordLen > width {
			lines = append(lines, line.String())
			line.Reset()
			lineLen = 0
		}
		if lineLen > 0 {
			line.WriteByte(' ')
			lineLen++
		}
		line.WriteString(word)
		lineLen += wordLen
	}
	lines = append(lines, line.String())

	return strings.Join(lines, "\n")
}

// FormatTimestamp renders a duration as HH:MM:SS, truncating fractional
// seconds.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
