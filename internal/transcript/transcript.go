package transcript

import (
	"errors"
	"time"
)

// single timestamped caption fragment
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// named time range within a video, as declared by its publisher
type Chapter struct {
	Start time.Duration
	Title string
}

// cues attributed to one chapter; a nil Chapter means no chapter
// metadata was available
type Section struct {
	Chapter *Chapter
	Cues    []Cue
}

// formatted output unit; Timestamp is the start offset of the first
// contributing cue and is nil when the marker is suppressed
type Paragraph struct {
	Timestamp *time.Duration
	Text      string
}

// heading plus paragraphs for one section; Heading is empty in
// no-chapter mode
type Block struct {
	Heading    string
	Paragraphs []Paragraph
}

// fully reconstructed transcript
type Document struct {
	Blocks []Block
}

var (
	// input has no recognizable caption timestamp lines
	ErrNoTimestamps = errors.New("no caption timestamps found")

	// deduplication left no cues to format
	ErrEmptyTranscript = errors.New("transcript is empty after deduplication")
)

// Build runs deduplication, chapter mapping, and formatting over parsed
// cues. Chapters must be ordered by start offset and may be empty.
func Build(cues []Cue, chapters []Chapter, opts Options) (*Document, error) {
	deduped := Deduplicate(cues)
	if len(deduped) == 0 {
		return nil, ErrEmptyTranscript
	}
	sections := MapChapters(deduped, chapters)
	return FormatDocument(sections, opts), nil
}

// Reconstruct parses raw caption text and builds the document in one
// step. Parse warnings are returned for the caller to log.
func Reconstruct(raw string, chapters []Chapter, opts Options) (*Document, []Warning, error) {
	caps, err := ParseString(raw)
	if err != nil {
		return nil, nil, err
	}

	doc, err := Build(caps.Cues, chapters, opts)
	if err != nil {
		return nil, caps.Warnings, err
	}

	return doc, caps.Warnings, nil
}
