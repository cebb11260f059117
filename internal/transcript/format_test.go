package transcript

import (
	"strings"
	"testing"
	"time"
)

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "zero", d: 0, want: "00:00:00"},
		{name: "seconds only", d: 59 * time.Second, want: "00:00:59"},
		{name: "minutes roll over", d: 61 * time.Second, want: "00:01:01"},
		{name: "hours", d: 3661 * time.Second, want: "01:01:01"},
		{name: "fraction truncated", d: 1900 * time.Millisecond, want: "00:00:01"},
		{name: "negative clamped", d: -5 * time.Second, want: "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimestamp(tt.d); got != tt.want {
				t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestFormatDocumentSentenceGrouping(t *testing.T) {
	cues := []Cue{cueAt(0, "One. Two. Three. Four. Five. Six. Seven. Eight.")}
	opts := Options{SentencesPerParagraph: 4}

	doc := FormatDocument(MapChapters(cues, nil), opts)
	if len(doc.Blocks) != 1 {
		t.Fatalf("block count = %d, want 1", len(doc.Blocks))
	}

	paras := doc.Blocks[0].Paragraphs
	if len(paras) != 2 {
		t.Fatalf("paragraph count = %d, want 2", len(paras))
	}
	if paras[0].Text != "One. Two. Three. Four." {
		t.Errorf("first paragraph = %q", paras[0].Text)
	}
	if paras[1].Text != "Five. Six. Seven. Eight." {
		t.Errorf("second paragraph = %q", paras[1].Text)
	}
}

func TestFormatDocumentUnpunctuatedText(t *testing.T) {
	// auto captions often carry no punctuation at all
	text := strings.TrimSpace(strings.Repeat("word ", 50))
	cues := []Cue{cueAt(0, text)}
	opts := Options{MaxParagraphChars: 100}

	doc := FormatDocument(MapChapters(cues, nil), opts)
	paras := doc.Blocks[0].Paragraphs
	if len(paras) < 2 {
		t.Fatalf("paragraph count = %d, want at least 2", len(paras))
	}

	total := 0
	for _, p := range paras {
		for _, w := range strings.Fields(p.Text) {
			if w != "word" {
				t.Fatalf("word split across paragraphs: %q", w)
			}
			total++
		}
	}
	if total != 50 {
		t.Errorf("word count = %d, want 50", total)
	}
}

func TestFormatDocumentWrapWidth(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("seven77 ", 30))
	cues := []Cue{cueAt(0, text)}
	opts := Options{WrapWidth: 20}

	doc := FormatDocument(MapChapters(cues, nil), opts)
	for _, p := range doc.Blocks[0].Paragraphs {
		for _, line := range strings.Split(p.Text, "\n") {
			if len(line) > 20 {
				t.Errorf("line exceeds width: %q (%d)", line, len(line))
			}
		}
	}
}

func TestFormatDocumentLongWordKeptWhole(t *testing.T) {
	long := strings.Repeat("x", 30)
	cues := []Cue{cueAt(0, "short "+long+" short")}
	opts := Options{WrapWidth: 10}

	doc := FormatDocument(MapChapters(cues, nil), opts)
	joined := doc.Blocks[0].Paragraphs[0].Text
	if !strings.Contains(joined, long) {
		t.Errorf("long word was split: %q", joined)
	}
}

func TestFormatDocumentTimestampInterval(t *testing.T) {
	var cues []Cue
	for i := 0; i < 6; i++ {
		cues = append(cues, cueAt(i*10, "Sentence number "+string(rune('a'+i))+"."))
	}
	opts := Options{SentencesPerParagraph: 1, TimestampEvery: 2}

	doc := FormatDocument(MapChapters(cues, nil), opts)
	paras := doc.Blocks[0].Paragraphs
	if len(paras) != 6 {
		t.Fatalf("paragraph count = %d, want 6", len(paras))
	}
	for i, p := range paras {
		wantMarker := i%2 == 0
		if (p.Timestamp != nil) != wantMarker {
			t.Errorf("paragraph %d timestamp presence = %v, want %v", i, p.Timestamp != nil, wantMarker)
		}
	}
	if paras[0].Timestamp == nil || *paras[0].Timestamp != 0 {
		t.Errorf("first timestamp = %v, want 0s", paras[0].Timestamp)
	}
	if paras[2].Timestamp == nil || *paras[2].Timestamp != 20*time.Second {
		t.Errorf("third timestamp = %v, want 20s", paras[2].Timestamp)
	}
}

func TestFormatDocumentTimestampsMonotonic(t *testing.T) {
	var cues []Cue
	for i := 0; i < 12; i++ {
		cues = append(cues, cueAt(i*7, "Clause number "+string(rune('a'+i))+" here."))
	}
	chapters := []Chapter{chapterAt(0, "Start"), chapterAt(40, "Finish")}
	opts := Options{SentencesPerParagraph: 2, TimestampEvery: 1}

	doc := FormatDocument(MapChapters(cues, chapters), opts)

	last := time.Duration(-1)
	for _, block := range doc.Blocks {
		for _, p := range block.Paragraphs {
			if p.Timestamp == nil {
				t.Fatal("expected a timestamp on every paragraph")
			}
			if *p.Timestamp < last {
				t.Fatalf("timestamp %v decreased below %v", *p.Timestamp, last)
			}
			last = *p.Timestamp
		}
	}
}

func TestFormatDocumentTextCoverage(t *testing.T) {
	cues := []Cue{
		cueAt(0, "The first cue has a full sentence."),
		cueAt(4, "then an unpunctuated run of words"),
		cueAt(8, "and a final closing thought!"),
	}
	chapters := []Chapter{chapterAt(0, "Only")}

	doc := FormatDocument(MapChapters(cues, chapters), DefaultOptions())

	var want strings.Builder
	for _, c := range cues {
		want.WriteString(c.Text)
	}
	var got strings.Builder
	for _, block := range doc.Blocks {
		for _, p := range block.Paragraphs {
			got.WriteString(p.Text)
		}
	}
	if stripSpace(got.String()) != stripSpace(want.String()) {
		t.Errorf("document text differs from cue text:\ngot  %q\nwant %q", got.String(), want.String())
	}
}

func TestFormatDocumentHeadings(t *testing.T) {
	cues := []Cue{cueAt(5, "alpha"), cueAt(70, "beta")}
	chapters := []Chapter{chapterAt(0, "Opening"), chapterAt(60, "Closing")}

	doc := FormatDocument(MapChapters(cues, chapters), DefaultOptions())
	if len(doc.Blocks) != 2 {
		t.Fatalf("block count = %d, want 2", len(doc.Blocks))
	}
	if got := doc.Blocks[0].Heading; got != "00:00:00 Opening" {
		t.Errorf("first heading = %q", got)
	}
	if got := doc.Blocks[1].Heading; got != "00:01:00 Closing" {
		t.Errorf("second heading = %q", got)
	}
}

func TestFormatDocumentNoChapterHeading(t *testing.T) {
	doc := FormatDocument(MapChapters([]Cue{cueAt(0, "text")}, nil), DefaultOptions())
	if got := doc.Blocks[0].Heading; got != "" {
		t.Errorf("heading = %q, want empty", got)
	}
}
