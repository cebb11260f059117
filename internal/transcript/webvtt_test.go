package transcript

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantCues     int
		wantWarnings int
		wantErr      error
	}{
		{
			name: "vtt with header",
			content: `WEBVTT
Kind: captions
Language: en

00:00:00.000 --> 00:00:02.000
hello there

00:00:02.000 --> 00:00:04.000
general greetings
`,
			wantCues: 2,
		},
		{
			name: "srt with index lines",
			content: `1
00:00:00,000 --> 00:00:02,500
first subtitle

2
00:00:02,500 --> 00:00:05,000
second subtitle
`,
			wantCues: 2,
		},
		{
			name: "auto captions with inline timing tags",
			content: `WEBVTT

00:00:00.000 --> 00:00:03.000
welcome<00:00:01.319><c> back</c><00:00:01.800><c> everyone</c>
`,
			wantCues: 1,
		},
		{
			name: "note and style blocks skipped",
			content: `WEBVTT

NOTE a comment
spanning two lines

STYLE
::cue { color: red }

00:00:00.000 --> 00:00:01.000
actual text
`,
			wantCues: 1,
		},
		{
			name: "short timestamps without hours",
			content: `WEBVTT

00:05.000 --> 00:08.000
short form
`,
			wantCues: 1,
		},
		{
			name: "cue settings after timestamps",
			content: `WEBVTT

00:00:00.000 --> 00:00:02.000 align:start position:0%
positioned cue
`,
			wantCues: 1,
		},
		{
			name: "end before start skipped with warning",
			content: `WEBVTT

00:00:05.000 --> 00:00:02.000
inverted

00:00:06.000 --> 00:00:08.000
kept
`,
			wantCues:     1,
			wantWarnings: 1,
		},
		{
			name: "cue without text skipped with warning",
			content: `WEBVTT

00:00:00.000 --> 00:00:02.000

00:00:02.000 --> 00:00:04.000
has text
`,
			wantCues:     1,
			wantWarnings: 1,
		},
		{
			name: "tag-only cue skipped with warning",
			content: `WEBVTT

00:00:00.000 --> 00:00:02.000
<c></c>

00:00:02.000 --> 00:00:04.000
real text
`,
			wantCues:     1,
			wantWarnings: 1,
		},
		{
			name:    "no timestamps at all",
			content: "a text file\nwithout any cues\n",
			wantErr: ErrNoTimestamps,
		},
		{
			name:    "header lines only",
			content: "WEBVTT\nKind: captions\nLanguage: en\n",
			wantErr: ErrNoTimestamps,
		},
		{
			name:    "empty input",
			content: "",
			wantErr: ErrNoTimestamps,
		},
		{
			name:     "bom before header",
			content:  "\uFEFFWEBVTT\n\n00:00:00.000 --> 00:00:01.000\nbom text\n",
			wantCues: 1,
		},
		{
			name: "no trailing blank line",
			content: `WEBVTT

00:00:00.000 --> 00:00:01.000
trailing cue`,
			wantCues: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps, err := Parse(strings.NewReader(tt.content))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := len(caps.Cues); got != tt.wantCues {
				t.Errorf("cue count = %d, want %d", got, tt.wantCues)
			}
			if got := len(caps.Warnings); got != tt.wantWarnings {
				t.Errorf("warning count = %d, want %d", got, tt.wantWarnings)
			}
		})
	}
}

func TestParseCueValues(t *testing.T) {
	input := `WEBVTT
Kind: captions

00:00:01.000 --> 00:00:04.250
first line
second line

01:02:03.500 --> 01:02:05.000
<c.colorCCCCCC>tagged</c>   text
`

	caps, err := ParseString(input)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if len(caps.Cues) != 2 {
		t.Fatalf("cue count = %d, want 2", len(caps.Cues))
	}

	first := caps.Cues[0]
	if first.Start != 1*time.Second {
		t.Errorf("first start = %v, want 1s", first.Start)
	}
	if first.End != 4250*time.Millisecond {
		t.Errorf("first end = %v, want 4.25s", first.End)
	}
	if first.Text != "first line second line" {
		t.Errorf("first text = %q, want %q", first.Text, "first line second line")
	}

	second := caps.Cues[1]
	wantStart := 1*time.Hour + 2*time.Minute + 3*time.Second + 500*time.Millisecond
	if second.Start != wantStart {
		t.Errorf("second start = %v, want %v", second.Start, wantStart)
	}
	if second.Text != "tagged text" {
		t.Errorf("second text = %q, want %q", second.Text, "tagged text")
	}
}

func TestParseWarningLineNumbers(t *testing.T) {
	input := `WEBVTT

00:00:00.000 --> 00:00:02.000
fine

00:00:09.000 --> 00:00:04.000
dropped
`

	caps, err := ParseString(input)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	if len(caps.Warnings) != 1 {
		t.Fatalf("warning count = %d, want 1", len(caps.Warnings))
	}
	if got := caps.Warnings[0].Line; got != 6 {
		t.Errorf("warning line = %d, want 6", got)
	}
	if !strings.Contains(caps.Warnings[0].Reason, "end precedes start") {
		t.Errorf("warning reason = %q", caps.Warnings[0].Reason)
	}
}
