package transcript

import (
	"reflect"
	"testing"
	"time"
)

func chapterAt(sec int, title string) Chapter {
	return Chapter{Start: time.Duration(sec) * time.Second, Title: title}
}

type sectionSummary struct {
	title string
	cues  int
}

func summarizeSections(sections []Section) []sectionSummary {
	var out []sectionSummary
	for _, s := range sections {
		sum := sectionSummary{cues: len(s.Cues)}
		if s.Chapter != nil {
			sum.title = s.Chapter.Title
		}
		out = append(out, sum)
	}
	return out
}

func TestMapChapters(t *testing.T) {
	tests := []struct {
		name     string
		cues     []Cue
		chapters []Chapter
		want     []sectionSummary
	}{
		{
			name: "cues split across chapters",
			cues: []Cue{cueAt(5, "a"), cueAt(30, "b"), cueAt(65, "c"), cueAt(130, "d")},
			chapters: []Chapter{
				chapterAt(0, "Intro"),
				chapterAt(60, "Middle"),
				chapterAt(120, "End"),
			},
			want: []sectionSummary{
				{title: "Intro", cues: 2},
				{title: "Middle", cues: 1},
				{title: "End", cues: 1},
			},
		},
		{
			name:     "cue before first chapter folded in",
			cues:     []Cue{cueAt(2, "early"), cueAt(15, "on time")},
			chapters: []Chapter{chapterAt(10, "Intro")},
			want:     []sectionSummary{{title: "Intro", cues: 2}},
		},
		{
			name:     "no chapters single section",
			cues:     []Cue{cueAt(0, "a"), cueAt(5, "b"), cueAt(10, "c")},
			chapters: nil,
			want:     []sectionSummary{{title: "", cues: 3}},
		},
		{
			name: "chapter without cues skipped",
			cues: []Cue{cueAt(5, "a"), cueAt(110, "b")},
			chapters: []Chapter{
				chapterAt(0, "First"),
				chapterAt(50, "Silent"),
				chapterAt(100, "Last"),
			},
			want: []sectionSummary{
				{title: "First", cues: 1},
				{title: "Last", cues: 1},
			},
		},
		{
			name:     "cue on chapter boundary joins new chapter",
			cues:     []Cue{cueAt(59, "before"), cueAt(60, "after")},
			chapters: []Chapter{chapterAt(0, "A"), chapterAt(60, "B")},
			want: []sectionSummary{
				{title: "A", cues: 1},
				{title: "B", cues: 1},
			},
		},
		{
			name:     "no cues no sections",
			cues:     nil,
			chapters: []Chapter{chapterAt(0, "Intro")},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summarizeSections(MapChapters(tt.cues, tt.chapters))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MapChapters() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapChaptersNilChapterPointer(t *testing.T) {
	sections := MapChapters([]Cue{cueAt(0, "text")}, nil)
	if len(sections) != 1 {
		t.Fatalf("section count = %d, want 1", len(sections))
	}
	if sections[0].Chapter != nil {
		t.Errorf("Chapter = %+v, want nil", sections[0].Chapter)
	}
}

func TestMapChaptersCueOrderPreserved(t *testing.T) {
	cues := []Cue{cueAt(5, "a"), cueAt(20, "b"), cueAt(70, "c"), cueAt(80, "d")}
	chapters := []Chapter{chapterAt(0, "One"), chapterAt(60, "Two")}

	sections := MapChapters(cues, chapters)

	var flat []string
	for _, s := range sections {
		flat = append(flat, cueTexts(s.Cues)...)
	}
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(flat, want) {
		t.Errorf("cue order = %v, want %v", flat, want)
	}
}
