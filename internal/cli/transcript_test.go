package cli

import (
	"testing"
	"time"
)

func TestParseChapters(t *testing.T) {
	data := []byte(`[
		{"start_time": 90.5, "title": "Middle"},
		{"start_time": 0, "title": "Intro"}
	]`)

	chapters, err := parseChapters(data)
	if err != nil {
		t.Fatalf("parseChapters() error = %v", err)
	}
	if len(chapters) != 2 {
		t.Fatalf("got %d chapters, want 2", len(chapters))
	}
	if chapters[0].Title != "Intro" || chapters[0].Start != 0 {
		t.Errorf("chapters[0] = %+v, want Intro at 0s", chapters[0])
	}
	if chapters[1].Title != "Middle" || chapters[1].Start != 90500*time.Millisecond {
		t.Errorf("chapters[1] = %+v, want Middle at 90.5s", chapters[1])
	}
}

func TestParseChaptersInvalid(t *testing.T) {
	if _, err := parseChapters([]byte(`{"not": "a list"}`)); err == nil {
		t.Fatal("parseChapters() expected error for non-array JSON, got nil")
	}
}
