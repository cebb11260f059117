package youtube

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/recapkit/recap/internal/transcript"
)

// video exposes no caption track in the requested language
var ErrNoCaptions = errors.New("no captions available")

// metadata recap needs from a single video
type Video struct {
	ID         string
	Title      string
	UploadDate time.Time
	Duration   time.Duration
	URL        string
	Chapters   []transcript.Chapter
	// languages with manual subtitle tracks
	Subtitles []string
	// languages with auto-generated caption tracks
	AutoCaptions []string
}

// HasCaptions reports whether any caption track exists for lang, manual
// or auto-generated. Auto tracks use suffixed keys like "en-orig", so a
// language prefix also counts.
func (v *Video) HasCaptions(lang string) bool {
	return hasLanguage(v.Subtitles, lang) || hasLanguage(v.AutoCaptions, lang)
}

func hasLanguage(langs []string, lang string) bool {
	for _, l := range langs {
		if l == lang || strings.HasPrefix(l, lang+"-") {
			return true
		}
	}
	return false
}

// one video reference in a channel or playlist listing
type Entry struct {
	ID    string
	Title string
	URL   string
}

type videoJSON struct {
	ID           string                     `json:"id"`
	Title        string                     `json:"title"`
	UploadDate   string                     `json:"upload_date"`
	Duration     float64                    `json:"duration"`
	WebpageURL   string                     `json:"webpage_url"`
	Chapters     []chapterJSON              `json:"chapters"`
	Subtitles    map[string]json.RawMessage `json:"subtitles"`
	AutoCaptions map[string]json.RawMessage `json:"automatic_captions"`
}

type chapterJSON struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Title     string  `json:"title"`
}

type playlistJSON struct {
	Entries []entryJSON `json:"entries"`
}

type entryJSON struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

func parseVideoJSON(data []byte) (*Video, error) {
	var raw videoJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode video metadata: %w", err)
	}
	if raw.ID == "" {
		return nil, errors.New("video metadata has no id")
	}

	video := &Video{
		ID:       raw.ID,
		Title:    raw.Title,
		Duration: time.Duration(raw.Duration * float64(time.Second)),
		URL:      raw.WebpageURL,
	}

	if raw.UploadDate != "" {
		if date, err := time.Parse("20060102", raw.UploadDate); err == nil {
			video.UploadDate = date
		}
	}

	for _, ch := range raw.Chapters {
		video.Chapters = append(video.Chapters, transcript.Chapter{
			Start: time.Duration(ch.StartTime * float64(time.Second)),
			Title: ch.Title,
		})
	}
	sort.SliceStable(video.Chapters, func(i, j int) bool {
		return video.Chapters[i].Start < video.Chapters[j].Start
	})

	video.Subtitles = languageKeys(raw.Subtitles)
	video.AutoCaptions = languageKeys(raw.AutoCaptions)

	return video, nil
}

func languageKeys(m map[string]json.RawMessage) []string {
	if len(m) == 0 {
		return nil
	}
	langs := make([]string, 0, len(m))
	for lang := range m {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

func parsePlaylistJSON(data []byte) ([]Entry, error) {
	var raw playlistJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode channel listing: %w", err)
	}

	var entries []Entry
	for _, e := range raw.Entries {
		if e.ID == "" {
			continue
		}
		url := e.URL
		if url == "" {
			url = "https://www.youtube.com/watch?v=" + e.ID
		}
		entries = append(entries, Entry{ID: e.ID, Title: e.Title, URL: url})
	}

	return entries, nil
}
