package transcript

import (
	"sort"
	"strings"
)

// Deduplicate removes the rolling repetition that auto-generated captions
// carry for scroll display. Cues are stable-sorted by start offset, then
// each cue has any prefix repeating the tail of the previously retained
// cue stripped away. Stripping repeats until no overlap remains, so
// feeding the output back in returns it unchanged. Cues left with no
// text are dropped. Cue count never increases and timestamps are kept.
func Deduplicate(cues []Cue) []Cue {
	if len(cues) == 0 {
		return nil
	}

	sorted := make([]Cue, len(cues))
	copy(sorted, cues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	result := make([]Cue, 0, len(sorted))
	prev := ""
	for _, cue := range sorted {
		text := normalizeSpace(cue.Text)
		for text != "" {
			k := overlapLength(prev, text)
			if k == 0 {
				break
			}
			text = strings.TrimSpace(text[k:])
		}
		if text == "" {
			continue
		}
		cue.Text = text
		result = append(result, cue)
		prev = text
	}

	return result
}

// overlapLength returns the length in bytes of the longest suffix of
// prev that is also a prefix of cur, anchored at a word boundary in cur.
func overlapLength(prev, cur string) int {
	max := len(prev)
	if len(cur) < max {
		max = len(cur)
	}
	for k := max; k > 0; k-- {
		if k < len(cur) && cur[k] != ' ' {
			continue
		}
		if prev[len(prev)-k:] == cur[:k] {
			return k
		}
	}
	return 0
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
