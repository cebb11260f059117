package transcript

// MapChapters assigns cues to chapters with a single monotonic merge over
// the two time-ordered sequences. A cue belongs to the last chapter
// starting at or before the cue's start offset; cues before the first
// chapter are folded into it. With no chapters the result is one section
// with a nil Chapter. Chapters that receive no cues produce no section.
func MapChapters(cues []Cue, chapters []Chapter) []Section {
	if len(cues) == 0 {
		return nil
	}
	if len(chapters) == 0 {
		return []Section{{Cues: cues}}
	}

	var sections []Section
	ci := 0
	current := -1
	for _, cue := range cues {
		for ci+1 < len(chapters) && chapters[ci+1].Start <= cue.Start {
			ci++
		}
		if ci != current {
			ch := chapters[ci]
			sections = append(sections, Section{Chapter: &ch})
			current = ci
		}
		last := len(sections) - 1
		sections[last].Cues = append(sections[last].Cues, cue)
	}

	return sections
}
