package transcript

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// parsed caption stream
type Captions struct {
	Cues     []Cue
	Warnings []Warning
}

// non-fatal problem with a single cue block; the cue is skipped
type Warning struct {
	Line   int
	Reason string
}

var (
	timestampRegex      = regexp.MustCompile(`(\d{2,}):(\d{2}):(\d{2})[.,](\d{3})\s*-->\s*(\d{2,}):(\d{2}):(\d{2})[.,](\d{3})`)
	shortTimestampRegex = regexp.MustCompile(`(\d{2}):(\d{2})[.,](\d{3})\s*-->\s*(\d{2}):(\d{2})[.,](\d{3})`)
	tagRegex            = regexp.MustCompile(`<[^>]*>`)
)

type pendingCue struct {
	line      int
	start     time.Duration
	end       time.Duration
	textLines []string
}

// Parse reads a WebVTT or SRT caption stream into ordered cues. Header
// lines, NOTE and STYLE blocks, and numeric index lines are skipped.
// Malformed cue blocks are dropped and reported as warnings. Returns
// ErrNoTimestamps when no timestamp line appears in the whole input.
func Parse(r io.Reader) (*Captions, error) {
	scanner := bufio.NewScanner(r)

	caps := &Captions{}
	var pending *pendingCue
	lineNum := 0
	seenTimestamp := false

	flush := func() {
		if pending == nil {
			return
		}
		text := cleanCueText(strings.Join(pending.textLines, " "))
		if text == "" {
			caps.Warnings = append(caps.Warnings, Warning{Line: pending.line, Reason: "cue has no text"})
		} else {
			caps.Cues = append(caps.Cues, Cue{Start: pending.start, End: pending.end, Text: text})
		}
		pending = nil
	}

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}

		// skip NOTE and STYLE blocks up to the next blank line
		if strings.HasPrefix(line, "NOTE") || strings.HasPrefix(line, "STYLE") {
			flush()
			for scanner.Scan() {
				lineNum++
				if strings.TrimSpace(scanner.Text()) == "" {
					break
				}
			}
			continue
		}

		if start, end, ok := matchTimestamps(line); ok {
			flush()
			seenTimestamp = true
			if end < start {
				caps.Warnings = append(caps.Warnings, Warning{Line: lineNum, Reason: "cue end precedes start"})
				continue
			}
			pending = &pendingCue{line: lineNum, start: start, end: end}
			continue
		}

		if line == "" {
			flush()
			continue
		}

		if pending == nil {
			// header metadata, index lines, cue identifiers, or text of
			// a skipped cue
			continue
		}

		pending.textLines = append(pending.textLines, line)
	}

	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read captions: %w", err)
	}

	if !seenTimestamp {
		return nil, ErrNoTimestamps
	}

	return caps, nil
}

// ParseString parses caption text held in memory.
func ParseString(raw string) (*Captions, error) {
	return Parse(strings.NewReader(raw))
}

func matchTimestamps(line string) (start, end time.Duration, ok bool) {
	if m := timestampRegex.FindStringSubmatch(line); m != nil {
		start = clockDuration(m[1], m[2], m[3], m[4])
		end = clockDuration(m[5], m[6], m[7], m[8])
		return start, end, true
	}
	if m := shortTimestampRegex.FindStringSubmatch(line); m != nil {
		start = clockDuration("0", m[1], m[2], m[3])
		end = clockDuration("0", m[4], m[5], m[6])
		return start, end, true
	}
	return 0, 0, false
}

func clockDuration(hours, minutes, seconds, millis string) time.Duration {
	h, _ := strconv.Atoi(hours)
	m, _ := strconv.Atoi(minutes)
	s, _ := strconv.Atoi(seconds)
	ms, _ := strconv.Atoi(millis)

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond
}

// cleanCueText strips markup tags and collapses runs of whitespace.
// Inline timing tags in auto-generated captions are removed here.
func cleanCueText(s string) string {
	s = tagRegex.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}
