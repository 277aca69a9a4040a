// Package segmenter turns a time-coded transcript into bounded clip windows.
// It is pure: no I/O, no clocks, fully deterministic.
package segmenter

import "strings"

// Entry is a single timestamped transcript line, ordered by Start.
type Entry struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// Segment is one clip window with the transcript text it covers.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Limits bounds the greedy accumulation.
type Limits struct {
	MinLen    float64 // trailing segments shorter than this are discarded
	TargetLen float64 // a segment closes once it reaches this duration
	MaxLen    float64 // segments longer than this are clamped
	MaxClips  int
}

// BuildSegments scans the transcript once, greedily accumulating entries into
// segments. A segment closes when it reaches TargetLen; if it overshoots
// MaxLen the end is clamped back, though the closing entry's text stays in
// full. Trailing entries that never reach TargetLen still become a final
// segment when they cover at least MinLen.
func BuildSegments(entries []Entry, limits Limits) []Segment {
	var segments []Segment

	open := false
	var currentStart, currentEnd float64
	var currentText []string

	for _, entry := range entries {
		text := strings.TrimSpace(strings.ReplaceAll(entry.Text, "\n", " "))

		if !open {
			open = true
			currentStart = entry.Start
			currentText = currentText[:0]
		}

		currentText = append(currentText, text)
		currentEnd = entry.Start + entry.Duration
		currentDuration := currentEnd - currentStart

		if currentDuration >= limits.TargetLen {
			if currentDuration > limits.MaxLen {
				currentEnd = currentStart + limits.MaxLen
			}
			segments = append(segments, Segment{
				Start: currentStart,
				End:   currentEnd,
				Text:  strings.TrimSpace(strings.Join(currentText, " ")),
			})
			open = false
		}

		if len(segments) >= limits.MaxClips {
			break
		}
	}

	// Trailing partial accumulator: keep it only when it is long enough to
	// stand as a clip on its own.
	if open {
		tailDuration := currentEnd - currentStart
		if tailDuration >= limits.MinLen && len(segments) < limits.MaxClips {
			segments = append(segments, Segment{
				Start: currentStart,
				End:   currentEnd,
				Text:  strings.TrimSpace(strings.Join(currentText, " ")),
			})
		}
	}

	return segments
}
