package segmenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// evenEntries builds n contiguous entries of the given duration starting at 0.
func evenEntries(n int, duration float64, text string) []Entry {
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, Entry{
			Start:    float64(i) * duration,
			Duration: duration,
			Text:     text,
		})
	}
	return entries
}

func TestBuildSegments(t *testing.T) {
	limits := Limits{MinLen: 40, TargetLen: 90, MaxLen: 180, MaxClips: 20}

	tests := []struct {
		name    string
		entries []Entry
		limits  Limits
		want    []Segment
	}{
		{
			name:    "empty transcript yields no segments",
			entries: nil,
			limits:  limits,
			want:    nil,
		},
		{
			name: "closes at target length",
			entries: []Entry{
				{Start: 0, Duration: 50, Text: "first"},
				{Start: 50, Duration: 50, Text: "second"},
			},
			limits: limits,
			want: []Segment{
				{Start: 0, End: 100, Text: "first second"},
			},
		},
		{
			name: "overshoot is clamped to max length",
			entries: []Entry{
				{Start: 0, Duration: 50, Text: "a"},
				{Start: 50, Duration: 200, Text: "b"},
			},
			limits: limits,
			want: []Segment{
				{Start: 0, End: 180, Text: "a b"},
			},
		},
		{
			name:    "trailing accumulator below min is discarded",
			entries: evenEntries(3, 10, "x"),
			limits:  limits,
			want:    nil,
		},
		{
			name:    "trailing accumulator at least min survives",
			entries: evenEntries(5, 10, "x"),
			limits:  limits,
			want: []Segment{
				{Start: 0, End: 50, Text: "x x x x x"},
			},
		},
		{
			name: "newlines collapse to spaces",
			entries: []Entry{
				{Start: 0, Duration: 95, Text: "line one\nline two"},
			},
			limits: limits,
			want: []Segment{
				{Start: 0, End: 95, Text: "line one line two"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildSegments(tt.entries, tt.limits)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildSegmentsTwoWindows(t *testing.T) {
	// 0-100 then 100-200: each pair of 50s entries reaches the 90s target.
	entries := evenEntries(4, 50, "t")
	got := BuildSegments(entries, Limits{MinLen: 40, TargetLen: 90, MaxLen: 180, MaxClips: 20})

	assert.Len(t, got, 2)
	assert.Equal(t, 0.0, got[0].Start)
	assert.Equal(t, 100.0, got[0].End)
	assert.Equal(t, 100.0, got[1].Start)
	assert.Equal(t, 200.0, got[1].End)
}

func TestBuildSegmentsMaxClipsCap(t *testing.T) {
	entries := evenEntries(20, 50, "t") // would yield 10 segments uncapped
	got := BuildSegments(entries, Limits{MinLen: 40, TargetLen: 90, MaxLen: 180, MaxClips: 3})

	assert.Len(t, got, 3)
}

func TestBuildSegmentsOrderedNonOverlapping(t *testing.T) {
	entries := evenEntries(12, 30, "word")
	got := BuildSegments(entries, Limits{MinLen: 40, TargetLen: 90, MaxLen: 180, MaxClips: 20})

	assert.NotEmpty(t, got)
	for i, seg := range got {
		assert.Less(t, seg.Start, seg.End)
		if i > 0 {
			assert.GreaterOrEqual(t, seg.Start, got[i-1].End)
		}
	}
}
