package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		s    string
		max  int
		want string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exactly max", "hello", 5, "hello"},
		{"ascii truncation", "hello world", 5, "hello"},
		{"empty string", "", 5, ""},
		{"zero max", "hello", 0, ""},
		{"negative max", "hello", -1, ""},
		{"multi-byte truncation", "……………", 3, "………"},
		{"mixed ascii and multi-byte", "aé…b", 3, "aé…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateRunes(tt.s, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestTruncateRunesNeverSplitsRunes(t *testing.T) {
	s := strings.Repeat("…", 40)
	for max := 0; max <= 45; max++ {
		got := TruncateRunes(s, max)
		assert.True(t, utf8.ValidString(got), "max=%d", max)
	}
}
