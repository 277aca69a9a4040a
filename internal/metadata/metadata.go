// Package metadata derives default clip titles and descriptions from
// transcript text. These are the fallback values before LLM enrichment.
package metadata

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/connorodea/ClipsMachine/internal/utils"
)

const (
	maxTitleLen           = 95
	sentenceScanLimit     = 80
	terseTitleLen         = 20
	terseFallbackLen      = 90
	descriptionExcerptLen = 1000
)

// DeriveTitle builds a title from the first sentence of the clip text.
// Very short first sentences are widened to a plain prefix of the text, and
// the result is hard-capped at 95 characters.
func DeriveTitle(clipText string, index int) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(clipText, "\n", " "))
	if cleaned == "" {
		return fmt.Sprintf("Clip #%d", index)
	}

	var base string
	if end := strings.IndexAny(cleaned, ".!?"); end != -1 {
		base = strings.TrimSpace(cleaned[:end])
	} else {
		base = strings.TrimSpace(utils.TruncateRunes(cleaned, sentenceScanLimit))
	}

	if utf8.RuneCountInString(base) < terseTitleLen {
		base = strings.TrimSpace(utils.TruncateRunes(cleaned, terseFallbackLen))
	}

	base = strings.TrimRight(base, ".!?")
	return utils.TruncateRunes(base, maxTitleLen)
}

// DeriveDescription builds the fixed description template: source link,
// human-readable time range, a transcript excerpt and the attribution footer.
func DeriveDescription(originalURL string, start, end float64, clipText string) string {
	excerpt := utils.TruncateRunes(clipText, descriptionExcerptLen)

	lines := []string{
		fmt.Sprintf("Clip from: %s", originalURL),
		fmt.Sprintf("Original segment: %s – %s", HumanTime(start), HumanTime(end)),
		"",
		"Context of this clip:",
		excerpt,
		"",
		"All credit to the original creator. " +
			"This channel curates the best short moments from long-form conversations.",
	}
	return strings.Join(lines, "\n")
}

// HumanTime formats seconds as HH:MM:SS, dropping the hour field when zero.
func HumanTime(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
