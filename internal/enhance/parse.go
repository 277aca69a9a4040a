package enhance

import (
	"encoding/json"
	"strings"
)

// MetadataResult is the typed outcome of parsing a service response: either a
// structured title/description pair or the raw text for the caller to degrade
// to.
type MetadataResult struct {
	Parsed      bool
	Title       string
	Description string
	Raw         string
}

// ParseMetadataResponse extracts the {title, description} payload from a
// service response, tolerating a fenced code-block wrapper. It never fails;
// an unparseable response comes back with Parsed=false and the raw text.
func ParseMetadataResponse(raw string) MetadataResult {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.Trim(cleaned, "`")
		if len(cleaned) >= 4 && strings.EqualFold(cleaned[:4], "json") {
			cleaned = strings.TrimSpace(cleaned[4:])
		}
	}

	var payload struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return MetadataResult{Raw: strings.TrimSpace(raw)}
	}

	return MetadataResult{
		Parsed:      true,
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		Raw:         raw,
	}
}
