// Package transcript fetches time-coded transcripts from YouTube's timedtext
// endpoint.
package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/connorodea/ClipsMachine/internal/segmenter"
	"github.com/connorodea/ClipsMachine/internal/utils"

	"github.com/go-resty/resty/v2"
)

// ErrNoTranscript is returned when captions are disabled or missing for every
// requested language. This is not transient; retrying will not help.
var ErrNoTranscript = errors.New("no transcript available for this video")

// DefaultLanguages is the preferred language order for transcript lookup.
var DefaultLanguages = []string{"en", "en-US", "en-GB"}

// Fetcher defines the transcript operation the pipeline depends on.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string, languages []string) ([]segmenter.Entry, error)
}

// Service fetches transcripts over HTTP.
type Service struct {
	client *resty.Client
}

// Ensure Service implements Fetcher
var _ Fetcher = (*Service)(nil)

// NewService creates a transcript service.
func NewService() *Service {
	client := resty.New().
		SetBaseURL("https://www.youtube.com").
		SetTimeout(30 * time.Second)
	return &Service{client: client}
}

// timedTextResponse is the json3 timedtext payload.
type timedTextResponse struct {
	Events []struct {
		StartMs    int64 `json:"tStartMs"`
		DurationMs int64 `json:"dDurationMs"`
		Segs       []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// Fetch tries each language in order and returns the first transcript found.
func (s *Service) Fetch(ctx context.Context, videoID string, languages []string) ([]segmenter.Entry, error) {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}

	for _, lang := range languages {
		entries, err := s.fetchLanguage(ctx, videoID, lang)
		if err != nil {
			utils.LogVerbose("Transcript lookup failed for language %s: %v", lang, err)
			continue
		}
		if len(entries) > 0 {
			return entries, nil
		}
	}

	return nil, fmt.Errorf("%w (id=%s)", ErrNoTranscript, videoID)
}

func (s *Service) fetchLanguage(ctx context.Context, videoID, lang string) ([]segmenter.Entry, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"v":    videoID,
			"lang": lang,
			"fmt":  "json3",
		}).
		Get("/api/timedtext")
	if err != nil {
		return nil, fmt.Errorf("timedtext request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("timedtext returned status %d", resp.StatusCode())
	}
	if len(resp.Body()) == 0 {
		// YouTube answers 200 with an empty body when captions are disabled.
		return nil, nil
	}

	var payload timedTextResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse timedtext response: %w", err)
	}

	var entries []segmenter.Entry
	for _, event := range payload.Events {
		if len(event.Segs) == 0 {
			continue
		}
		var text string
		for _, seg := range event.Segs {
			text += seg.UTF8
		}
		entries = append(entries, segmenter.Entry{
			Start:    float64(event.StartMs) / 1000,
			Duration: float64(event.DurationMs) / 1000,
			Text:     text,
		})
	}

	return entries, nil
}
