package transcript

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTimedText = `{
	"events": [
		{"tStartMs": 0, "dDurationMs": 4000, "segs": [{"utf8": "Hello "}, {"utf8": "world"}]},
		{"tStartMs": 4000, "dDurationMs": 3500, "segs": [{"utf8": "second line"}]},
		{"tStartMs": 7500, "dDurationMs": 1000}
	]
}`

// newTestService points the client at a local server.
func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := resty.New().
		SetBaseURL(server.URL).
		SetTimeout(5 * time.Second)
	return &Service{client: client}
}

func TestFetch(t *testing.T) {
	var gotQuery map[string]string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"v":    r.URL.Query().Get("v"),
			"lang": r.URL.Query().Get("lang"),
			"fmt":  r.URL.Query().Get("fmt"),
		}
		_, _ = w.Write([]byte(sampleTimedText))
	})

	entries, err := svc.Fetch(context.Background(), "vid01", []string{"en"})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"v": "vid01", "lang": "en", "fmt": "json3"}, gotQuery)

	// The event with no segments is dropped.
	require.Len(t, entries, 2)
	assert.Equal(t, 0.0, entries[0].Start)
	assert.Equal(t, 4.0, entries[0].Duration)
	assert.Equal(t, "Hello world", entries[0].Text)
	assert.Equal(t, 4.0, entries[1].Start)
	assert.Equal(t, 3.5, entries[1].Duration)
	assert.Equal(t, "second line", entries[1].Text)
}

func TestFetchLanguageFallback(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lang") != "en-US" {
			// Empty 200 body means captions unavailable for this language.
			return
		}
		_, _ = w.Write([]byte(sampleTimedText))
	})

	entries, err := svc.Fetch(context.Background(), "vid01", []string{"en", "en-US"})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFetchNoTranscript(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		// Empty body for every language.
	})

	_, err := svc.Fetch(context.Background(), "vid01", []string{"en", "en-US", "en-GB"})
	assert.ErrorIs(t, err, ErrNoTranscript)
}

func TestFetchServerError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := svc.Fetch(context.Background(), "vid01", []string{"en"})
	assert.ErrorIs(t, err, ErrNoTranscript)
}

func TestFetchDefaultsLanguages(t *testing.T) {
	var langs []string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		langs = append(langs, r.URL.Query().Get("lang"))
	})

	_, err := svc.Fetch(context.Background(), "vid01", nil)
	require.Error(t, err)
	assert.Equal(t, []string{"en", "en-US", "en-GB"}, langs)
}
