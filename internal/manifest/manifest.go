// Package manifest owns the durable per-video record of generated clips.
// The manifest is the single source of truth shared by the clipping,
// enrichment and upload passes; every save replaces the whole file.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/connorodea/ClipsMachine/internal/utils"
)

// ErrNotFound is returned when no manifest exists for a video ID.
var ErrNotFound = errors.New("manifest not found")

const textPreviewLen = 300

// ClipRecord is one clip's entry in the manifest.
type ClipRecord struct {
	ClipIndex        int     `json:"clip_index"`
	Start            float64 `json:"start"`
	End              float64 `json:"end"`
	Duration         float64 `json:"duration"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	TextPreview      string  `json:"text_preview"`
	FileName         string  `json:"file_name"`
	OriginalVideoURL string  `json:"original_video_url"`
}

// Store reads and writes manifests under an output root, one JSON array per
// video ID at {root}/{videoID}/manifest.json.
type Store struct {
	outputRoot string
}

// NewStore creates a manifest store rooted at outputRoot.
func NewStore(outputRoot string) *Store {
	return &Store{outputRoot: outputRoot}
}

// Path returns the manifest location for a video ID.
func (s *Store) Path(videoID string) string {
	return filepath.Join(s.outputRoot, videoID, "manifest.json")
}

// Load reads the full manifest for a video. Records persisted by older runs
// may lack a text preview; those fall back to a prefix of the description.
func (s *Store) Load(videoID string) ([]ClipRecord, error) {
	path := s.Path(videoID)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var records []ClipRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	for i := range records {
		if records[i].TextPreview == "" && records[i].Description != "" {
			records[i].TextPreview = utils.TruncateRunes(records[i].Description, textPreviewLen)
		}
	}

	return records, nil
}

// Save replaces the manifest with the given records. The write goes to a
// temporary file first and is renamed into place so a crash cannot leave a
// truncated manifest behind.
func (s *Store) Save(videoID string, records []ClipRecord) error {
	path := s.Path(videoID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "manifest-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp manifest: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp manifest: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace manifest: %w", err)
	}

	return nil
}

// SortByIndex orders records by ascending clip index. Passes sort defensively
// before processing so storage order never dictates processing order.
func SortByIndex(records []ClipRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].ClipIndex < records[j].ClipIndex
	})
}

// SelectWindow returns the records with ClipIndex >= startIndex, capped to
// the first maxClips of that subset. maxClips <= 0 means no cap. The input
// must already be sorted by index.
func SelectWindow(records []ClipRecord, startIndex, maxClips int) []ClipRecord {
	var selected []ClipRecord
	for _, r := range records {
		if r.ClipIndex >= startIndex {
			selected = append(selected, r)
		}
	}
	if maxClips > 0 && len(selected) > maxClips {
		selected = selected[:maxClips]
	}
	return selected
}

// MergeByIndex replaces the record whose ClipIndex matches updated, leaving
// every other record untouched. Matching by index rather than position keeps
// re-runs over partial or reordered manifests from corrupting siblings.
func MergeByIndex(records []ClipRecord, updated ClipRecord) {
	for i := range records {
		if records[i].ClipIndex == updated.ClipIndex {
			records[i] = updated
			return
		}
	}
}
