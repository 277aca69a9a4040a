// Package publish is the upload pass: it publishes clips listed in the
// manifest, isolating failures per clip so one bad upload never aborts the
// batch.
package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/connorodea/ClipsMachine/internal/config"
	"github.com/connorodea/ClipsMachine/internal/manifest"
	"github.com/connorodea/ClipsMachine/internal/services/youtube"
	"github.com/connorodea/ClipsMachine/internal/utils"
)

// defaultTags is the fixed tag set attached to every clip upload.
var defaultTags = []string{"clips", "podcast", "short clips", "highlights"}

// Options selects which clips to publish and how uploads are paced.
type Options struct {
	PrivacyStatus string
	StartIndex    int
	MaxClips      int           // <= 0 means no cap
	SleepBetween  time.Duration // applied after every clip, success or not
}

// Result reports one clip's publish outcome.
type Result struct {
	ClipIndex int
	VideoID   string
	Err       error
}

// Pass runs uploads over a manifest.
type Pass struct {
	cfg       config.Config
	store     *manifest.Store
	publisher youtube.Publisher
	sleep     func(time.Duration)
}

// New creates a publishing pass.
func New(cfg config.Config, store *manifest.Store, publisher youtube.Publisher) *Pass {
	return &Pass{
		cfg:       cfg,
		store:     store,
		publisher: publisher,
		sleep:     time.Sleep,
	}
}

// Run uploads every clip in the selected index window. Individual upload
// failures are logged and reported but do not stop the batch; the manifest is
// never modified by this pass.
func (p *Pass) Run(ctx context.Context, videoID string, opts Options) ([]Result, error) {
	clipsDir := filepath.Join(p.cfg.OutputRoot, videoID, "clips")
	info, err := os.Stat(clipsDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("clips directory not found: %s", clipsDir)
	}

	records, err := p.store.Load(videoID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("manifest is empty")
	}

	manifest.SortByIndex(records)

	if opts.StartIndex < 1 {
		opts.StartIndex = 1
	}
	selected := manifest.SelectWindow(records, opts.StartIndex, opts.MaxClips)

	utils.LogInfo("Found %d clips to upload for %s", len(selected), videoID)

	if err := p.publisher.Authorize(ctx); err != nil {
		return nil, fmt.Errorf("failed to authorize publisher: %w", err)
	}

	results := make([]Result, 0, len(selected))
	uploaded := 0

	for _, record := range selected {
		title := record.Title
		if title == "" {
			title = fmt.Sprintf("Clip #%d", record.ClipIndex)
		}

		utils.LogInfo("Uploading clip #%d: %s", record.ClipIndex, title)

		platformID, err := p.publisher.Upload(ctx, youtube.UploadRequest{
			FilePath:      filepath.Join(clipsDir, record.FileName),
			Title:         title,
			Description:   record.Description,
			Tags:          defaultTags,
			CategoryID:    p.cfg.CategoryID,
			PrivacyStatus: opts.PrivacyStatus,
		})
		if err != nil {
			utils.LogError("Failed to upload clip #%d: %v", record.ClipIndex, err)
		} else {
			uploaded++
		}
		results = append(results, Result{ClipIndex: record.ClipIndex, VideoID: platformID, Err: err})

		if opts.SleepBetween > 0 {
			p.sleep(opts.SleepBetween)
		}
	}

	utils.LogSuccess("Uploaded %d/%d clips for %s", uploaded, len(selected), videoID)
	return results, nil
}
