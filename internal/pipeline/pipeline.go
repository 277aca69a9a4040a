// Package pipeline drives the first manifest generation: download a source
// video, segment its transcript, cut one clip per segment and persist the
// manifest.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/connorodea/ClipsMachine/internal/config"
	"github.com/connorodea/ClipsMachine/internal/manifest"
	"github.com/connorodea/ClipsMachine/internal/metadata"
	"github.com/connorodea/ClipsMachine/internal/segmenter"
	"github.com/connorodea/ClipsMachine/internal/services/downloader"
	"github.com/connorodea/ClipsMachine/internal/services/ffmpeg"
	"github.com/connorodea/ClipsMachine/internal/services/transcript"
	"github.com/connorodea/ClipsMachine/internal/utils"
)

// ErrNoSegments is returned when the transcript yields no clip segments.
var ErrNoSegments = errors.New("no segments generated - adjust clip settings")

const textPreviewLen = 300

// videoIDPatterns match the known URL shapes a video ID can hide in.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`v=([^&]+)`),
	regexp.MustCompile(`youtu\.be/([^?&]+)`),
	regexp.MustCompile(`shorts/([^?&]+)`),
}

// ResolveVideoID extracts a stable video identifier from a URL, falling back
// to the final path segment for unrecognized shapes.
func ResolveVideoID(url string) string {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	trimmed := strings.TrimRight(url, "/")
	parts := strings.Split(trimmed, "/")
	return parts[len(parts)-1]
}

// Pipeline orchestrates acquisition, segmentation and extraction.
type Pipeline struct {
	cfg         config.Config
	store       *manifest.Store
	downloader  downloader.Downloader
	transcripts transcript.Fetcher
	cutter      ffmpeg.Cutter
}

// New creates a pipeline with its collaborators injected.
func New(cfg config.Config, store *manifest.Store, dl downloader.Downloader, tf transcript.Fetcher, cutter ffmpeg.Cutter) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		store:       store,
		downloader:  dl,
		transcripts: tf,
		cutter:      cutter,
	}
}

// ProcessSource runs the full first pass for one source video and returns the
// clip records it persisted. Failures abort without rolling back side
// effects; already-downloaded and already-cut files stay on disk.
func (p *Pipeline) ProcessSource(ctx context.Context, url string) ([]manifest.ClipRecord, error) {
	videoID := ResolveVideoID(url)
	videoDir := filepath.Join(p.cfg.OutputRoot, videoID)
	rawDir := filepath.Join(videoDir, "raw")
	clipsDir := filepath.Join(videoDir, "clips")

	for _, dir := range []string{rawDir, clipsDir} {
		if err := utils.EnsureDir(dir); err != nil {
			return nil, err
		}
	}

	utils.LogInfo("Processing: %s", url)
	utils.LogInfo("Video ID: %s", videoID)

	videoPath, err := p.downloader.Download(ctx, url, rawDir, videoID)
	if err != nil {
		return nil, err
	}
	utils.LogSuccess("Downloaded video to %s", videoPath)

	entries, err := p.transcripts.Fetch(ctx, videoID, transcript.DefaultLanguages)
	if err != nil {
		return nil, err
	}
	utils.LogSuccess("Fetched transcript (%d entries)", len(entries))

	segments := segmenter.BuildSegments(entries, segmenter.Limits{
		MinLen:    p.cfg.MinClipSec,
		TargetLen: p.cfg.TargetClipSec,
		MaxLen:    p.cfg.MaxClipSec,
		MaxClips:  p.cfg.MaxClipsPerVideo,
	})
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}
	utils.LogSuccess("Generated %d clip segments", len(segments))

	records := make([]manifest.ClipRecord, 0, len(segments))
	for i, seg := range segments {
		idx := i + 1
		fileName := fmt.Sprintf("%s_clip_%02d.mp4", videoID, idx)
		outputPath := filepath.Join(clipsDir, fileName)

		utils.LogInfo("Processing clip #%d/%d...", idx, len(segments))
		if err := p.cutter.Cut(ctx, videoPath, seg.Start, seg.End, outputPath); err != nil {
			return nil, fmt.Errorf("failed to extract clip %d: %w", idx, err)
		}

		preview := utils.TruncateRunes(seg.Text, textPreviewLen)

		records = append(records, manifest.ClipRecord{
			ClipIndex:        idx,
			Start:            seg.Start,
			End:              seg.End,
			Duration:         seg.End - seg.Start,
			Title:            metadata.DeriveTitle(seg.Text, idx),
			Description:      metadata.DeriveDescription(url, seg.Start, seg.End, seg.Text),
			TextPreview:      preview,
			FileName:         fileName,
			OriginalVideoURL: url,
		})
	}

	if err := p.store.Save(videoID, records); err != nil {
		return nil, err
	}

	utils.LogSuccess("All clips processed!")
	utils.LogInfo("Output: %s", clipsDir)
	utils.LogInfo("Manifest: %s", p.store.Path(videoID))

	return records, nil
}
