// Package downloader materializes a remote source video locally via yt-dlp.
package downloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrAcquisition is returned when the source video cannot be downloaded,
// whether unreachable, restricted or removed.
var ErrAcquisition = errors.New("failed to acquire source video")

// execCommand is a package variable so tests can mock the yt-dlp invocation.
var execCommand = exec.CommandContext

// Downloader defines the acquisition operation the pipeline depends on.
type Downloader interface {
	Download(ctx context.Context, url, workdir, videoID string) (string, error)
}

// Service downloads videos with the yt-dlp binary.
type Service struct{}

// Ensure Service implements Downloader
var _ Downloader = (*Service)(nil)

// NewService creates a downloader service.
func NewService() *Service {
	return &Service{}
}

// Download fetches the source video into workdir, named after the video ID.
// It returns the path of the downloaded file.
func (s *Service) Download(ctx context.Context, url, workdir, videoID string) (string, error) {
	if err := os.MkdirAll(workdir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	outputTemplate := filepath.Join(workdir, videoID+".%(ext)s")
	args := []string{
		"-f", "mp4/bestaudio/best",
		"-o", outputTemplate,
		"--no-warnings",
		"--quiet",
		url,
	}

	cmd := execCommand(ctx, "yt-dlp", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("%w: %s", ErrAcquisition, detail)
		}
		return "", fmt.Errorf("%w: %v", ErrAcquisition, err)
	}

	matches, err := filepath.Glob(filepath.Join(workdir, videoID+".*"))
	if err != nil || len(matches) == 0 {
		return "", fmt.Errorf("%w: download produced no file for %s", ErrAcquisition, videoID)
	}

	return matches[0], nil
}
