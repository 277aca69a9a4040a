// Package ffmpeg cuts time slices out of a source video. Clips are
// stream-copied, never re-encoded, so extraction is fast and lossless.
package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/connorodea/ClipsMachine/internal/utils"
)

// execCommand is a package variable so tests can mock the ffmpeg invocation.
var execCommand = exec.CommandContext

// Cutter defines the extraction operation the pipeline depends on.
type Cutter interface {
	Cut(ctx context.Context, inputPath string, start, end float64, outputPath string) error
}

// Service cuts clips with the ffmpeg binary.
type Service struct{}

// Ensure Service implements Cutter
var _ Cutter = (*Service)(nil)

// NewService creates an ffmpeg service.
func NewService() *Service {
	return &Service{}
}

// Cut extracts [start, end) from inputPath into outputPath.
func (s *Service) Cut(ctx context.Context, inputPath string, start, end float64, outputPath string) error {
	args := []string{
		"-y",
		"-ss", formatSeconds(start),
		"-to", formatSeconds(end),
		"-v", "error",
		"-i", inputPath,
		"-c", "copy", // copy without re-encoding for speed
		outputPath,
	}

	cmd := execCommand(ctx, "ffmpeg", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			utils.LogError("FFmpeg error: %s", stderr.String())
		}
		return fmt.Errorf("ffmpeg command failed: %w", err)
	}

	return nil
}

// formatSeconds renders a float offset with millisecond precision for ffmpeg.
func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
