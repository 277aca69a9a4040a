// Package validator checks that the external tools the pipeline shells out
// to are installed before any work starts.
package validator

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/connorodea/ClipsMachine/internal/utils"
)

// ExternalTool represents an external command-line tool requirement
type ExternalTool struct {
	Name        string
	VersionArgs []string
	Validate    func(output string) bool
}

// lookPath and runCommand are package variables so tests can mock them
var (
	lookPath   = exec.LookPath
	runCommand = func(path string, args ...string) ([]byte, error) {
		return exec.Command(path, args...).Output()
	}
)

// requiredTools lists the binaries the clipping pipeline cannot run without
var requiredTools = []ExternalTool{
	{
		Name:        "ffmpeg",
		VersionArgs: []string{"-version"},
		Validate: func(output string) bool {
			return strings.Contains(output, "ffmpeg version")
		},
	},
	{
		Name:        "yt-dlp",
		VersionArgs: []string{"--version"},
		Validate: func(output string) bool {
			return strings.TrimSpace(output) != ""
		},
	},
}

// ValidateExternalTools checks if all required external tools are installed
func ValidateExternalTools() error {
	for _, tool := range requiredTools {
		path, err := lookPath(tool.Name)
		if err != nil {
			return fmt.Errorf("tool %s not found in PATH: %w", tool.Name, err)
		}

		output, err := runCommand(path, tool.VersionArgs...)
		if err != nil {
			return fmt.Errorf("failed to run %s: %w", tool.Name, err)
		}

		if !tool.Validate(string(output)) {
			return fmt.Errorf("invalid version of %s detected", tool.Name)
		}

		utils.LogVerbose("%s found at %s", tool.Name, path)
	}

	return nil
}
