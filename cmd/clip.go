package cmd

import (
	"fmt"

	"github.com/connorodea/ClipsMachine/internal/config"
	"github.com/connorodea/ClipsMachine/internal/manifest"
	"github.com/connorodea/ClipsMachine/internal/pipeline"
	"github.com/connorodea/ClipsMachine/internal/services/downloader"
	"github.com/connorodea/ClipsMachine/internal/services/ffmpeg"
	"github.com/connorodea/ClipsMachine/internal/services/transcript"
	"github.com/connorodea/ClipsMachine/internal/validator"

	"github.com/spf13/cobra"
)

var clipCmd = &cobra.Command{
	Use:   "clip [youtube-url]",
	Short: "Download a video and cut it into clips",
	Long:  `Download the source video, segment its transcript and cut one clip per segment, writing the first manifest generation.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validator.ValidateExternalTools(); err != nil {
			return fmt.Errorf("dependency validation failed: %w", err)
		}

		cfg := config.Default()
		store := manifest.NewStore(cfg.OutputRoot)
		p := pipeline.New(cfg, store, downloader.NewService(), transcript.NewService(), ffmpeg.NewService())

		_, err := p.ProcessSource(cmd.Context(), args[0])
		return err
	},
}

func init() {
	rootCmd.AddCommand(clipCmd)
}
