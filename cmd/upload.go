package cmd

import (
	"fmt"
	"time"

	"github.com/connorodea/ClipsMachine/internal/config"
	"github.com/connorodea/ClipsMachine/internal/manifest"
	"github.com/connorodea/ClipsMachine/internal/publish"
	"github.com/connorodea/ClipsMachine/internal/services/youtube"
	"github.com/connorodea/ClipsMachine/internal/utils"

	"github.com/spf13/cobra"
)

var (
	uploadPrivacy      string
	uploadStartIndex   int
	uploadMaxClips     int
	uploadSleepSeconds int
	uploadCredentials  string
)

var uploadCmd = &cobra.Command{
	Use:   "upload [video-id]",
	Short: "Upload clips from the manifest to YouTube",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if uploadPrivacy != "public" && uploadPrivacy != "unlisted" && uploadPrivacy != "private" {
			return fmt.Errorf("invalid privacy status: %s", uploadPrivacy)
		}

		cfg := config.Default()
		store := manifest.NewStore(cfg.OutputRoot)

		credentials := uploadCredentials
		if credentials == "" {
			credentials = cfg.ClientSecretFile
		}
		expanded, err := utils.ExpandHomeDir(credentials)
		if err != nil {
			return err
		}

		pass := publish.New(cfg, store, youtube.NewService(expanded))
		_, err = pass.Run(cmd.Context(), args[0], publish.Options{
			PrivacyStatus: uploadPrivacy,
			StartIndex:    uploadStartIndex,
			MaxClips:      uploadMaxClips,
			SleepBetween:  time.Duration(uploadSleepSeconds) * time.Second,
		})
		return err
	},
}

func init() {
	uploadCmd.Flags().StringVar(&uploadPrivacy, "privacy", "unlisted",
		"YouTube privacy for uploads: public, unlisted, private")
	uploadCmd.Flags().IntVar(&uploadStartIndex, "start-index", 1,
		"Start from this clip_index (1-based)")
	uploadCmd.Flags().IntVar(&uploadMaxClips, "max-clips", 0,
		"Limit number of clips to upload (0 = no limit)")
	uploadCmd.Flags().IntVar(&uploadSleepSeconds, "sleep-between-uploads", 5,
		"Seconds to sleep between uploads")
	uploadCmd.Flags().StringVar(&uploadCredentials, "credentials", "",
		"Path to OAuth client secrets JSON (default from config)")
	rootCmd.AddCommand(uploadCmd)
}
