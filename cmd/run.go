package cmd

import (
	"fmt"
	"time"

	"github.com/connorodea/ClipsMachine/internal/config"
	"github.com/connorodea/ClipsMachine/internal/enhance"
	"github.com/connorodea/ClipsMachine/internal/manifest"
	"github.com/connorodea/ClipsMachine/internal/pipeline"
	"github.com/connorodea/ClipsMachine/internal/publish"
	"github.com/connorodea/ClipsMachine/internal/services/chatgpt"
	"github.com/connorodea/ClipsMachine/internal/services/downloader"
	"github.com/connorodea/ClipsMachine/internal/services/ffmpeg"
	"github.com/connorodea/ClipsMachine/internal/services/transcript"
	"github.com/connorodea/ClipsMachine/internal/services/youtube"
	"github.com/connorodea/ClipsMachine/internal/utils"
	"github.com/connorodea/ClipsMachine/internal/validator"

	"github.com/spf13/cobra"
)

var (
	runSkipLLM         bool
	runSkipUpload      bool
	runPrivacy         string
	runPositioning     string
	runTags            string
	runMaxClips        int
	runSleepSeconds    int
	runCredentials     string
	runContinueOnError bool
	runPromptFile      string
)

var runCmd = &cobra.Command{
	Use:   "run [youtube-url]",
	Short: "Run the full pipeline: clip, enhance and upload",
	Long: `Run the complete pipeline against a single source video. Each stage
rewrites the same manifest, so a failed run can be resumed with the
enhance or upload subcommands.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validator.ValidateExternalTools(); err != nil {
			return fmt.Errorf("dependency validation failed: %w", err)
		}
		if runPrivacy != "public" && runPrivacy != "unlisted" && runPrivacy != "private" {
			return fmt.Errorf("invalid privacy status: %s", runPrivacy)
		}

		cfg := config.Default()
		store := manifest.NewStore(cfg.OutputRoot)
		ctx := cmd.Context()

		p := pipeline.New(cfg, store, downloader.NewService(), transcript.NewService(), ffmpeg.NewService())
		if _, err := p.ProcessSource(ctx, args[0]); err != nil {
			return err
		}
		videoID := pipeline.ResolveVideoID(args[0])

		if runSkipLLM {
			utils.LogInfo("Skipping LLM enhancement")
		} else {
			llm, err := chatgpt.New()
			if err != nil {
				return fmt.Errorf("failed to initialize LLM service: %w", err)
			}

			var template *enhance.PromptTemplate
			if runPromptFile != "" {
				template, err = enhance.LoadPromptTemplate(runPromptFile)
				if err != nil {
					return err
				}
			}

			pass := enhance.New(cfg, store, llm)
			err = pass.Run(ctx, videoID, enhance.Options{
				Positioning:     runPositioning,
				BaseTags:        runTags,
				StartIndex:      1,
				MaxClips:        runMaxClips,
				Template:        template,
				ContinueOnError: runContinueOnError,
			})
			if err != nil {
				return err
			}
		}

		if runSkipUpload {
			utils.LogInfo("Skipping upload")
			return nil
		}

		credentials := runCredentials
		if credentials == "" {
			credentials = cfg.ClientSecretFile
		}
		expanded, err := utils.ExpandHomeDir(credentials)
		if err != nil {
			return err
		}

		uploader := publish.New(cfg, store, youtube.NewService(expanded))
		_, err = uploader.Run(ctx, videoID, publish.Options{
			PrivacyStatus: runPrivacy,
			StartIndex:    1,
			MaxClips:      runMaxClips,
			SleepBetween:  time.Duration(runSleepSeconds) * time.Second,
		})
		return err
	},
}

func init() {
	runCmd.Flags().BoolVar(&runSkipLLM, "skip-llm", false,
		"Skip the LLM metadata enhancement stage")
	runCmd.Flags().BoolVar(&runSkipUpload, "skip-upload", false,
		"Skip the YouTube upload stage")
	runCmd.Flags().StringVar(&runPrivacy, "privacy", "unlisted",
		"YouTube privacy for uploads: public, unlisted, private")
	runCmd.Flags().StringVar(&runPositioning, "positioning", defaultPositioning,
		"Channel positioning string for LLM prompts")
	runCmd.Flags().StringVar(&runTags, "tags", defaultBaseTags,
		"Comma-separated base tags (LLM context only)")
	runCmd.Flags().IntVar(&runMaxClips, "max-clips", 0,
		"Limit number of clips to enhance and upload (0 = no limit)")
	runCmd.Flags().IntVar(&runSleepSeconds, "sleep-between-uploads", 5,
		"Seconds to sleep between uploads")
	runCmd.Flags().StringVar(&runCredentials, "credentials", "",
		"Path to OAuth client secrets JSON (default from config)")
	runCmd.Flags().BoolVar(&runContinueOnError, "continue-on-error", false,
		"Skip clips whose LLM calls fail instead of aborting the run")
	runCmd.Flags().StringVar(&runPromptFile, "prompt-template", "",
		"Path to a YAML prompt template overriding the built-in prompt")
	rootCmd.AddCommand(runCmd)
}
