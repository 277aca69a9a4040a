package cmd

import (
	"fmt"

	"github.com/connorodea/ClipsMachine/internal/config"
	"github.com/connorodea/ClipsMachine/internal/enhance"
	"github.com/connorodea/ClipsMachine/internal/manifest"
	"github.com/connorodea/ClipsMachine/internal/services/chatgpt"

	"github.com/spf13/cobra"
)

const defaultPositioning = "We run a clips channel that curates short, high-impact moments " +
	"from long-form conversations about business, psychology, performance, and self-improvement."

const defaultBaseTags = "clips,podcast,business,mindset,self improvement"

var (
	enhancePositioning     string
	enhanceTags            string
	enhanceStartIndex      int
	enhanceMaxClips        int
	enhanceContinueOnError bool
	enhancePromptFile      string
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance [video-id]",
	Short: "Rewrite clip metadata with LLM-generated titles and descriptions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		store := manifest.NewStore(cfg.OutputRoot)

		llm, err := chatgpt.New()
		if err != nil {
			return fmt.Errorf("failed to initialize LLM service: %w", err)
		}

		var template *enhance.PromptTemplate
		if enhancePromptFile != "" {
			template, err = enhance.LoadPromptTemplate(enhancePromptFile)
			if err != nil {
				return err
			}
		}

		pass := enhance.New(cfg, store, llm)
		return pass.Run(cmd.Context(), args[0], enhance.Options{
			Positioning:     enhancePositioning,
			BaseTags:        enhanceTags,
			StartIndex:      enhanceStartIndex,
			MaxClips:        enhanceMaxClips,
			Template:        template,
			ContinueOnError: enhanceContinueOnError,
		})
	},
}

func init() {
	enhanceCmd.Flags().StringVar(&enhancePositioning, "positioning", defaultPositioning,
		"Channel positioning string for LLM prompts")
	enhanceCmd.Flags().StringVar(&enhanceTags, "tags", defaultBaseTags,
		"Comma-separated base tags (LLM context only)")
	enhanceCmd.Flags().IntVar(&enhanceStartIndex, "start-index", 1,
		"Start from this clip_index (1-based)")
	enhanceCmd.Flags().IntVar(&enhanceMaxClips, "max-clips", 0,
		"Limit number of clips to enhance (0 = no limit)")
	enhanceCmd.Flags().BoolVar(&enhanceContinueOnError, "continue-on-error", false,
		"Skip clips whose LLM calls fail instead of aborting the run")
	enhanceCmd.Flags().StringVar(&enhancePromptFile, "prompt-template", "",
		"Path to a YAML prompt template overriding the built-in prompt")
	rootCmd.AddCommand(enhanceCmd)
}
