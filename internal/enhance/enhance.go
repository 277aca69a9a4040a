// Package enhance is the enrichment pass: it rewrites clip titles and
// descriptions with LLM output, merging results back into the manifest by
// clip index so re-runs over any index window stay idempotent.
package enhance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/connorodea/ClipsMachine/internal/config"
	"github.com/connorodea/ClipsMachine/internal/manifest"
	"github.com/connorodea/ClipsMachine/internal/services/chatgpt"
	"github.com/connorodea/ClipsMachine/internal/utils"
)

const systemPrompt = "You are an expert YouTube title and description writer " +
	"for a clips channel. You ONLY reply with strict JSON."

const briefingTemplate = `
You are optimizing metadata for a YouTube clips channel.

CHANNEL POSITIONING:
%s

BASE TAGS (context only, do NOT output them as a list):
%s
`

const clipContextTemplate = `
CLIP CONTEXT:
    •    Original title: %s
    •    Original description (truncated): %s
    •    Transcript excerpt (up to ~300 chars):
%s

TASK:
    1.    Create a punchy, curiosity-driven YouTube title (max 90 characters).
    •    Specific and honest.
    •    No emojis, no quotes.
    2.    Write a short description that:
    •    Hooks in the first line.
    •    Summarizes what the viewer will learn or feel.
    •    States that this is a clip from a longer conversation.
    •    Includes a light call to action (subscribe / watch more).
    •    Stays under 900 characters.

OUTPUT:
Return STRICT JSON:
{
  "title": "<new_title>",
  "description": "<new_description>"
}
No extra commentary.
`

// Options selects which clips to enrich and how failures are handled.
type Options struct {
	Positioning string
	BaseTags    string
	StartIndex  int
	MaxClips    int // <= 0 means no cap

	// Template optionally overrides the system role and channel briefing.
	Template *PromptTemplate

	// ContinueOnError skips clips whose service calls exhaust all retries
	// instead of aborting the run. The default (false) preserves the
	// historical abort-on-first-failure behavior.
	ContinueOnError bool
}

// Pass runs enrichment over a manifest.
type Pass struct {
	cfg   config.Config
	store *manifest.Store
	llm   chatgpt.Completer
	sleep func(time.Duration)
}

// New creates an enrichment pass.
func New(cfg config.Config, store *manifest.Store, llm chatgpt.Completer) *Pass {
	return &Pass{
		cfg:   cfg,
		store: store,
		llm:   llm,
		sleep: time.Sleep,
	}
}

// Run loads the manifest, enriches the selected index window and saves the
// manifest once at the end. Nothing is persisted if the run aborts early.
func (p *Pass) Run(ctx context.Context, videoID string, opts Options) error {
	records, err := p.store.Load(videoID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return errors.New("manifest is empty")
	}

	manifest.SortByIndex(records)

	if opts.StartIndex < 1 {
		opts.StartIndex = 1
	}
	selected := manifest.SelectWindow(records, opts.StartIndex, opts.MaxClips)

	utils.LogInfo("Enhancing %d clips for video %s", len(selected), videoID)

	for _, record := range selected {
		utils.LogInfo("Enhancing clip #%d...", record.ClipIndex)

		updated, err := p.enhanceClip(ctx, record, opts)
		if err != nil {
			if !opts.ContinueOnError {
				return fmt.Errorf("failed to enhance clip #%d: %w", record.ClipIndex, err)
			}
			utils.LogWarning("Skipping clip #%d: %v", record.ClipIndex, err)
		} else {
			manifest.MergeByIndex(records, updated)
		}

		// Pacing applies after every clip, skipped or not.
		p.sleep(p.cfg.LLMSleepBetweenCalls)
	}

	if err := p.store.Save(videoID, records); err != nil {
		return err
	}

	utils.LogSuccess("Updated manifest saved to %s", p.store.Path(videoID))
	return nil
}

// enhanceClip calls the LLM for one record and applies the parsed metadata.
// An unparseable response is not an error: the original title is retained and
// the raw response becomes the description.
func (p *Pass) enhanceClip(ctx context.Context, record manifest.ClipRecord, opts Options) (manifest.ClipRecord, error) {
	originalDescription := utils.TruncateRunes(record.Description, 400)

	briefing := fmt.Sprintf(briefingTemplate, opts.Positioning, opts.BaseTags)
	system := systemPrompt
	if opts.Template != nil {
		if opts.Template.Prompt != "" {
			briefing = opts.Template.Prompt
		}
		if opts.Template.Role != "" {
			system = opts.Template.Role
		}
	}

	prompt := briefing + fmt.Sprintf(clipContextTemplate,
		record.Title,
		originalDescription,
		record.TextPreview,
	)

	raw, err := p.callWithRetry(ctx, system, prompt)
	if err != nil {
		return manifest.ClipRecord{}, err
	}

	result := ParseMetadataResponse(raw)
	if result.Parsed {
		if result.Title != "" {
			record.Title = result.Title
		}
		if result.Description != "" {
			record.Description = result.Description
		}
	} else {
		utils.LogWarning("JSON parse failed for clip #%d; using raw response as description", record.ClipIndex)
		record.Description = result.Raw
	}

	return record, nil
}

// callWithRetry attempts the service call up to MaxLLMRetries times, sleeping
// an attempt-scaled backoff between failures, and propagates the last error.
func (p *Pass) callWithRetry(ctx context.Context, system, prompt string) (string, error) {
	messages := []chatgpt.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: prompt},
	}
	opts := chatgpt.CompletionOptions{
		Model:       p.cfg.OpenAIModel,
		Temperature: 0.7,
	}

	var lastErr error
	for attempt := 1; attempt <= p.cfg.MaxLLMRetries; attempt++ {
		content, err := p.llm.GetContent(ctx, messages, opts)
		if err == nil {
			return content, nil
		}
		lastErr = err
		utils.LogWarning("LLM call failed (attempt %d): %v", attempt, err)
		p.sleep(p.cfg.LLMRetryBackoff * time.Duration(attempt))
	}

	return "", lastErr
}
