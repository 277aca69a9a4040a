// Package config builds the process-wide configuration value object.
// All thresholds live here so components receive them explicitly instead of
// reading environment variables at call sites.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds every tunable the pipeline, enrichment and upload passes need.
type Config struct {
	// Root directory for all generated assets. One subdirectory per video ID.
	OutputRoot string

	// Clip length settings, in seconds.
	MinClipSec       float64
	TargetClipSec    float64
	MaxClipSec       float64
	MaxClipsPerVideo int

	// YouTube upload defaults.
	DefaultPrivacy string
	CategoryID     string

	// OAuth files.
	ClientSecretFile string

	// LLM settings.
	OpenAIModel          string
	MaxLLMRetries        int
	LLMRetryBackoff      time.Duration
	LLMSleepBetweenCalls time.Duration

	// Upload pacing.
	SleepBetweenUploads time.Duration
}

// Default returns the configuration with environment overrides applied.
// Every knob falls back to the same defaults the project has always shipped.
func Default() Config {
	return Config{
		OutputRoot:       envString("CLIPSMACHINE_OUTPUT_ROOT", "clips_output"),
		MinClipSec:       envFloat("CLIPSMACHINE_MIN_CLIP_SEC", 40),
		TargetClipSec:    envFloat("CLIPSMACHINE_TARGET_CLIP_SEC", 90),
		MaxClipSec:       envFloat("CLIPSMACHINE_MAX_CLIP_SEC", 180),
		MaxClipsPerVideo: envInt("CLIPSMACHINE_MAX_CLIPS_PER_VIDEO", 20),

		DefaultPrivacy: envString("CLIPSMACHINE_DEFAULT_PRIVACY", "unlisted"),
		CategoryID:     envString("CLIPSMACHINE_CATEGORY_ID", "27"), // 27 = Education

		ClientSecretFile: envString("CLIPSMACHINE_CLIENT_SECRET_FILE", "client_secret.json"),

		OpenAIModel:          envString("CLIPSMACHINE_OPENAI_MODEL", "gpt-4o-mini"),
		MaxLLMRetries:        envInt("CLIPSMACHINE_MAX_LLM_RETRIES", 3),
		LLMRetryBackoff:      envDuration("CLIPSMACHINE_LLM_RETRY_BACKOFF_SEC", 2*time.Second),
		LLMSleepBetweenCalls: envDuration("CLIPSMACHINE_LLM_SLEEP_BETWEEN", time.Second),

		SleepBetweenUploads: envDuration("CLIPSMACHINE_SLEEP_BETWEEN_UPLOADS", 5*time.Second),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// envDuration reads a duration expressed in whole or fractional seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return time.Duration(f * float64(time.Second))
		}
	}
	return fallback
}
