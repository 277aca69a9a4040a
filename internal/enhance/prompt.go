package enhance

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PromptTemplate overrides the built-in enrichment prompt. Role replaces the
// system message, Prompt replaces the channel briefing that precedes the clip
// context; empty fields keep the defaults.
type PromptTemplate struct {
	Title  string `yaml:"title"`
	Role   string `yaml:"role"`
	Prompt string `yaml:"prompt"`
}

// LoadPromptTemplate loads a prompt template from a YAML file.
func LoadPromptTemplate(filePath string) (*PromptTemplate, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt template: %w", err)
	}

	var template PromptTemplate
	if err := yaml.Unmarshal(data, &template); err != nil {
		return nil, fmt.Errorf("failed to parse prompt template: %w", err)
	}

	return &template, nil
}
