// Package chatgpt is a minimal client for the OpenAI chat completions API,
// used by the enrichment pass to rewrite clip titles and descriptions.
package chatgpt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// apiURL is a package variable so tests can point the client at a local server.
var apiURL = "https://api.openai.com/v1/chat/completions"

// Service talks to the OpenAI API with a bearer token from the environment.
type Service struct {
	apiKey string
	client *http.Client
}

// Message is a single turn in the chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// request is the chat completions request body.
type request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

// response is the subset of the chat completions response we consume.
type response struct {
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
}

// apiError is the OpenAI error envelope.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// CompletionOptions contains the parameters for a completion request.
type CompletionOptions struct {
	Model       string
	Temperature float64
}

// New creates a service instance. The OPENAI_API_KEY environment variable
// must be set.
func New() (*Service, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY environment variable is not set")
	}

	return &Service{
		apiKey: apiKey,
		client: &http.Client{},
	}, nil
}

// GetContent sends a completion request and returns the first choice's text.
func (s *Service) GetContent(ctx context.Context, messages []Message, opts CompletionOptions) (string, error) {
	reqData, err := json.Marshal(request{
		Model:       opts.Model,
		Messages:    messages,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(reqData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var envelope apiError
		if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Error.Message != "" {
			return "", fmt.Errorf("API error: %s", envelope.Error.Message)
		}
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed response
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("no response choices returned")
	}

	return parsed.Choices[0].Message.Content, nil
}
