package chatgpt

import "context"

// Completer defines the completion operation the enrichment pass depends on.
type Completer interface {
	// GetContent sends a completion request and returns the first choice's text.
	GetContent(ctx context.Context, messages []Message, opts CompletionOptions) (string, error)
}

// Ensure Service implements Completer
var _ Completer = (*Service)(nil)
