package youtube

import "context"

// UploadRequest describes one clip to publish.
type UploadRequest struct {
	FilePath      string
	Title         string
	Description   string
	Tags          []string
	CategoryID    string
	PrivacyStatus string
}

// Publisher defines the operations the upload pass depends on.
type Publisher interface {
	// Authorize obtains an authenticated API client, refreshing a stored
	// token or running the interactive browser grant.
	Authorize(ctx context.Context) error

	// Upload publishes one clip and returns the platform-assigned video ID.
	Upload(ctx context.Context, req UploadRequest) (string, error)
}

// Ensure Service implements Publisher
var _ Publisher = (*Service)(nil)
