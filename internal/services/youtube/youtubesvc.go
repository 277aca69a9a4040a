// Package youtube publishes clips through the YouTube Data API using
// resumable chunked uploads.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/connorodea/ClipsMachine/internal/utils"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Platform limits on upload metadata.
const (
	maxTitleLen       = 100
	maxDescriptionLen = 5000
	maxTags           = 20
	uploadChunkSize   = 8 * 1024 * 1024
)

var requiredScopes = []string{
	"https://www.googleapis.com/auth/youtube.upload",
}

// Service uploads videos with OAuth credentials from a client secrets file.
type Service struct {
	credentialsPath string
	api             *youtube.Service
}

// NewService creates an unauthenticated upload service. Call Authorize before
// uploading.
func NewService(credentialsPath string) *Service {
	return &Service{credentialsPath: credentialsPath}
}

// Authorize builds the API client. A previously stored token is reused when
// still valid; otherwise the interactive browser grant runs against a local
// callback server.
func (s *Service) Authorize(ctx context.Context) error {
	credentials, err := os.ReadFile(s.credentialsPath)
	if err != nil {
		return fmt.Errorf("failed to read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(credentials, requiredScopes...)
	if err != nil {
		return fmt.Errorf("failed to create OAuth config: %w", err)
	}

	tokenStorage, err := utils.NewTokenStorage()
	if err != nil {
		return fmt.Errorf("failed to initialize token storage: %w", err)
	}

	token, err := tokenStorage.LoadToken("youtube")
	if err != nil {
		return fmt.Errorf("failed to load token: %w", err)
	}

	if token == nil || !token.Valid() {
		token, err = s.runInteractiveGrant(ctx, config)
		if err != nil {
			return err
		}
		if err := tokenStorage.SaveToken("youtube", token); err != nil {
			utils.LogWarning("Failed to save token: %v", err)
		}
	} else {
		utils.LogInfo("Using existing authorization token")
	}

	api, err := youtube.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx, token)))
	if err != nil {
		return fmt.Errorf("failed to create YouTube service: %w", err)
	}

	s.api = api
	return nil
}

// runInteractiveGrant walks the user through the browser consent flow.
func (s *Service) runInteractiveGrant(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	callbackServer := utils.NewOAuthCallbackServer()
	if err := callbackServer.Start(8080); err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}
	defer func() {
		if err := callbackServer.Stop(); err != nil {
			utils.LogWarning("Failed to stop callback server: %v", err)
		}
	}()

	config.RedirectURL = "http://localhost:8080"
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	if err := callbackServer.OpenURL(authURL); err != nil {
		return nil, fmt.Errorf("failed to open auth URL: %w", err)
	}

	code := callbackServer.WaitForCode()

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	return token, nil
}

// Upload publishes a single clip with a resumable chunked upload, reporting
// progress as chunks complete.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (string, error) {
	if s.api == nil {
		return "", errors.New("service is not authorized; call Authorize first")
	}

	file, err := os.Open(req.FilePath)
	if err != nil {
		return "", fmt.Errorf("clip file not found: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			utils.LogWarning("Failed to close video file: %v", err)
		}
	}()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat clip file: %w", err)
	}

	title := utils.TruncateRunes(req.Title, maxTitleLen)
	description := utils.TruncateRunes(req.Description, maxDescriptionLen)
	tags := req.Tags
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       title,
			Description: description,
			CategoryId:  req.CategoryID,
			Tags:        tags,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           req.PrivacyStatus,
			SelfDeclaredMadeForKids: false,
		},
	}

	total := info.Size()
	call := s.api.Videos.Insert([]string{"snippet", "status"}, video).
		NotifySubscribers(false).
		Media(file, googleapi.ChunkSize(uploadChunkSize)).
		ProgressUpdater(func(current, _ int64) {
			if total > 0 {
				utils.LogVerbose("Upload progress: %d%%", current*100/total)
			}
		})

	response, err := call.Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	utils.LogInfo("Uploaded: https://www.youtube.com/watch?v=%s", response.Id)
	return response.Id, nil
}
