package distribution

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"video-censor/domain/distribution"
)

// UploadService publishes cleaned videos to a Google Drive folder
type UploadService struct {
	driveClient distribution.DriveClient
	folderID    string
	cleanup     *CleanupService
	output      io.Writer
}

// UploadOption is a functional option for configuring UploadService
type UploadOption func(*UploadService)

// WithCleanup frees space before each upload by deleting the oldest
// published videos in the folder
func WithCleanup(cleanup *CleanupService) UploadOption {
	return func(s *UploadService) {
		s.cleanup = cleanup
	}
}

// WithUploadOutput sets where progress lines are written
func WithUploadOutput(w io.Writer) UploadOption {
	return func(s *UploadService) {
		if w != nil {
			s.output = w
		}
	}
}

// NewUploadService creates a new upload service
func NewUploadService(client distribution.DriveClient, folderID string, opts ...UploadOption) *UploadService {
	s := &UploadService{
		driveClient: client,
		folderID:    folderID,
		output:      io.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Publish uploads a cleaned video and returns its shareable link.
// A file with the same name in the folder is replaced.
func (s *UploadService) Publish(ctx context.Context, videoPath string) (*distribution.UploadResult, error) {
	if s.folderID == "" {
		return nil, fmt.Errorf("google.folder_id is not configured")
	}

	info, err := os.Stat(videoPath)
	if err != nil {
		return nil, fmt.Errorf("file does not exist: %s", videoPath)
	}
	fileName := filepath.Base(videoPath)

	existing, err := s.driveClient.FindFileByName(ctx, s.folderID, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing file: %w", err)
	}
	if existing != nil {
		fmt.Fprintf(s.output, "      Replacing existing %s (%.1f MB)\n", existing.Name, float64(existing.Size)/1024/1024)
		if err := s.driveClient.DeletePermanently(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to delete existing file %s: %w", existing.Name, err)
		}
	}

	if s.cleanup != nil {
		freed, err := s.cleanup.EnsureSpaceAvailable(ctx, info.Size())
		for _, f := range freed.DeletedFiles {
			fmt.Fprintf(s.output, "      Deleted %s (%.1f MB) to free space\n", f.Name, float64(f.Size)/1024/1024)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to free drive space: %w", err)
		}
	}

	result, err := s.driveClient.UploadAndShare(ctx, distribution.UploadRequest{
		LocalPath: videoPath,
		FileName:  fileName,
		FolderID:  s.folderID,
		MimeType:  distribution.MimeTypeMP4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload and share %s: %w", fileName, err)
	}

	return result, nil
}
