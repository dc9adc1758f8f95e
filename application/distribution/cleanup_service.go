package distribution

import (
	"context"
	"fmt"

	"video-censor/domain/distribution"
)

// CleanupService frees Drive storage by deleting previously published videos
type CleanupService struct {
	driveClient distribution.DriveClient
	folderID    string
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(client distribution.DriveClient, folderID string) *CleanupService {
	return &CleanupService{
		driveClient: client,
		folderID:    folderID,
	}
}

// EnsureSpaceAvailable deletes the oldest videos in the folder until
// neededBytes fit. The result lists what was deleted even when it fails.
func (s *CleanupService) EnsureSpaceAvailable(ctx context.Context, neededBytes int64) (*distribution.CleanupResult, error) {
	result := &distribution.CleanupResult{}

	storage, err := s.driveClient.GetStorageQuota(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to check storage: %w", err)
	}
	missing := storage.Shortfall(neededBytes)
	if missing == 0 {
		return result, nil
	}

	files, err := s.driveClient.ListVideos(ctx, s.folderID)
	if err != nil {
		return result, fmt.Errorf("failed to list files: %w", err)
	}

	for _, oldest := range files {
		if result.FreedBytes >= missing {
			break
		}
		if err := s.driveClient.DeletePermanently(ctx, oldest.ID); err != nil {
			return result, fmt.Errorf("failed to delete %s: %w", oldest.Name, err)
		}
		result.DeletedFiles = append(result.DeletedFiles, distribution.DeletedFile{
			Name: oldest.Name,
			Size: oldest.Size,
		})
		result.FreedBytes += oldest.Size
	}

	if result.FreedBytes < missing {
		return result, fmt.Errorf("need %d more bytes but only freed %d after deleting %d file(s)",
			missing, result.FreedBytes, len(result.DeletedFiles))
	}
	return result, nil
}
