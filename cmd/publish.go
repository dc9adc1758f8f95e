package cmd

import (
	"context"
	"fmt"
	"io"

	"video-censor/domain/censor"
	"video-censor/domain/media"
	"video-censor/infrastructure/config"
	"video-censor/infrastructure/denylist"
	"video-censor/infrastructure/filesystem"

	"github.com/spf13/cobra"
)

var (
	publishVideoPath string
	publishNotify    bool
	publishFreeSpace bool
	publishTo        []string
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload an already cleaned video and optionally email a link",
	Long: `Upload a video produced by the censor command to the configured Google
Drive folder, replacing a file with the same name, and share it by link.

With --notify, the word transcript saved next to the video is re-scanned to
report how many words were silenced.

Example:
  video-censor publish --video movie_cleaned.mp4 --notify --to maria`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().StringVar(&publishVideoPath, "video", "", "Path to the cleaned video (required)")
	publishCmd.Flags().BoolVar(&publishNotify, "notify", false, "Email a link to the uploaded video")
	publishCmd.Flags().BoolVar(&publishFreeSpace, "free-space", false, "Delete the oldest videos in the Drive folder when space runs out")
	publishCmd.Flags().StringArrayVar(&publishTo, "to", nil, "Recipient config key or name (repeatable, defaults to email.default_to)")
	publishCmd.MarkFlagRequired("video")
}

func runPublish(cmd *cobra.Command, args []string) error {
	c, err := GetConfig()
	if err != nil {
		return err
	}

	opts := DistributeOptions{
		Publish:   true,
		Notify:    publishNotify,
		FreeSpace: publishFreeSpace,
		To:        publishTo,
	}
	publisher, notifier, err := newGoogleDistributors(cmd.Context(), c, opts, DefaultOutput)
	if err != nil {
		return err
	}

	return RunPublishWithDependencies(cmd.Context(), c, publisher, notifier, cleanPathInput(publishVideoPath), opts, DefaultOutput)
}

// RunPublishWithDependencies runs the publish command with injected dependencies (for testing)
func RunPublishWithDependencies(
	ctx context.Context,
	c *config.Config,
	publisher Publisher,
	notifier Notifier,
	videoPath string,
	opts DistributeOptions,
	output io.Writer,
) error {
	opts.Publish = true

	censored := 0
	if opts.Notify {
		n, err := countCensored(c, videoPath)
		if err != nil {
			return err
		}
		censored = n
	}

	return distribute(ctx, c, publisher, notifier, videoPath, censored, opts, output)
}

// countCensored re-scans the transcript saved next to a cleaned video
func countCensored(c *config.Config, videoPath string) (int, error) {
	transcriptPath, err := media.TranscriptForOutput(videoPath)
	if err != nil {
		return 0, err
	}
	words, err := filesystem.ReadTranscript(transcriptPath)
	if err != nil {
		return 0, fmt.Errorf("cannot count censored words: %w", err)
	}
	list, err := denylist.Load(c.Paths.DenylistFile)
	if err != nil {
		return 0, err
	}
	return len(censor.NewMatcher(list, c.Calibration()).Scan(words)), nil
}
