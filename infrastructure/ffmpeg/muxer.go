package ffmpeg

import (
	"context"
	"fmt"

	"video-censor/domain/media"
)

// Muxer implements media.Muxer using ffmpeg
type Muxer struct {
	options
}

// NewMuxer creates a new FFmpeg-based muxer
func NewMuxer(opts ...Option) *Muxer {
	return &Muxer{options: newOptions(opts)}
}

// Mux combines the first video stream of the source with the first audio
// stream of the replacement audio using the attempt's codec pair
func (m *Muxer) Mux(ctx context.Context, req media.MuxRequest) error {
	args := []string{
		"-y",
		"-i", req.VideoPath,
		"-i", req.AudioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", req.Attempt.VideoCodec,
		"-c:a", req.Attempt.AudioCodec,
		"-shortest",
		req.OutputPath,
	}

	if err := m.runner.Run(ctx, m.ffmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg mux with %s failed: %w", req.Attempt, err)
	}

	return nil
}

// VerifyInstalled checks that ffmpeg is available
func (m *Muxer) VerifyInstalled(ctx context.Context) error {
	return verifyInstalled(ctx, m.options)
}

// Ensure Muxer implements media.Muxer
var _ media.Muxer = (*Muxer)(nil)
