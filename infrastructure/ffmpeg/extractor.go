package ffmpeg

import (
	"context"
	"fmt"
	"strconv"

	"video-censor/domain/media"
)

// Extractor implements media.AudioExtractor using ffmpeg
type Extractor struct {
	options
}

// NewExtractor creates a new FFmpeg-based audio extractor
func NewExtractor(opts ...Option) *Extractor {
	return &Extractor{options: newOptions(opts)}
}

// Extract writes the audio track of videoPath as a mono, loudness-normalized
// 16-bit PCM WAV file
func (e *Extractor) Extract(ctx context.Context, videoPath, outputPath string) error {
	args := []string{
		"-y", // Overwrite output file if it exists
		"-i", videoPath,
		"-vn",      // No video
		"-ac", "1", // Mono
		"-af", "loudnorm", // EBU R128 loudness normalization
		"-ar", strconv.Itoa(e.sampleRate), // loudnorm outputs 192 kHz otherwise
		"-c:a", "pcm_s16le",
		outputPath,
	}

	if err := e.runner.Run(ctx, e.ffmpegPath, args...); err != nil {
		return fmt.Errorf("ffmpeg audio extraction failed: %w", err)
	}

	return nil
}

// VerifyInstalled checks that ffmpeg is available
func (e *Extractor) VerifyInstalled(ctx context.Context) error {
	return verifyInstalled(ctx, e.options)
}

// Ensure Extractor implements media.AudioExtractor
var _ media.AudioExtractor = (*Extractor)(nil)
