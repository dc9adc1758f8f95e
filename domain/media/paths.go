package media

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ArtifactPaths are the files produced while cleaning one input video
type ArtifactPaths struct {
	Source         string
	ExtractedAudio string
	CleanAudio     string
	Transcript     string
	Output         string
}

// NewArtifactPaths derives every artifact path from the input video path.
// For "name.ext" this yields name_extracted_audio.wav, name_clean_audio.wav,
// name_word_transcript.json and name_cleaned.mp4 next to the input.
func NewArtifactPaths(videoPath string) (ArtifactPaths, error) {
	videoPath = strings.TrimSpace(videoPath)
	if videoPath == "" {
		return ArtifactPaths{}, fmt.Errorf("source video path is required")
	}

	base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
	return ArtifactPaths{
		Source:         videoPath,
		ExtractedAudio: base + "_extracted_audio.wav",
		CleanAudio:     base + "_clean_audio.wav",
		Transcript:     base + "_word_transcript.json",
		Output:         base + outputSuffix,
	}, nil
}

// Intermediates returns the working files that are deleted after every run
func (p ArtifactPaths) Intermediates() []string {
	return []string{p.ExtractedAudio, p.CleanAudio}
}

// AttemptOutput returns the temporary output path for one encoding attempt
func AttemptOutput(outputPath string, attempt EncodingAttempt) string {
	base := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
	return fmt.Sprintf("%s_%s_%s.mp4", base, attempt.AudioCodec, attempt.VideoCodec)
}

// outputSuffix is appended to the source base name to form the cleaned video
const outputSuffix = "_cleaned.mp4"

// TranscriptForOutput returns the transcript written alongside a cleaned
// video produced by NewArtifactPaths
func TranscriptForOutput(outputPath string) (string, error) {
	if !strings.HasSuffix(outputPath, outputSuffix) {
		return "", fmt.Errorf("%s is not a cleaned video (expected *%s)", filepath.Base(outputPath), outputSuffix)
	}
	return strings.TrimSuffix(outputPath, outputSuffix) + "_word_transcript.json", nil
}
