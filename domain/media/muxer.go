package media

import "context"

// MuxRequest describes one encoder invocation combining the video stream of
// one file with the audio stream of another
type MuxRequest struct {
	VideoPath  string
	AudioPath  string
	OutputPath string
	Attempt    EncodingAttempt
}

// Muxer defines the interface for combining a video stream with a replacement audio track
// This is a port that can be implemented by different infrastructure adapters
type Muxer interface {
	// Mux writes req.OutputPath, truncated to the shorter of the two streams
	Mux(ctx context.Context, req MuxRequest) error
}

// AudioExtractor defines the interface for pulling a recognizer-ready audio track out of a video
type AudioExtractor interface {
	// Extract writes a mono, loudness-normalized PCM WAV of the video's audio to outputPath
	Extract(ctx context.Context, videoPath, outputPath string) error
}

// FileChecker defines the interface for checking file existence
type FileChecker interface {
	// Exists returns true if the file exists
	Exists(path string) bool
}

// FileRemover removes intermediate files
type FileRemover interface {
	// Remove deletes path; a missing file is not an error
	Remove(path string) error
}

// FileRenamer moves a finished artifact into place
type FileRenamer interface {
	Rename(oldPath, newPath string) error
}
