package transcript

import "context"

// Transcriber defines the interface for speech recognition with word timestamps
// This is a port that can be implemented by different infrastructure adapters
type Transcriber interface {
	// Transcribe recognizes speech in a WAV file and returns words in temporal order
	Transcribe(ctx context.Context, audioPath string) ([]Word, error)
}

// Writer persists a word list as a sidecar artifact for auditing
type Writer interface {
	Write(path string, words []Word) error
}
