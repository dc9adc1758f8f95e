package audio

// Store loads and saves PCM buffers
// This is a port that can be implemented by different infrastructure adapters
type Store interface {
	// Load decodes the audio file at path into a buffer
	Load(path string) (*Buffer, error)

	// Save encodes the buffer to path, replacing any existing file
	Save(path string, buf *Buffer) error
}
