package wav

import (
	"fmt"
	"os"

	"video-censor/domain/audio"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// pcmFormat is the WAVE format tag for uncompressed PCM
const pcmFormat = 1

// Store implements audio.Store for PCM WAV files
type Store struct{}

// NewStore creates a new WAV store
func NewStore() *Store {
	return &Store{}
}

// Load decodes the whole file into memory
func (s *Store) Load(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("not a valid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM buffer: %w", err)
	}

	return &audio.Buffer{
		Data:        buf.Data,
		SampleRate:  buf.Format.SampleRate,
		NumChannels: buf.Format.NumChannels,
		BitDepth:    int(decoder.BitDepth),
	}, nil
}

// Save encodes buf as PCM WAV, replacing any existing file
func (s *Store) Save(path string, buf *audio.Buffer) error {
	if buf == nil || buf.SampleRate <= 0 || buf.NumChannels <= 0 {
		return fmt.Errorf("invalid audio buffer for %s", path)
	}
	bitDepth := buf.BitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create audio file: %w", err)
	}
	defer f.Close()

	encoder := wav.NewEncoder(f, buf.SampleRate, bitDepth, buf.NumChannels, pcmFormat)
	intBuf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: buf.NumChannels,
			SampleRate:  buf.SampleRate,
		},
		Data:           buf.Data,
		SourceBitDepth: bitDepth,
	}
	if err := encoder.Write(intBuf); err != nil {
		return fmt.Errorf("failed to write PCM data: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV header: %w", err)
	}

	return nil
}

// Ensure Store implements audio.Store
var _ audio.Store = (*Store)(nil)
