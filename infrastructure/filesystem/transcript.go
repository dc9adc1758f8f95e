package filesystem

import (
	"encoding/json"
	"fmt"
	"os"

	"video-censor/domain/transcript"
)

// transcriptEntry is the on-disk shape of one recognized word
type transcriptEntry struct {
	Text      string     `json:"text"`
	Timestamp [2]float64 `json:"timestamp"`
}

// TranscriptWriter writes word-level transcripts as indented JSON
type TranscriptWriter struct{}

// NewTranscriptWriter creates a new transcript writer
func NewTranscriptWriter() *TranscriptWriter {
	return &TranscriptWriter{}
}

// Write stores the raw recognizer timestamps, before any padding or shift
func (w *TranscriptWriter) Write(path string, words []transcript.Word) error {
	entries := make([]transcriptEntry, len(words))
	for i, word := range words {
		entries[i] = transcriptEntry{Text: word.Text, Timestamp: [2]float64{word.Start, word.End}}
	}

	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode transcript: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	return nil
}

// ReadTranscript loads a transcript written by TranscriptWriter
func ReadTranscript(path string) ([]transcript.Word, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}

	var entries []transcriptEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse transcript: %w", err)
	}

	words := make([]transcript.Word, len(entries))
	for i, e := range entries {
		words[i] = transcript.Word{Text: e.Text, Start: e.Timestamp[0], End: e.Timestamp[1]}
	}
	return words, nil
}

// Ensure TranscriptWriter implements transcript.Writer
var _ transcript.Writer = (*TranscriptWriter)(nil)
