package whisper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"video-censor/domain/transcript"

	"go.uber.org/zap"
)

// OutputRunner runs a command and returns its standard output
type OutputRunner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Transcriber implements transcript.Transcriber by running faster-whisper
// through a small Python script that prints word timestamps as JSON
type Transcriber struct {
	cfg    Config
	runner OutputRunner
	logger *zap.Logger
}

// TranscriberOption is a functional option for configuring Transcriber
type TranscriberOption func(*Transcriber)

// WithRunner sets a custom command runner (for testing)
func WithRunner(runner OutputRunner) TranscriberOption {
	return func(t *Transcriber) {
		t.runner = runner
	}
}

// WithLogger sets the logger used for per-segment debug output
func WithLogger(logger *zap.Logger) TranscriberOption {
	return func(t *Transcriber) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTranscriber creates a whisper-backed transcriber
func NewTranscriber(cfg Config, opts ...TranscriberOption) *Transcriber {
	t := &Transcriber{
		cfg:    cfg.withDefaults(),
		runner: execRunner{},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// scriptOutput is the JSON printed by transcribe_words.py
type scriptOutput struct {
	Segments []scriptSegment `json:"segments"`
	Error    string          `json:"error"`
}

type scriptSegment struct {
	Start float64      `json:"start"`
	End   float64      `json:"end"`
	Text  string       `json:"text"`
	Words []scriptWord `json:"words"`
}

type scriptWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Transcribe implements transcript.Transcriber
func (t *Transcriber) Transcribe(ctx context.Context, audioPath string) ([]transcript.Word, error) {
	if t.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.cfg.Timeout)
		defer cancel()
	}

	output, err := t.runner.Output(ctx, t.cfg.Python, t.args(audioPath)...)
	if err != nil {
		// The script reports its own failures as JSON on stdout before exiting non-zero
		var failed scriptOutput
		if json.Unmarshal(output, &failed) == nil && failed.Error != "" {
			return nil, fmt.Errorf("whisper script reported: %s", failed.Error)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("whisper script failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("whisper transcription failed: %w", err)
	}

	var result scriptOutput
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("failed to parse transcription result: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("whisper script reported: %s", result.Error)
	}

	var words []transcript.Word
	for _, seg := range result.Segments {
		t.logger.Debug("segment",
			zap.Float64("start", seg.Start),
			zap.Float64("end", seg.End),
			zap.String("text", strings.TrimSpace(seg.Text)),
		)
		for _, w := range seg.Words {
			words = append(words, transcript.Word{Text: w.Word, Start: w.Start, End: w.End})
		}
	}

	return words, nil
}

func (t *Transcriber) args(audioPath string) []string {
	return []string{
		t.cfg.Script,
		audioPath,
		"--model", t.cfg.Model,
		"--language", t.cfg.Language,
		"--device", t.cfg.Device,
		"--compute-type", t.cfg.ComputeType,
	}
}

// Ensure Transcriber implements transcript.Transcriber
var _ transcript.Transcriber = (*Transcriber)(nil)
