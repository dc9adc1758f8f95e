package censor

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	appmedia "video-censor/application/media"
	"video-censor/domain/audio"
	"video-censor/domain/censor"
	"video-censor/domain/media"
	"video-censor/domain/transcript"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Negotiator muxes the clean audio with the source video
type Negotiator interface {
	Negotiate(ctx context.Context, job appmedia.MuxJob) (media.EncodingAttempt, error)
}

// Dependencies groups the collaborators of the censor pipeline
type Dependencies struct {
	Extractor   media.AudioExtractor
	Transcriber transcript.Transcriber
	Transcripts transcript.Writer
	Audio       audio.Store
	Negotiator  Negotiator
	FileChecker media.FileChecker
	FileRemover media.FileRemover
}

// Service runs the word-level censorship pipeline for one video at a time
type Service struct {
	deps    Dependencies
	matcher *censor.Matcher
	logger  *zap.Logger
	output  io.Writer
}

// NewService creates a censor pipeline service
func NewService(deps Dependencies, matcher *censor.Matcher, logger *zap.Logger, output io.Writer) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if output == nil {
		output = io.Discard
	}
	return &Service{
		deps:    deps,
		matcher: matcher,
		logger:  logger,
		output:  output,
	}
}

// Result contains the outcome of a successful run
type Result struct {
	RunID          string
	OutputPath     string
	TranscriptPath string
	Words          int
	Matches        []censor.Match
	Encoding       media.EncodingAttempt
}

// Process cleans one video. The two working WAV files are removed on every
// exit path; the transcript and the cleaned video are kept.
func (s *Service) Process(ctx context.Context, videoPath string) (*Result, error) {
	startTime := time.Now()

	paths, err := media.NewArtifactPaths(videoPath)
	if err != nil {
		return nil, err
	}
	if !s.deps.FileChecker.Exists(paths.Source) {
		return nil, fmt.Errorf("source video does not exist: %s", paths.Source)
	}

	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID), zap.String("source", paths.Source))
	logger.Info("censor run started")

	defer s.cleanup(logger, paths.Intermediates())

	fmt.Fprintf(s.output, "Using source: %s\n\n", filepath.Base(paths.Source))

	// Step 1: Extract audio
	fmt.Fprintf(s.output, "[1/6] Extracting audio...\n")
	if err := s.deps.Extractor.Extract(ctx, paths.Source, paths.ExtractedAudio); err != nil {
		return nil, fmt.Errorf("audio extraction failed: %w", err)
	}
	fmt.Fprintf(s.output, "      Created: %s\n\n", paths.ExtractedAudio)

	// Step 2: Transcribe
	fmt.Fprintf(s.output, "[2/6] Transcribing audio...\n")
	words, err := s.deps.Transcriber.Transcribe(ctx, paths.ExtractedAudio)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}
	logger.Info("transcription finished", zap.Int("words", len(words)))
	fmt.Fprintf(s.output, "      Recognized %d words\n\n", len(words))

	// Step 3: Save transcript
	fmt.Fprintf(s.output, "[3/6] Saving word-level transcript...\n")
	if err := s.deps.Transcripts.Write(paths.Transcript, words); err != nil {
		return nil, fmt.Errorf("saving transcript failed: %w", err)
	}
	fmt.Fprintf(s.output, "      Saved: %s\n\n", paths.Transcript)

	// Step 4: Silence profane words
	fmt.Fprintf(s.output, "[4/6] Silencing profane words...\n")
	source, err := s.deps.Audio.Load(paths.ExtractedAudio)
	if err != nil {
		return nil, fmt.Errorf("loading extracted audio failed: %w", err)
	}
	matches := s.matcher.Scan(words)
	for _, m := range matches {
		logger.Info("silencing word",
			zap.String("token", m.Token),
			zap.Float64("word_start", m.Word.Start),
			zap.Float64("word_end", m.Word.End),
			zap.Int64("start_ms", m.Span.StartMs),
			zap.Int64("end_ms", m.Span.EndMs),
		)
		fmt.Fprintf(s.output, "      Silencing '%s' from %.2fs to %.2fs\n",
			m.Token, float64(m.Span.StartMs)/1000, float64(m.Span.EndMs)/1000)
	}
	if len(matches) == 0 {
		fmt.Fprintf(s.output, "      No profanity found\n")
	}
	cleaned := audio.Silence(source, censor.Spans(matches))
	fmt.Fprintln(s.output)

	// Step 5: Write clean audio
	fmt.Fprintf(s.output, "[5/6] Writing clean audio...\n")
	if err := s.deps.Audio.Save(paths.CleanAudio, cleaned); err != nil {
		return nil, fmt.Errorf("writing clean audio failed: %w", err)
	}
	fmt.Fprintf(s.output, "      Created: %s\n\n", paths.CleanAudio)

	// Step 6: Mux
	fmt.Fprintf(s.output, "[6/6] Muxing clean audio with video...\n")
	attempt, err := s.deps.Negotiator.Negotiate(ctx, appmedia.MuxJob{
		VideoPath:  paths.Source,
		AudioPath:  paths.CleanAudio,
		OutputPath: paths.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("muxing failed: %w", err)
	}
	fmt.Fprintf(s.output, "      Created: %s\n\n", paths.Output)

	elapsed := time.Since(startTime)
	logger.Info("censor run finished",
		zap.Int("censored", len(matches)),
		zap.String("encoding", attempt.String()),
		zap.Duration("elapsed", elapsed),
	)
	fmt.Fprintf(s.output, "Done! Silenced %d word(s) in %s\n", len(matches), formatDuration(elapsed))

	return &Result{
		RunID:          runID,
		OutputPath:     paths.Output,
		TranscriptPath: paths.Transcript,
		Words:          len(words),
		Matches:        matches,
		Encoding:       attempt,
	}, nil
}

// cleanup removes intermediate files; failures are logged and never replace the run's error
func (s *Service) cleanup(logger *zap.Logger, paths []string) {
	for _, p := range paths {
		if err := s.deps.FileRemover.Remove(p); err != nil {
			logger.Warn("failed to delete intermediary file", zap.String("path", p), zap.Error(err))
			continue
		}
		logger.Debug("deleted intermediary file", zap.String("path", p))
	}
}

// formatDuration formats a duration as "Xm Ys" or "Ys"
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
