package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"video-censor/domain/media"

	"go.uber.org/zap"
)

// FileMover finalizes successful attempts and discards failed ones
type FileMover interface {
	media.FileRenamer
	media.FileRemover
}

// MuxJob names the inputs and the final output of one negotiation
type MuxJob struct {
	VideoPath  string
	AudioPath  string
	OutputPath string
}

// Negotiator tries codec pairs against the encoder until one is accepted
type Negotiator struct {
	muxer          media.Muxer
	files          FileMover
	candidates     []media.EncodingAttempt
	attemptTimeout time.Duration
	logger         *zap.Logger
	output         io.Writer
}

// NegotiatorOption is a functional option for configuring Negotiator
type NegotiatorOption func(*Negotiator)

// WithCandidates replaces the default codec pairs
func WithCandidates(candidates []media.EncodingAttempt) NegotiatorOption {
	return func(n *Negotiator) {
		n.candidates = candidates
	}
}

// WithAttemptTimeout bounds each encoder invocation; zero means no limit
func WithAttemptTimeout(d time.Duration) NegotiatorOption {
	return func(n *Negotiator) {
		n.attemptTimeout = d
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *zap.Logger) NegotiatorOption {
	return func(n *Negotiator) {
		n.logger = logger
	}
}

// WithOutput sets the writer for progress lines
func WithOutput(w io.Writer) NegotiatorOption {
	return func(n *Negotiator) {
		n.output = w
	}
}

// NewNegotiator creates a Negotiator using the default codec priority
func NewNegotiator(muxer media.Muxer, files FileMover, opts ...NegotiatorOption) *Negotiator {
	n := &Negotiator{
		muxer:      muxer,
		files:      files,
		candidates: media.Candidates(media.DefaultVideoCodecs, media.DefaultAudioCodecs),
		logger:     zap.NewNop(),
		output:     io.Discard,
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Candidates returns the codec pairs in the order they will be tried
func (n *Negotiator) Candidates() []media.EncodingAttempt {
	out := make([]media.EncodingAttempt, len(n.candidates))
	copy(out, n.candidates)
	return out
}

// Negotiate tries each candidate once, in order, and stops at the first
// success. The successful attempt's output is renamed to job.OutputPath.
// If every candidate fails the returned error matches media.ErrEncodingExhausted.
func (n *Negotiator) Negotiate(ctx context.Context, job MuxJob) (media.EncodingAttempt, error) {
	var failures []media.AttemptFailure

	for i, attempt := range n.candidates {
		if err := ctx.Err(); err != nil {
			return media.EncodingAttempt{}, fmt.Errorf("encoding cancelled: %w", err)
		}

		tempOutput := media.AttemptOutput(job.OutputPath, attempt)
		fmt.Fprintf(n.output, "      Trying video codec '%s' and audio codec '%s'...\n", attempt.VideoCodec, attempt.AudioCodec)

		err := n.try(ctx, media.MuxRequest{
			VideoPath:  job.VideoPath,
			AudioPath:  job.AudioPath,
			OutputPath: tempOutput,
			Attempt:    attempt,
		})
		if err != nil {
			n.logger.Warn("encoding attempt failed",
				zap.Int("attempt", i+1),
				zap.Int("candidates", len(n.candidates)),
				zap.String("video_codec", attempt.VideoCodec),
				zap.String("audio_codec", attempt.AudioCodec),
				zap.Error(err),
			)
			if rmErr := n.files.Remove(tempOutput); rmErr != nil {
				n.logger.Debug("could not remove partial output", zap.String("path", tempOutput), zap.Error(rmErr))
			}
			failures = append(failures, media.AttemptFailure{Attempt: attempt, Err: err})
			continue
		}

		if err := n.files.Rename(tempOutput, job.OutputPath); err != nil {
			return media.EncodingAttempt{}, fmt.Errorf("failed to finalize %s: %w", job.OutputPath, err)
		}

		n.logger.Info("encoding succeeded",
			zap.Int("attempt", i+1),
			zap.String("video_codec", attempt.VideoCodec),
			zap.String("audio_codec", attempt.AudioCodec),
			zap.String("output", job.OutputPath),
		)
		fmt.Fprintf(n.output, "      Success with %s\n", attempt)
		return attempt, nil
	}

	n.logger.Error("all encoding attempts failed", zap.Int("attempts", len(failures)))
	return media.EncodingAttempt{}, &media.ExhaustedError{Failures: failures}
}

func (n *Negotiator) try(ctx context.Context, req media.MuxRequest) error {
	if n.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.attemptTimeout)
		defer cancel()
	}
	return n.muxer.Mux(ctx, req)
}
