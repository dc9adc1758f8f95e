package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	appcensor "video-censor/application/censor"
	appmedia "video-censor/application/media"
	"video-censor/domain/audio"
	"video-censor/domain/censor"
	"video-censor/domain/media"
	"video-censor/domain/transcript"
	"video-censor/infrastructure/config"
	"video-censor/infrastructure/denylist"
	"video-censor/infrastructure/ffmpeg"
	"video-censor/infrastructure/filesystem"
	"video-censor/infrastructure/wav"
	"video-censor/infrastructure/whisper"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	censorInputPath string
	censorPublish   bool
	censorNotify    bool
	censorFreeSpace bool
	censorTo        []string
)

var censorCmd = &cobra.Command{
	Use:   "censor",
	Short: "Produce a clean copy of a video",
	Long: `Produce a clean copy of a video in six steps:
1. Extract the audio track as mono, loudness-normalized WAV
2. Transcribe it with word-level timestamps
3. Save the transcript next to the video
4. Silence every word that contains a denylist entry
5. Write the clean audio
6. Mux it with the original video, trying codec pairs until one works

The result is written next to the input as <name>_cleaned.mp4. When --input
is omitted you are prompted for the path.

Example:
  video-censor censor --input movie.mp4
  video-censor censor --input movie.mp4 --publish --notify --to maria`,
	RunE: runCensor,
}

func init() {
	rootCmd.AddCommand(censorCmd)
	censorCmd.Flags().StringVar(&censorInputPath, "input", "", "Path to the video to clean (prompts when omitted)")
	censorCmd.Flags().BoolVar(&censorPublish, "publish", false, "Upload the cleaned video to Google Drive")
	censorCmd.Flags().BoolVar(&censorNotify, "notify", false, "Email a link to the uploaded video (requires --publish)")
	censorCmd.Flags().BoolVar(&censorFreeSpace, "free-space", false, "Delete the oldest videos in the Drive folder when space runs out")
	censorCmd.Flags().StringArrayVar(&censorTo, "to", nil, "Recipient config key or name (repeatable, defaults to email.default_to)")
}

func runCensor(cmd *cobra.Command, args []string) error {
	c, err := GetConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := cmd.Context()
	opts := DistributeOptions{
		Publish:   censorPublish,
		Notify:    censorNotify,
		FreeSpace: censorFreeSpace,
		To:        censorTo,
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	publisher, notifier, err := newGoogleDistributors(ctx, c, opts, DefaultOutput)
	if err != nil {
		return err
	}

	mover := filesystem.NewMover()
	deps := CensorDependencies{
		Prompter:  DefaultPrompter,
		Extractor: ffmpeg.NewExtractor(ffmpeg.WithFFmpegPath(c.FFmpeg.Path), ffmpeg.WithSampleRate(c.FFmpeg.SampleRate)),
		Transcriber: whisper.NewTranscriber(whisperConfig(c.Transcription),
			whisper.WithLogger(logger.Named("whisper"))),
		Muxer:       ffmpeg.NewMuxer(ffmpeg.WithFFmpegPath(c.FFmpeg.Path)),
		Transcripts: filesystem.NewTranscriptWriter(),
		Audio:       wav.NewStore(),
		FileChecker: filesystem.NewChecker(),
		Files:       mover,
		Publisher:   publisher,
		Notifier:    notifier,
		Logger:      logger,
	}

	_, err = RunCensorWithDependencies(ctx, c, deps, CensorInput{
		InputPath:  censorInputPath,
		Distribute: opts,
	}, DefaultOutput)
	return err
}

func whisperConfig(t config.TranscriptionConfig) whisper.Config {
	return whisper.Config{
		Python:      t.Python,
		Script:      t.Script,
		Model:       t.Model,
		Language:    t.Language,
		Device:      t.Device,
		ComputeType: t.ComputeType,
		Timeout:     t.Timeout,
	}
}

// CensorDependencies are the collaborators of the censor command
type CensorDependencies struct {
	Prompter    Prompter
	Extractor   media.AudioExtractor
	Transcriber transcript.Transcriber
	Muxer       media.Muxer
	Transcripts transcript.Writer
	Audio       audio.Store
	FileChecker media.FileChecker
	Files       appmedia.FileMover
	Publisher   Publisher
	Notifier    Notifier
	Logger      *zap.Logger
}

// CensorInput contains the input parameters for the censor command
type CensorInput struct {
	InputPath  string
	Distribute DistributeOptions
}

// RunCensorWithDependencies runs the censor command with injected dependencies (for testing)
func RunCensorWithDependencies(
	ctx context.Context,
	c *config.Config,
	deps CensorDependencies,
	input CensorInput,
	output io.Writer,
) (*appcensor.Result, error) {
	if err := input.Distribute.Validate(); err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	videoPath := input.InputPath
	if strings.TrimSpace(videoPath) == "" && deps.Prompter != nil {
		answer, err := deps.Prompter.Input("Enter the path to the video file:", "")
		if err != nil {
			return nil, fmt.Errorf("prompt cancelled: %w", err)
		}
		videoPath = answer
	}
	videoPath = cleanPathInput(videoPath)
	if videoPath == "" {
		return nil, fmt.Errorf("video path is required")
	}

	// Verify ffmpeg is available
	if verifiable, ok := deps.Muxer.(interface{ VerifyInstalled(context.Context) error }); ok {
		verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := verifiable.VerifyInstalled(verifyCtx); err != nil {
			return nil, fmt.Errorf("ffmpeg verification failed: %w", err)
		}
	}

	list, err := denylist.Load(c.Paths.DenylistFile)
	if err != nil {
		return nil, err
	}
	logger.Info("denylist loaded", zap.String("path", c.Paths.DenylistFile), zap.Int("entries", list.Len()))

	negotiator := appmedia.NewNegotiator(deps.Muxer, deps.Files,
		appmedia.WithCandidates(c.Candidates()),
		appmedia.WithAttemptTimeout(c.Encoding.AttemptTimeout),
		appmedia.WithLogger(logger.Named("negotiator")),
		appmedia.WithOutput(output),
	)

	service := appcensor.NewService(appcensor.Dependencies{
		Extractor:   deps.Extractor,
		Transcriber: deps.Transcriber,
		Transcripts: deps.Transcripts,
		Audio:       deps.Audio,
		Negotiator:  negotiator,
		FileChecker: deps.FileChecker,
		FileRemover: deps.Files,
	}, censor.NewMatcher(list, c.Calibration()), logger, output)

	result, err := service.Process(ctx, videoPath)
	if err != nil {
		return nil, err
	}

	if err := distribute(ctx, c, deps.Publisher, deps.Notifier, result.OutputPath, len(result.Matches), input.Distribute, output); err != nil {
		return result, err
	}

	return result, nil
}

// cleanPathInput trims whitespace and the quotes terminals add to dragged-in paths
func cleanPathInput(p string) string {
	p = strings.TrimSpace(p)
	if len(p) >= 2 && (p[0] == '"' || p[0] == '\'') && p[len(p)-1] == p[0] {
		p = p[1 : len(p)-1]
	}
	return strings.TrimSpace(p)
}
