package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner defines the interface for running external commands
// This allows mocking exec.Command in tests
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecCommandRunner is the production implementation using os/exec
type ExecCommandRunner struct{}

// Run executes a command. On failure the last line ffmpeg wrote to stderr is
// added to the error, which is usually the reason an encoder was rejected.
func (r *ExecCommandRunner) Run(ctx context.Context, name string, args ...string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if line := lastLine(stderr.String()); line != "" {
			return fmt.Errorf("%w: %s", err, line)
		}
		return err
	}
	return nil
}

// Output executes a command and returns its output
func (r *ExecCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}

// Option configures the ffmpeg adapters
type Option func(*options)

type options struct {
	ffmpegPath string
	sampleRate int
	runner     CommandRunner
}

// DefaultSampleRate is the extraction rate used when none is configured
const DefaultSampleRate = 48000

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) Option {
	return func(o *options) {
		if path != "" {
			o.ffmpegPath = path
		}
	}
}

// WithSampleRate sets the output rate of extracted audio
func WithSampleRate(hz int) Option {
	return func(o *options) {
		if hz > 0 {
			o.sampleRate = hz
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner CommandRunner) Option {
	return func(o *options) {
		o.runner = runner
	}
}

func newOptions(opts []Option) options {
	o := options{
		ffmpegPath: "ffmpeg",
		sampleRate: DefaultSampleRate,
		runner:     &ExecCommandRunner{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// verifyInstalled checks that ffmpeg is available
func verifyInstalled(ctx context.Context, o options) error {
	_, err := o.runner.Output(ctx, o.ffmpegPath, "-version")
	if err != nil {
		return fmt.Errorf("ffmpeg not found or not executable: %w", err)
	}
	return nil
}
