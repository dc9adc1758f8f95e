package cmd

import (
	"fmt"
	"io"
	"os"

	"video-censor/infrastructure/config"
	"video-censor/infrastructure/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	cfg     *config.Config
	cfgErr  error
)

// DefaultOutput is where progress lines and command results are written
var DefaultOutput io.Writer = os.Stdout

var rootCmd = &cobra.Command{
	Use:   "video-censor",
	Short: "Silence profanity in a video's audio track",
	Long: `video-censor produces a clean copy of a video by silencing every spoken
word found on a denylist:

  - Extract and normalize the audio track
  - Transcribe it with word-level timestamps
  - Silence each matching word
  - Mux the clean audio back with the original video
  - Optionally publish to Google Drive and email a link

Example:
  video-censor censor --input movie.mp4`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.DefaultPath+")")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = config.DefaultPath
	}
	// A missing file falls back to defaults; a broken one is reported by
	// the commands that need it.
	cfg, cfgErr = config.LoadOrDefault(cfgFile)
}

// GetConfig returns the loaded configuration
func GetConfig() (*config.Config, error) {
	if cfgErr != nil {
		return nil, cfgErr
	}
	if cfg == nil {
		return config.Defaults(), nil
	}
	return cfg, nil
}

// newLogger builds the application logger from the loaded config
func newLogger(c *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(c.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return logger.With(zap.String("app", "video-censor")), nil
}
