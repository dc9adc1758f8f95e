package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"video-censor/domain/censor"
	"video-censor/domain/media"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for its configuration
const DefaultPath = "config/config.yaml"

// Config represents the complete application configuration
type Config struct {
	Paths         PathsConfig         `yaml:"paths"`
	Timing        TimingConfig        `yaml:"timing"`
	Encoding      EncodingConfig      `yaml:"encoding"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	FFmpeg        FFmpegConfig        `yaml:"ffmpeg"`
	Logging       LoggingConfig       `yaml:"logging"`
	Google        GoogleConfig        `yaml:"google"`
	Email         EmailConfig         `yaml:"email"`
}

// PathsConfig contains file locations
type PathsConfig struct {
	DenylistFile string `yaml:"denylist_file"`
}

// TimingConfig calibrates recognizer timestamps against the audio
type TimingConfig struct {
	PrePadMs *int `yaml:"pre_pad_ms,omitempty"`
	ShiftMs  *int `yaml:"shift_ms,omitempty"`
}

// EncodingConfig lists the codec candidates tried when muxing
type EncodingConfig struct {
	VideoCodecs    []string      `yaml:"video_codecs"`
	AudioCodecs    []string      `yaml:"audio_codecs"`
	AttemptTimeout time.Duration `yaml:"attempt_timeout,omitempty"`
}

// TranscriptionConfig contains speech recognizer settings
type TranscriptionConfig struct {
	Python      string        `yaml:"python"`
	Script      string        `yaml:"script"`
	Model       string        `yaml:"model"`
	Language    string        `yaml:"language"`
	Device      string        `yaml:"device"`
	ComputeType string        `yaml:"compute_type"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
}

// FFmpegConfig contains the ffmpeg executable location and extraction rate
type FFmpegConfig struct {
	Path       string `yaml:"path"`
	SampleRate int    `yaml:"sample_rate"`
}

// LoggingConfig contains structured log settings
type LoggingConfig struct {
	Level        string `yaml:"level"`
	ConsoleLevel string `yaml:"console_level"`
	File         string `yaml:"file"`
	MaxSizeMB    int    `yaml:"max_size_mb"`
	MaxBackups   int    `yaml:"max_backups"`
	MaxAgeDays   int    `yaml:"max_age_days"`
	Compress     bool   `yaml:"compress"`
}

// GoogleConfig contains Google API settings
type GoogleConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`
	FolderID        string `yaml:"folder_id"`
}

// EmailConfig contains email notification settings
type EmailConfig struct {
	FromName    string                     `yaml:"from_name"`
	FromAddress string                     `yaml:"from_address"`
	DefaultTo   []string                   `yaml:"default_to"`
	Recipients  map[string]RecipientConfig `yaml:"recipients"`
}

// RecipientConfig represents an email recipient
type RecipientConfig struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

// Defaults returns a configuration with every optional value filled in
func Defaults() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Paths.DenylistFile == "" {
		c.Paths.DenylistFile = "config/curses.txt"
	}
	if c.Timing.PrePadMs == nil {
		v := int(censor.DefaultPrePad / time.Millisecond)
		c.Timing.PrePadMs = &v
	}
	if c.Timing.ShiftMs == nil {
		v := int(censor.DefaultShift / time.Millisecond)
		c.Timing.ShiftMs = &v
	}
	if len(c.Encoding.VideoCodecs) == 0 {
		c.Encoding.VideoCodecs = append([]string(nil), media.DefaultVideoCodecs...)
	}
	if len(c.Encoding.AudioCodecs) == 0 {
		c.Encoding.AudioCodecs = append([]string(nil), media.DefaultAudioCodecs...)
	}
	if c.FFmpeg.Path == "" {
		c.FFmpeg.Path = "ffmpeg"
	}
	if c.FFmpeg.SampleRate <= 0 {
		c.FFmpeg.SampleRate = 48000
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.ConsoleLevel == "" {
		c.Logging.ConsoleLevel = "warn"
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = 10
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = 5
	}
	if c.Logging.MaxAgeDays == 0 {
		c.Logging.MaxAgeDays = 30
	}
	if c.Google.CredentialsFile == "" {
		c.Google.CredentialsFile = "credentials.json"
	}
	if c.Google.TokenFile == "" {
		c.Google.TokenFile = "token.json"
	}
}

// Calibration converts the calibration settings to the matcher's form
func (c *Config) Calibration() censor.Timing {
	t := censor.DefaultTiming()
	if c.Timing.PrePadMs != nil {
		t.PrePad = time.Duration(*c.Timing.PrePadMs) * time.Millisecond
	}
	if c.Timing.ShiftMs != nil {
		t.Shift = time.Duration(*c.Timing.ShiftMs) * time.Millisecond
	}
	return t
}

// Candidates returns the ordered codec pairs to try when muxing
func (c *Config) Candidates() []media.EncodingAttempt {
	return media.Candidates(c.Encoding.VideoCodecs, c.Encoding.AudioCodecs)
}

// Load reads and parses the configuration from the specified YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// LoadOrDefault loads path, falling back to Defaults when the file does not exist
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Defaults(), nil
	}
	return cfg, err
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
