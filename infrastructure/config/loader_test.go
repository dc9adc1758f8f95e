package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"video-censor/domain/media"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Paths.DenylistFile != "config/curses.txt" {
		t.Errorf("DenylistFile = %q", cfg.Paths.DenylistFile)
	}
	timing := cfg.Calibration()
	if timing.PrePad != 100*time.Millisecond || timing.Shift != 300*time.Millisecond {
		t.Errorf("Timing() = %+v, want 100ms/300ms", timing)
	}
	if got := cfg.Candidates(); len(got) != 6 || got[0] != (media.EncodingAttempt{VideoCodec: "copy", AudioCodec: "aac"}) {
		t.Errorf("Candidates() = %v", got)
	}
	if cfg.Encoding.AttemptTimeout != 0 || cfg.Transcription.Timeout != 0 {
		t.Error("timeouts should default to zero")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
paths:
  denylist_file: /etc/censor/words.txt
timing:
  pre_pad_ms: 0
  shift_ms: 250
encoding:
  video_codecs: [libx264]
  audio_codecs: [aac, libopus]
  attempt_timeout: 10m
transcription:
  model: medium.en
  timeout: 1h
logging:
  level: debug
  file: logs/censor.log
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Paths.DenylistFile != "/etc/censor/words.txt" {
		t.Errorf("DenylistFile = %q", cfg.Paths.DenylistFile)
	}
	timing := cfg.Calibration()
	if timing.PrePad != 0 || timing.Shift != 250*time.Millisecond {
		t.Errorf("Timing() = %+v, want explicit zero pre-pad and 250ms shift", timing)
	}
	wantCandidates := []media.EncodingAttempt{
		{VideoCodec: "libx264", AudioCodec: "aac"},
		{VideoCodec: "libx264", AudioCodec: "libopus"},
	}
	if !reflect.DeepEqual(cfg.Candidates(), wantCandidates) {
		t.Errorf("Candidates() = %v, want %v", cfg.Candidates(), wantCandidates)
	}
	if cfg.Encoding.AttemptTimeout != 10*time.Minute {
		t.Errorf("AttemptTimeout = %v", cfg.Encoding.AttemptTimeout)
	}
	if cfg.Transcription.Model != "medium.en" || cfg.Transcription.Timeout != time.Hour {
		t.Errorf("Transcription = %+v", cfg.Transcription)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.ConsoleLevel != "warn" || cfg.Logging.MaxSizeMB != 10 {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if cfg.FFmpeg.Path != "ffmpeg" {
		t.Errorf("FFmpeg.Path = %q, want default", cfg.FFmpeg.Path)
	}
	if cfg.FFmpeg.SampleRate != 48000 {
		t.Errorf("FFmpeg.SampleRate = %d, want 48000", cfg.FFmpeg.SampleRate)
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.FFmpeg.Path != "ffmpeg" {
		t.Error("LoadOrDefault() did not fall back to defaults")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("timing: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(bad); err == nil {
		t.Error("LoadOrDefault() expected parse error")
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Defaults()
	cfg.Google.FolderID = "folder-123"
	cfg.Email.Recipients = map[string]RecipientConfig{
		"maria": {Name: "Maria Lopez", Address: "maria@example.com"},
	}

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Google.FolderID != "folder-123" || loaded.Email.Recipients["maria"].Address != "maria@example.com" {
		t.Errorf("loaded config lost values: %+v", loaded)
	}
}
