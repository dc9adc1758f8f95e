package ffmpeg

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"video-censor/domain/media"
)

// mockRunner records every command instead of executing it
type mockRunner struct {
	name      string
	args      []string
	failError error
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) error {
	m.name = name
	m.args = args
	return m.failError
}

func (m *mockRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.name = name
	m.args = args
	if m.failError != nil {
		return nil, m.failError
	}
	return []byte("ffmpeg version 6.1"), nil
}

func TestExtractor_Extract(t *testing.T) {
	runner := &mockRunner{}
	e := NewExtractor(WithCommandRunner(runner))

	if err := e.Extract(context.Background(), "/videos/show.mp4", "/videos/show_extracted_audio.wav"); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	want := []string{
		"-y", "-i", "/videos/show.mp4", "-vn", "-ac", "1", "-af", "loudnorm",
		"-ar", "48000", "-c:a", "pcm_s16le", "/videos/show_extracted_audio.wav",
	}
	if runner.name != "ffmpeg" {
		t.Errorf("command = %q, want ffmpeg", runner.name)
	}
	if !reflect.DeepEqual(runner.args, want) {
		t.Errorf("args = %v, want %v", runner.args, want)
	}
}

func TestExtractor_ExtractSampleRate(t *testing.T) {
	runner := &mockRunner{}
	e := NewExtractor(WithCommandRunner(runner), WithSampleRate(16000))

	if err := e.Extract(context.Background(), "in.mp4", "out.wav"); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	joined := strings.Join(runner.args, " ")
	if !strings.Contains(joined, "-af loudnorm -ar 16000") {
		t.Errorf("args = %v, want -ar 16000 after loudnorm", runner.args)
	}
}

func TestExtractor_ExtractFailure(t *testing.T) {
	runner := &mockRunner{failError: errors.New("exit status 1")}
	e := NewExtractor(WithCommandRunner(runner))

	err := e.Extract(context.Background(), "in.mp4", "out.wav")
	if err == nil || !strings.Contains(err.Error(), "audio extraction failed") {
		t.Errorf("Extract() error = %v, want extraction failure", err)
	}
}

func TestMuxer_Mux(t *testing.T) {
	runner := &mockRunner{}
	m := NewMuxer(WithCommandRunner(runner), WithFFmpegPath("/opt/ffmpeg/bin/ffmpeg"))

	req := media.MuxRequest{
		VideoPath:  "show.mp4",
		AudioPath:  "show_clean_audio.wav",
		OutputPath: "show_cleaned_libopus_libx264.mp4",
		Attempt:    media.EncodingAttempt{VideoCodec: "libx264", AudioCodec: "libopus"},
	}
	if err := m.Mux(context.Background(), req); err != nil {
		t.Fatalf("Mux() error = %v", err)
	}

	want := []string{
		"-y", "-i", "show.mp4", "-i", "show_clean_audio.wav",
		"-map", "0:v:0", "-map", "1:a:0",
		"-c:v", "libx264", "-c:a", "libopus",
		"-shortest", "show_cleaned_libopus_libx264.mp4",
	}
	if runner.name != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("command = %q, want custom path", runner.name)
	}
	if !reflect.DeepEqual(runner.args, want) {
		t.Errorf("args = %v, want %v", runner.args, want)
	}
}

func TestMuxer_MuxFailureNamesAttempt(t *testing.T) {
	runner := &mockRunner{failError: errors.New("exit status 1")}
	m := NewMuxer(WithCommandRunner(runner))

	err := m.Mux(context.Background(), media.MuxRequest{
		Attempt: media.EncodingAttempt{VideoCodec: "copy", AudioCodec: "libopus"},
	})
	if err == nil {
		t.Fatal("Mux() expected error, got nil")
	}
	if !strings.Contains(err.Error(), "copy/libopus") {
		t.Errorf("Mux() error = %v, want attempt in message", err)
	}
}

func TestVerifyInstalled(t *testing.T) {
	tests := []struct {
		name    string
		runErr  error
		wantErr bool
	}{
		{name: "installed"},
		{name: "missing", runErr: errors.New("executable file not found"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &mockRunner{failError: tt.runErr}
			err := NewMuxer(WithCommandRunner(runner)).VerifyInstalled(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("VerifyInstalled() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(runner.args, []string{"-version"}) {
				t.Errorf("args = %v, want [-version]", runner.args)
			}
		})
	}
}

func TestLastLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"single", "single"},
		{"first\nsecond\nUnknown encoder 'libopus'\n", "Unknown encoder 'libopus'"},
	}

	for _, tt := range tests {
		if got := lastLine(tt.in); got != tt.want {
			t.Errorf("lastLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
