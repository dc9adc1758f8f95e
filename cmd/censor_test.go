package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"video-censor/domain/media"
	"video-censor/domain/transcript"
	"video-censor/infrastructure/config"
	"video-censor/infrastructure/filesystem"
	"video-censor/infrastructure/wav"
)

type scriptedPrompter struct {
	inputs []string
	err    error
	asked  []string
}

func (p *scriptedPrompter) Input(message string, defaultValue string) (string, error) {
	p.asked = append(p.asked, message)
	if p.err != nil {
		return "", p.err
	}
	if len(p.inputs) == 0 {
		return defaultValue, nil
	}
	answer := p.inputs[0]
	p.inputs = p.inputs[1:]
	return answer, nil
}

func (p *scriptedPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	return defaultValue, nil
}

type failingExtractor struct {
	videoPath string
}

func (e *failingExtractor) Extract(ctx context.Context, videoPath, outputPath string) error {
	e.videoPath = videoPath
	return errors.New("no audio stream")
}

type unusedTranscriber struct{}

func (unusedTranscriber) Transcribe(ctx context.Context, audioPath string) ([]transcript.Word, error) {
	return nil, nil
}

type unusedMuxer struct{}

func (unusedMuxer) Mux(ctx context.Context, req media.MuxRequest) error {
	return nil
}

func TestCleanPathInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/videos/show.mp4", "/videos/show.mp4"},
		{"  /videos/show.mp4\n", "/videos/show.mp4"},
		{`"/videos/my show.mp4"`, "/videos/my show.mp4"},
		{"'/videos/my show.mp4' ", "/videos/my show.mp4"},
		{`"/videos/unbalanced.mp4'`, `"/videos/unbalanced.mp4'`},
		{"", ""},
	}

	for _, tt := range tests {
		if got := cleanPathInput(tt.in); got != tt.want {
			t.Errorf("cleanPathInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDistributeOptions_Validate(t *testing.T) {
	if err := (DistributeOptions{Notify: true}).Validate(); err == nil {
		t.Error("expected error for --notify without --publish")
	}
	if err := (DistributeOptions{Publish: true, Notify: true}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (DistributeOptions{}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func newCensorTestConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	c := config.Defaults()
	c.Paths.DenylistFile = filepath.Join(dir, "curses.txt")
	if err := os.WriteFile(c.Paths.DenylistFile, []byte("damn\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return c, dir
}

func censorDeps(prompter Prompter, extractor media.AudioExtractor) CensorDependencies {
	return CensorDependencies{
		Prompter:    prompter,
		Extractor:   extractor,
		Transcriber: unusedTranscriber{},
		Muxer:       unusedMuxer{},
		Transcripts: filesystem.NewTranscriptWriter(),
		Audio:       wav.NewStore(),
		FileChecker: filesystem.NewChecker(),
		Files:       filesystem.NewMover(),
	}
}

func TestRunCensor_PromptsForMissingInput(t *testing.T) {
	c, dir := newCensorTestConfig(t)
	video := filepath.Join(dir, "show.mp4")
	if err := os.WriteFile(video, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}

	prompter := &scriptedPrompter{inputs: []string{` "` + video + `" `}}
	extractor := &failingExtractor{}
	var out bytes.Buffer

	_, err := RunCensorWithDependencies(context.Background(), c, censorDeps(prompter, extractor), CensorInput{}, &out)
	if err == nil || !strings.Contains(err.Error(), "audio extraction failed") {
		t.Fatalf("expected extraction failure, got %v", err)
	}
	if len(prompter.asked) != 1 || prompter.asked[0] != "Enter the path to the video file:" {
		t.Errorf("unexpected prompts: %v", prompter.asked)
	}
	if extractor.videoPath != video {
		t.Errorf("extracted %q, want %q", extractor.videoPath, video)
	}
}

func TestRunCensor_PromptCancelled(t *testing.T) {
	c, _ := newCensorTestConfig(t)
	interrupt := errors.New("interrupt")
	prompter := &scriptedPrompter{err: interrupt}

	_, err := RunCensorWithDependencies(context.Background(), c, censorDeps(prompter, &failingExtractor{}), CensorInput{}, &bytes.Buffer{})
	if err == nil || !strings.HasPrefix(err.Error(), "prompt cancelled") {
		t.Fatalf("expected prompt cancelled, got %v", err)
	}
	if !errors.Is(err, interrupt) {
		t.Errorf("error %v does not wrap the prompt error", err)
	}
}

func TestRunCensor_MissingDenylist(t *testing.T) {
	c, dir := newCensorTestConfig(t)
	c.Paths.DenylistFile = filepath.Join(dir, "missing.txt")
	extractor := &failingExtractor{}

	_, err := RunCensorWithDependencies(context.Background(), c, censorDeps(nil, extractor), CensorInput{
		InputPath: filepath.Join(dir, "show.mp4"),
	}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for missing denylist")
	}
	if extractor.videoPath != "" {
		t.Error("extraction should not start without a denylist")
	}
}

func TestRunCensor_NotifyWithoutPublish(t *testing.T) {
	c, dir := newCensorTestConfig(t)

	_, err := RunCensorWithDependencies(context.Background(), c, censorDeps(nil, &failingExtractor{}), CensorInput{
		InputPath:  filepath.Join(dir, "show.mp4"),
		Distribute: DistributeOptions{Notify: true},
	}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "--notify requires --publish") {
		t.Fatalf("expected flag error, got %v", err)
	}
}

func TestRunConfigShow(t *testing.T) {
	var out bytes.Buffer
	if err := RunConfigShowWithDependencies(config.Defaults(), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"denylist_file: config/curses.txt", "pre_pad_ms: 100", "shift_ms: 300"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunPublish_RejectsUncleanedVideo(t *testing.T) {
	c, dir := newCensorTestConfig(t)

	err := RunPublishWithDependencies(context.Background(), c, nil, nil,
		filepath.Join(dir, "show.mp4"), DistributeOptions{Notify: true}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "is not a cleaned video") {
		t.Fatalf("expected rejection, got %v", err)
	}
}
