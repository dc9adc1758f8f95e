package media

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"video-censor/domain/media"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// mockMuxer records every request and fails the configured attempts
type mockMuxer struct {
	calls     []media.MuxRequest
	succeedAt int // 1-based index of the first call that succeeds; 0 means never
}

func (m *mockMuxer) Mux(ctx context.Context, req media.MuxRequest) error {
	m.calls = append(m.calls, req)
	if m.succeedAt != 0 && len(m.calls) == m.succeedAt {
		return nil
	}
	return errors.New("exit status 1")
}

func (m *mockMuxer) attempts() []media.EncodingAttempt {
	out := make([]media.EncodingAttempt, len(m.calls))
	for i, c := range m.calls {
		out[i] = c.Attempt
	}
	return out
}

// mockFiles records rename and remove calls
type mockFiles struct {
	renamed   [][2]string
	removed   []string
	renameErr error
}

func (m *mockFiles) Rename(oldPath, newPath string) error {
	if m.renameErr != nil {
		return m.renameErr
	}
	m.renamed = append(m.renamed, [2]string{oldPath, newPath})
	return nil
}

func (m *mockFiles) Remove(path string) error {
	m.removed = append(m.removed, path)
	return nil
}

var testJob = MuxJob{
	VideoPath:  "/v/show.mp4",
	AudioPath:  "/v/show_clean_audio.wav",
	OutputPath: "/v/show_cleaned.mp4",
}

func TestNegotiate_FirstCandidateSucceeds(t *testing.T) {
	muxer := &mockMuxer{succeedAt: 1}
	files := &mockFiles{}
	n := NewNegotiator(muxer, files)

	got, err := n.Negotiate(context.Background(), testJob)
	if err != nil {
		t.Fatalf("Negotiate() unexpected error: %v", err)
	}

	want := media.EncodingAttempt{VideoCodec: "copy", AudioCodec: "aac"}
	if got != want {
		t.Errorf("Negotiate() = %v, want %v", got, want)
	}
	if len(muxer.calls) != 1 {
		t.Errorf("muxer called %d times, want 1", len(muxer.calls))
	}

	req := muxer.calls[0]
	if req.VideoPath != testJob.VideoPath || req.AudioPath != testJob.AudioPath {
		t.Errorf("mux inputs = %q, %q", req.VideoPath, req.AudioPath)
	}
	if req.OutputPath != "/v/show_cleaned_aac_copy.mp4" {
		t.Errorf("attempt output = %q", req.OutputPath)
	}

	wantRename := [][2]string{{"/v/show_cleaned_aac_copy.mp4", "/v/show_cleaned.mp4"}}
	if !reflect.DeepEqual(files.renamed, wantRename) {
		t.Errorf("renamed = %v, want %v", files.renamed, wantRename)
	}
}

func TestNegotiate_ShortCircuitsOnThirdCandidate(t *testing.T) {
	muxer := &mockMuxer{succeedAt: 3}
	files := &mockFiles{}
	n := NewNegotiator(muxer, files)

	got, err := n.Negotiate(context.Background(), testJob)
	if err != nil {
		t.Fatalf("Negotiate() unexpected error: %v", err)
	}

	wantAttempts := []media.EncodingAttempt{
		{VideoCodec: "copy", AudioCodec: "aac"},
		{VideoCodec: "copy", AudioCodec: "libmp3lame"},
		{VideoCodec: "copy", AudioCodec: "libopus"},
	}
	if !reflect.DeepEqual(muxer.attempts(), wantAttempts) {
		t.Errorf("attempted %v, want exactly %v", muxer.attempts(), wantAttempts)
	}
	if got != wantAttempts[2] {
		t.Errorf("Negotiate() = %v, want %v", got, wantAttempts[2])
	}

	wantRemoved := []string{"/v/show_cleaned_aac_copy.mp4", "/v/show_cleaned_libmp3lame_copy.mp4"}
	if !reflect.DeepEqual(files.removed, wantRemoved) {
		t.Errorf("removed partial outputs = %v, want %v", files.removed, wantRemoved)
	}
}

func TestNegotiate_ExhaustsEveryCandidateOnceInOrder(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	muxer := &mockMuxer{}
	files := &mockFiles{}
	n := NewNegotiator(muxer, files, WithLogger(zap.New(core)))

	_, err := n.Negotiate(context.Background(), testJob)
	if err == nil {
		t.Fatal("Negotiate() expected error, got nil")
	}
	if !errors.Is(err, media.ErrEncodingExhausted) {
		t.Errorf("Negotiate() error = %v, want ErrEncodingExhausted", err)
	}

	var exhausted *media.ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Negotiate() error type = %T, want *media.ExhaustedError", err)
	}
	if len(exhausted.Failures) != 6 {
		t.Errorf("recorded %d failures, want 6", len(exhausted.Failures))
	}

	wantAttempts := []media.EncodingAttempt{
		{VideoCodec: "copy", AudioCodec: "aac"},
		{VideoCodec: "copy", AudioCodec: "libmp3lame"},
		{VideoCodec: "copy", AudioCodec: "libopus"},
		{VideoCodec: "libx264", AudioCodec: "aac"},
		{VideoCodec: "libx264", AudioCodec: "libmp3lame"},
		{VideoCodec: "libx264", AudioCodec: "libopus"},
	}
	if !reflect.DeepEqual(muxer.attempts(), wantAttempts) {
		t.Errorf("attempted %v, want %v", muxer.attempts(), wantAttempts)
	}
	if len(files.renamed) != 0 {
		t.Errorf("renamed %v, want nothing finalized", files.renamed)
	}

	if got := logs.FilterMessage("encoding attempt failed").Len(); got != 6 {
		t.Errorf("logged %d attempt failures, want 6", got)
	}
	if got := logs.FilterMessage("all encoding attempts failed").Len(); got != 1 {
		t.Errorf("logged %d exhaustion errors, want 1", got)
	}
	first := logs.FilterMessage("encoding attempt failed").All()[0].ContextMap()
	if first["video_codec"] != "copy" || first["audio_codec"] != "aac" {
		t.Errorf("first failure fields = %v", first)
	}
}

func TestNegotiate_CustomCandidates(t *testing.T) {
	muxer := &mockMuxer{succeedAt: 2}
	candidates := media.Candidates([]string{"libx265"}, []string{"flac", "aac"})
	n := NewNegotiator(muxer, &mockFiles{}, WithCandidates(candidates))

	got, err := n.Negotiate(context.Background(), testJob)
	if err != nil {
		t.Fatalf("Negotiate() unexpected error: %v", err)
	}
	if want := (media.EncodingAttempt{VideoCodec: "libx265", AudioCodec: "aac"}); got != want {
		t.Errorf("Negotiate() = %v, want %v", got, want)
	}
}

func TestNegotiate_NoCandidates(t *testing.T) {
	muxer := &mockMuxer{succeedAt: 1}
	n := NewNegotiator(muxer, &mockFiles{}, WithCandidates(nil))

	_, err := n.Negotiate(context.Background(), testJob)
	if !errors.Is(err, media.ErrEncodingExhausted) {
		t.Errorf("Negotiate() error = %v, want ErrEncodingExhausted", err)
	}
	if len(muxer.calls) != 0 {
		t.Errorf("muxer called %d times, want 0", len(muxer.calls))
	}
}

func TestNegotiate_RenameFailureIsFatal(t *testing.T) {
	muxer := &mockMuxer{succeedAt: 1}
	files := &mockFiles{renameErr: errors.New("permission denied")}
	n := NewNegotiator(muxer, files)

	_, err := n.Negotiate(context.Background(), testJob)
	if err == nil {
		t.Fatal("Negotiate() expected error, got nil")
	}
	if errors.Is(err, media.ErrEncodingExhausted) {
		t.Error("rename failure must not be reported as exhaustion")
	}
	if len(muxer.calls) != 1 {
		t.Errorf("muxer called %d times after rename failure, want 1", len(muxer.calls))
	}
}

func TestNegotiate_CancelledContext(t *testing.T) {
	muxer := &mockMuxer{succeedAt: 1}
	n := NewNegotiator(muxer, &mockFiles{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := n.Negotiate(ctx, testJob)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Negotiate() error = %v, want context.Canceled", err)
	}
	if len(muxer.calls) != 0 {
		t.Errorf("muxer called %d times, want 0", len(muxer.calls))
	}
}

// deadlineMuxer records whether each call received a deadline
type deadlineMuxer struct {
	hadDeadline bool
}

func (m *deadlineMuxer) Mux(ctx context.Context, req media.MuxRequest) error {
	_, m.hadDeadline = ctx.Deadline()
	return nil
}

func TestNegotiate_AttemptTimeout(t *testing.T) {
	muxer := &deadlineMuxer{}
	output := &bytes.Buffer{}
	n := NewNegotiator(muxer, &mockFiles{}, WithAttemptTimeout(time.Minute), WithOutput(output))

	if _, err := n.Negotiate(context.Background(), testJob); err != nil {
		t.Fatalf("Negotiate() unexpected error: %v", err)
	}
	if !muxer.hadDeadline {
		t.Error("encoder invocation had no deadline with attempt timeout set")
	}
	if !bytes.Contains(output.Bytes(), []byte("Trying video codec 'copy' and audio codec 'aac'")) {
		t.Errorf("progress output missing attempt line: %q", output.String())
	}
}
