//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	appdistribution "video-censor/application/distribution"
	appnotification "video-censor/application/notification"
	"video-censor/cmd"
	"video-censor/domain/audio"
	"video-censor/domain/media"
	"video-censor/domain/notification"
	"video-censor/domain/transcript"
	"video-censor/infrastructure/config"
	"video-censor/infrastructure/drive"
	"video-censor/infrastructure/filesystem"
	"video-censor/infrastructure/gmail"
	"video-censor/infrastructure/wav"

	"github.com/cucumber/godog"
	googledrive "google.golang.org/api/drive/v3"
	googlegmail "google.golang.org/api/gmail/v1"
)

const (
	censorSampleRate = 8000
	censorLevel      = 1000
)

// censorContext holds test state for censor and publish scenarios
type censorContext struct {
	tempDir string
	cfg     *config.Config

	// Mocks
	extractor    *censorMockExtractor
	transcriber  *censorMockTranscriber
	muxer        *censorMockMuxer
	driveService *censorMockDriveService
	gmailService *censorMockGmailService

	// State
	durationMs int64
	result     *cmdResult
	output     *bytes.Buffer
	err        error
}

type cmdResult struct {
	outputPath     string
	transcriptPath string
	censored       int
}

// SharedCensorContext is reset before each scenario via Before hook
var SharedCensorContext *censorContext

func getCensorContext() *censorContext {
	return SharedCensorContext
}

// --- Mock implementations ---

// censorMockExtractor writes a constant-level WAV in place of the real soundtrack
type censorMockExtractor struct {
	durationMs int64
	shouldFail bool
	calls      int
}

func (m *censorMockExtractor) Extract(ctx context.Context, videoPath, outputPath string) error {
	m.calls++
	if m.shouldFail {
		return fmt.Errorf("ffmpeg audio extraction failed: no audio stream")
	}
	frames := int(m.durationMs * censorSampleRate / 1000)
	data := make([]int, frames)
	for i := range data {
		data[i] = censorLevel
	}
	return wav.NewStore().Save(outputPath, &audio.Buffer{
		Data:        data,
		SampleRate:  censorSampleRate,
		NumChannels: 1,
		BitDepth:    16,
	})
}

type censorMockTranscriber struct {
	words []transcript.Word
}

func (m *censorMockTranscriber) Transcribe(ctx context.Context, audioPath string) ([]transcript.Word, error) {
	return m.words, nil
}

// censorMockMuxer records attempts, fails the configured codecs, and keeps
// a copy of the audio it was asked to mux
type censorMockMuxer struct {
	failVideoCodecs map[string]bool
	failAll         bool
	attempts        []media.EncodingAttempt
	muxedAudio      *audio.Buffer
}

func (m *censorMockMuxer) Mux(ctx context.Context, req media.MuxRequest) error {
	m.attempts = append(m.attempts, req.Attempt)
	if m.failAll || m.failVideoCodecs[req.Attempt.VideoCodec] {
		// Leave a partial file behind like a crashed encoder would
		os.WriteFile(req.OutputPath, []byte("partial"), 0644)
		return fmt.Errorf("ffmpeg mux with %s failed: Unknown encoder", req.Attempt)
	}
	buf, err := wav.NewStore().Load(req.AudioPath)
	if err != nil {
		return err
	}
	m.muxedAudio = buf
	return os.WriteFile(req.OutputPath, []byte("mock video content"), 0644)
}

type censorMockDriveService struct {
	uploaded    []string
	permissions []string
}

func (m *censorMockDriveService) ListFiles(ctx context.Context, query string, fields string, orderBy string) ([]*googledrive.File, error) {
	return nil, nil
}

func (m *censorMockDriveService) GetAbout(ctx context.Context, fields string) (*googledrive.About, error) {
	return &googledrive.About{StorageQuota: &googledrive.AboutStorageQuota{Limit: 15 << 30}}, nil
}

func (m *censorMockDriveService) DeleteFile(ctx context.Context, fileID string) error {
	return nil
}

func (m *censorMockDriveService) UploadFile(ctx context.Context, fileName, mimeType, folderID, localPath string) (*googledrive.File, error) {
	m.uploaded = append(m.uploaded, fileName)
	id := fmt.Sprintf("file%d", len(m.uploaded))
	return &googledrive.File{Id: id, Name: fileName, WebViewLink: "https://drive.google.com/file/d/" + id + "/view"}, nil
}

func (m *censorMockDriveService) CreatePermission(ctx context.Context, fileID string, permission *googledrive.Permission) error {
	m.permissions = append(m.permissions, fileID)
	return nil
}

type censorMockGmailService struct {
	sent []string
}

func (m *censorMockGmailService) SendMessage(ctx context.Context, userID string, message *googlegmail.Message) (*googlegmail.Message, error) {
	raw, err := base64.URLEncoding.DecodeString(message.Raw)
	if err != nil {
		return nil, err
	}
	m.sent = append(m.sent, string(raw))
	return &googlegmail.Message{Id: "msg1"}, nil
}

// --- Step registration ---

func InitializeCensorScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "censor-test-*")
		if err != nil {
			return c, err
		}
		cfg := config.Defaults()
		cfg.Paths.DenylistFile = filepath.Join(tempDir, "curses.txt")
		cfg.Google.FolderID = "folder123"
		cfg.Email.FromName = "Clean Cuts"
		cfg.Email.FromAddress = "cuts@example.com"
		cfg.Email.Recipients = make(map[string]config.RecipientConfig)

		SharedCensorContext = &censorContext{
			tempDir:      tempDir,
			cfg:          cfg,
			extractor:    &censorMockExtractor{durationMs: 3000},
			transcriber:  &censorMockTranscriber{},
			muxer:        &censorMockMuxer{failVideoCodecs: make(map[string]bool)},
			driveService: &censorMockDriveService{},
			gmailService: &censorMockGmailService{},
			durationMs:   3000,
			output:       &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if SharedCensorContext != nil && SharedCensorContext.tempDir != "" {
			os.RemoveAll(SharedCensorContext.tempDir)
		}
		SharedCensorContext = nil
		return c, nil
	})

	// Given
	ctx.Step(`^a denylist containing:$`, aDenylistContaining)
	ctx.Step(`^a (\d+) second video "([^"]*)"$`, aSecondVideo)
	ctx.Step(`^the recognizer hears:$`, theRecognizerHears)
	ctx.Step(`^the timing is pre-pad (-?\d+)ms and shift (-?\d+)ms$`, theTimingIs)
	ctx.Step(`^encoding with video codec "([^"]*)" fails$`, encodingWithVideoCodecFails)
	ctx.Step(`^every encoding attempt fails$`, everyEncodingAttemptFails)
	ctx.Step(`^audio extraction fails$`, audioExtractionFails)
	ctx.Step(`^the censor config has recipients:$`, theCensorConfigHasRecipients)

	// When
	ctx.Step(`^I run censor on "([^"]*)"$`, iRunCensorOn)
	ctx.Step(`^I run censor on "([^"]*)" with flags:$`, iRunCensorOnWithFlags)
	ctx.Step(`^I run publish on "([^"]*)" with flags:$`, iRunPublishOnWithFlags)

	// Then
	ctx.Step(`^the censor should succeed$`, theCensorShouldSucceed)
	ctx.Step(`^the censor should fail with error "([^"]*)"$`, theCensorShouldFailWithError)
	ctx.Step(`^"([^"]*)" should exist$`, fileShouldExist)
	ctx.Step(`^"([^"]*)" should not exist$`, fileShouldNotExist)
	ctx.Step(`^(\d+) words? should be censored$`, wordsShouldBeCensored)
	ctx.Step(`^the muxed audio should be silent from (\d+)ms to (\d+)ms$`, theMuxedAudioShouldBeSilent)
	ctx.Step(`^the muxed audio should be untouched from (\d+)ms to (\d+)ms$`, theMuxedAudioShouldBeUntouched)
	ctx.Step(`^the muxed audio should be untouched$`, theMuxedAudioShouldBeUntouchedEverywhere)
	ctx.Step(`^(\d+) encoding attempts? should have been made$`, encodingAttemptsShouldHaveBeenMade)
	ctx.Step(`^the censor output should include "([^"]*)"$`, theCensorOutputShouldInclude)
	ctx.Step(`^"([^"]*)" should be uploaded to Drive$`, shouldBeUploadedToDrive)
	ctx.Step(`^nothing should be uploaded to Drive$`, nothingShouldBeUploadedToDrive)
	ctx.Step(`^an email should be sent to "([^"]*)" mentioning "([^"]*)"$`, anEmailShouldBeSentToMentioning)
}

// --- Given ---

func aDenylistContaining(table *godog.Table) error {
	p := getCensorContext()
	var lines []string
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		lines = append(lines, row.Cells[0].Value)
	}
	return os.WriteFile(p.cfg.Paths.DenylistFile, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

func aSecondVideo(seconds int, name string) error {
	p := getCensorContext()
	p.durationMs = int64(seconds) * 1000
	p.extractor.durationMs = p.durationMs
	return os.WriteFile(p.path(name), []byte("source video"), 0644)
}

func theRecognizerHears(table *godog.Table) error {
	p := getCensorContext()
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		start, err := strconv.ParseFloat(row.Cells[1].Value, 64)
		if err != nil {
			return err
		}
		end, err := strconv.ParseFloat(row.Cells[2].Value, 64)
		if err != nil {
			return err
		}
		p.transcriber.words = append(p.transcriber.words, transcript.Word{
			Text:  row.Cells[0].Value,
			Start: start,
			End:   end,
		})
	}
	return nil
}

func theTimingIs(prePad, shift int) error {
	p := getCensorContext()
	p.cfg.Timing.PrePadMs = &prePad
	p.cfg.Timing.ShiftMs = &shift
	return nil
}

func encodingWithVideoCodecFails(codec string) error {
	getCensorContext().muxer.failVideoCodecs[codec] = true
	return nil
}

func everyEncodingAttemptFails() error {
	getCensorContext().muxer.failAll = true
	return nil
}

func audioExtractionFails() error {
	getCensorContext().extractor.shouldFail = true
	return nil
}

func theCensorConfigHasRecipients(table *godog.Table) error {
	p := getCensorContext()
	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header
		}
		key := row.Cells[0].Value
		p.cfg.Email.Recipients[key] = config.RecipientConfig{
			Name:    row.Cells[1].Value,
			Address: row.Cells[2].Value,
		}
		if len(row.Cells) > 3 && row.Cells[3].Value == "yes" {
			p.cfg.Email.DefaultTo = append(p.cfg.Email.DefaultTo, key)
		}
	}
	return nil
}

// --- When ---

func iRunCensorOn(name string) error {
	return runCensor(name, cmd.DistributeOptions{})
}

func iRunCensorOnWithFlags(name string, table *godog.Table) error {
	return runCensor(name, parseDistributeFlags(table))
}

func iRunPublishOnWithFlags(name string, table *godog.Table) error {
	p := getCensorContext()
	publisher, notifier, err := p.distributors()
	if err != nil {
		return err
	}
	p.err = cmd.RunPublishWithDependencies(context.Background(), p.cfg, publisher, notifier,
		p.path(name), parseDistributeFlags(table), p.output)
	return nil
}

func runCensor(name string, opts cmd.DistributeOptions) error {
	p := getCensorContext()
	publisher, notifier, err := p.distributors()
	if err != nil {
		return err
	}

	result, err := cmd.RunCensorWithDependencies(context.Background(), p.cfg, cmd.CensorDependencies{
		Extractor:   p.extractor,
		Transcriber: p.transcriber,
		Muxer:       p.muxer,
		Transcripts: filesystem.NewTranscriptWriter(),
		Audio:       wav.NewStore(),
		FileChecker: filesystem.NewChecker(),
		Files:       filesystem.NewMover(),
		Publisher:   publisher,
		Notifier:    notifier,
	}, cmd.CensorInput{
		InputPath:  fmt.Sprintf("%q", p.path(name)),
		Distribute: opts,
	}, p.output)

	p.err = err
	if result != nil {
		p.result = &cmdResult{
			outputPath:     result.OutputPath,
			transcriptPath: result.TranscriptPath,
			censored:       len(result.Matches),
		}
	}
	return nil
}

// distributors wires the real upload and notification services to mocked Google APIs
func (p *censorContext) distributors() (cmd.Publisher, cmd.Notifier, error) {
	driveClient, err := drive.NewClient(context.Background(), nil, drive.WithDriveService(p.driveService))
	if err != nil {
		return nil, nil, err
	}
	publisher := appdistribution.NewUploadService(driveClient, p.cfg.Google.FolderID,
		appdistribution.WithUploadOutput(p.output))

	from := notification.Recipient{Name: p.cfg.Email.FromName, Address: p.cfg.Email.FromAddress}
	sender := gmail.NewClient(from, gmail.WithGmailService(p.gmailService))
	return publisher, appnotification.NewService(sender, p.cfg.Email.FromName), nil
}

func parseDistributeFlags(table *godog.Table) cmd.DistributeOptions {
	var opts cmd.DistributeOptions
	for _, row := range table.Rows {
		if row.Cells[0].Value == "flag" {
			continue // Skip header
		}
		switch row.Cells[0].Value {
		case "--publish":
			opts.Publish = true
		case "--notify":
			opts.Notify = true
		case "--free-space":
			opts.FreeSpace = true
		case "--to":
			opts.To = append(opts.To, row.Cells[1].Value)
		}
	}
	return opts
}

func (p *censorContext) path(name string) string {
	return filepath.Join(p.tempDir, name)
}

// --- Then ---

func theCensorShouldSucceed() error {
	p := getCensorContext()
	if p.err != nil {
		return fmt.Errorf("expected censor to succeed, but got error: %v\nOutput: %s", p.err, p.output.String())
	}
	return nil
}

func theCensorShouldFailWithError(expectedError string) error {
	p := getCensorContext()
	if p.err == nil {
		return fmt.Errorf("expected censor to fail with error containing %q, but it succeeded", expectedError)
	}
	if !strings.Contains(strings.ToLower(p.err.Error()), strings.ToLower(expectedError)) {
		return fmt.Errorf("expected error containing %q, got: %v", expectedError, p.err)
	}
	return nil
}

func fileShouldExist(name string) error {
	if _, err := os.Stat(getCensorContext().path(name)); err != nil {
		return fmt.Errorf("expected %s to exist: %v", name, err)
	}
	return nil
}

func fileShouldNotExist(name string) error {
	if _, err := os.Stat(getCensorContext().path(name)); err == nil {
		return fmt.Errorf("expected %s not to exist", name)
	}
	return nil
}

func wordsShouldBeCensored(count int) error {
	p := getCensorContext()
	if p.result == nil {
		return fmt.Errorf("censor produced no result")
	}
	if p.result.censored != count {
		return fmt.Errorf("expected %d censored words, got %d", count, p.result.censored)
	}
	return nil
}

// samplesBetween returns the muxed samples covering [startMs, endMs)
func samplesBetween(startMs, endMs int64) ([]int, error) {
	p := getCensorContext()
	buf := p.muxer.muxedAudio
	if buf == nil {
		return nil, fmt.Errorf("no audio was muxed")
	}
	return buf.Data[buf.FrameAt(startMs):buf.FrameAt(endMs)], nil
}

func theMuxedAudioShouldBeSilent(startMs, endMs int) error {
	samples, err := samplesBetween(int64(startMs), int64(endMs))
	if err != nil {
		return err
	}
	for i, s := range samples {
		if s != 0 {
			return fmt.Errorf("sample %d after %dms is %d, want silence", i, startMs, s)
		}
	}
	return nil
}

func theMuxedAudioShouldBeUntouched(startMs, endMs int) error {
	samples, err := samplesBetween(int64(startMs), int64(endMs))
	if err != nil {
		return err
	}
	for i, s := range samples {
		if s != censorLevel {
			return fmt.Errorf("sample %d after %dms is %d, want %d", i, startMs, s, censorLevel)
		}
	}
	return nil
}

func theMuxedAudioShouldBeUntouchedEverywhere() error {
	return theMuxedAudioShouldBeUntouched(0, int(getCensorContext().durationMs))
}

func encodingAttemptsShouldHaveBeenMade(count int) error {
	p := getCensorContext()
	if len(p.muxer.attempts) != count {
		return fmt.Errorf("expected %d encoding attempts, got %d: %v", count, len(p.muxer.attempts), p.muxer.attempts)
	}
	return nil
}

func theCensorOutputShouldInclude(expected string) error {
	p := getCensorContext()
	if !strings.Contains(p.output.String(), expected) {
		return fmt.Errorf("expected output to include %q, got:\n%s", expected, p.output.String())
	}
	return nil
}

func shouldBeUploadedToDrive(name string) error {
	p := getCensorContext()
	for _, f := range p.driveService.uploaded {
		if f == name {
			return nil
		}
	}
	return fmt.Errorf("expected %s to be uploaded, uploads: %v", name, p.driveService.uploaded)
}

func nothingShouldBeUploadedToDrive() error {
	p := getCensorContext()
	if len(p.driveService.uploaded) > 0 {
		return fmt.Errorf("expected no uploads, got %v", p.driveService.uploaded)
	}
	return nil
}

func anEmailShouldBeSentToMentioning(address, text string) error {
	p := getCensorContext()
	for _, msg := range p.gmailService.sent {
		if strings.Contains(msg, address) && strings.Contains(msg, text) {
			return nil
		}
	}
	return fmt.Errorf("no email to %s mentioning %q among %d sent", address, text, len(p.gmailService.sent))
}
