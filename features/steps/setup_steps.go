//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"video-censor/cmd"
	"video-censor/infrastructure/config"

	"github.com/cucumber/godog"
)

type setupContext struct {
	tempDir         string
	configPath      string
	setupCancelled  bool
	originalContent string
	output          *bytes.Buffer
	err             error
}

var SharedSetupContext = &setupContext{}

// MockPrompter implements cmd.Prompter for testing
type MockPrompter struct {
	inputResponses   []string
	confirmResponses []bool
	inputIndex       int
	confirmIndex     int
}

func NewMockPrompter(inputs []string, confirms []bool) *MockPrompter {
	return &MockPrompter{
		inputResponses:   inputs,
		confirmResponses: confirms,
	}
}

func (m *MockPrompter) Input(message string, defaultValue string) (string, error) {
	if m.inputIndex >= len(m.inputResponses) {
		if defaultValue != "" {
			return defaultValue, nil
		}
		return "", fmt.Errorf("no more input responses available for message: %s", message)
	}
	response := m.inputResponses[m.inputIndex]
	m.inputIndex++
	return response, nil
}

func (m *MockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if m.confirmIndex >= len(m.confirmResponses) {
		return defaultValue, nil
	}
	response := m.confirmResponses[m.confirmIndex]
	m.confirmIndex++
	return response, nil
}

func InitializeSetupScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedSetupContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		// Create temp directory for each scenario
		tempDir, err := os.MkdirTemp("", "setup-test-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = tempDir
		testCtx.configPath = filepath.Join(tempDir, "config", "config.yaml")
		testCtx.setupCancelled = false
		testCtx.originalContent = ""
		testCtx.output = &bytes.Buffer{}
		testCtx.err = nil
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		// Cleanup temp directory
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		return c, nil
	})

	ctx.Step(`^no config file exists for setup$`, testCtx.noConfigFileExistsForSetup)
	ctx.Step(`^a config file already exists for setup$`, testCtx.aConfigFileAlreadyExistsForSetup)
	ctx.Step(`^I run the setup command with inputs:$`, testCtx.iRunTheSetupCommandWithInputs)
	ctx.Step(`^I run the setup command with confirmation "([^"]*)"$`, testCtx.iRunTheSetupCommandWithConfirmation)
	ctx.Step(`^I run the setup command with confirmation "([^"]*)" and inputs:$`, testCtx.iRunTheSetupCommandWithConfirmationAndInputs)
	ctx.Step(`^a config file should exist$`, testCtx.aConfigFileShouldExist)
	ctx.Step(`^the config should have denylist_file "([^"]*)"$`, testCtx.theConfigShouldHaveDenylistFile)
	ctx.Step(`^the config should have model "([^"]*)"$`, testCtx.theConfigShouldHaveModel)
	ctx.Step(`^the config should have folder_id "([^"]*)"$`, testCtx.theConfigShouldHaveFolderID)
	ctx.Step(`^the config should have a recipient "([^"]*)"$`, testCtx.theConfigShouldHaveARecipient)
	ctx.Step(`^the config should email "([^"]*)" by default$`, testCtx.theConfigShouldEmailByDefault)
	ctx.Step(`^the setup should be cancelled$`, testCtx.theSetupShouldBeCancelled)
	ctx.Step(`^the existing config should be unchanged$`, testCtx.theExistingConfigShouldBeUnchanged)
	ctx.Step(`^the setup should fail with error "([^"]*)"$`, testCtx.theSetupShouldFailWithError)
}

func (s *setupContext) noConfigFileExistsForSetup() error {
	// Just ensure the config path directory exists but no config file
	configDir := filepath.Dir(s.configPath)
	return os.MkdirAll(configDir, 0755)
}

func (s *setupContext) aConfigFileAlreadyExistsForSetup() error {
	configDir := filepath.Dir(s.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	content := `paths:
  denylist_file: "/original/curses.txt"
transcription:
  model: "medium"
google:
  folder_id: "original-folder-id"
`
	s.originalContent = content
	return os.WriteFile(s.configPath, []byte(content), 0644)
}

func (s *setupContext) iRunTheSetupCommandWithInputs(table *godog.Table) error {
	inputs, confirms := parseInputTable(table)
	prompter := NewMockPrompter(inputs, confirms)

	s.err = cmd.RunSetupWithPrompter(prompter, s.configPath, s.output)
	return nil
}

func (s *setupContext) iRunTheSetupCommandWithConfirmation(confirmation string) error {
	confirm := strings.ToLower(confirmation) == "y"
	prompter := NewMockPrompter([]string{}, []bool{confirm})

	s.err = cmd.RunSetupWithPrompter(prompter, s.configPath, s.output)
	if !confirm {
		s.setupCancelled = true
	}
	return nil
}

func (s *setupContext) iRunTheSetupCommandWithConfirmationAndInputs(confirmation string, table *godog.Table) error {
	confirm := strings.ToLower(confirmation) == "y"
	inputs, confirms := parseInputTable(table)

	// Prepend the overwrite confirmation
	allConfirms := append([]bool{confirm}, confirms...)
	prompter := NewMockPrompter(inputs, allConfirms)

	s.err = cmd.RunSetupWithPrompter(prompter, s.configPath, s.output)
	if s.err != nil {
		return fmt.Errorf("setup command failed: %w", s.err)
	}
	return nil
}

// parseInputTable splits the table into text answers and yes/no answers.
// Yes/no prompts are the ones phrased as a question about adding or configuring something.
func parseInputTable(table *godog.Table) ([]string, []bool) {
	var inputs []string
	var confirms []bool

	for i, row := range table.Rows {
		if i == 0 {
			continue // Skip header row
		}
		prompt := strings.ToLower(row.Cells[0].Value)
		value := row.Cells[1].Value

		if strings.HasPrefix(prompt, "add") || strings.HasPrefix(prompt, "configure") || strings.HasPrefix(prompt, "default") {
			confirms = append(confirms, strings.ToLower(value) == "y")
		} else {
			inputs = append(inputs, value)
		}
	}

	return inputs, confirms
}

func (s *setupContext) loadConfig() (*config.Config, error) {
	if s.err != nil {
		return nil, fmt.Errorf("setup command failed: %w", s.err)
	}
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func (s *setupContext) aConfigFileShouldExist() error {
	if s.err != nil {
		return fmt.Errorf("setup command failed: %w", s.err)
	}
	if _, err := os.Stat(s.configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file does not exist at %s", s.configPath)
	}
	return nil
}

func (s *setupContext) theConfigShouldHaveDenylistFile(expected string) error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Paths.DenylistFile != expected {
		return fmt.Errorf("expected denylist_file %q, got %q", expected, cfg.Paths.DenylistFile)
	}
	return nil
}

func (s *setupContext) theConfigShouldHaveModel(expected string) error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Transcription.Model != expected {
		return fmt.Errorf("expected model %q, got %q", expected, cfg.Transcription.Model)
	}
	return nil
}

func (s *setupContext) theConfigShouldHaveFolderID(expected string) error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Google.FolderID != expected {
		return fmt.Errorf("expected folder_id %q, got %q", expected, cfg.Google.FolderID)
	}
	return nil
}

func (s *setupContext) theConfigShouldHaveARecipient(key string) error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}
	if _, ok := cfg.Email.Recipients[key]; !ok {
		return fmt.Errorf("recipient %q not found in %v", key, cfg.Email.Recipients)
	}
	return nil
}

func (s *setupContext) theConfigShouldEmailByDefault(key string) error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}
	for _, k := range cfg.Email.DefaultTo {
		if k == key {
			return nil
		}
	}
	return fmt.Errorf("%q not in default_to %v", key, cfg.Email.DefaultTo)
}

func (s *setupContext) theSetupShouldBeCancelled() error {
	if !s.setupCancelled {
		return fmt.Errorf("expected setup to be cancelled")
	}
	if !strings.Contains(s.output.String(), "Setup cancelled.") {
		return fmt.Errorf("expected cancellation message, got %q", s.output.String())
	}
	return nil
}

func (s *setupContext) theExistingConfigShouldBeUnchanged() error {
	content, err := os.ReadFile(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if string(content) != s.originalContent {
		return fmt.Errorf("config content was changed")
	}
	return nil
}

func (s *setupContext) theSetupShouldFailWithError(expected string) error {
	if s.err == nil {
		return fmt.Errorf("expected setup to fail with %q, but it succeeded", expected)
	}
	if !strings.Contains(s.err.Error(), expected) {
		return fmt.Errorf("expected error containing %q, got: %v", expected, s.err)
	}
	return nil
}
