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

type configContext struct {
	tempDir    string
	configPath string
	cfg        *config.Config
	output     *bytes.Buffer
	err        error
}

// SharedConfigContext is reset before each scenario via Before hook
var SharedConfigContext *configContext

func getConfigContext() *configContext {
	return SharedConfigContext
}

func InitializeConfigScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "config-test-*")
		if err != nil {
			return c, err
		}
		SharedConfigContext = &configContext{
			tempDir:    tempDir,
			configPath: filepath.Join(tempDir, "config", "config.yaml"),
			output:     &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if SharedConfigContext != nil {
			os.RemoveAll(SharedConfigContext.tempDir)
		}
		SharedConfigContext = nil
		return c, nil
	})

	ctx.Step(`^no configuration file exists$`, noConfigurationFileExists)
	ctx.Step(`^a configuration file containing:$`, aConfigurationFileContaining)
	ctx.Step(`^I load the configuration$`, iLoadTheConfiguration)
	ctx.Step(`^I add recipient "([^"]*)" named "([^"]*)" with email "([^"]*)"$`, iAddRecipient)
	ctx.Step(`^I add default recipient "([^"]*)" named "([^"]*)" with email "([^"]*)"$`, iAddDefaultRecipient)
	ctx.Step(`^I remove recipient "([^"]*)"$`, iRemoveRecipient)
	ctx.Step(`^I list recipients$`, iListRecipients)
	ctx.Step(`^I show the configuration$`, iShowTheConfiguration)
	ctx.Step(`^the denylist file should be "([^"]*)"$`, theDenylistFileShouldBe)
	ctx.Step(`^the timing should be pre-pad (\d+)ms and shift (\d+)ms$`, theTimingShouldBe)
	ctx.Step(`^there should be (\d+) encoding candidates$`, thereShouldBeEncodingCandidates)
	ctx.Step(`^the saved configuration should have recipient "([^"]*)"$`, theSavedConfigurationShouldHaveRecipient)
	ctx.Step(`^the saved configuration should not have recipient "([^"]*)"$`, theSavedConfigurationShouldNotHaveRecipient)
	ctx.Step(`^the saved default recipients should be "([^"]*)"$`, theSavedDefaultRecipientsShouldBe)
	ctx.Step(`^the config command should fail with error "([^"]*)"$`, theConfigCommandShouldFailWithError)
	ctx.Step(`^the config output should include "([^"]*)"$`, theConfigOutputShouldInclude)
}

func noConfigurationFileExists() error {
	return nil
}

func aConfigurationFileContaining(body *godog.DocString) error {
	c := getConfigContext()
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(c.configPath, []byte(body.Content), 0644)
}

func iLoadTheConfiguration() error {
	c := getConfigContext()
	cfg, err := config.LoadOrDefault(c.configPath)
	if err != nil {
		return fmt.Errorf("unexpected error loading config: %w", err)
	}
	c.cfg = cfg
	return nil
}

func (c *configContext) loaded() (*config.Config, error) {
	if c.cfg == nil {
		if err := iLoadTheConfiguration(); err != nil {
			return nil, err
		}
	}
	return c.cfg, nil
}

func iAddRecipient(key, name, email string) error {
	return addRecipient(key, name, email, false)
}

func iAddDefaultRecipient(key, name, email string) error {
	return addRecipient(key, name, email, true)
}

func addRecipient(key, name, email string, isDefault bool) error {
	c := getConfigContext()
	cfg, err := c.loaded()
	if err != nil {
		return err
	}
	c.err = cmd.RunConfigAddWithDependencies(cfg, c.configPath, "recipient", key, name, email, isDefault, c.output)
	return nil
}

func iRemoveRecipient(key string) error {
	c := getConfigContext()
	cfg, err := c.loaded()
	if err != nil {
		return err
	}
	c.err = cmd.RunConfigRemoveWithDependencies(cfg, c.configPath, "recipient", key, c.output)
	return nil
}

func iListRecipients() error {
	c := getConfigContext()
	cfg, err := c.loaded()
	if err != nil {
		return err
	}
	c.err = cmd.RunConfigListWithDependencies(cfg, c.configPath, "recipients", c.output)
	return nil
}

func iShowTheConfiguration() error {
	c := getConfigContext()
	cfg, err := c.loaded()
	if err != nil {
		return err
	}
	c.err = cmd.RunConfigShowWithDependencies(cfg, c.output)
	return nil
}

func theDenylistFileShouldBe(expected string) error {
	c := getConfigContext()
	if c.cfg.Paths.DenylistFile != expected {
		return fmt.Errorf("expected denylist file %q, got %q", expected, c.cfg.Paths.DenylistFile)
	}
	return nil
}

func theTimingShouldBe(prePad, shift int) error {
	t := getConfigContext().cfg.Calibration()
	if t.PrePad.Milliseconds() != int64(prePad) || t.Shift.Milliseconds() != int64(shift) {
		return fmt.Errorf("expected pre-pad %dms and shift %dms, got %v and %v", prePad, shift, t.PrePad, t.Shift)
	}
	return nil
}

func thereShouldBeEncodingCandidates(count int) error {
	got := len(getConfigContext().cfg.Candidates())
	if got != count {
		return fmt.Errorf("expected %d encoding candidates, got %d", count, got)
	}
	return nil
}

func savedConfig() (*config.Config, error) {
	cfg, err := config.Load(getConfigContext().configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved config: %w", err)
	}
	return cfg, nil
}

func theSavedConfigurationShouldHaveRecipient(key string) error {
	cfg, err := savedConfig()
	if err != nil {
		return err
	}
	if _, ok := cfg.Email.Recipients[key]; !ok {
		return fmt.Errorf("recipient %q not found in %v", key, cfg.Email.Recipients)
	}
	return nil
}

func theSavedConfigurationShouldNotHaveRecipient(key string) error {
	cfg, err := savedConfig()
	if err != nil {
		return err
	}
	if _, ok := cfg.Email.Recipients[key]; ok {
		return fmt.Errorf("recipient %q should have been removed", key)
	}
	return nil
}

func theSavedDefaultRecipientsShouldBe(expected string) error {
	cfg, err := savedConfig()
	if err != nil {
		return err
	}
	got := strings.Join(cfg.Email.DefaultTo, ",")
	if got != expected {
		return fmt.Errorf("expected default_to %q, got %q", expected, got)
	}
	return nil
}

func theConfigCommandShouldFailWithError(expected string) error {
	c := getConfigContext()
	if c.err == nil {
		return fmt.Errorf("expected config command to fail with %q, but it succeeded", expected)
	}
	if !strings.Contains(c.err.Error(), expected) {
		return fmt.Errorf("expected error containing %q, got: %v", expected, c.err)
	}
	return nil
}

func theConfigOutputShouldInclude(expected string) error {
	c := getConfigContext()
	if c.err != nil {
		return fmt.Errorf("config command failed: %w", c.err)
	}
	if !strings.Contains(c.output.String(), expected) {
		return fmt.Errorf("expected output to include %q, got:\n%s", expected, c.output.String())
	}
	return nil
}
