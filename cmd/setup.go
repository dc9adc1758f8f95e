package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"video-censor/infrastructure/config"
	"video-censor/infrastructure/whisper"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through choosing the denylist, the speech
recognizer model, the ffmpeg binary, and the optional Google Drive and
email settings used by --publish and --notify.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath
	}
	return RunSetupWithPrompter(DefaultPrompter, path, DefaultOutput)
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string, output io.Writer) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
		if !overwrite {
			fmt.Fprintln(output, "Setup cancelled.")
			return nil
		}
	}

	fmt.Fprintln(output, "Welcome to video-censor setup!")
	fmt.Fprintln(output)

	cfg := config.Defaults()

	if err := promptPaths(prompter, cfg); err != nil {
		return err
	}

	if err := promptTranscription(prompter, cfg); err != nil {
		return err
	}

	publish, err := prompter.Confirm("Configure Google Drive publishing and email?", false)
	if err != nil {
		return fmt.Errorf("prompt cancelled: %w", err)
	}
	if publish {
		if err := promptGoogle(prompter, cfg); err != nil {
			return err
		}
		if err := promptEmail(prompter, cfg); err != nil {
			return err
		}
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(output)
	fmt.Fprintf(output, "Configuration saved to %s\n", configPath)
	return nil
}

// inputWithDefault asks for a value and keeps def when the answer is blank
func inputWithDefault(prompter Prompter, message, def string) (string, error) {
	answer, err := prompter.Input(message, def)
	if err != nil {
		return "", fmt.Errorf("prompt cancelled: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func promptPaths(prompter Prompter, cfg *config.Config) error {
	denylist, err := inputWithDefault(prompter, "Path to the denylist file (one word per line)?", cfg.Paths.DenylistFile)
	if err != nil {
		return err
	}
	cfg.Paths.DenylistFile = denylist

	ffmpegPath, err := inputWithDefault(prompter, "Path to the ffmpeg executable?", cfg.FFmpeg.Path)
	if err != nil {
		return err
	}
	cfg.FFmpeg.Path = ffmpegPath

	return nil
}

func promptTranscription(prompter Prompter, cfg *config.Config) error {
	model, err := inputWithDefault(prompter, "Whisper model?", orDefault(cfg.Transcription.Model, whisper.DefaultModel))
	if err != nil {
		return err
	}
	cfg.Transcription.Model = model

	device, err := inputWithDefault(prompter, "Transcription device (auto, cpu, cuda)?", orDefault(cfg.Transcription.Device, whisper.DefaultDevice))
	if err != nil {
		return err
	}
	cfg.Transcription.Device = device

	return nil
}

func promptGoogle(prompter Prompter, cfg *config.Config) error {
	credentials, err := inputWithDefault(prompter, "Path to Google credentials file?", cfg.Google.CredentialsFile)
	if err != nil {
		return err
	}
	cfg.Google.CredentialsFile = credentials

	folder, err := prompter.Input("Google Drive folder ID for cleaned videos?", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled: %w", err)
	}
	if strings.TrimSpace(folder) == "" {
		return fmt.Errorf("folder ID is required")
	}
	cfg.Google.FolderID = strings.TrimSpace(folder)

	return nil
}

func promptEmail(prompter Prompter, cfg *config.Config) error {
	fromName, err := prompter.Input("Display name for outgoing emails?", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled: %w", err)
	}
	if fromName == "" {
		return fmt.Errorf("from name is required")
	}
	cfg.Email.FromName = fromName

	fromAddress, err := prompter.Input("Gmail address to send from?", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled: %w", err)
	}
	if fromAddress == "" {
		return fmt.Errorf("from address is required")
	}
	cfg.Email.FromAddress = fromAddress

	// Quick-lookup recipients
	cfg.Email.Recipients = make(map[string]config.RecipientConfig)
	cfg.Email.DefaultTo = nil
	for {
		addRecipient, err := prompter.Confirm("Add a recipient?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
		if !addRecipient {
			break
		}

		key, err := prompter.Input("  Key:", "")
		if err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
		if key == "" {
			return fmt.Errorf("key is required")
		}

		recipient, err := promptRecipientWithPrompter(prompter)
		if err != nil {
			return err
		}
		cfg.Email.Recipients[key] = recipient

		isDefault, err := prompter.Confirm("  Email this recipient by default?", true)
		if err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
		if isDefault {
			cfg.Email.DefaultTo = append(cfg.Email.DefaultTo, key)
		}
	}

	return nil
}

func promptRecipientWithPrompter(prompter Prompter) (config.RecipientConfig, error) {
	name, err := prompter.Input("  Full name:", "")
	if err != nil {
		return config.RecipientConfig{}, fmt.Errorf("prompt cancelled: %w", err)
	}
	if name == "" {
		return config.RecipientConfig{}, fmt.Errorf("name is required")
	}

	address, err := prompter.Input("  Email:", "")
	if err != nil {
		return config.RecipientConfig{}, fmt.Errorf("prompt cancelled: %w", err)
	}
	if address == "" {
		return config.RecipientConfig{}, fmt.Errorf("email is required")
	}

	return config.RecipientConfig{
		Name:    name,
		Address: address,
	}, nil
}
