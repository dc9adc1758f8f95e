package whisper

import "time"

// Config captures runtime settings for the faster-whisper helper script.
type Config struct {
	// Python is the interpreter used to run the script.
	Python string
	// Script is the path to transcribe_words.py.
	Script string
	// Model is the faster-whisper model name (e.g., "large-v3").
	Model string
	// Language is the spoken language hint passed to the model.
	Language string
	// Device selects "auto", "cpu" or "cuda".
	Device string
	// ComputeType is the CTranslate2 quantization (e.g., "int8").
	ComputeType string
	// Timeout bounds one transcription; zero means no limit.
	Timeout time.Duration
}

// Defaults for the transcription collaborator.
const (
	DefaultPython      = "python3"
	DefaultScript      = "scripts/transcribe_words.py"
	DefaultModel       = "large-v3"
	DefaultLanguage    = "en"
	DefaultDevice      = "auto"
	DefaultComputeType = "int8"
)

// withDefaults returns a copy of cfg with empty fields filled in
func (c Config) withDefaults() Config {
	if c.Python == "" {
		c.Python = DefaultPython
	}
	if c.Script == "" {
		c.Script = DefaultScript
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.Device == "" {
		c.Device = DefaultDevice
	}
	if c.ComputeType == "" {
		c.ComputeType = DefaultComputeType
	}
	return c
}
