package config

import (
	"os"
	"strings"
)

// normalize expands and cleans path fields and applies environment fallbacks.
// It runs before validation so validators always see absolute paths.
func (c *Config) normalize() error {
	pathFields := []*string{
		&c.Paths.InboxDir,
		&c.Paths.ProcessedDir,
		&c.Paths.TranscriptsDir,
		&c.Paths.StagingDir,
		&c.Paths.LogDir,
		&c.Deploy.OutputDir,
		&c.Deploy.EnvFile,
	}
	for _, field := range pathFields {
		trimmed := strings.TrimSpace(*field)
		if trimmed == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return err
		}
		*field = expanded
	}

	c.Whisper.Engine = strings.ToLower(strings.TrimSpace(c.Whisper.Engine))
	c.Whisper.Model = strings.TrimSpace(c.Whisper.Model)
	c.Whisper.Language = strings.ToLower(strings.TrimSpace(c.Whisper.Language))
	c.Whisper.Device = strings.ToLower(strings.TrimSpace(c.Whisper.Device))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	// WHISPER_MODEL mirrors the transcription container's environment knob.
	if env := strings.TrimSpace(os.Getenv("WHISPER_MODEL")); env != "" && c.Whisper.Model == defaultWhisperModel {
		c.Whisper.Model = env
	}
	if env := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); env != "" && strings.TrimSpace(c.OpenAI.APIKey) == "" {
		c.OpenAI.APIKey = env
	}

	return nil
}
