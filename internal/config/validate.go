package config

import (
	"errors"
	"fmt"
	"strings"
)

var knownWhisperModels = map[string]struct{}{
	"tiny":   {},
	"base":   {},
	"small":  {},
	"medium": {},
	"large":  {},
}

// KnownWhisperModel reports whether name is one of the published Whisper model sizes.
// Dotted variants (e.g. "large-v3", "tiny.en") are accepted by prefix.
func KnownWhisperModel(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return false
	}
	if _, ok := knownWhisperModels[name]; ok {
		return true
	}
	for base := range knownWhisperModels {
		if strings.HasPrefix(name, base+".") || strings.HasPrefix(name, base+"-") {
			return true
		}
	}
	return false
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateWhisper(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateDeploy(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.InboxDir == "" {
		return errors.New("paths.inbox_dir must be set")
	}
	if c.Paths.ProcessedDir == "" {
		return errors.New("paths.processed_dir must be set")
	}
	if c.Paths.TranscriptsDir == "" {
		return errors.New("paths.transcripts_dir must be set")
	}
	if c.Paths.InboxDir == c.Paths.ProcessedDir {
		return errors.New("paths.inbox_dir and paths.processed_dir must differ")
	}
	return nil
}

func (c *Config) validateWhisper() error {
	switch c.Whisper.Engine {
	case EngineWhisper:
		if !KnownWhisperModel(c.Whisper.Model) {
			return fmt.Errorf("whisper.model %q is not a known model (tiny, base, small, medium, large)", c.Whisper.Model)
		}
		switch c.Whisper.Device {
		case "cpu", "cuda":
		default:
			return fmt.Errorf("whisper.device must be \"cpu\" or \"cuda\", got %q", c.Whisper.Device)
		}
	case EngineOpenAI:
		if strings.TrimSpace(c.OpenAI.APIKey) == "" {
			defaultPath, err := DefaultConfigPath()
			if err != nil {
				defaultPath = "~/.config/scribe/config.toml"
			}
			return fmt.Errorf("openai.api_key is required when whisper.engine is \"openai\". Set OPENAI_API_KEY env var or edit %s (create with 'scribe config init')", defaultPath)
		}
		if strings.TrimSpace(c.OpenAI.Model) == "" {
			return errors.New("openai.model must be set when whisper.engine is \"openai\"")
		}
	default:
		return fmt.Errorf("whisper.engine must be \"whisper\" or \"openai\", got %q", c.Whisper.Engine)
	}
	if c.Whisper.TimeoutSeconds < 0 {
		return errors.New("whisper.timeout_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if err := ensurePositiveMap(map[string]int{
		"workflow.queue_poll_interval":  c.Workflow.QueuePollInterval,
		"workflow.inbox_scan_interval":  c.Workflow.InboxScanInterval,
		"workflow.error_retry_interval": c.Workflow.ErrorRetryInterval,
		"notifications.request_timeout": c.Notifications.RequestTimeout,
	}); err != nil {
		return err
	}
	if c.Workflow.HeartbeatInterval <= 0 {
		return errors.New("workflow.heartbeat_interval must be positive")
	}
	if c.Workflow.HeartbeatTimeout <= 0 {
		return errors.New("workflow.heartbeat_timeout must be positive")
	}
	if c.Workflow.HeartbeatTimeout <= c.Workflow.HeartbeatInterval {
		return errors.New("workflow.heartbeat_timeout must be greater than workflow.heartbeat_interval")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateDeploy() error {
	if c.Deploy.WordPressPort <= 0 || c.Deploy.WordPressPort > 65535 {
		return errors.New("deploy.wordpress_port must be a valid TCP port")
	}
	if strings.TrimSpace(c.Deploy.DBName) == "" {
		return errors.New("deploy.db_name must be set")
	}
	if strings.TrimSpace(c.Deploy.DBUser) == "" {
		return errors.New("deploy.db_user must be set")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
