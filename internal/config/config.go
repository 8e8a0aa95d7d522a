package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	InboxDir       string `toml:"inbox_dir"`
	ProcessedDir   string `toml:"processed_dir"`
	TranscriptsDir string `toml:"transcripts_dir"`
	StagingDir     string `toml:"staging_dir"`
	LogDir         string `toml:"log_dir"`
}

// Whisper contains configuration for the transcription engine.
type Whisper struct {
	// Engine selects the transcription backend: "whisper" (local CLI) or "openai".
	Engine string `toml:"engine"`
	// Model is the Whisper model name (tiny, base, small, medium, large).
	Model string `toml:"model"`
	// Language optionally forces a language code (e.g. "en"). Empty means auto-detect.
	Language string `toml:"language"`
	// Binary overrides the whisper executable name.
	Binary string `toml:"binary"`
	// Device selects the compute device for the local engine ("cpu" or "cuda").
	Device string `toml:"device"`
	// TimeoutSeconds bounds a single transcription run. Zero disables the bound.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// OpenAI contains configuration for the hosted transcription API.
type OpenAI struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	Transcription  bool   `toml:"transcription"`
	Organization   bool   `toml:"organization"`
	Errors         bool   `toml:"errors"`
}

// Workflow contains configuration for daemon timing and intervals.
type Workflow struct {
	QueuePollInterval  int `toml:"queue_poll_interval"`
	InboxScanInterval  int `toml:"inbox_scan_interval"`
	ErrorRetryInterval int `toml:"error_retry_interval"`
	HeartbeatInterval  int `toml:"heartbeat_interval"`
	HeartbeatTimeout   int `toml:"heartbeat_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Deploy contains configuration for rendering the container definitions.
type Deploy struct {
	// OutputDir is where rendered compose files are written.
	OutputDir string `toml:"output_dir"`
	// EnvFile optionally points at a dotenv file supplying credentials.
	EnvFile string `toml:"env_file"`

	WordPressPort  int    `toml:"wordpress_port"`
	WordPressImage string `toml:"wordpress_image"`
	MySQLImage     string `toml:"mysql_image"`
	DBName         string `toml:"db_name"`
	DBUser         string `toml:"db_user"`
	DBPassword     string `toml:"db_password"`
	DBRootPassword string `toml:"db_root_password"`

	WhisperImage string `toml:"whisper_image"`
}

// Config encapsulates all configuration values for scribe.
//
// Configuration sections by subsystem:
//   - Paths: inbox, processed, transcripts, staging, and log directories
//   - Whisper: transcription engine selection and model settings
//   - OpenAI: hosted transcription API connection
//   - Notifications: ntfy push notification settings
//   - Workflow: daemon polling intervals and timeouts
//   - Logging: log format and level
//   - Deploy: container definition rendering (WordPress + MySQL, whisper worker)
type Config struct {
	Paths         Paths         `toml:"paths"`
	Whisper       Whisper       `toml:"whisper"`
	OpenAI        OpenAI        `toml:"openai"`
	Notifications Notifications `toml:"notifications"`
	Workflow      Workflow      `toml:"workflow"`
	Logging       Logging       `toml:"logging"`
	Deploy        Deploy        `toml:"deploy"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/scribe/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/scribe/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("scribe.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{
		c.Paths.InboxDir,
		c.Paths.ProcessedDir,
		c.Paths.TranscriptsDir,
		c.Paths.StagingDir,
		c.Paths.LogDir,
	} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// WhisperBinary returns the whisper executable name.
func (c *Config) WhisperBinary() string {
	if bin := strings.TrimSpace(c.Whisper.Binary); bin != "" {
		return bin
	}
	return "whisper"
}

// FFprobeBinary returns the ffprobe executable name used for audio inspection.
func (c *Config) FFprobeBinary() string {
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
