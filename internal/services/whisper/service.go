package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	langpkg "scribe/internal/language"
)

// Service provides local whisper transcription.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a whisper service with the given configuration.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// Binary returns the whisper executable to invoke.
func (s *Service) Binary() string {
	if s.cfg.Binary != "" {
		return s.cfg.Binary
	}
	return DefaultBinary
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Result contains the output of a transcription.
type Result struct {
	// Text is the plain text transcription.
	Text string
	// TextPath is the path to the generated .txt file.
	TextPath string
	// JSONPath is the path to the generated .json file.
	JSONPath string
	// SRTPath is the path to the generated .srt file.
	SRTPath string
	// Language is the language whisper detected or was told to use.
	Language string
}

// TranscribeFile transcribes an audio file and returns the transcript.
// outputDir is where whisper writes its output files.
func (s *Service) TranscribeFile(ctx context.Context, source, outputDir, language string) (Result, error) {
	var result Result

	if source == "" {
		return result, fmt.Errorf("transcribe: source path required")
	}
	if outputDir == "" {
		outputDir = filepath.Dir(source)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return result, fmt.Errorf("transcribe: ensure output dir: %w", err)
	}

	args := s.buildArgs(source, outputDir, language)
	if err := s.run(ctx, s.Binary(), args...); err != nil {
		return result, fmt.Errorf("whisper: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	result.TextPath = filepath.Join(outputDir, baseName+".txt")
	result.JSONPath = filepath.Join(outputDir, baseName+".json")
	result.SRTPath = filepath.Join(outputDir, baseName+".srt")
	result.Language = langpkg.Normalize(language)

	if text, detected, err := loadTranscript(result.JSONPath); err == nil {
		result.Text = text
		if result.Language == "" {
			result.Language = detected
		}
	} else if data, readErr := os.ReadFile(result.TextPath); readErr == nil {
		result.Text = strings.TrimSpace(string(data))
	}

	return result, nil
}

// buildArgs constructs the whisper CLI arguments.
func (s *Service) buildArgs(source, outputDir, language string) []string {
	args := make([]string, 0, 16)

	args = append(args,
		source,
		"--model", s.Model(),
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--task", "transcribe",
	)

	if lang := langpkg.Normalize(language); lang != "" && langpkg.IsWhisperSupported(lang) {
		args = append(args, "--language", lang)
	}

	device := s.cfg.Device
	if device == "" {
		device = CPUDevice
	}
	args = append(args, "--device", device)
	if device == CPUDevice {
		// fp16 is unsupported on CPU and whisper falls back with a warning.
		args = append(args, "--fp16", "False")
	}

	return args
}

// Segment represents a transcribed segment from whisper JSON output.
type Segment struct {
	ID    int     `json:"id"`
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// payload is the JSON structure whisper writes alongside the transcript.
type payload struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// LoadSegments loads segments from a whisper JSON file.
func LoadSegments(jsonPath string) ([]Segment, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, err
	}
	var parsed payload
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse whisper json: %w", err)
	}
	return parsed.Segments, nil
}

// loadTranscript returns the transcript text and detected language from a
// whisper JSON file, preferring the top-level text when present.
func loadTranscript(jsonPath string) (string, string, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return "", "", err
	}
	var parsed payload
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", "", fmt.Errorf("parse whisper json: %w", err)
	}
	if text := strings.TrimSpace(parsed.Text); text != "" {
		return text, parsed.Language, nil
	}
	var parts []string
	for _, seg := range parsed.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), parsed.Language, nil
}
