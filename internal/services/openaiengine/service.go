package openaiengine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	langpkg "scribe/internal/language"
)

// Config captures runtime settings for the hosted transcription engine.
type Config struct {
	// APIKey authenticates against the OpenAI API.
	APIKey string
	// BaseURL overrides the API endpoint for compatible gateways.
	BaseURL string
	// Model is the audio model to request (e.g. "whisper-1").
	Model string
}

// DefaultModel is the hosted transcription model.
const DefaultModel = "whisper-1"

// audioClient is the slice of the OpenAI client the service uses.
type audioClient interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// Service transcribes audio files through the OpenAI audio API.
type Service struct {
	cfg    Config
	client audioClient
}

// NewService builds a service backed by the real OpenAI client.
func NewService(cfg Config) *Service {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &Service{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// WithClient swaps the API client (for testing).
func (s *Service) WithClient(client audioClient) {
	s.client = client
}

// Model returns the model the service requests.
func (s *Service) Model() string {
	if s.cfg.Model != "" {
		return s.cfg.Model
	}
	return DefaultModel
}

// Result contains the output of a hosted transcription.
type Result struct {
	Text     string
	TextPath string
	JSONPath string
	Language string
}

// TranscribeFile uploads the audio file and writes the transcript files that
// the local whisper engine would produce, so downstream stages see one shape.
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

	request := openai.AudioRequest{
		Model:    s.Model(),
		FilePath: source,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	if lang := langpkg.Normalize(language); lang != "" {
		request.Language = lang
	}

	response, err := s.client.CreateTranscription(ctx, request)
	if err != nil {
		return result, fmt.Errorf("openai transcription: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	result.Text = strings.TrimSpace(response.Text)
	result.Language = langpkg.Normalize(response.Language)
	if result.Language == "" {
		result.Language = langpkg.Normalize(language)
	}
	result.TextPath = filepath.Join(outputDir, baseName+".txt")
	result.JSONPath = filepath.Join(outputDir, baseName+".json")

	if err := os.WriteFile(result.TextPath, []byte(result.Text+"\n"), 0o644); err != nil {
		return result, fmt.Errorf("write transcript text: %w", err)
	}
	payload, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return result, fmt.Errorf("encode transcript json: %w", err)
	}
	if err := os.WriteFile(result.JSONPath, payload, 0o644); err != nil {
		return result, fmt.Errorf("write transcript json: %w", err)
	}

	return result, nil
}
