package transcriber

import (
	"context"

	"scribe/internal/config"
	"scribe/internal/services/openaiengine"
	"scribe/internal/services/whisper"
)

// EngineResult is the common transcript shape both engines produce.
type EngineResult struct {
	Text     string
	TextPath string
	JSONPath string
	Language string
}

// Engine transcribes a single audio file into a working directory.
type Engine interface {
	Name() string
	Transcribe(ctx context.Context, source, outputDir, language string) (EngineResult, error)
}

// NewEngine resolves the engine named in the configuration.
func NewEngine(cfg *config.Config) Engine {
	if cfg.Whisper.Engine == config.EngineOpenAI {
		return &openAIEngine{
			svc: openaiengine.NewService(openaiengine.Config{
				APIKey:  cfg.OpenAI.APIKey,
				BaseURL: cfg.OpenAI.BaseURL,
				Model:   cfg.OpenAI.Model,
			}),
		}
	}
	return &whisperEngine{
		svc: whisper.NewService(whisper.Config{
			Model:  cfg.Whisper.Model,
			Device: cfg.Whisper.Device,
			Binary: cfg.WhisperBinary(),
		}),
	}
}

type whisperEngine struct {
	svc *whisper.Service
}

func (e *whisperEngine) Name() string { return config.EngineWhisper }

func (e *whisperEngine) Transcribe(ctx context.Context, source, outputDir, language string) (EngineResult, error) {
	result, err := e.svc.TranscribeFile(ctx, source, outputDir, language)
	if err != nil {
		return EngineResult{}, err
	}
	return EngineResult{
		Text:     result.Text,
		TextPath: result.TextPath,
		JSONPath: result.JSONPath,
		Language: result.Language,
	}, nil
}

type openAIEngine struct {
	svc *openaiengine.Service
}

func (e *openAIEngine) Name() string { return config.EngineOpenAI }

func (e *openAIEngine) Transcribe(ctx context.Context, source, outputDir, language string) (EngineResult, error) {
	result, err := e.svc.TranscribeFile(ctx, source, outputDir, language)
	if err != nil {
		return EngineResult{}, err
	}
	return EngineResult{
		Text:     result.Text,
		TextPath: result.TextPath,
		JSONPath: result.JSONPath,
		Language: result.Language,
	}, nil
}
