package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/transcriber"
)

// defaultTranscribeInput matches the path the containerized whisper
// worker mounts its input at.
const defaultTranscribeInput = "/audio/input.wav"

const (
	exitMissingInput      = 2
	exitEngineUnavailable = 3
	exitTranscribeFailed  = 4
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var model string
	var language string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "transcribe [path]",
		Short: "Transcribe a single audio file without the daemon",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			source := defaultTranscribeInput
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				source = args[0]
			}
			absSource, err := filepath.Abs(source)
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			if _, err := os.Stat(absSource); err != nil {
				return exitWithCode(exitMissingInput, fmt.Errorf("audio file not found: %s", absSource))
			}

			runCfg := *cfg
			if resolved := resolveTranscribeModel(model); resolved != "" {
				runCfg.Whisper.Model = resolved
			}

			if err := checkEngineAvailable(&runCfg); err != nil {
				return exitWithCode(exitEngineUnavailable, err)
			}

			target := strings.TrimSpace(outputDir)
			if target == "" {
				target = runCfg.Paths.TranscriptsDir
			}
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			stdout := cmd.OutOrStdout()
			fmt.Fprintf(stdout, "Transcribing %s (model %s)...\n", filepath.Base(absSource), runCfg.Whisper.Model)

			engine := transcriber.NewEngine(&runCfg)
			result, err := engine.Transcribe(cmd.Context(), absSource, target, language)
			if err != nil {
				return exitWithCode(exitTranscribeFailed, fmt.Errorf("transcription failed: %w", err))
			}

			if result.Language != "" {
				fmt.Fprintf(stdout, "Detected language: %s\n", result.Language)
			}
			fmt.Fprintf(stdout, "Transcript written to %s\n", result.TextPath)
			if result.Text != "" {
				fmt.Fprintln(stdout)
				fmt.Fprintln(stdout, result.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Whisper model name (defaults to WHISPER_MODEL or the configured model)")
	cmd.Flags().StringVarP(&language, "language", "l", "", "Spoken language hint (auto-detected when empty)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for transcript output (defaults to the transcripts directory)")
	return cmd
}

func resolveTranscribeModel(flagValue string) string {
	if value := strings.TrimSpace(flagValue); value != "" {
		return value
	}
	return strings.TrimSpace(os.Getenv("WHISPER_MODEL"))
}

func checkEngineAvailable(cfg *config.Config) error {
	if cfg.Whisper.Engine == config.EngineOpenAI {
		if strings.TrimSpace(cfg.OpenAI.APIKey) == "" {
			return errors.New("openai engine selected but openai.api_key is not set")
		}
		return nil
	}
	if _, err := exec.LookPath(cfg.WhisperBinary()); err != nil {
		return fmt.Errorf("whisper binary %q not found", cfg.WhisperBinary())
	}
	return nil
}
