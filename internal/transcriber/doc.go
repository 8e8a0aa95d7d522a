// Package transcriber implements the transcription workflow stage.
//
// It resolves the configured engine (local whisper CLI or the OpenAI audio
// API), runs it against the inspected source file with the stage timeout
// applied, and records the transcript artifacts on the queue item.
package transcriber
