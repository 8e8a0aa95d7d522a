// Package whisper invokes the whisper CLI for local transcription.
//
// This package handles:
//   - Whisper invocation with model, device and language flags
//   - Transcript text extraction from the JSON output
//   - Segment access for callers that need timing information
//
// Configuration options (model, device, binary) are passed via Config.
package whisper
