// Package ffprobe provides a typed wrapper around ffprobe JSON output for
// audio inspection.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual stream properties (codec, sample rate, channels)
//   - Format: container-level metadata (duration, size, bitrate)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Helper methods on Result answer the questions the transcription pipeline
// asks: does the file carry audio, how long is it, and what codec is it in.
package ffprobe
