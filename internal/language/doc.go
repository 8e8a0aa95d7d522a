// Package language normalizes language identifiers for transcription.
//
// Audio files carry language hints in several shapes: ISO 639-1 codes ("en"),
// ISO 639-2 container tags ("eng", "fre"), or plain English names ("french").
// Whisper wants ISO 639-1, so everything funnels through Normalize.
package language
