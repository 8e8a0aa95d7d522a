// Package openaiengine transcribes audio through the OpenAI audio API.
//
// It is the hosted alternative to the local whisper CLI and produces the
// same plain-text transcript shape. Segment responses are requested in
// verbose JSON so callers get timing data when the API provides it.
package openaiengine
