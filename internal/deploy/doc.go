// Package deploy renders the container definitions that accompany the
// transcription pipeline: a WordPress + MySQL compose file for the publishing
// site and a whisper worker compose file for containerized transcription.
// scribe only renders and validates these files; starting containers is left
// to docker compose.
package deploy
