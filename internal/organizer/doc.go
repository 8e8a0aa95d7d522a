// Package organizer implements the final workflow stage: moving the source
// audio into the processed tree and the transcript artifacts into the
// transcripts tree.
//
// Re-transcribing an input with the same name overwrites the previous
// transcript files; the newest run wins.
package organizer
