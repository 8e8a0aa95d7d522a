// Package inspector implements the first workflow stage: probing queued audio
// files with ffprobe and recording their stream metadata on the queue item.
//
// Inspection rejects files that are missing or carry no audio stream by
// routing them to review, so later stages can assume a playable input.
package inspector
