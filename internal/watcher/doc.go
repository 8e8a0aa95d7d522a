// Package watcher polls the inbox directory for new audio files and enqueues
// them for processing.
//
// Files are only enqueued once their size is stable across two consecutive
// scans, so partially copied uploads never enter the pipeline.
package watcher
