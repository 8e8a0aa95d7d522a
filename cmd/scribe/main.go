package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// exitCodeError carries an explicit process exit code through cobra's
// error return path. The transcribe command uses it to preserve the
// exit contract of the containerized worker.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }

func (e *exitCodeError) Unwrap() error { return e.err }

func exitWithCode(code int, err error) error {
	return &exitCodeError{code: code, err: err}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		var coded *exitCodeError
		if errors.As(err, &coded) {
			os.Exit(coded.code)
		}
		os.Exit(1)
	}
}
