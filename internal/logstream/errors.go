package logstream

import (
	"errors"
	"fmt"
)

// ErrNoEditor means editor mode was requested but no editor could be
// resolved from the override, the session preference, or $EDITOR.
var ErrNoEditor = errors.New("no editor configured: pass one to --editor, set one with 'set editor', or export EDITOR")

// NoContainerError reports a pod with no containers to read logs from.
type NoContainerError struct {
	Pod string
}

func (e *NoContainerError) Error() string {
	return fmt.Sprintf("pod %q has no containers to read logs from", e.Pod)
}
