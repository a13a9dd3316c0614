package logstream

import "errors"

// SinkMode selects where fetched log bytes go.
type SinkMode int

const (
	// ToConsole streams lines to the output sink as they arrive.
	ToConsole SinkMode = iota
	// ToFile downloads the logs to a templated file path.
	ToFile
	// ToEditor downloads the logs to a temp file and opens an editor on it.
	ToEditor
)

// Request describes one log fetch. The zero value asks for the full console
// log of the pod's only container.
type Request struct {
	// Container names the container to read. Empty picks automatically:
	// a single container is used as-is, the first of several with a
	// warning.
	Container string

	// Follow keeps the stream open as new records arrive. Only valid with
	// ToConsole.
	Follow bool

	// Previous asks for the previously terminated container's logs.
	Previous bool

	// TailLines limits output to the last N lines. Nil means everything.
	TailLines *int64

	// SinceSeconds limits output to records newer than this many seconds.
	// Mutually exclusive with SinceTime.
	SinceSeconds int64

	// SinceTime limits output to records newer than this RFC3339 instant.
	SinceTime string

	Mode SinkMode

	// FileTemplate is the output path for ToFile. It may contain {name},
	// {namespace} and {time} placeholders.
	FileTemplate string

	// EditorCmd overrides the editor resolution chain for ToEditor.
	EditorCmd string
}

func (r *Request) validate() error {
	if r.SinceSeconds > 0 && r.SinceTime != "" {
		return errors.New("only one of --since and --since-time may be given")
	}
	if r.Follow && r.Mode != ToConsole {
		return errors.New("cannot follow logs into a file or editor")
	}
	return nil
}
