package logstream

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"kubesh/internal/session"
)

// startEditor launches the editor process without waiting for it. Tests
// substitute a stub.
var startEditor = func(name string, args []string) error {
	return exec.Command(name, args...).Start()
}

// openEditor downloads the full log to a session temp file and opens an
// editor on it. The editor is resolved from the request override, then the
// session preference, then $EDITOR. The editor process is not waited on.
func (s *Streamer) openEditor(stream io.ReadCloser, obj session.SelectedObject, container, override string) error {
	defer stream.Close()

	editor := override
	if editor == "" {
		editor = s.sess.Editor()
	}
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		return ErrNoEditor
	}

	dir, err := s.sess.TempDir()
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%s_%s_%s.log", obj.Name, container, time.Now().Format(time.RFC3339))
	path := filepath.Join(dir, name)
	if err := s.saveStream(path, stream); err != nil {
		return err
	}

	s.out.Line("Logs downloaded, starting editor")
	argv := strings.Fields(editor)
	argv = append(argv, path)
	if err := startEditor(argv[0], argv[1:]); err != nil {
		return fmt.Errorf("could not start editor: %w", err)
	}
	return nil
}
