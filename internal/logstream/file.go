package logstream

import (
	"fmt"
	"io"
	"os"
	"time"

	"kubesh/internal/session"
)

// writeFile downloads a log stream to the path produced by expanding the
// request template against the pod.
func (s *Streamer) writeFile(stream io.ReadCloser, obj session.SelectedObject, template string) error {
	defer stream.Close()
	path, err := session.Expand(template, obj, time.Now())
	if err != nil {
		return err
	}
	if err := s.saveStream(path, stream); err != nil {
		return err
	}
	s.out.Line("Wrote logs to %s", path)
	return nil
}

// saveStream copies a stream into a freshly created file and closes it, even
// when copying stops early.
func (s *Streamer) saveStream(path string, src io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := s.copyChunks(f, src); err != nil {
		f.Close()
		return fmt.Errorf("writing logs to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// copyChunks copies fixed-size chunks until the stream ends or the session
// interrupt trips. The interrupt check sits between reads, so cancellation
// never tears a chunk: every chunk that was read in full is written in full.
func (s *Streamer) copyChunks(dst io.Writer, src io.Reader) error {
	itr := s.sess.Interrupt()
	chunk := make([]byte, fileChunkSize)
	for !itr.Interrupted() {
		n, err := src.Read(chunk)
		if n > 0 {
			if _, werr := dst.Write(chunk[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}
