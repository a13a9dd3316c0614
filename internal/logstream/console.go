package logstream

import (
	"bufio"
	"io"
	"time"

	"kubesh/pkg/logging"
)

// printLines renders a log stream to the console line by line. A producer
// goroutine reads the stream and hands lines over a bounded channel; the
// consumer polls that channel with a short timeout so the interrupt is
// noticed even when no new lines arrive. Stream end is normal termination.
func (s *Streamer) printLines(stream io.ReadCloser) error {
	lines := make(chan string, consoleLineBuffer)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer stream.Close()
		defer close(lines)
		r := bufio.NewReader(stream)
		for {
			line, err := r.ReadString('\n')
			if len(line) > 0 {
				select {
				case lines <- line:
				case <-done:
					return
				}
			}
			if err != nil {
				if err != io.EOF {
					logging.Debug("LogStream", "log stream ended: %v", err)
				}
				return
			}
		}
	}()

	itr := s.sess.Interrupt()
	for !itr.Interrupted() {
		select {
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			s.out.Raw(line)
		case <-time.After(consolePoll):
		}
	}
	return nil
}
