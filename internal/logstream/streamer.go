// Package logstream fetches container logs over the cluster API and renders
// them to one of three sinks: the console, a templated file path, or a
// temporary file opened in an editor. All sinks honor the session interrupt
// so a stream can be abandoned mid-flight without killing the shell.
package logstream

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"kubesh/internal/kube"
	"kubesh/internal/session"
)

const (
	// fileChunkSize is the read granularity for file and editor sinks. The
	// interrupt is checked between chunks, never inside one.
	fileChunkSize = 1024

	// consolePoll is how long the console sink waits for the next line
	// before re-checking the interrupt.
	consolePoll = time.Second

	// consoleLineBuffer bounds how far the producer may run ahead of the
	// console printer.
	consoleLineBuffer = 32

	// fetchTimeout caps non-follow requests. Follow streams get no
	// timeout; they run until the server or the user ends them.
	fetchTimeout = 20 * time.Second
)

// Streamer executes log requests against one cluster on behalf of one
// session.
type Streamer struct {
	client kube.Client
	sess   *session.Session
	out    *session.Printer
}

func NewStreamer(client kube.Client, sess *session.Session, out *session.Printer) *Streamer {
	return &Streamer{client: client, sess: sess, out: out}
}

// Logs fetches logs for one pod and renders them to the sink the request
// names. The session interrupt is rearmed once the stream is open, so a
// stale ^C from a previous command cannot cancel this one.
func (s *Streamer) Logs(ctx context.Context, obj session.SelectedObject, req Request) error {
	if err := req.validate(); err != nil {
		return err
	}
	container, err := s.pickContainer(obj, req.Container)
	if err != nil {
		return err
	}

	q := url.Values{}
	q.Set("container", container)
	if req.Follow {
		q.Set("follow", "true")
	}
	if req.Previous {
		q.Set("previous", "true")
	}
	if req.TailLines != nil {
		q.Set("tailLines", strconv.FormatInt(*req.TailLines, 10))
	}
	if req.SinceSeconds > 0 {
		q.Set("sinceSeconds", strconv.FormatInt(req.SinceSeconds, 10))
	}
	if req.SinceTime != "" {
		q.Set("sinceTime", req.SinceTime)
	}

	timeout := fetchTimeout
	if req.Follow {
		timeout = 0
	}
	stream, err := s.client.GetStream(ctx, kube.LogPath(obj.Namespace, obj.Name, q), timeout)
	if err != nil {
		return err
	}
	s.sess.Interrupt().Reset()

	switch req.Mode {
	case ToFile:
		return s.writeFile(stream, obj, req.FileTemplate)
	case ToEditor:
		return s.openEditor(stream, obj, container, req.EditorCmd)
	default:
		return s.printLines(stream)
	}
}

// pickContainer resolves which container to read. An explicit name is
// trusted as-is; the server rejects it if it does not exist.
func (s *Streamer) pickContainer(obj session.SelectedObject, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	switch len(obj.Containers) {
	case 0:
		return "", &NoContainerError{Pod: obj.Name}
	case 1:
		return obj.Containers[0], nil
	default:
		s.out.Line("Pod has multiple containers, picking the first one")
		return obj.Containers[0], nil
	}
}
