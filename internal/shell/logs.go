package shell

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"kubesh/internal/logstream"
	"kubesh/internal/session"
)

// cmdLogs maps the logs flags onto a stream request and runs it for each
// selected pod. The optional positional argument names the container.
func (s *Shell) cmdLogs(ctx context.Context, args []string) error {
	if err := s.requireClient(); err != nil {
		return err
	}

	fs := pflag.NewFlagSet("logs", pflag.ContinueOnError)
	follow := fs.BoolP("follow", "f", false, "keep the stream open, printing lines as they arrive")
	previous := fs.BoolP("previous", "p", false, "logs from the previous container instance")
	tail := fs.Int64P("tail", "t", 0, "only the last N lines")
	since := fs.Duration("since", 0, "only logs newer than this, e.g. 30s or 5m")
	sinceTime := fs.String("since-time", "", "only logs after this RFC3339 timestamp")
	edit := fs.BoolP("edit", "e", false, "download the logs, then open them in the editor")
	editor := fs.String("editor", "", "like --edit, using this editor command")
	output := fs.StringP("output", "o", "", "write the logs to this file; {name}, {namespace} and {time} expand")
	if stop, err := s.parseFlags(fs, args); stop || err != nil {
		return err
	}

	if *output != "" && (*edit || *editor != "") {
		return errors.New("only one of --output and --edit may be given")
	}

	req := logstream.Request{
		Follow:   *follow,
		Previous: *previous,
		Mode:     logstream.ToConsole,
	}
	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		req.Container = rest[0]
	default:
		return fmt.Errorf("unexpected argument %q", rest[1])
	}
	if fs.Changed("tail") {
		if *tail < 0 {
			return errors.New("--tail must not be negative")
		}
		req.TailLines = tail
	}
	if *since > 0 {
		req.SinceSeconds = int64(since.Seconds())
	}
	if *sinceTime != "" {
		ts, err := time.Parse(time.RFC3339, *sinceTime)
		if err != nil {
			return fmt.Errorf("invalid --since-time %q: %w", *sinceTime, err)
		}
		req.SinceTime = ts.UTC().Format(time.RFC3339)
	}
	switch {
	case *output != "":
		req.Mode = logstream.ToFile
		req.FileTemplate = *output
	case *edit || *editor != "":
		req.Mode = logstream.ToEditor
		req.EditorCmd = *editor
	}

	return s.sess.ApplyToSelection(s.printer, s.sess.RangeSeparator(), func(obj session.SelectedObject, p *session.Printer) error {
		if obj.Kind != session.KindPod {
			p.Line("Logs only available on a pod")
			return nil
		}
		return s.streamer.Logs(ctx, obj, req)
	})
}
