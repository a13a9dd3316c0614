package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"kubesh/internal/portforward"
	"kubesh/internal/session"
)

// cmdPortForward starts forwarding ports to the selected pod. Forwards
// outlive the selection; port-forwards manages them afterwards.
func (s *Shell) cmdPortForward(args []string) error {
	if err := s.requireClient(); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("usage: port-forward [LOCAL_PORT]:[REMOTE_PORT] ...")
	}
	obj, ok := s.sess.Selection().Single()
	if !ok || obj.Kind != session.KindPod {
		s.printer.Line("No active pod")
		return nil
	}
	if _, err := s.forwards.Start(s.sess.Context(), obj.Namespace, obj.Name, args); err != nil {
		return err
	}
	s.printer.Line("Forwarding port(s): %s", strings.Join(args, ", "))
	return nil
}

// cmdForwards lists the active port-forwards, or shows the output of one,
// or stops one, by its displayed index.
func (s *Shell) cmdForwards(args []string) error {
	if len(args) == 0 {
		t := indexedTable("Pod", "Ports", "Status")
		for _, info := range s.forwards.List() {
			status, style := "running", goodStyle
			if !info.Active {
				status, style = "exited", badStyle
			}
			t.addIndexedRow(info.Index,
				plainCell(info.Pod),
				plainCell(strings.Join(info.Ports, ", ")),
				styledCell(status, style),
			)
		}
		t.render(s.printer)
		return nil
	}

	action := args[0]
	if len(args) < 2 {
		return errors.New("usage: port-forwards [output INDEX | stop INDEX]")
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return invalidForwardIndex
	}

	switch action {
	case "output":
		info, err := s.forwards.Get(index)
		if err != nil {
			return forwardIndexError(err)
		}
		out, err := s.forwards.Output(index)
		if err != nil {
			return forwardIndexError(err)
		}
		s.printer.Line("Pod: %s, Port(s): %s", info.Pod, strings.Join(info.Ports, ", "))
		s.printer.Line("Output:%s", out)
		return nil

	case "stop":
		info, err := s.forwards.Get(index)
		if err != nil {
			return forwardIndexError(err)
		}
		s.printer.Line("Stop port-forward: Pod: %s, Port(s): %s", info.Pod, strings.Join(info.Ports, ", "))
		if !s.confirm.ask("  [y/N]? ") {
			s.printer.Line("Not stopping")
			return nil
		}
		if _, err := s.forwards.Stop(index); err != nil {
			return forwardIndexError(err)
		}
		s.printer.Line("Stopped")
		return nil

	default:
		return fmt.Errorf("unknown action %q (try output or stop)", action)
	}
}

var invalidForwardIndex = errors.New("invalid index (try without args to get a list)")

func forwardIndexError(err error) error {
	if errors.Is(err, portforward.ErrNotFound) {
		return invalidForwardIndex
	}
	return err
}
