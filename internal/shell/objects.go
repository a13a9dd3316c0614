package shell

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	corev1 "k8s.io/api/core/v1"

	"kubesh/internal/kube"
	"kubesh/internal/session"
)

// cmdRange summarizes the current selection as a table. It goes through
// ApplyToSelection like every other ranged command so a missing selection
// produces the same error, but passes no separator: the table rows are the
// output.
func (s *Shell) cmdRange() error {
	t := newTable("Name", "Type", "Namespace")
	err := s.sess.ApplyToSelection(s.printer, "", func(obj session.SelectedObject, _ *session.Printer) error {
		t.addRow(plainCell(obj.Name), plainCell(obj.Kind.Display()), plainCell(obj.Namespace))
		return nil
	})
	if err != nil {
		return err
	}
	t.render(s.printer)
	return nil
}

func (s *Shell) cmdContainers(ctx context.Context) error {
	if err := s.requireClient(); err != nil {
		return err
	}
	return s.sess.ApplyToSelection(s.printer, s.sess.RangeSeparator(), func(obj session.SelectedObject, p *session.Printer) error {
		if obj.Kind != session.KindPod {
			p.Line("containers only possible on a Pod")
			return nil
		}
		raw, err := s.client.Get(ctx, kube.ObjectPath(obj))
		if err != nil {
			return err
		}
		var pod corev1.Pod
		if err := json.Unmarshal(raw, &pod); err != nil {
			return fmt.Errorf("decoding pod: %w", err)
		}
		printContainers(&pod, p)
		return nil
	})
}

func printContainers(pod *corev1.Pod, p *session.Printer) {
	if len(pod.Status.ContainerStatuses) == 0 {
		p.Line("<No Containers>")
		return
	}
	for _, cs := range pod.Status.ContainerStatuses {
		p.Line("Name:\t%s", cs.Name)
		p.Line("  Image:\t%s", cs.Image)
		p.Line("  State:\t%s", containerState(cs.State))
		p.Line("  Ready:\t%t", cs.Ready)
		printVolumeMounts(pod, cs.Name, p)
		p.Raw("\n")
	}
}

func printVolumeMounts(pod *corev1.Pod, container string, p *session.Printer) {
	for _, c := range pod.Spec.Containers {
		if c.Name != container {
			continue
		}
		if len(c.VolumeMounts) == 0 {
			p.Line("  No Volumes")
			return
		}
		p.Line("  Volumes:")
		for _, vm := range c.VolumeMounts {
			p.Line("   %s", vm.Name)
			p.Line("    Path:\t%s", vm.MountPath)
			if vm.SubPath != "" {
				p.Line("    Sub-Path:\t%s", vm.SubPath)
			}
			p.Line("    Read-Only:\t%t", vm.ReadOnly)
		}
		return
	}
}

func containerState(st corev1.ContainerState) string {
	switch {
	case st.Running != nil:
		return fmt.Sprintf("running (started %s)", st.Running.StartedAt.Format(time.RFC3339))
	case st.Waiting != nil:
		if st.Waiting.Reason != "" {
			return fmt.Sprintf("waiting (%s)", st.Waiting.Reason)
		}
		return "waiting"
	case st.Terminated != nil:
		return fmt.Sprintf("terminated (exit %d)", st.Terminated.ExitCode)
	default:
		return "unknown"
	}
}

func (s *Shell) cmdEvents(ctx context.Context) error {
	if err := s.requireClient(); err != nil {
		return err
	}
	return s.sess.ApplyToSelection(s.printer, s.sess.RangeSeparator(), func(obj session.SelectedObject, p *session.Printer) error {
		raw, err := s.client.Get(ctx, kube.EventsPath(obj))
		if err != nil {
			return err
		}
		var list corev1.EventList
		if err := json.Unmarshal(raw, &list); err != nil {
			return fmt.Errorf("decoding event list: %w", err)
		}
		if len(list.Items) == 0 {
			p.Line("No events")
			return nil
		}
		// Oldest first; events with no timestamp sort to the top.
		sort.SliceStable(list.Items, func(i, j int) bool {
			return list.Items[i].LastTimestamp.Time.Before(list.Items[j].LastTimestamp.Time)
		})
		for _, ev := range list.Items {
			ts := "unknown"
			if !ev.LastTimestamp.IsZero() {
				ts = ev.LastTimestamp.Local().Format("2006-01-02 15:04:05 -0700")
			}
			count := ev.Count
			if count == 0 {
				count = 1
			}
			p.Line("%s - %s\n count: %d\n reason: %s\n", ts, ev.Message, count, ev.Reason)
		}
		return nil
	})
}
