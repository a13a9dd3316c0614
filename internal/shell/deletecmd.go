package shell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"kubesh/internal/kube"
	"kubesh/internal/session"
)

// cmdDelete deletes each selected object after a per-object confirmation.
// Declining skips only that object; the rest of the range still gets asked.
func (s *Shell) cmdDelete(ctx context.Context, args []string) error {
	if err := s.requireClient(); err != nil {
		return err
	}

	fs := pflag.NewFlagSet("delete", pflag.ContinueOnError)
	grace := fs.Int64P("grace-period", "g", -1, "seconds the object is given to terminate gracefully")
	cascade := fs.BoolP("cascade", "c", true, "delete dependent objects too")
	now := fs.Bool("now", false, "shut down immediately (one second grace)")
	force := fs.Bool("force", false, "delete with no grace at all")
	if stop, err := s.parseFlags(fs, args); stop || err != nil {
		return err
	}

	if *now && *force {
		return errors.New("only one of --now and --force may be given")
	}
	if fs.Changed("grace-period") && (*now || *force) {
		return errors.New("--grace-period cannot be combined with --now or --force")
	}

	var gracePeriod *int64
	switch {
	case *force:
		gracePeriod = new(int64)
	case *now:
		one := int64(1)
		gracePeriod = &one
	case fs.Changed("grace-period"):
		if *grace < 0 {
			return errors.New("--grace-period must not be negative")
		}
		g := *grace
		if g == 0 {
			// An explicit zero means force; --force is how you ask for that.
			g = 1
		}
		gracePeriod = &g
	}

	body, err := deleteBody(gracePeriod, *cascade)
	if err != nil {
		return err
	}

	return s.sess.ApplyToSelection(s.printer, s.sess.RangeSeparator(), func(obj session.SelectedObject, p *session.Printer) error {
		if !s.confirm.ask(deletePrompt(obj)) {
			p.Line("Not deleting")
			return nil
		}
		reqBody := body
		// The services endpoint rejects delete options.
		if obj.Kind == session.KindService {
			reqBody = nil
		}
		if _, err := s.client.Delete(ctx, kube.ObjectPath(obj), reqBody); err != nil {
			return err
		}
		p.Line("Deleted")
		return nil
	})
}

func deletePrompt(obj session.SelectedObject) string {
	if obj.Namespace == "" {
		return fmt.Sprintf("Delete %s %s [y/N]? ", obj.Kind.Display(), obj.Name)
	}
	return fmt.Sprintf("Delete %s %s in namespace %s [y/N]? ", obj.Kind.Display(), obj.Name, obj.Namespace)
}

func deleteBody(gracePeriod *int64, cascade bool) ([]byte, error) {
	policy := metav1.DeletePropagationForeground
	if !cascade {
		policy = metav1.DeletePropagationOrphan
	}
	opts := metav1.DeleteOptions{
		TypeMeta:           metav1.TypeMeta{APIVersion: "v1", Kind: "DeleteOptions"},
		GracePeriodSeconds: gracePeriod,
		PropagationPolicy:  &policy,
	}
	body, err := json.Marshal(&opts)
	if err != nil {
		return nil, fmt.Errorf("encoding delete options: %w", err)
	}
	return body, nil
}
