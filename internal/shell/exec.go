package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/pflag"

	"kubesh/internal/portforward"
	"kubesh/internal/session"
)

const defaultTerminal = "xterm -e"

// Seams for tests; exec hands the terminal over to kubectl, which cannot
// happen under go test.
var (
	lookupKubectl = func() error {
		if _, err := exec.LookPath("kubectl"); err != nil {
			return portforward.ErrKubectlMissing
		}
		return nil
	}
	runInteractive = func(name string, args []string) error {
		cmd := exec.Command(name, args...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
	startDetached = func(name string, args []string) error {
		return exec.Command(name, args...).Start()
	}
)

// cmdExec runs a command in each selected pod via kubectl exec, either
// inline on the shell's terminal or detached in a new terminal emulator.
func (s *Shell) cmdExec(ctx context.Context, args []string) error {
	if err := s.requireClient(); err != nil {
		return err
	}

	fs := pflag.NewFlagSet("exec", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	container := fs.StringP("container", "c", "", "container to exec in")
	term := fs.BoolP("term", "t", false, "run the command in a new terminal window")
	terminal := fs.String("terminal", "", "like --term, using this terminal emulator")
	tty := fs.BoolP("tty", "T", true, "allocate a tty")
	stdin := fs.BoolP("stdin", "i", true, "connect stdin")
	if stop, err := s.parseFlags(fs, args); stop || err != nil {
		return err
	}
	command := fs.Args()
	if len(command) == 0 {
		return errors.New("usage: exec [flags] COMMAND [ARG...]")
	}
	if err := lookupKubectl(); err != nil {
		return err
	}

	useTerminal := *term || *terminal != ""
	kubeContext := s.sess.Context()

	return s.sess.ApplyToSelection(s.printer, s.sess.RangeSeparator(), func(obj session.SelectedObject, p *session.Printer) error {
		if obj.Kind != session.KindPod {
			p.Line("Exec only possible on pods")
			return nil
		}
		kargs := kubectlExecArgs(kubeContext, obj.Namespace, obj.Name, *container, *tty, *stdin, command)
		if useTerminal {
			termCmd := *terminal
			if termCmd == "" {
				termCmd = s.sess.Terminal()
			}
			if termCmd == "" {
				termCmd = defaultTerminal
			}
			words := strings.Fields(termCmd)
			termArgs := append(words[1:], "kubectl "+strings.Join(kargs, " "))
			if err := startDetached(words[0], termArgs); err != nil {
				return fmt.Errorf("could not start terminal: %w", err)
			}
			p.Line("Starting on %s in terminal", obj.Name)
			return nil
		}
		if err := runInteractive("kubectl", kargs); err != nil {
			return fmt.Errorf("kubectl exited abnormally: %w", err)
		}
		return nil
	})
}

// kubectlExecArgs mirrors the argument order kubectl expects: global flags,
// the verb, interactivity, pod, container, then the command after a double
// dash.
func kubectlExecArgs(kubeContext, namespace, pod, container string, tty, stdin bool, command []string) []string {
	var args []string
	if namespace != "" {
		args = append(args, "--namespace", namespace)
	}
	if kubeContext != "" {
		args = append(args, "--context", kubeContext)
	}
	args = append(args, "exec")
	switch {
	case tty && stdin:
		args = append(args, "-it")
	case tty:
		args = append(args, "-t")
	case stdin:
		args = append(args, "-i")
	}
	args = append(args, pod)
	if container != "" {
		args = append(args, "-c", container)
	}
	args = append(args, "--")
	return append(args, command...)
}
