// Package shell implements the interactive command loop: a readline-driven
// REPL where listing commands populate an indexed table, numbers and ranges
// select objects, and action commands operate on the selection.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"

	"kubesh/internal/config"
	"kubesh/internal/kube"
	"kubesh/internal/logstream"
	"kubesh/internal/portforward"
	"kubesh/internal/session"
	"kubesh/pkg/logging"
)

// newKubeClient builds the cluster client for a context. Tests substitute a
// fake.
var newKubeClient = func(kubeContext string) (kube.Client, error) {
	return kube.NewClient(kubeContext)
}

// forwarder is the slice of the port-forward supervisor the shell drives.
type forwarder interface {
	Start(kubeContext, namespace, pod string, ports []string) (portforward.Info, error)
	List() []portforward.Info
	Get(index int) (portforward.Info, error)
	Output(index int) (string, error)
	Stop(index int) (portforward.Info, error)
	StopAll() int
}

// Shell holds everything one interactive session needs. It is not safe for
// concurrent use; commands run one at a time on the loop goroutine.
type Shell struct {
	sess     *session.Session
	settings *config.Settings
	client   kube.Client
	printer  *session.Printer
	streamer *logstream.Streamer
	forwards forwarder
	confirm  *confirmReader
	rl       *readline.Instance
}

// New wires a shell from loaded settings, an initial context (may be empty)
// and namespace. A context that cannot be connected is reported but not
// fatal; the user can switch contexts from inside the shell.
func New(settings *config.Settings, kubeContext, namespace string, out io.Writer, confirmIn io.Reader) *Shell {
	sess := session.New(kubeContext)
	sess.SetNamespace(namespace)
	sess.SetEditor(settings.Editor)
	sess.SetTerminal(settings.Terminal)
	sess.SetRangeSeparator(settings.RangeSeparator)

	printer := session.NewPrinter(out)
	s := &Shell{
		sess:     sess,
		settings: settings,
		printer:  printer,
		forwards: portforward.NewSupervisor(),
		confirm:  newConfirmReader(confirmIn, out),
	}
	s.streamer = logstream.NewStreamer(nil, sess, printer)

	if kubeContext != "" {
		if err := s.connect(kubeContext); err != nil {
			printer.Line("error: %v", err)
		}
	}
	return s
}

// connect builds the client for a context and re-points the streamer at it.
func (s *Shell) connect(kubeContext string) error {
	client, err := newKubeClient(kubeContext)
	if err != nil {
		s.client = nil
		s.streamer = logstream.NewStreamer(nil, s.sess, s.printer)
		return fmt.Errorf("connecting to context %q: %w", kubeContext, err)
	}
	s.client = client
	s.streamer = logstream.NewStreamer(client, s.sess, s.printer)
	return nil
}

// requireClient guards commands that talk to the cluster.
func (s *Shell) requireClient() error {
	if s.client == nil {
		return fmt.Errorf("no active context (use 'context NAME')")
	}
	return nil
}

// prompt renders "[context] [namespace] [selection] > " with the pieces
// that are set.
func (s *Shell) prompt() string {
	var b strings.Builder
	if ctx := s.sess.Context(); ctx != "" {
		fmt.Fprintf(&b, "[%s] ", contextStyle.Render(ctx))
	}
	if ns := s.sess.Namespace(); ns != "" {
		fmt.Fprintf(&b, "[%s] ", namespaceStyle.Render(ns))
	}
	if sel := s.sess.Selection(); !sel.IsNone() {
		fmt.Fprintf(&b, "[%s] ", objectStyle.Render(sel.String()))
	}
	b.WriteString("> ")
	return b.String()
}

// Run drives the interactive loop until quit or EOF. The caller's context
// cancels in-flight commands on shutdown.
func (s *Shell) Run(ctx context.Context) error {
	historyFile := ""
	if dir, err := config.UserDir(); err == nil {
		historyFile = filepath.Join(dir, "history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     historyFile,
		AutoComplete:    s.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",

		HistorySearchFold:   true,
		VimMode:             s.settings.EditMode == "vi",
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return fmt.Errorf("initializing readline: %w", err)
	}
	defer rl.Close()
	s.rl = rl

	// ^C during a command (follow logs, long download) trips the session
	// interrupt instead of killing the shell. At the prompt readline owns
	// the terminal and reports ErrInterrupt itself.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		for range sigCh {
			s.sess.Interrupt().Trip()
		}
	}()

	defer func() {
		if n := s.forwards.StopAll(); n > 0 {
			s.printer.Line("Stopped %d port-forward(s)", n)
		}
		if err := s.sess.Close(); err != nil {
			logging.Warn("Shell", "session teardown: %v", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rl.SetPrompt(s.prompt())
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		quit, err := s.dispatch(ctx, input)
		if err != nil {
			s.printer.Line("error: %v", err)
		}
		if quit {
			return nil
		}
	}
}

// dispatch parses one input line and runs it. The bool reports a quit
// request.
func (s *Shell) dispatch(ctx context.Context, input string) (bool, error) {
	args, err := shlex.Split(input)
	if err != nil {
		return false, fmt.Errorf("parsing command: %w", err)
	}
	if len(args) == 0 {
		return false, nil
	}

	// A bare index or range expression is a selection.
	if len(args) == 1 && session.LooksLikeRange(args[0]) {
		return false, s.sess.SelectRange(args[0])
	}

	return s.runCommand(ctx, args[0], args[1:])
}

// filterInput blocks runes readline must not see as input.
func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}
