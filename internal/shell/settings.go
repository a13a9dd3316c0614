package shell

import (
	"errors"
	"fmt"
	"os"
	"time"

	"kubesh/internal/config"
	"kubesh/internal/kube"
	"kubesh/pkg/logging"
)

// saveSettings is swapped out in tests so "set" does not write the real
// user config.
var saveSettings = config.Save

// cmdContext with no argument lists the configured contexts; with one it
// switches to that context, which drops the selection and last listing.
func (s *Shell) cmdContext(args []string) error {
	infos, _, err := kube.Contexts()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		t := newTable("Context", "Api Server Address")
		for _, info := range infos {
			t.addRow(styledCell(info.Name, contextStyle), plainCell(info.Server))
		}
		t.render(s.printer)
		return nil
	}

	name := args[0]
	known := false
	for _, info := range infos {
		if info.Name == name {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown context %q", name)
	}
	if s.sess.SetContext(name) {
		return s.connect(name)
	}
	return nil
}

func (s *Shell) cmdContexts() error {
	infos, _, err := kube.Contexts()
	if err != nil {
		return err
	}
	for _, info := range infos {
		s.printer.Line("%s", info.Name)
	}
	return nil
}

// cmdNamespace sets the active namespace, or clears it when called with no
// argument. The selection survives a namespace change.
func (s *Shell) cmdNamespace(args []string) error {
	if len(args) == 0 {
		s.sess.SetNamespace("")
		return nil
	}
	s.sess.SetNamespace(args[0])
	return nil
}

const setUsage = "usage: set OPTION VALUE (options: editor, terminal, range_separator, edit_mode, log_level)"

// cmdSet updates one session option and persists it to the user config so
// the next session starts with it.
func (s *Shell) cmdSet(args []string) error {
	if len(args) != 2 {
		return errors.New(setUsage)
	}
	option, value := args[0], args[1]

	switch option {
	case "editor":
		s.sess.SetEditor(value)
		s.settings.Editor = value
	case "terminal":
		s.sess.SetTerminal(value)
		s.settings.Terminal = value
	case "range_separator":
		s.sess.SetRangeSeparator(value)
		s.settings.RangeSeparator = value
	case "edit_mode":
		if value != "vi" && value != "emacs" {
			return errors.New("edit_mode must be 'vi' or 'emacs'")
		}
		s.settings.EditMode = value
		if s.rl != nil {
			s.rl.SetVimMode(value == "vi")
		}
	case "log_level":
		s.settings.LogLevel = value
		logging.Init(logging.ParseLevel(value), os.Stderr)
	default:
		return fmt.Errorf("unknown option %q (options: editor, terminal, range_separator, edit_mode, log_level)", option)
	}

	if err := saveSettings(*s.settings); err != nil {
		logging.Warn("Shell", "could not save settings: %v", err)
	}
	s.printer.Line("Set %s to '%s'", option, value)
	return nil
}

func (s *Shell) cmdEnv() error {
	s.printer.Line("context: %s", s.sess.Context())
	s.printer.Line("namespace: %s", s.sess.Namespace())
	s.printer.Line("selection: %s", s.sess.Selection())
	s.printer.Line("editor: %s", s.sess.Editor())
	s.printer.Line("terminal: %s", s.sess.Terminal())
	s.printer.Line("range_separator: %s", s.sess.RangeSeparator())
	s.printer.Line("edit_mode: %s", s.settings.EditMode)
	s.printer.Line("log_level: %s", s.settings.LogLevel)
	return nil
}

func (s *Shell) cmdUTC() error {
	s.printer.Line("%s", time.Now().UTC().Format("2006-01-02 15:04:05.000000 MST"))
	return nil
}
