package session

import (
	"fmt"
	"os"
	"time"
)

// Session is the process-lifetime state of one interactive shell: the
// active context and namespace, the last listing, the current selection,
// the interrupt token, and the operator's preference strings. Commands run
// one at a time, so Session itself takes no locks; the only piece touched
// from another goroutine is the Interrupt token, which is atomic.
type Session struct {
	context        string
	namespace      string
	selection      Selection
	lastObjects    []SelectedObject
	interrupt      *Interrupt
	editor         string
	terminal       string
	rangeSeparator string
	tempDir        string
}

// New returns a session pointed at the given kube context. An empty name is
// allowed; commands that need a context report it when they run.
func New(contextName string) *Session {
	return &Session{
		context:   contextName,
		interrupt: NewInterrupt(),
	}
}

// Close releases session-owned resources: the temporary directory holding
// editor-mode log downloads.
func (s *Session) Close() error {
	if s.tempDir == "" {
		return nil
	}
	dir := s.tempDir
	s.tempDir = ""
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove session temp dir: %w", err)
	}
	return nil
}

// Interrupt returns the session's cancellation token.
func (s *Session) Interrupt() *Interrupt {
	return s.interrupt
}

// TempDir returns the session-scoped temporary directory, creating it on
// first use. It lives until Close.
func (s *Session) TempDir() (string, error) {
	if s.tempDir == "" {
		dir, err := os.MkdirTemp("", "kubesh-")
		if err != nil {
			return "", fmt.Errorf("create session temp dir: %w", err)
		}
		s.tempDir = dir
	}
	return s.tempDir, nil
}

// Context returns the active kube context name.
func (s *Session) Context() string {
	return s.context
}

// SetContext switches the active context. Switching invalidates whatever
// was listed and selected under the old context, so both are cleared.
// Setting the context it already has is a no-op; the return value reports
// whether anything changed.
func (s *Session) SetContext(name string) bool {
	if name == s.context {
		return false
	}
	s.context = name
	s.selection = Selection{}
	s.lastObjects = nil
	return true
}

// Namespace returns the active namespace, empty when unset.
func (s *Session) Namespace() string {
	return s.namespace
}

// SetNamespace scopes subsequent listings. Empty clears the namespace. The
// current selection is deliberately left alone.
func (s *Session) SetNamespace(ns string) {
	s.namespace = ns
}

// Editor returns the configured editor command, empty when unset.
func (s *Session) Editor() string { return s.editor }

// SetEditor records the editor command used for editor-mode log viewing.
func (s *Session) SetEditor(cmd string) { s.editor = cmd }

// Terminal returns the configured terminal command, empty when unset.
func (s *Session) Terminal() string { return s.terminal }

// SetTerminal records the terminal command used by exec -t.
func (s *Session) SetTerminal(cmd string) { s.terminal = cmd }

// RangeSeparator returns the line written between objects of a range.
func (s *Session) RangeSeparator() string { return s.rangeSeparator }

// SetRangeSeparator sets the between-objects line. It may contain {name},
// {namespace} and {time} placeholders, expanded against the object that
// follows the separator.
func (s *Session) SetRangeSeparator(sep string) { s.rangeSeparator = sep }

// Selection returns the current selection.
func (s *Session) Selection() Selection {
	return s.selection
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() {
	s.selection = Selection{}
}

// LastObjects returns a copy of the most recent listing, in listing order.
func (s *Session) LastObjects() []SelectedObject {
	if s.lastObjects == nil {
		return nil
	}
	cp := make([]SelectedObject, len(s.lastObjects))
	copy(cp, s.lastObjects)
	return cp
}

// RecordListing replaces the last listing wholesale. Listing commands call
// it after every successful fetch, including when the result is empty.
func (s *Session) RecordListing(objs []SelectedObject) {
	cp := make([]SelectedObject, len(objs))
	copy(cp, objs)
	s.lastObjects = cp
}

// ClearListing drops the last listing. Called when a listing fetch fails so
// stale indices cannot be selected.
func (s *Session) ClearListing() {
	s.lastObjects = nil
}

// SelectIndex makes the object at the given listing index the single
// selection.
func (s *Session) SelectIndex(i int) error {
	if len(s.lastObjects) == 0 {
		return &RangeError{Expr: fmt.Sprintf("%d", i), Reason: "no objects have been listed"}
	}
	if i < 0 || i >= len(s.lastObjects) {
		return &RangeError{Expr: fmt.Sprintf("%d", i), Reason: fmt.Sprintf("index %d out of range (have %d objects)", i, len(s.lastObjects))}
	}
	s.selection = Single(s.lastObjects[i])
	return nil
}

// ResolveRange parses a range expression against the last listing and
// returns the matching objects in listing order. It does not change the
// selection.
func (s *Session) ResolveRange(expr string) ([]SelectedObject, error) {
	idxs, err := parseRangeExpr(expr, len(s.lastObjects))
	if err != nil {
		return nil, err
	}
	objs := make([]SelectedObject, 0, len(idxs))
	for _, i := range idxs {
		objs = append(objs, s.lastObjects[i])
	}
	return objs, nil
}

// SelectRange resolves a range expression and installs the result as the
// current selection.
func (s *Session) SelectRange(expr string) error {
	objs, err := s.ResolveRange(expr)
	if err != nil {
		return err
	}
	if len(objs) == 1 {
		s.selection = Single(objs[0])
	} else {
		s.selection = Range(objs)
	}
	return nil
}

// ApplyToSelection runs action once per selected object, in order. With
// nothing selected it returns ErrNoSelection without invoking the action.
// For a range, separator (when non-empty) is written between consecutive
// objects, expanded against the object that follows it; a separator that
// fails to expand is written literally. An action error aborts only that
// object: it is reported through the sink and iteration continues. The
// action must not change the selection itself; iteration runs over a
// snapshot, so any such change takes effect afterwards.
func (s *Session) ApplyToSelection(p *Printer, separator string, action func(SelectedObject, *Printer) error) error {
	if s.selection.IsNone() {
		return ErrNoSelection
	}
	objs := s.selection.Objects()
	for i, obj := range objs {
		if i > 0 && separator != "" {
			sep, err := Expand(separator, obj, time.Now())
			if err != nil {
				sep = separator
			}
			p.Line("%s", sep)
		}
		if err := action(obj, p); err != nil {
			p.Line("error: %v", err)
		}
	}
	return nil
}
