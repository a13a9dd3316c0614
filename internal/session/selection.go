package session

import "fmt"

type selectionKind int

const (
	selectionNone selectionKind = iota
	selectionSingle
	selectionRange
)

// Selection is the implicit target of the next object-scoped command: none,
// a single object, or an ordered range. The zero value is the empty
// selection. A range selection is never empty; Range collapses an empty
// slice to None so the invariant holds structurally.
type Selection struct {
	kind selectionKind
	objs []SelectedObject
}

// None returns the empty selection.
func None() Selection {
	return Selection{}
}

// Single returns a selection of exactly one object.
func Single(obj SelectedObject) Selection {
	return Selection{kind: selectionSingle, objs: []SelectedObject{obj}}
}

// Range returns an ordered multi-object selection. The slice is copied.
func Range(objs []SelectedObject) Selection {
	if len(objs) == 0 {
		return Selection{}
	}
	cp := make([]SelectedObject, len(objs))
	copy(cp, objs)
	return Selection{kind: selectionRange, objs: cp}
}

// IsNone reports whether nothing is selected.
func (s Selection) IsNone() bool {
	return s.kind == selectionNone
}

// Single returns the selected object when exactly one is selected.
func (s Selection) Single() (SelectedObject, bool) {
	if s.kind == selectionSingle {
		return s.objs[0], true
	}
	return SelectedObject{}, false
}

// Objects returns the selected objects in order. Nil when nothing is
// selected.
func (s Selection) Objects() []SelectedObject {
	if s.kind == selectionNone {
		return nil
	}
	cp := make([]SelectedObject, len(s.objs))
	copy(cp, s.objs)
	return cp
}

// Len returns the number of selected objects.
func (s Selection) Len() int {
	return len(s.objs)
}

// String renders the selection for the prompt: empty for none, the object
// name for a single, a count for a range.
func (s Selection) String() string {
	switch s.kind {
	case selectionSingle:
		return s.objs[0].Name
	case selectionRange:
		return fmt.Sprintf("%d objects", len(s.objs))
	default:
		return ""
	}
}
