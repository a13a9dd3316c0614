package session

import (
	"errors"
	"fmt"
)

// ErrNoSelection is returned when a command that needs a target runs while
// nothing is selected.
var ErrNoSelection = errors.New("no object is selected (run a listing command and pick an index first)")

// RangeError reports a range expression that cannot be resolved against the
// current listing.
type RangeError struct {
	Expr   string
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range %q: %s", e.Expr, e.Reason)
}

// TemplateError reports a path or separator template that references a field
// the expander does not know.
type TemplateError struct {
	Template string
	Field    string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("unknown field %q in template %q", e.Field, e.Template)
}
