package portforward

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned for operations on a forward index that is not in
// the live list (never started, or already stopped).
var ErrNotFound = errors.New("no port-forward at that index")

// ErrKubectlMissing is the distinct failure for a missing forwarding binary.
var ErrKubectlMissing = errors.New("could not find kubectl binary, is it in your PATH?")

// PortSpecError reports a port mapping that does not parse as
// [local]:[remote].
type PortSpecError struct {
	Spec   string
	Reason string
}

func (e *PortSpecError) Error() string {
	return fmt.Sprintf("invalid port specification %q: %s", e.Spec, e.Reason)
}
