package portforward

import (
	"strconv"
	"strings"
)

// ValidatePortSpec checks a single port mapping of the form
// [local]:[remote]. Either side may be empty, and a bare port with no colon
// is shorthand for forwarding the same port on both ends. A local port of 0
// asks the forwarder to pick a free port.
func ValidatePortSpec(spec string) error {
	if spec == "" {
		return &PortSpecError{Spec: spec, Reason: "empty specification"}
	}
	parts := strings.Split(spec, ":")
	if len(parts) > 2 {
		return &PortSpecError{Spec: spec, Reason: "expected at most one colon"}
	}
	for _, part := range parts {
		if part == "" {
			continue
		}
		if _, err := strconv.ParseUint(part, 10, 16); err != nil {
			return &PortSpecError{Spec: spec, Reason: "port " + strconv.Quote(part) + " is not a number between 0 and 65535"}
		}
	}
	return nil
}
