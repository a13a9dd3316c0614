package session

import (
	"strings"
	"time"
)

// The token substituted for {namespace} when the object has none. The value
// shows up in file names, so it stays path-safe.
const namespaceUnknown = "unknown"

// Expand renders a brace template against an object. Supported fields are
// {name}, {namespace} and {time}; anything else fails with a TemplateError.
// Both log file path templates and range separators go through here.
func Expand(tmpl string, obj SelectedObject, now time.Time) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl))

	rest := tmpl
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		b.WriteString(rest[:open])
		rest = rest[open+1:]

		closeIdx := strings.IndexByte(rest, '}')
		if closeIdx < 0 {
			return "", &TemplateError{Template: tmpl, Field: "{" + rest}
		}
		field := rest[:closeIdx]
		rest = rest[closeIdx+1:]

		switch field {
		case "name":
			b.WriteString(obj.Name)
		case "namespace":
			if obj.Namespace == "" {
				b.WriteString(namespaceUnknown)
			} else {
				b.WriteString(obj.Namespace)
			}
		case "time":
			b.WriteString(now.UTC().Format(time.RFC3339))
		default:
			return "", &TemplateError{Template: tmpl, Field: field}
		}
	}
}
