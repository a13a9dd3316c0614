package session

import (
	"fmt"
	"io"
	"sync"
)

// Printer is the line-oriented output sink every command writes through.
// A mutex serializes writes so a background producer (console log streaming,
// forward output capture diagnostics) never interleaves partial lines with
// foreground output. Tests substitute an in-memory writer.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter wraps w in a Printer.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Line writes one formatted line, appending the newline.
func (p *Printer) Line(format string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, format, args...)
	fmt.Fprint(p.w, "\n")
}

// Raw writes s verbatim, no newline added. Used for stream content that is
// already newline-terminated.
func (p *Printer) Raw(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	io.WriteString(p.w, s)
}

// Write implements io.Writer.
func (p *Printer) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.w.Write(b)
}
