package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirmReader asks y/N questions on the shell's own terminal, outside of
// readline. Destructive commands call it once per object.
type confirmReader struct {
	in  *bufio.Reader
	out io.Writer
}

func newConfirmReader(in io.Reader, out io.Writer) *confirmReader {
	return &confirmReader{in: bufio.NewReader(in), out: out}
}

// ask prints the prompt and reads one line. Only a trimmed, case-insensitive
// "y" or "yes" confirms; everything else, including a read failure, is a
// decline.
func (c *confirmReader) ask(prompt string) bool {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
