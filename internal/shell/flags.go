package shell

import (
	"errors"
	"io"

	"github.com/spf13/pflag"
)

// parseFlags runs a command's flag set over its arguments. Help requests
// print the flag usage through the shell's printer instead of stderr and
// stop the command without an error; the returned bool reports whether the
// caller should return immediately.
func (s *Shell) parseFlags(fs *pflag.FlagSet, args []string) (bool, error) {
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	err := fs.Parse(args)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, pflag.ErrHelp) {
		s.printer.Raw("Flags for " + fs.Name() + ":\n" + fs.FlagUsages())
		return true, nil
	}
	return true, err
}
