package cmdy

import (
	"fmt"
	"os"

	"github.com/google/shlex"
)

// ProcessArgs returns the arguments the current process was invoked with, with name in place of
// the program path. Passing the result to [Parse] with a root command called name works because
// a leading root name is ignored.
func ProcessArgs(name string) []string {
	args := make([]string, 0, len(os.Args))
	args = append(args, name)
	if len(os.Args) > 1 {
		args = append(args, os.Args[1:]...)
	}
	return args
}

// SplitLine splits a command line into arguments using shell-like quoting rules.
func SplitLine(line string) ([]string, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("failed to split command line: %w", err)
	}
	return args, nil
}

// ParseLine is like [Parse] but takes a whole command line, split with [SplitLine].
func ParseLine(root *Command, line string, opts *Options) (*Result, error) {
	args, err := SplitLine(line)
	if err != nil {
		return nil, err
	}
	return Parse(root, args, opts), nil
}
