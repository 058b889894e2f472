package cmdy

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
)

// ParseAndRun parses args against root and runs the result. A convenience function that
// combines [Parse] and [Result.Run] into a single call.
func ParseAndRun(
	ctx context.Context,
	root *Command,
	args []string,
	opts *Options,
	runOpts *RunOptions,
) error {
	return Parse(root, args, opts).Run(ctx, runOpts)
}

// RunOptions specifies options for running a parsed result.
type RunOptions struct {
	// Stdin, Stdout, and Stderr are the standard input, output, and error streams for the command.
	// If any of these are nil, the command will use the default streams ([os.Stdin], [os.Stdout],
	// and [os.Stderr], respectively). Help text is written to Stdout.
	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

// Run is the deferred action of a parse.
//
// In the help state it writes the usage text to Stdout and returns Err, which is nil unless
// parsing also failed. Otherwise, if parsing failed it returns Err without running anything.
// Otherwise it runs the flag effects, presence flags first and then value flags, each group
// ordered by ascending priority, and finally the command's Exec.
func (r *Result) Run(ctx context.Context, options *RunOptions) error {
	var defErr *DefinitionError
	if errors.As(r.Err, &defErr) {
		return r.Err
	}
	options = checkAndSetRunOptions(options)
	r.Stdin, r.Stdout, r.Stderr = options.Stdin, options.Stdout, options.Stderr

	if r.State() == StateHelp {
		if _, err := fmt.Fprintln(r.Stdout, r.Usage()); err != nil {
			return fmt.Errorf("failed to write help: %w", err)
		}
		return r.Err
	}
	if r.Err != nil {
		return r.Err
	}

	for _, e := range r.effects() {
		if err := e.fn(ctx, r, e.values); err != nil {
			return fmt.Errorf("flag %q: %w", "--"+e.name, err)
		}
	}
	return r.Command.Exec(ctx, r)
}

type effect struct {
	name     string
	priority int
	values   []string
	fn       EffectFunc
}

// effects returns the effects of all flags that were set: presence flags in first-seen order,
// then value flags in first-seen order, each group stably sorted by priority.
func (r *Result) effects() []effect {
	var presence, value []effect
	for pair := r.present.Oldest(); pair != nil; pair = pair.Next() {
		f := pair.Value.decl
		if f.Effect == nil {
			continue
		}
		presence = append(presence, effect{name: pair.Key, priority: f.Priority, fn: f.Effect})
	}
	for pair := r.values.Oldest(); pair != nil; pair = pair.Next() {
		f := r.flag(pair.Key)
		if f == nil || f.decl.Effect == nil {
			continue
		}
		value = append(value, effect{
			name:     pair.Key,
			priority: f.decl.Priority,
			values:   slices.Clone(pair.Value),
			fn:       f.decl.Effect,
		})
	}
	byPriority := func(a, b effect) int { return cmp.Compare(a.priority, b.priority) }
	slices.SortStableFunc(presence, byPriority)
	slices.SortStableFunc(value, byPriority)
	return append(presence, value...)
}

func checkAndSetRunOptions(opt *RunOptions) *RunOptions {
	if opt == nil {
		opt = &RunOptions{}
	}
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}
	return opt
}
