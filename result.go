package cmdy

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// HelpState is the state of the help state machine.
type HelpState int

const (
	// StateNormal means the resolved command's Exec runs.
	StateNormal HelpState = iota
	// StateHelp means usage text is rendered instead of running anything.
	StateHelp
)

func (s HelpState) String() string {
	if s == StateHelp {
		return "help"
	}
	return "normal"
}

// Result is the outcome of [Parse]. It is always non-nil. When Err is set the command is not
// executable and only help or the error can be displayed.
type Result struct {
	// Command is the resolved command.
	Command *Command

	// Parents is the chain of commands from the root to Command, both included.
	Parents []*Command

	// Args contains the positional arguments in the order they were given.
	Args []string

	// Err is the first error encountered, if any. It is a [*ParseError] for argument problems
	// and a [*DefinitionError] for an invalid command tree.
	Err error

	// Help reports whether help was explicitly requested.
	Help bool

	// Empty reports whether the resolved command has no Exec.
	Empty bool

	// Standard I/O streams, set by [Result.Run].
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	present *orderedmap.OrderedMap[string, *effectiveFlag]
	values  *orderedmap.OrderedMap[string, []string]
	node    *node
	opts    *Options
}

func newResult(opts *Options) *Result {
	return &Result{
		present: orderedmap.New[string, *effectiveFlag](),
		values:  orderedmap.New[string, []string](),
		opts:    opts,
	}
}

// State returns [StateHelp] when help was requested or the resolved command has nothing to
// execute, and [StateNormal] otherwise. A recorded error does not change the state.
func (r *Result) State() HelpState {
	if r.Help || r.Empty {
		return StateHelp
	}
	return StateNormal
}

// Present reports whether the presence flag name (or one of its aliases) was passed.
func (r *Result) Present(name string) bool {
	f := r.flag(name)
	if f == nil {
		return false
	}
	_, ok := r.present.Get(f.name)
	return ok
}

// Has reports whether the flag was set at all: passed as a presence flag, or holding at least
// one value, including a default.
func (r *Result) Has(name string) bool {
	return r.Present(name) || len(r.Values(name)) > 0
}

// Values returns the values collected for the value flag name, in the order they were given.
func (r *Result) Values(name string) []string {
	f := r.flag(name)
	if f == nil {
		return nil
	}
	v, _ := r.values.Get(f.name)
	return slices.Clone(v)
}

// Value returns the last value given for name, or the empty string.
func (r *Result) Value(name string) string {
	v := r.Values(name)
	if len(v) == 0 {
		return ""
	}
	return v[len(v)-1]
}

// Flags returns the names of the presence flags that were passed, in first-seen order.
func (r *Result) Flags() []string {
	names := make([]string, 0, r.present.Len())
	for pair := r.present.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// ValueFlags returns the names of the value flags holding values, in first-seen order.
func (r *Result) ValueFlags() []string {
	names := make([]string, 0, r.values.Len())
	for pair := r.values.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Path returns the space-joined names of Parents.
func (r *Result) Path() string {
	return getCommandPath(r.Parents)
}

// Usage returns the help text for the resolved command.
func (r *Result) Usage() string {
	if r.opts != nil && r.opts.UsageFunc != nil {
		return r.opts.UsageFunc(r)
	}
	return DefaultUsage(r)
}

func (r *Result) flag(name string) *effectiveFlag {
	if r.node == nil {
		return nil
	}
	return r.node.lookup(strings.ToLower(name))
}

func (r *Result) markPresent(f *effectiveFlag) {
	if _, ok := r.present.Get(f.name); !ok {
		r.present.Set(f.name, f)
	}
}

func (r *Result) addValue(f *effectiveFlag, value string) {
	v, _ := r.values.Get(f.name)
	r.values.Set(f.name, append(v, value))
}

func (r *Result) fail(err error) {
	if r.Err == nil {
		r.Err = err
	}
}

// LookupFlag retrieves a flag of the resolved command by name and converts it to T. Supported
// types are bool, string, []string, int, int64, float64, [time.Time] and [time.Duration]. Value
// flags convert their last value; a flag without values returns the zero value. A bool for a
// presence flag reports whether it was passed.
//
// An error is returned when the flag is not part of the resolved command or the value cannot be
// converted.
func LookupFlag[T any](r *Result, name string) (T, error) {
	var out T
	f := r.flag(name)
	if f == nil {
		return out, fmt.Errorf("flag %q not found in command %q", "--"+name, r.Path())
	}
	vals, _ := r.values.Get(f.name)
	var last string
	if len(vals) > 0 {
		last = vals[len(vals)-1]
	}
	fail := func(err error) (T, error) {
		return out, fmt.Errorf("flag %q: cannot convert %q to %T: %w", "--"+f.name, last, out, err)
	}
	switch p := any(&out).(type) {
	case *bool:
		if !f.isValue() {
			_, *p = r.present.Get(f.name)
			return out, nil
		}
		if last == "" {
			return out, nil
		}
		b, err := strconv.ParseBool(last)
		if err != nil {
			return fail(err)
		}
		*p = b
	case *string:
		*p = last
	case *[]string:
		*p = slices.Clone(vals)
	case *int:
		if last == "" {
			return out, nil
		}
		n, err := strconv.Atoi(last)
		if err != nil {
			return fail(err)
		}
		*p = n
	case *int64:
		if last == "" {
			return out, nil
		}
		n, err := strconv.ParseInt(last, 10, 64)
		if err != nil {
			return fail(err)
		}
		*p = n
	case *float64:
		if last == "" {
			return out, nil
		}
		n, err := strconv.ParseFloat(last, 64)
		if err != nil {
			return fail(err)
		}
		*p = n
	case *time.Time:
		if last == "" {
			return out, nil
		}
		t, err := dateparse.ParseAny(last)
		if err != nil {
			return fail(err)
		}
		*p = t
	case *time.Duration:
		if last == "" {
			return out, nil
		}
		d, err := time.ParseDuration(last)
		if err != nil {
			return fail(err)
		}
		*p = d
	default:
		return out, fmt.Errorf("flag %q: unsupported type %T", "--"+f.name, out)
	}
	return out, nil
}

// GetFlag is like [LookupFlag] but panics on error. Example usage:
//
//	verbose := cmdy.GetFlag[bool](r, "verbose")
//	count := cmdy.GetFlag[int](r, "count")
//	tags := cmdy.GetFlag[[]string](r, "tag")
//
// Asking for a flag the command does not declare is a programming error, and it's better to fail
// loud and early than to silently carry on with a zero value.
func GetFlag[T any](r *Result, name string) T {
	v, err := LookupFlag[T](r, name)
	if err != nil {
		panic(fmt.Sprintf("internal error: %v", err))
	}
	return v
}
