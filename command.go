package cmdy

import (
	"context"
	"strings"
)

// Command represents a CLI command or subcommand within the application's command hierarchy.
//
// A command tree is static declarative data. [Parse] never modifies it, so the same tree may be
// parsed any number of times with different arguments.
type Command struct {
	// Name is always a single word representing the command's name. It is matched
	// case-insensitively against the arguments and shown in help text.
	Name string `validate:"required,cmdname"`

	// Description is shown below the usage line and next to the command in its parent's command
	// list.
	Description string

	// Aliases are alternative names the command can be invoked with. Names and aliases must be
	// unique among siblings, ignoring case.
	Aliases []string `validate:"dive,cmdname"`

	// Group is an optional label used to group the command in its parent's help text. "default"
	// is the same as no group.
	Group string

	// Details is additional text shown when help for this command is explicitly requested.
	Details string

	// SubCommands is a list of nested commands that exist under this command.
	SubCommands []*Command `validate:"-"`

	// Flags holds the command-specific flag definitions. Global flags from [Options] are added
	// to these at parse time.
	Flags []*Flag `validate:"-"`

	// AllowUnknownArgs makes bare tokens that do not address a subcommand positional arguments
	// instead of an error.
	AllowUnknownArgs bool

	// AllowUnknownFlags makes unknown long flags and unknown shorthand bundles positional
	// arguments instead of an error.
	AllowUnknownFlags bool

	// Exec defines the command's execution logic. A command without Exec is a help-only node:
	// resolving it always renders help text.
	Exec func(ctx context.Context, r *Result) error
}

// EffectFunc is a side effect attached to a flag. It runs before the command's Exec when the
// flag was set, either by the user or through its default. values is nil for presence flags.
type EffectFunc func(ctx context.Context, r *Result, values []string) error

// Flag is a flag definition.
//
// Flags come in two shapes. A presence flag (Value is nil) is a toggle: passing it is the whole
// signal. A value flag (Value is set) receives exactly one value per occurrence and may be
// repeated, collecting an ordered list of values.
type Flag struct {
	// Name is the long name, matched case-insensitively as --name.
	Name string `validate:"required,flagname"`

	// Description is shown in the options section of the help text.
	Description string

	// Shorthand is an optional single character, matched case-sensitively as -s. Several
	// shorthands can be bundled: -abc.
	Shorthand string `validate:"omitempty,len=1,excludes=-"`

	// Aliases are alternative long names.
	Aliases []string `validate:"dive,flagname"`

	// Priority orders flag effects. Lower runs first, ties keep declaration order.
	Priority int

	// Effect is an optional side effect run before the command's Exec.
	Effect EffectFunc `validate:"-"`

	// Value makes this a value flag. Leave nil for a presence flag.
	Value *ValueSpec `validate:"-"`
}

// ValueSpec describes the values accepted by a value flag.
type ValueSpec struct {
	// Kinds lists the accepted value kinds. A value must be accepted by at least one of them.
	Kinds []Kind `validate:"required,min=1,dive,kind"`

	// Default is used when the flag is not passed. Only strings, booleans and numbers count as
	// defaults; anything else is treated as no default.
	Default any

	// Required reports an error when the flag is not passed and has no default.
	Required bool
}

// Switch returns a presence flag.
func Switch(name, description string) *Flag {
	return &Flag{Name: name, Description: description}
}

// Option returns a value flag accepting the given kinds. With no kinds the flag accepts any
// string.
func Option(name, description string, kinds ...Kind) *Flag {
	if len(kinds) == 0 {
		kinds = []Kind{KindString}
	}
	return &Flag{Name: name, Description: description, Value: &ValueSpec{Kinds: kinds}}
}

// IsValue reports whether f is a value flag.
func (f *Flag) IsValue() bool {
	return f.Value != nil
}

func getCommandPath(commands []*Command) string {
	var commandPath []string
	for _, c := range commands {
		commandPath = append(commandPath, c.Name)
	}
	return strings.Join(commandPath, " ")
}
