package cmdy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind identifies the kind of a [ParseError]. It implements error so it can be used as a
// target for [errors.Is]:
//
//	if errors.Is(r.Err, cmdy.ErrUnknownFlag) { ... }
type ErrorKind int

const (
	ErrUnknownFlag ErrorKind = iota + 1
	ErrUnknownShorthand
	ErrMissingValue
	ErrTooManyValues
	ErrUnterminatedQuote
	ErrInvalidValue
	ErrUnknownArgument
	ErrRequiredFlag
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnknownFlag:
		return "unknown flag"
	case ErrUnknownShorthand:
		return "unknown shorthand flag"
	case ErrMissingValue:
		return "missing value"
	case ErrTooManyValues:
		return "too many values"
	case ErrUnterminatedQuote:
		return "unterminated quoted value"
	case ErrInvalidValue:
		return "invalid value"
	case ErrUnknownArgument:
		return "unknown command argument"
	case ErrRequiredFlag:
		return "required flag not set"
	default:
		return "unknown error"
	}
}

func (k ErrorKind) Error() string {
	return k.String()
}

// ParseError is the error recorded on a [Result] when the arguments do not fit the command tree.
type ParseError struct {
	Kind ErrorKind

	// Flag is the flag name as written by the user (without dashes) for flag errors, or the
	// canonical name for required flags.
	Flag string

	// Value is the offending value or argument, if any.
	Value string

	// Kinds are the accepted kinds for ErrInvalidValue.
	Kinds []Kind

	// Suggestions are similar known names, for unknown flags and arguments.
	Suggestions []string
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ErrUnknownFlag:
		return fmt.Sprintf("Unknown flag: %q", "--"+e.Flag)
	case ErrUnknownShorthand:
		return fmt.Sprintf("Unknown shorthand flag: %q", "-"+e.Flag)
	case ErrMissingValue:
		return fmt.Sprintf("Missing value for flag: %q", "--"+e.Flag)
	case ErrTooManyValues:
		return fmt.Sprintf("Too many values for flag: %q", "--"+e.Flag)
	case ErrUnterminatedQuote:
		return fmt.Sprintf("Unterminated quoted value for flag: %q", "--"+e.Flag)
	case ErrInvalidValue:
		return fmt.Sprintf("Invalid value for flag %q: %q (expected %s)", "--"+e.Flag, e.Value, joinKinds(e.Kinds))
	case ErrUnknownArgument:
		return fmt.Sprintf("Unknown command argument: %q", e.Value)
	case ErrRequiredFlag:
		return "Flag '" + e.Flag + "' is required but not set!"
	default:
		return e.Kind.String()
	}
}

// Is reports whether target is the same [ErrorKind] as e.
func (e *ParseError) Is(target error) bool {
	var kind ErrorKind
	if errors.As(target, &kind) {
		return e.Kind == kind
	}
	return false
}

// DefinitionError is recorded on a [Result] when the command tree itself is invalid, for
// example a command without a name. It is a programming error rather than a user error.
type DefinitionError struct {
	// Path is the command path where the problem was found.
	Path []string
	Err  error
}

func (e *DefinitionError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("invalid command tree: %v", e.Err)
	}
	return fmt.Sprintf("invalid command tree at %q: %v", strings.Join(e.Path, " "), e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}
