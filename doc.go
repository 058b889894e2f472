// Package cmdy parses command-line arguments against a declared tree of commands and flags.
//
// [Parse] first descends the command tree along the leading arguments that name subcommands,
// then scans the rest for long flags (--name, --name=value), shorthand bundles (-abc) and
// positional arguments. Value flags may be repeated and collect their values in order; a value
// split by the shell on spaces can be kept together with double quotes. Unset flags fall back to
// their defaults, and missing required flags are reported.
//
// The returned [Result] is either executable or carries exactly one error. A command without an
// Exec, or any command when help is requested, renders usage text instead of running. Call
// [Result.Run] to perform whichever applies.
package cmdy
