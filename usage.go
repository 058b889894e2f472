package cmdy

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// minCommandWidth is the narrowest the command name column gets.
const minCommandWidth = 7

// defaultGroup is the group name of ungrouped commands, listed without a label.
const defaultGroup = "default"

// DefaultUsage renders the help text of the resolved command:
//
//	# NAME #
//
//	Usage: root sub [OPTIONS] [COMMAND] [ARGUMENTS]
//
//	description
//
//	Options:
//	  -s, --name [string]   description
//	      --other           description
//
//	Management Commands:
//	  child     description
//
//	Run 'root sub --help' for more informations on a command.
//
// Options lists the global flags, then the command's own flags, then the help flag. Child
// commands are grouped by [Command.Group]; groups are listed in reverse order of first
// appearance and ungrouped commands come last. Details replace the closing hint when help was
// explicitly requested.
func DefaultUsage(r *Result) string {
	if r == nil || r.Command == nil {
		return ""
	}
	c := r.Command
	chain := r.Path()
	var globals []*Flag
	var footer string
	if r.opts != nil {
		globals = r.opts.GlobalFlags
		footer = r.opts.GlobalHelp
	}
	flags := slices.Concat(globals, c.Flags)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s #\n\nUsage: %s", strings.ToUpper(c.Name), chain)
	if len(flags) > 0 {
		b.WriteString(" [OPTIONS]")
	}
	if len(c.SubCommands) > 0 {
		b.WriteString(" [COMMAND]")
	}
	if c.AllowUnknownArgs {
		b.WriteString(" [ARGUMENTS]")
	}
	b.WriteString("\n\n" + c.Description)

	flags = append(flags, helpFlag)
	b.WriteString("\n\nOptions:\n")
	writeOptions(&b, flags)

	if len(c.SubCommands) > 0 {
		writeCommandGroups(&b, c.SubCommands)
	}

	if c.Details != "" && r.Help {
		b.WriteString("\n\nDetails:\n" + c.Details)
	} else {
		fmt.Fprintf(&b, "\n\nRun '%s --help' for more informations on a command.", chain)
	}
	if footer != "" {
		b.WriteString("\n\n" + footer)
	}
	return b.String()
}

func writeOptions(b *strings.Builder, flags []*Flag) {
	options := make([]string, len(flags))
	width := 0
	for i, f := range flags {
		name := strings.ToLower(f.Name)
		opt := "      --" + name
		if f.Shorthand != "" {
			opt = "  -" + f.Shorthand + ", --" + name
		}
		if f.Value != nil && len(f.Value.Kinds) > 0 {
			opt += " [" + joinKinds(f.Value.Kinds) + "]"
		}
		width = max(width, utf8.RuneCountInString(opt))
		options[i] = opt
	}
	lines := make([]string, len(flags))
	for i, opt := range options {
		lines[i] = fmt.Sprintf("%-*s%s", width+1, opt, flags[i].Description)
	}
	b.WriteString(strings.Join(lines, "\n"))
}

func writeCommandGroups(b *strings.Builder, commands []*Command) {
	groups := orderedmap.New[string, []*Command]()
	// Ungrouped commands are seeded first so they render last.
	groups.Set("", nil)
	for _, sub := range commands {
		group := sub.Group
		if group == defaultGroup {
			group = ""
		}
		cmds, _ := groups.Get(group)
		groups.Set(group, append(cmds, sub))
	}
	for pair := groups.Newest(); pair != nil; pair = pair.Prev() {
		if len(pair.Value) == 0 {
			continue
		}
		label := ""
		if pair.Key != "" {
			label = capitalize(pair.Key) + " "
		}
		b.WriteString("\n\n" + label + "Commands:\n")

		width := minCommandWidth
		for _, sub := range pair.Value {
			width = max(width, utf8.RuneCountInString(sub.Name))
		}
		lines := make([]string, len(pair.Value))
		for i, sub := range pair.Value {
			lines[i] = fmt.Sprintf("  %-*s%s", width+1, sub.Name, sub.Description)
		}
		b.WriteString(strings.Join(lines, "\n"))
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
