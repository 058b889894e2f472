package cmdy

import "strings"

// helpFlag is the implicit flag appended to every effective flag set.
var helpFlag = &Flag{
	Name:        "help",
	Shorthand:   "h",
	Description: "Show the command help dialog.",
}

// effectiveFlag is a normalized view of a declared flag. The declaration itself is never
// modified.
type effectiveFlag struct {
	decl    *Flag
	name    string
	aliases []string
	global  bool
}

func newEffectiveFlag(f *Flag, global bool) *effectiveFlag {
	ef := &effectiveFlag{
		decl:   f,
		name:   strings.ToLower(f.Name),
		global: global,
	}
	for _, a := range f.Aliases {
		ef.aliases = append(ef.aliases, strings.ToLower(a))
	}
	return ef
}

func (f *effectiveFlag) is(name string) bool {
	if f.name == name {
		return true
	}
	for _, a := range f.aliases {
		if a == name {
			return true
		}
	}
	return false
}

func (f *effectiveFlag) isValue() bool {
	return f.decl.Value != nil
}

// node is a command with its effective flag set resolved.
type node struct {
	cmd      *Command
	names    []string
	flags    []*effectiveFlag
	children []*node
}

// normalize builds a fresh effective tree for one parse call. Every node carries its own flags,
// then the global flags, then the help flag.
func normalize(c *Command, globals []*Flag) *node {
	n := &node{cmd: c}
	n.names = append(n.names, strings.ToLower(c.Name))
	for _, a := range c.Aliases {
		n.names = append(n.names, strings.ToLower(a))
	}
	n.flags = make([]*effectiveFlag, 0, len(c.Flags)+len(globals)+1)
	for _, f := range c.Flags {
		n.flags = append(n.flags, newEffectiveFlag(f, false))
	}
	for _, f := range globals {
		n.flags = append(n.flags, newEffectiveFlag(f, true))
	}
	n.flags = append(n.flags, newEffectiveFlag(helpFlag, false))
	for _, sub := range c.SubCommands {
		n.children = append(n.children, normalize(sub, globals))
	}
	return n
}

// lookup returns the first flag whose name or alias equals name, which must be lowercase.
func (n *node) lookup(name string) *effectiveFlag {
	for _, f := range n.flags {
		if f.is(name) {
			return f
		}
	}
	return nil
}

// lookupShorthand returns the first flag with the given shorthand. Shorthands are case-sensitive.
func (n *node) lookupShorthand(s string) *effectiveFlag {
	for _, f := range n.flags {
		if f.decl.Shorthand != "" && f.decl.Shorthand == s {
			return f
		}
	}
	return nil
}

func (n *node) child(name string) *node {
	name = strings.ToLower(name)
	for _, c := range n.children {
		for _, cn := range c.names {
			if cn == name {
				return c
			}
		}
	}
	return nil
}

// childNames returns the names and aliases of all children, for suggestions.
func (n *node) childNames() []string {
	var names []string
	for _, c := range n.children {
		names = append(names, c.names...)
	}
	return names
}

func (n *node) flagNames() []string {
	var names []string
	for _, f := range n.flags {
		names = append(names, f.name)
		names = append(names, f.aliases...)
	}
	return names
}
