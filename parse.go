package cmdy

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/mfridman/cmdy/pkg/suggest"
)

// Options configures a [Parse] call. The zero value is ready to use.
type Options struct {
	// GlobalFlags are added to the effective flag set of every command, after the command's own
	// flags.
	GlobalFlags []*Flag

	// HelpWords are the tokens that request help, compared case-insensitively. Defaults to
	// "-h" and "--help".
	HelpWords []string

	// GlobalHelp is an optional footer appended to every help text.
	GlobalHelp string

	// UsageFunc renders the help text. Defaults to [DefaultUsage].
	UsageFunc func(r *Result) string

	// Logger receives debug records about the parse. Defaults to discarding everything.
	Logger *slog.Logger
}

var defaultHelpWords = []string{"-h", "--help"}

func checkAndSetOptions(opts *Options) *Options {
	var o Options
	if opts != nil {
		o = *opts
	}
	if len(o.HelpWords) == 0 {
		o.HelpWords = defaultHelpWords
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &o
}

// Parse resolves args against the command tree rooted at root and returns the result. It never
// returns nil; problems are recorded in [Result.Err].
//
// Parsing happens in two phases. Leading arguments that name a subcommand (or one of its
// aliases) descend into it; the first argument that does not stops the descent for good. The
// remaining arguments are scanned for flags and positional arguments against the resolved
// command's effective flag set: its own flags, the global flags and the implicit help flag.
//
// If the first argument equals the root command's name it is ignored, so os.Args can be passed
// with the program name in place. See [ProcessArgs].
func Parse(root *Command, args []string, opts *Options) *Result {
	opts = checkAndSetOptions(opts)
	r := newResult(opts)
	if root == nil {
		r.fail(&DefinitionError{Err: errors.New("root command is nil")})
		return r
	}
	r.Command = root
	r.Parents = []*Command{root}
	if err := validateCommands(root, opts.GlobalFlags); err != nil {
		opts.Logger.Debug("invalid command tree", "error", err)
		r.fail(err)
		return r
	}

	p := &parser{
		r:         r,
		log:       opts.Logger,
		helpWords: make([]string, 0, len(opts.HelpWords)),
	}
	for _, w := range opts.HelpWords {
		p.helpWords = append(p.helpWords, strings.ToLower(w))
	}

	args = slices.Clone(args)
	if len(args) > 0 && strings.EqualFold(args[0], root.Name) {
		args = args[1:]
	}
	toks := newTokenStream(args)

	current := p.descend(normalize(root, opts.GlobalFlags), toks)
	r.node = current
	r.Command = current.cmd
	r.Empty = current.cmd.Exec == nil

	p.scan(current, toks)
	if r.Err == nil {
		p.resolveDefaults(current)
	}
	_, r.Help = r.present.Get(helpFlag.Name)

	p.log.Debug("parsed",
		"command", r.Path(),
		"args", r.Args,
		"flags", r.Flags(),
		"state", r.State().String(),
		"error", r.Err,
	)
	return r
}

type parser struct {
	r         *Result
	log       *slog.Logger
	helpWords []string
}

// descend walks leading tokens down the command tree. It stops at the first token that is not
// the name or alias of a child of the current command.
func (p *parser) descend(n *node, toks *tokenStream) *node {
	for {
		tok, ok := toks.peek()
		if !ok {
			return n
		}
		child := n.child(tok)
		if child == nil {
			return n
		}
		toks.next()
		p.r.Parents = append(p.r.Parents, child.cmd)
		p.log.Debug("descend", "token", tok, "command", child.cmd.Name)
		n = child
	}
}

// scan classifies the remaining tokens. After the first error only help words are still
// recognized.
func (p *parser) scan(n *node, toks *tokenStream) {
	for toks.len() > 0 {
		tok, _ := toks.next()
		if tok == "" {
			continue
		}
		if p.isHelpWord(tok) {
			p.r.markPresent(n.flags[len(n.flags)-1])
			continue
		}
		if p.r.Err != nil {
			continue
		}
		switch {
		case strings.HasPrefix(tok, "--"):
			p.long(n, tok, toks)
		case strings.HasPrefix(tok, "-"):
			p.short(n, tok, toks)
		default:
			p.positional(n, tok)
		}
	}
}

func (p *parser) isHelpWord(tok string) bool {
	return slices.Contains(p.helpWords, strings.ToLower(tok))
}

func (p *parser) long(n *node, tok string, toks *tokenStream) {
	// The whole token is lowercased, so a value given after "=" is lowercased too.
	name, value, _ := strings.Cut(strings.ToLower(tok[2:]), "=")

	f := n.lookup(name)
	if f == nil {
		if n.cmd.AllowUnknownFlags {
			p.log.Debug("unknown flag kept as argument", "token", tok)
			p.r.Args = append(p.r.Args, tok)
			return
		}
		p.fail(&ParseError{
			Kind:        ErrUnknownFlag,
			Flag:        name,
			Suggestions: suggest.FindSimilar(name, n.flagNames(), 3),
		})
		return
	}

	if !f.isValue() {
		if value != "" {
			p.fail(&ParseError{Kind: ErrTooManyValues, Flag: f.name, Value: value})
			return
		}
		p.log.Debug("flag", "name", f.name, "global", f.global)
		p.r.markPresent(f)
		return
	}

	if value == "" {
		if next, ok := toks.next(); ok {
			value = next
		}
	}
	if value == "" {
		p.fail(&ParseError{Kind: ErrMissingValue, Flag: f.name})
		return
	}
	if strings.HasPrefix(value, `"`) {
		parts := []string{value}
		for !closesQuote(parts) {
			next, ok := toks.next()
			if !ok {
				p.fail(&ParseError{Kind: ErrUnterminatedQuote, Flag: f.name, Value: strings.Join(parts, " ")})
				return
			}
			parts = append(parts, next)
		}
		value = strings.Join(parts, " ")
		value = value[1 : len(value)-1]
	}
	if kinds := f.decl.Value.Kinds; !acceptsAny(kinds, value) {
		p.fail(&ParseError{Kind: ErrInvalidValue, Flag: f.name, Value: value, Kinds: kinds})
		return
	}
	p.log.Debug("flag", "name", f.name, "global", f.global, "value", value)
	p.r.addValue(f, value)
}

// closesQuote reports whether the last collected part ends the quoted value. The opening part
// closes it only when it is more than the lone quote character.
func closesQuote(parts []string) bool {
	last := parts[len(parts)-1]
	if len(parts) == 1 {
		return len(last) > 1 && strings.HasSuffix(last, `"`)
	}
	return strings.HasSuffix(last, `"`)
}

// short expands a shorthand bundle into long flag tokens processed next. Characters are resolved
// right to left, so the rightmost unknown character is the one reported.
func (p *parser) short(n *node, tok string, toks *tokenStream) {
	chars := []rune(tok[1:])
	expanded := make([]string, len(chars))
	for i := len(chars) - 1; i >= 0; i-- {
		f := n.lookupShorthand(string(chars[i]))
		if f == nil {
			if n.cmd.AllowUnknownFlags {
				p.log.Debug("unknown shorthand kept as argument", "token", tok)
				p.r.Args = append(p.r.Args, tok)
				return
			}
			p.fail(&ParseError{Kind: ErrUnknownShorthand, Flag: string(chars[i])})
			return
		}
		expanded[i] = "--" + f.name
	}
	toks.unshift(expanded...)
}

func (p *parser) positional(n *node, tok string) {
	if n.cmd.AllowUnknownArgs {
		p.r.Args = append(p.r.Args, tok)
		return
	}
	p.fail(&ParseError{
		Kind:        ErrUnknownArgument,
		Value:       tok,
		Suggestions: suggest.FindSimilar(tok, n.childNames(), 3),
	})
}

// resolveDefaults fills unset flags with their defaults and reports the first required flag
// that is still missing. Only the first flag of each name is considered.
func (p *parser) resolveDefaults(n *node) {
	seen := make(map[string]bool, len(n.flags))
	for _, f := range n.flags {
		if seen[f.name] {
			continue
		}
		seen[f.name] = true
		if !f.isValue() {
			continue
		}
		if v, _ := p.r.values.Get(f.name); len(v) > 0 {
			continue
		}
		if _, ok := p.r.present.Get(f.name); ok {
			continue
		}
		if s, ok := formatDefault(f.decl.Value.Default); ok {
			p.log.Debug("default", "name", f.name, "value", s)
			p.r.values.Set(f.name, []string{s})
			continue
		}
		if f.decl.Value.Required {
			p.fail(&ParseError{Kind: ErrRequiredFlag, Flag: f.name})
			return
		}
	}
}

func (p *parser) fail(err *ParseError) {
	p.log.Debug("parse error", "kind", err.Kind.String(), "error", err.Error())
	p.r.fail(err)
}
