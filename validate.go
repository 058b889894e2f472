package cmdy

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("cmdname", func(fl validator.FieldLevel) bool {
		return validName(fl.Field().String())
	})
	_ = v.RegisterValidation("flagname", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		return validName(name) && !strings.Contains(name, "=")
	})
	_ = v.RegisterValidation("kind", func(fl validator.FieldLevel) bool {
		return Kind(fl.Field().String()).known()
	})
	return v
}

// validName reports whether name is a single word that cannot be mistaken for a flag.
func validName(name string) bool {
	if name == "" || strings.HasPrefix(name, "-") {
		return false
	}
	return strings.IndexFunc(name, unicode.IsSpace) < 0
}

// validateCommands walks the tree and checks every command and flag definition, including the
// global flags, which are checked once at the root.
func validateCommands(root *Command, globals []*Flag) error {
	for _, f := range globals {
		if err := validateFlag(f); err != nil {
			return &DefinitionError{Err: fmt.Errorf("global flag: %w", err)}
		}
	}
	return validateCommand(root, nil)
}

func validateCommand(c *Command, path []string) error {
	if c == nil {
		return &DefinitionError{Path: path, Err: errors.New("nil subcommand")}
	}
	if c.Name == "" {
		if len(path) == 0 {
			return &DefinitionError{Err: errors.New("root command has no name")}
		}
		return &DefinitionError{Path: path, Err: errors.New("subcommand has no name")}
	}
	currentPath := append(path[:len(path):len(path)], c.Name)
	if err := validate.Struct(c); err != nil {
		return &DefinitionError{Path: currentPath, Err: describe(err)}
	}
	for _, f := range c.Flags {
		if err := validateFlag(f); err != nil {
			return &DefinitionError{Path: currentPath, Err: err}
		}
	}
	// Command names and aliases are matched case-insensitively, so they must be unique that
	// way among siblings.
	owners := make(map[string]int)
	for i, sub := range c.SubCommands {
		if err := validateCommand(sub, currentPath); err != nil {
			return err
		}
		for _, name := range append([]string{sub.Name}, sub.Aliases...) {
			key := strings.ToLower(name)
			if owner, ok := owners[key]; ok && owner != i {
				return &DefinitionError{
					Path: currentPath,
					Err: fmt.Errorf("command name %q of %q is already used by %q",
						name, sub.Name, c.SubCommands[owner].Name),
				}
			}
			owners[key] = i
		}
	}
	return nil
}

func validateFlag(f *Flag) error {
	if f == nil {
		return errors.New("nil flag")
	}
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("flag %q: %w", f.Name, describe(err))
	}
	if f.Value != nil {
		if err := validate.Struct(f.Value); err != nil {
			return fmt.Errorf("flag %q: %w", f.Name, describe(err))
		}
	}
	return nil
}

// describe turns validator errors into a single readable error.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "cmdname", "flagname":
			msgs = append(msgs, fmt.Sprintf("name %q must be a single word not starting with '-'", fe.Value()))
		case "kind":
			msgs = append(msgs, fmt.Sprintf("unknown value kind %q", fe.Value()))
		case "len", "excludes":
			msgs = append(msgs, fmt.Sprintf("shorthand %q must be a single character other than '-'", fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
