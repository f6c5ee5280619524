package eval

import (
	"fmt"
	"strings"
)

// UndefinedIdentifierError is raised when a name does not resolve to anything
type UndefinedIdentifierError struct {
	Name string

	// Suggestions are similar visible names, best match first
	Suggestions []string
}

func (e *UndefinedIdentifierError) Error() string {
	msg := fmt.Sprintf("undefined identifier `%s`", e.Name)
	if len(e.Suggestions) > 0 {
		msg += "; did you mean `" + strings.Join(e.Suggestions, "`, `") + "`?"
	}

	return msg
}

// MemberSelectionError is raised when a member is selected from a value that
// has no members
type MemberSelectionError struct {
	Path string
	Kind string
}

func (e *MemberSelectionError) Error() string {
	return fmt.Sprintf("cannot select a member of `%s`: it is a %s", e.Path, e.Kind)
}
