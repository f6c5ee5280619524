package deps

import (
	"fmt"
	"strings"
)

// CycleKind indicates what participates in a dependency cycle
type CycleKind int

// Enumeration of cycle kinds
const (
	CycleTypes   CycleKind = iota // types of a batch depending on each other
	CycleScripts                  // scripts including each other
)

// CyclicDependencyError is raised when a dependency graph contains a cycle.
// Path lists the cycle in visitation order and ends with a repeat of its
// first element.
type CyclicDependencyError struct {
	Kind CycleKind
	Path []string
}

// NewCyclicDependencyError creates a new cycle error from the current
// traversal path and the name that closed the cycle.  The path is trimmed so
// it starts at the first occurrence of the closing name.
func NewCyclicDependencyError(kind CycleKind, path []string, closing string) *CyclicDependencyError {
	start := 0
	for i, name := range path {
		if name == closing {
			start = i
			break
		}
	}

	cycle := make([]string, 0, len(path)-start+1)
	cycle = append(cycle, path[start:]...)
	cycle = append(cycle, closing)

	return &CyclicDependencyError{Kind: kind, Path: cycle}
}

func (e *CyclicDependencyError) Error() string {
	what := "class types"
	if e.Kind == CycleScripts {
		what = "scripts"
	}

	return fmt.Sprintf("cyclic dependency detected among %s: %s", what, strings.Join(e.Path, " -> "))
}

// DuplicateNodeError is raised when two units of one batch share a name
type DuplicateNodeError struct {
	Name string
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("type `%s` is declared more than once in the batch", e.Name)
}
