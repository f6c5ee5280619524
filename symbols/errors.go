package symbols

import "fmt"

// DuplicateDefinitionError is raised when a name is defined twice in the same
// scope or a type is added twice to the type table.
type DuplicateDefinitionError struct {
	Name string
	What string // "variable" or "type"
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("%s `%s` is already defined", e.What, e.Name)
}

// IllegalAttributeUsageError is raised when code evaluated in an attribute
// initializer refers to a type that is not allowed there.
type IllegalAttributeUsageError struct {
	TypeName string
}

func (e *IllegalAttributeUsageError) Error() string {
	return fmt.Sprintf(
		"type `%s` cannot be used in an attribute initializer: only built-in types, enums, `System.AttributeTarget` and one-dimensional arrays of them are allowed",
		e.TypeName,
	)
}

// FinalizedTypeRemovalError is raised when a loader tries to roll back a type
// that has already been published.
type FinalizedTypeRemovalError struct {
	TypeName string
}

func (e *FinalizedTypeRemovalError) Error() string {
	return fmt.Sprintf("type `%s` is already finalized and cannot be removed", e.TypeName)
}
