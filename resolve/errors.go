package resolve

import "fmt"

// StaticThisError is raised when `this` is referenced in a static method that
// is not an extension method
type StaticThisError struct {
	TypeName string
}

func (e *StaticThisError) Error() string {
	msg := "'this' cannot be used in non-extension static method, which must name the first parameter as 'this'"
	if e.TypeName != "" {
		return fmt.Sprintf("%s (in type `%s`)", msg, e.TypeName)
	}

	return msg
}
