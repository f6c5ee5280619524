package types

import "fmt"

// IllegalMemberAccessError is raised when a member exists but is not visible
// from the code accessing it.
type IllegalMemberAccessError struct {
	TypeName   string
	MemberName string
	Access     Accessibility
	Reason     string
}

func newIllegalMemberAccess(declared *ClassType, member *Member, reason string) *IllegalMemberAccessError {
	return &IllegalMemberAccessError{
		TypeName:   declared.Name,
		MemberName: member.Name,
		Access:     member.Access,
		Reason:     reason,
	}
}

func (e *IllegalMemberAccessError) Error() string {
	return fmt.Sprintf("cannot refer to the %s member `%s` of type `%s`: %s", e.Access, e.MemberName, e.TypeName, e.Reason)
}

// UnboundThisError is raised when the receiver is referenced but no receiver
// is bound.
type UnboundThisError struct{}

func (e *UnboundThisError) Error() string {
	return "cannot access to unbound 'this'"
}
