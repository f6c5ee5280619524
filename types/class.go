package types

import (
	"jse/common"
)

// MemberKind is the kind of a class member
type MemberKind int

// Enumeration of member kinds
const (
	MemberField MemberKind = iota
	MemberMethod
)

// Member is a field or method declared by a class type.
type Member struct {
	Name   string
	Kind   MemberKind
	Access Accessibility
	Static bool

	// Params are the parameter names of a method.  An extension method is a
	// static method whose first parameter is named `this`.
	Params []string

	// Owner is the type that declares the member
	Owner *ClassType
}

// IsExtension returns whether or not the member is an extension method
func (m *Member) IsExtension() bool {
	return m.Kind == MemberMethod && m.Static && len(m.Params) > 0 && m.Params[0] == common.KeywordThis
}

// ClassType is the loaded metadata of a compound type: a class, interface,
// enum or attribute.
type ClassType struct {
	// Name is the fully-qualified name of the type
	Name string

	// Module is the name of the module declaring the type.  Built-in types have
	// no module.
	Module string

	Parent     *ClassType
	Interfaces []*ClassType

	Attribute bool
	BuiltIn   bool
	Enum      bool

	// Dimensions is non-zero for array types; ElementType is then set
	Dimensions  int
	ElementType *ClassType

	// members is the ordered list of all members declared by this type
	members []*Member
}

// NewClassType creates a new class type with the given parent
func NewClassType(name, module string, parent *ClassType) *ClassType {
	return &ClassType{Name: name, Module: module, Parent: parent}
}

// NewArrayType creates a new array type of the given element type
func NewArrayType(elem *ClassType, dims int) *ClassType {
	name := elem.Name
	for i := 0; i < dims; i++ {
		name += "[]"
	}

	return &ClassType{Name: name, Module: elem.Module, Dimensions: dims, ElementType: elem, BuiltIn: true}
}

// SimpleName returns the unqualified name of the type
func (ct *ClassType) SimpleName() string {
	return common.SimpleName(ct.Name)
}

func (ct *ClassType) String() string {
	return ct.Name
}

// AddField declares a new field
func (ct *ClassType) AddField(name string, access Accessibility, static bool) *Member {
	m := &Member{Name: name, Kind: MemberField, Access: access, Static: static, Owner: ct}
	ct.members = append(ct.members, m)
	return m
}

// AddMethod declares a new method.  Overloads are declared by adding several
// methods with the same name.
func (ct *ClassType) AddMethod(name string, access Accessibility, static bool, params ...string) *Member {
	m := &Member{Name: name, Kind: MemberMethod, Access: access, Static: static, Params: params, Owner: ct}
	ct.members = append(ct.members, m)
	return m
}

// Members returns all the members declared directly by this type
func (ct *ClassType) Members() []*Member {
	return ct.members
}

// OwnMembers returns the members declared directly by this type with the given
// name and staticness
func (ct *ClassType) OwnMembers(name string, static bool) []*Member {
	var found []*Member
	for _, m := range ct.members {
		if m.Name == name && m.Static == static {
			found = append(found, m)
		}
	}

	return found
}

// FindMembers returns the members of the nearest type in the inheritance chain
// (starting with this type) that declares a member of the given name.  All
// returned members share the same owner.
func (ct *ClassType) FindMembers(name string, static bool) []*Member {
	for t := ct; t != nil; t = t.Parent {
		if found := t.OwnMembers(name, static); len(found) > 0 {
			return found
		}
	}

	return nil
}

// MemberNames returns the names of all members visible through this type.  It
// is used for diagnostics.
func (ct *ClassType) MemberNames(static bool) []string {
	seen := make(map[string]struct{})
	var names []string

	for t := ct; t != nil; t = t.Parent {
		for _, m := range t.members {
			if m.Static != static || m.Access == Hidden {
				continue
			}

			if _, ok := seen[m.Name]; !ok {
				seen[m.Name] = struct{}{}
				names = append(names, m.Name)
			}
		}
	}

	return names
}

// IsDerivedFrom returns whether or not this type is a subtype of other,
// through its parent chain or its interfaces.  includeSelf makes the type
// count as derived from itself.
func (ct *ClassType) IsDerivedFrom(other *ClassType, includeSelf bool) bool {
	if other == nil {
		return false
	}

	if ct == other {
		return includeSelf
	}

	for _, iface := range ct.Interfaces {
		if iface.IsDerivedFrom(other, true) {
			return true
		}
	}

	if ct.Parent != nil {
		return ct.Parent.IsDerivedFrom(other, true)
	}

	return false
}
