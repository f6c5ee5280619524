package values

import (
	"jse/types"

	"github.com/pkg/errors"
)

// TypeValue is the runtime representation of a loaded type.  It holds the
// storage cells of the type's static fields.
type TypeValue struct {
	typ     *types.ClassType
	parent  *TypeValue
	statics map[string]*RefValue

	annotations []*Annotation
}

// Annotation is an attribute applied to a type along with its evaluated
// arguments
type Annotation struct {
	Attribute *types.ClassType
	Args      []Value
}

// NewTypeValue creates the type value of a class type.  parent is the type
// value of the class's parent and may be nil.
func NewTypeValue(t *types.ClassType, parent *TypeValue) *TypeValue {
	tv := &TypeValue{
		typ:     t,
		parent:  parent,
		statics: make(map[string]*RefValue),
	}

	for _, m := range t.Members() {
		if m.Kind == types.MemberField && m.Static {
			tv.statics[m.Name] = NewRef(Null)
		}
	}

	return tv
}

func (*TypeValue) Kind() Kind { return KindType }

func (tv *TypeValue) Deref() Value { return tv }

func (tv *TypeValue) String() string {
	return "type " + tv.typ.Name
}

// Type returns the class type represented by the value
func (tv *TypeValue) Type() *types.ClassType {
	return tv.typ
}

// Parent returns the type value of the parent type or nil
func (tv *TypeValue) Parent() *TypeValue {
	return tv.parent
}

// SetParent links the type value to the type value of its parent.  The loader
// uses it when a batch adds a type before its parent.
func (tv *TypeValue) SetParent(parent *TypeValue) {
	tv.parent = parent
}

// Annotate records an attribute applied to the type
func (tv *TypeValue) Annotate(a *Annotation) {
	tv.annotations = append(tv.annotations, a)
}

// Annotations returns the attributes applied to the type in declaration order
func (tv *TypeValue) Annotations() []*Annotation {
	return tv.annotations
}

// staticCell returns the storage cell of a static field declared by the type
// or one of its ancestors
func (tv *TypeValue) staticCell(name string) *RefValue {
	for t := tv; t != nil; t = t.parent {
		if cell, ok := t.statics[name]; ok {
			return cell
		}
	}

	return nil
}

// StaticField returns the value of a static field declared by the type or
// one of its ancestors
func (tv *TypeValue) StaticField(name string) (Value, bool) {
	if cell := tv.staticCell(name); cell != nil {
		return cell.Deref(), true
	}

	return nil, false
}

// SetStatic sets a static field declared by the type or one of its ancestors
func (tv *TypeValue) SetStatic(name string, v Value) error {
	if cell := tv.staticCell(name); cell != nil {
		cell.Target = v
		return nil
	}

	return errors.Errorf("type `%s` has no static field `%s`", tv.typ.Name, name)
}

// MethodValues returns the static methods called name declared by the
// nearest type of the inheritance chain
func (tv *TypeValue) MethodValues(name string) []*MethodValue {
	var methods []*MethodValue
	for _, m := range tv.typ.FindMembers(name, true) {
		if m.Kind == types.MemberMethod && m.Access != types.Hidden {
			methods = append(methods, &MethodValue{Member: m})
		}
	}

	return methods
}

// MemberValue returns the static member called name: the storage cell of a
// field, a single method or a method group for overloads.  It returns nil if
// the type has no such member.
func (tv *TypeValue) MemberValue(name string) Value {
	found := tv.typ.FindMembers(name, true)
	if len(found) == 0 || found[0].Access == types.Hidden {
		return nil
	}

	if found[0].Kind == types.MemberField {
		if cell := tv.staticCell(name); cell != nil {
			return cell
		}

		return nil
	}

	return BundleMethods(tv.MethodValues(name))
}
