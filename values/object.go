package values

import (
	"jse/memory"
	"jse/types"

	"github.com/pkg/errors"
)

// ObjectValue is an instance of a class type.  Fields are storage cells kept
// per declaring type so a private field redeclared by a subtype does not
// shadow the original.
type ObjectValue struct {
	class  *types.ClassType
	slot   memory.Slot
	fields map[*types.ClassType]map[string]*RefValue
}

// NewObject allocates a new object of the given class on the heap.  All
// instance fields start out null.
func NewObject(heap *memory.Area, class *types.ClassType) *ObjectValue {
	obj := &ObjectValue{
		class:  class,
		fields: make(map[*types.ClassType]map[string]*RefValue),
	}

	for t := class; t != nil; t = t.Parent {
		own := make(map[string]*RefValue)
		for _, m := range t.Members() {
			if m.Kind == types.MemberField && !m.Static {
				own[m.Name] = NewRef(Null)
			}
		}

		obj.fields[t] = own
	}

	if heap != nil {
		obj.slot = heap.Alloc(obj)
	}

	return obj
}

func (*ObjectValue) Kind() Kind { return KindObject }

func (o *ObjectValue) Deref() Value { return o }

func (o *ObjectValue) String() string {
	return "instance of " + o.class.Name
}

// Class returns the runtime class of the object
func (o *ObjectValue) Class() *types.ClassType {
	return o.class
}

// Slot returns the heap slot of the object
func (o *ObjectValue) Slot() memory.Slot {
	return o.slot
}

// SetField sets the nearest field of the given name
func (o *ObjectValue) SetField(name string, v Value) error {
	found := o.class.FindMembers(name, false)
	if len(found) == 0 || found[0].Kind != types.MemberField {
		return errors.Errorf("type `%s` has no instance field `%s`", o.class.Name, name)
	}

	o.fields[found[0].Owner][name].Target = v
	return nil
}

// Field returns the value of the nearest field of the given name
func (o *ObjectValue) Field(name string) (Value, bool) {
	found := o.class.FindMembers(name, false)
	if len(found) == 0 || found[0].Kind != types.MemberField {
		return nil, false
	}

	return o.fields[found[0].Owner][name].Deref(), true
}

// MemberValues returns the values of the instance member called name as seen
// through viewAs, which must be the object's class or one of its ancestors.
// A field yields its storage cell.  Methods are dispatched on the runtime
// class and yield one value per overload.
func (o *ObjectValue) MemberValues(name string, viewAs *types.ClassType) []Value {
	if viewAs == nil {
		viewAs = o.class
	}

	found := viewAs.FindMembers(name, false)
	if len(found) == 0 {
		return nil
	}

	if found[0].Kind == types.MemberField {
		return []Value{o.fields[found[0].Owner][name]}
	}

	// private methods are not dispatched
	if found[0].Access == types.Private {
		return o.bind(found)
	}

	var methods []*types.Member
	arities := make(map[int]struct{})
	for t := o.class; t != nil; t = t.Parent {
		for _, m := range t.OwnMembers(name, false) {
			if m.Kind != types.MemberMethod || m.Access == types.Hidden {
				continue
			}

			if m.Access == types.Private && t != viewAs {
				continue
			}

			if _, ok := arities[len(m.Params)]; !ok {
				arities[len(m.Params)] = struct{}{}
				methods = append(methods, m)
			}
		}
	}

	return o.bind(methods)
}

// bind binds methods to the object
func (o *ObjectValue) bind(members []*types.Member) []Value {
	bound := make([]Value, len(members))
	for i, m := range members {
		bound[i] = &MethodValue{Member: m, Receiver: o}
	}

	return bound
}

// MethodValues is MemberValues restricted to methods
func (o *ObjectValue) MethodValues(name string, viewAs *types.ClassType) []*MethodValue {
	var methods []*MethodValue
	for _, v := range o.MemberValues(name, viewAs) {
		if mv, ok := v.(*MethodValue); ok {
			methods = append(methods, mv)
		}
	}

	return methods
}
