package values

import (
	"fmt"
	"strings"

	"jse/types"
)

// MethodValue is a method, bound to its receiver if it is an instance method
type MethodValue struct {
	Member *types.Member

	// Receiver is nil for static methods
	Receiver *ObjectValue
}

func (*MethodValue) Kind() Kind { return KindMethod }

func (mv *MethodValue) Deref() Value { return mv }

func (mv *MethodValue) String() string {
	return fmt.Sprintf("method %s.%s(%s)", mv.Member.Owner.Name, mv.Member.Name, strings.Join(mv.Member.Params, ", "))
}

// MethodGroupValue bundles the overloads of a method name.  Choosing an
// overload is left to the caller.
type MethodGroupValue struct {
	Methods []*MethodValue
}

func (*MethodGroupValue) Kind() Kind { return KindMethodGroup }

func (mg *MethodGroupValue) Deref() Value { return mg }

func (mg *MethodGroupValue) String() string {
	parts := make([]string, len(mg.Methods))
	for i, m := range mg.Methods {
		parts[i] = m.String()
	}

	return "group [" + strings.Join(parts, "; ") + "]"
}

// BundleMethods turns a list of methods into a single value: nil if there are
// none, the method itself if there is one and a method group otherwise.
func BundleMethods(methods []*MethodValue) Value {
	switch len(methods) {
	case 0:
		return nil
	case 1:
		return methods[0]
	default:
		return &MethodGroupValue{Methods: methods}
	}
}

// BundleMembers turns the values of a member into a single value.  Several
// values are always overloads of a method.
func BundleMembers(vals []Value) Value {
	switch len(vals) {
	case 0:
		return nil
	case 1:
		return vals[0]
	}

	methods := make([]*MethodValue, 0, len(vals))
	for _, v := range vals {
		if mv, ok := v.(*MethodValue); ok {
			methods = append(methods, mv)
		}
	}

	return BundleMethods(methods)
}
