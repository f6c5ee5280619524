package resolve

import (
	"jse/common"
	"jse/symbols"
	"jse/types"
	"jse/values"
)

// StaticMethodResolver resolves names inside static methods and static
// initializers.  The order is:
//
//  1. `this` from the local binding table, if one was supplied
//  2. locals (global scope excluded)
//  3. static members of the containing type, through the member cache
//  4. type names
//
// `this` that is not a local is an error: only extension methods, whose first
// parameter is named `this`, may use it.
type StaticMethodResolver struct {
	typeLookup
	vars       *symbols.VariableTable
	bindings   *symbols.LocalBindingTable
	containing *types.ClassType
	cache      MemberCache
}

func (r *StaticMethodResolver) Resolve(id string) (values.Value, error) {
	isThis := id == common.KeywordThis
	if isThis {
		if v, ok := r.bindings.Lookup(id); ok {
			return orNull(v), nil
		}
	}

	if v, ok := lookupVar(r.vars, id, false); ok {
		return v, nil
	}

	if isThis {
		e := &StaticThisError{}
		if r.containing != nil {
			e.TypeName = r.containing.Name
		}

		return nil, e
	}

	if v := r.cachedStaticMember(r.cache, r.containing, id); v != nil {
		return v, nil
	}

	return r.lookupType(id)
}

// orNull normalizes a nil value to null
func orNull(v values.Value) values.Value {
	if v == nil {
		return values.Null
	}

	return v
}
