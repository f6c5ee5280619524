package resolve

import (
	"jse/common"
	"jse/symbols"
	"jse/types"
	"jse/values"
)

// LambdaResolver resolves names inside lambdas.  The order is:
//
//  1. `this` from the local binding table
//  2. `this` captured from the defining instance method
//  3. locals, with the global scope only if the lambda was defined in global
//     code or a free function
//  4. variables captured in the display
//  5. members of the defining type, checked like the defining context would
//  6. type names
//
// `this` that is still unbound after steps 1 to 4 is an error.
type LambdaResolver struct {
	typeLookup
	vars         *symbols.VariableTable
	bindings     *symbols.LocalBindingTable
	display      *symbols.Display
	definingKind common.ContextKind
	containing   *types.ClassType
	cache        MemberCache

	this *values.ObjectValue
}

func (r *LambdaResolver) Resolve(id string) (values.Value, error) {
	isThis := id == common.KeywordThis
	if isThis {
		if v, ok := r.bindings.Lookup(id); ok {
			return orNull(v), nil
		}

		if this := r.receiver(); this != nil {
			return this, nil
		}
	}

	if v, ok := lookupVar(r.vars, id, r.definingKind == common.ContextFunction); ok {
		return v, nil
	}

	if v, ok := r.display.Lookup(id); ok {
		return orNull(v), nil
	}

	if isThis {
		return nil, &types.UnboundThisError{}
	}

	switch r.definingKind {
	case common.ContextInstanceMethod:
		if this := r.receiver(); this != nil {
			defining, err := types.CheckMemberAccess(this.Class(), id, r.containing, types.SiteMethodClosure, false)
			if err != nil {
				return nil, err
			}

			if defining != nil {
				if v := values.BundleMembers(this.MemberValues(id, defining)); v != nil {
					return v, nil
				}
			}
		}

		if v := r.staticMember(r.containing, id); v != nil {
			return v, nil
		}
	case common.ContextStaticMethod:
		if v := r.cachedStaticMember(r.cache, r.containing, id); v != nil {
			return v, nil
		}
	}

	return r.lookupType(id)
}

// receiver returns the receiver captured from the defining instance method.
// An explicit binding of `this` overrides the captured one.
func (r *LambdaResolver) receiver() *values.ObjectValue {
	if r.definingKind != common.ContextInstanceMethod {
		return nil
	}

	if r.this == nil {
		if v, ok := r.bindings.Lookup(common.KeywordThis); ok {
			r.this = asObject(v)
		} else if v, ok := r.display.Lookup(common.KeywordThis); ok {
			r.this = asObject(v)
		}
	}

	return r.this
}
