package resolve

import (
	"jse/common"
	"jse/symbols"
	"jse/types"
	"jse/values"
)

// InstanceMethodResolver resolves names inside instance methods and
// constructors.  The order is:
//
//  1. `this` and `super`, which both denote the receiver
//  2. locals (global scope excluded)
//  3. members of the receiver, checked for accessibility on every lookup
//  4. static members of the containing type
//  5. type names
type InstanceMethodResolver struct {
	typeLookup
	vars       *symbols.VariableTable
	containing *types.ClassType
	site       types.Site

	// this is fetched from the variable table on first use
	this *values.ObjectValue
}

func (r *InstanceMethodResolver) Resolve(id string) (values.Value, error) {
	if common.IsReceiverKeyword(id) {
		this, err := r.receiver()
		if err != nil {
			return nil, err
		}

		return this, nil
	}

	if v, ok := lookupVar(r.vars, id, false); ok {
		return v, nil
	}

	this, err := r.receiver()
	if err != nil {
		return nil, err
	}

	// accessibility depends on the receiver's runtime type so it is never
	// cached
	defining, err := types.CheckMemberAccess(this.Class(), id, r.containing, r.site, false)
	if err != nil {
		return nil, err
	}

	if defining != nil {
		if v := values.BundleMembers(this.MemberValues(id, defining)); v != nil {
			return v, nil
		}
	}

	if v := r.staticMember(r.containing, id); v != nil {
		return v, nil
	}

	return r.lookupType(id)
}

// receiver returns the receiver of the method
func (r *InstanceMethodResolver) receiver() (*values.ObjectValue, error) {
	if r.this == nil {
		v, _ := lookupVar(r.vars, common.KeywordThis, false)
		r.this = asObject(v)

		if r.this == nil {
			return nil, &types.UnboundThisError{}
		}
	}

	return r.this, nil
}
