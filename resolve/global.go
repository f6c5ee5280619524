package resolve

import (
	"jse/symbols"
	"jse/values"
)

// GlobalResolver resolves names in global scripts and free functions:
// variables (global scope included) and then type names.
type GlobalResolver struct {
	typeLookup
	vars *symbols.VariableTable
}

func (r *GlobalResolver) Resolve(id string) (values.Value, error) {
	if v, ok := lookupVar(r.vars, id, true); ok {
		return v, nil
	}

	return r.lookupType(id)
}
