package symbols

import (
	"jse/values"
)

// scope is a single lexical scope of variables
type scope map[string]values.Value

// VariableTable stores the variables visible to one activation.  It is a stack
// of lexical scopes plus a link to the global table.  The global table itself
// has no link and may also carry engine-provided bindings.
type VariableTable struct {
	global *VariableTable
	scopes []scope

	// bindings are engine-provided globals consulted after all scopes of the
	// global table
	bindings map[string]values.Value
}

// NewGlobalTable creates a new global variable table with one scope
func NewGlobalTable() *VariableTable {
	return &VariableTable{
		scopes:   []scope{make(scope)},
		bindings: make(map[string]values.Value),
	}
}

// NewVariableTable creates a new local variable table linked to a global table.
// The table starts out with one scope.
func NewVariableTable(global *VariableTable) *VariableTable {
	return &VariableTable{
		global: global,
		scopes: []scope{make(scope)},
	}
}

// Global returns the global table this table is linked to.  The global table
// returns itself.
func (vt *VariableTable) Global() *VariableTable {
	if vt.global == nil {
		return vt
	}

	return vt.global
}

// IsGlobal returns whether or not this is a global table
func (vt *VariableTable) IsGlobal() bool {
	return vt.global == nil
}

// EnterScope pushes a new, empty lexical scope
func (vt *VariableTable) EnterScope() {
	vt.scopes = append(vt.scopes, make(scope))
}

// ExitScope pops the innermost lexical scope.  The outermost scope is never
// popped.
func (vt *VariableTable) ExitScope() {
	if len(vt.scopes) > 1 {
		vt.scopes = vt.scopes[:len(vt.scopes)-1]
	}
}

// Depth returns the number of lexical scopes
func (vt *VariableTable) Depth() int {
	return len(vt.scopes)
}

// Declare defines a variable in the innermost scope.  Redefining a name in the
// same scope is an error; shadowing an outer scope is not.
func (vt *VariableTable) Declare(name string, v values.Value) error {
	inner := vt.scopes[len(vt.scopes)-1]
	if _, ok := inner[name]; ok {
		return &DuplicateDefinitionError{Name: name, What: "variable"}
	}

	inner[name] = v
	return nil
}

// Assign updates the nearest visible variable.  It returns false if there is
// none.
func (vt *VariableTable) Assign(name string, v values.Value, tryGlobal bool) bool {
	for i := len(vt.scopes) - 1; i >= 0; i-- {
		if _, ok := vt.scopes[i][name]; ok {
			vt.scopes[i][name] = v
			return true
		}
	}

	if tryGlobal && vt.global != nil {
		return vt.global.Assign(name, v, false)
	}

	return false
}

// Bind adds an engine-provided binding to a global table
func (vt *VariableTable) Bind(name string, v values.Value) {
	g := vt.Global()
	g.bindings[name] = v
}

// Lookup finds a variable.  All scopes of this table are searched innermost
// first.  When tryGlobal is set (or this is the global table) the global
// table's outermost scope and then its bindings are searched next.
func (vt *VariableTable) Lookup(name string, tryGlobal bool) (values.Value, bool) {
	for i := len(vt.scopes) - 1; i >= 0; i-- {
		if v, ok := vt.scopes[i][name]; ok {
			return v, true
		}
	}

	if vt.global == nil {
		v, ok := vt.bindings[name]
		return v, ok
	}

	if tryGlobal {
		if v, ok := vt.global.scopes[0][name]; ok {
			return v, true
		}

		v, ok := vt.global.bindings[name]
		return v, ok
	}

	return nil, false
}

// Names returns every name visible from this table.  It is used to build
// diagnostics.
func (vt *VariableTable) Names(tryGlobal bool) []string {
	seen := make(map[string]struct{})
	var names []string
	add := func(s map[string]values.Value) {
		for name := range s {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}

	for i := len(vt.scopes) - 1; i >= 0; i-- {
		add(vt.scopes[i])
	}

	if vt.global == nil {
		add(vt.bindings)
	} else if tryGlobal {
		add(vt.global.scopes[0])
		add(vt.global.bindings)
	}

	return names
}

// Snapshot copies all variables of this table's scopes, innermost winning.  It
// is used to capture the environment of a lambda.
func (vt *VariableTable) Snapshot() map[string]values.Value {
	snap := make(map[string]values.Value)
	for _, s := range vt.scopes {
		for name, v := range s {
			snap[name] = v
		}
	}

	return snap
}
