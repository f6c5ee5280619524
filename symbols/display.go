package symbols

import (
	"jse/values"
)

// Display holds the variables a lambda closes over.  It is captured once when
// the lambda is created and is read-only afterwards.
type Display struct {
	vars map[string]values.Value
}

// NewDisplay creates a display from a set of captured variables
func NewDisplay(vars map[string]values.Value) *Display {
	if vars == nil {
		vars = make(map[string]values.Value)
	}

	return &Display{vars: vars}
}

// CaptureDisplay captures every local variable visible from a variable table
func CaptureDisplay(vt *VariableTable) *Display {
	return NewDisplay(vt.Snapshot())
}

// Lookup finds a captured variable
func (d *Display) Lookup(name string) (values.Value, bool) {
	if d == nil {
		return nil, false
	}

	v, ok := d.vars[name]
	return v, ok
}

// Names returns the names of all captured variables
func (d *Display) Names() []string {
	if d == nil {
		return nil
	}

	names := make([]string, 0, len(d.vars))
	for name := range d.vars {
		names = append(names, name)
	}

	return names
}

// LocalBindingTable holds names explicitly rebound when a lambda is created,
// usually `this`.  These take priority over every other source.
type LocalBindingTable struct {
	bindings map[string]values.Value
}

// NewLocalBindingTable creates a new, empty local binding table
func NewLocalBindingTable() *LocalBindingTable {
	return &LocalBindingTable{bindings: make(map[string]values.Value)}
}

// Bind binds a name
func (lbt *LocalBindingTable) Bind(name string, v values.Value) {
	lbt.bindings[name] = v
}

// Lookup finds a bound name
func (lbt *LocalBindingTable) Lookup(name string) (values.Value, bool) {
	if lbt == nil {
		return nil, false
	}

	v, ok := lbt.bindings[name]
	return v, ok
}
