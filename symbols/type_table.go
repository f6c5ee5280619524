package symbols

import (
	"sort"
	"sync"

	"jse/common"
	"jse/types"
	"jse/values"
)

// TypeReader is the read-only view of loaded types that name resolution uses.
type TypeReader interface {
	// Value resolves a type referred to by name.  A miss returns nil and no
	// error.
	Value(name string) (*values.TypeValue, error)

	// Statics returns the type value holding the static members of a loaded
	// type, whatever its state.  It is used to reach the members of the type
	// containing the running code.
	Statics(name string) *values.TypeValue
}

// typeEntry is a type stored in the type table
type typeEntry struct {
	value     *values.TypeValue
	finalized bool
}

// TypeTable stores all the types loaded by an engine.  Types are added
// unfinalized while their batch loads and become finalized once the whole
// batch succeeds.  The table is shared by all threads of the engine.
type TypeTable struct {
	entries map[string]*typeEntry

	m sync.RWMutex
}

// NewTypeTable creates a new, empty type table
func NewTypeTable() *TypeTable {
	return &TypeTable{entries: make(map[string]*typeEntry)}
}

// Add adds a type in the unfinalized state and returns its type value.  The
// type value is linked to the type value of its parent if it is loaded.
func (tt *TypeTable) Add(t *types.ClassType) (*values.TypeValue, error) {
	return tt.add(t, false)
}

// AddBuiltin adds a type that is finalized immediately
func (tt *TypeTable) AddBuiltin(t *types.ClassType) (*values.TypeValue, error) {
	return tt.add(t, true)
}

func (tt *TypeTable) add(t *types.ClassType, finalized bool) (*values.TypeValue, error) {
	tt.m.Lock()
	defer tt.m.Unlock()

	if _, ok := tt.entries[t.Name]; ok {
		return nil, &DuplicateDefinitionError{Name: t.Name, What: "type"}
	}

	var parent *values.TypeValue
	if t.Parent != nil {
		if pe, ok := tt.entries[t.Parent.Name]; ok {
			parent = pe.value
		}
	}

	tv := values.NewTypeValue(t, parent)
	tt.entries[t.Name] = &typeEntry{value: tv, finalized: finalized}
	return tv, nil
}

// Finalize marks types as finalized.  Unknown names are ignored.
func (tt *TypeTable) Finalize(names ...string) {
	tt.m.Lock()
	defer tt.m.Unlock()

	for _, name := range names {
		if e, ok := tt.entries[name]; ok {
			e.finalized = true
		}
	}
}

// RemoveUnfinalized removes types whose batch failed to load.  Removing a
// finalized type is an error and leaves the table unchanged.
func (tt *TypeTable) RemoveUnfinalized(names ...string) error {
	tt.m.Lock()
	defer tt.m.Unlock()

	for _, name := range names {
		if e, ok := tt.entries[name]; ok && e.finalized {
			return &FinalizedTypeRemovalError{TypeName: name}
		}
	}

	for _, name := range names {
		delete(tt.entries, name)
	}

	return nil
}

// Value returns the type value of a loaded type, finalized or not.  A type's
// own initializers must be able to see it before it is finalized.
func (tt *TypeTable) Value(name string) (*values.TypeValue, error) {
	tv, _ := tt.Lookup(name)
	return tv, nil
}

// Lookup returns the type value of a type and whether it is finalized
func (tt *TypeTable) Lookup(name string) (*values.TypeValue, bool) {
	tt.m.RLock()
	defer tt.m.RUnlock()

	if e, ok := tt.entries[name]; ok {
		return e.value, e.finalized
	}

	return nil, false
}

// Statics returns the type value of a loaded type, finalized or not
func (tt *TypeTable) Statics(name string) *values.TypeValue {
	tv, _ := tt.Lookup(name)
	return tv
}

// FinalizedValue returns the type value of a type only if it is finalized
func (tt *TypeTable) FinalizedValue(name string) *values.TypeValue {
	if tv, finalized := tt.Lookup(name); finalized {
		return tv
	}

	return nil
}

// Type returns a loaded class type.  requireFinalized hides types whose batch
// is still loading.
func (tt *TypeTable) Type(name string, requireFinalized bool) (*types.ClassType, bool) {
	tv, finalized := tt.Lookup(name)
	if tv == nil || (requireFinalized && !finalized) {
		return nil, false
	}

	return tv.Type(), true
}

// Names returns the sorted names of all loaded types
func (tt *TypeTable) Names() []string {
	tt.m.RLock()
	defer tt.m.RUnlock()

	names := make([]string, 0, len(tt.entries))
	for name := range tt.entries {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// -----------------------------------------------------------------------------

// RestrictedTypeTable is the view of a type table given to code evaluated in
// an attribute initializer.  It hides types that are not finalized yet and
// rejects types that attribute initializers may not use.
type RestrictedTypeTable struct {
	table *TypeTable
}

// NewRestrictedTypeTable wraps a type table
func NewRestrictedTypeTable(tt *TypeTable) *RestrictedTypeTable {
	return &RestrictedTypeTable{table: tt}
}

// Value returns the type value of a finalized type that may be used in an
// attribute initializer
func (rt *RestrictedTypeTable) Value(name string) (*values.TypeValue, error) {
	tv, finalized := rt.table.Lookup(name)
	if tv == nil || !finalized {
		return nil, nil
	}

	if !allowedInAttribute(tv.Type()) {
		return nil, &IllegalAttributeUsageError{TypeName: name}
	}

	return tv, nil
}

// Statics returns the type value of a loaded type without restriction
func (rt *RestrictedTypeTable) Statics(name string) *values.TypeValue {
	return rt.table.Statics(name)
}

// Names returns the sorted names of the types visible through the view
func (rt *RestrictedTypeTable) Names() []string {
	var names []string
	for _, name := range rt.table.Names() {
		if tv, finalized := rt.table.Lookup(name); finalized && allowedInAttribute(tv.Type()) {
			names = append(names, name)
		}
	}

	return names
}

// allowedInAttribute decides whether a type may appear in an attribute
// initializer
func allowedInAttribute(t *types.ClassType) bool {
	if t.Dimensions == 1 {
		return allowedInAttribute(t.ElementType)
	} else if t.Dimensions > 1 {
		return false
	}

	return t.BuiltIn || t.Enum || t.Name == common.AttributeTargetType
}
