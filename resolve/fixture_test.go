package resolve

import (
	"testing"

	"jse/memory"
	"jse/symbols"
	"jse/types"
	"jse/values"

	"github.com/stretchr/testify/require"
)

// fixture is a small loaded type system shared by the resolver tests
type fixture struct {
	heap   *memory.Area
	table  *symbols.TypeTable
	global *symbols.VariableTable
	ns     *symbols.NamespacePool

	shape, square, stranger *types.ClassType
}

func newFixture(t *testing.T) *fixture {
	shape := types.NewClassType("App.Shape", "App", nil)
	shape.AddField("name", types.Public, false)
	shape.AddField("secret", types.Private, false)
	shape.AddField("count", types.Public, true)
	shape.AddMethod("area", types.Public, false)
	shape.AddMethod("scale", types.Public, false, "k")
	shape.AddMethod("scale", types.Public, false, "kx", "ky")
	shape.AddMethod("create", types.Public, true)
	shape.AddMethod("create", types.Public, true, "name")
	shape.AddMethod("twice", types.Public, true, "this", "n")

	square := types.NewClassType("App.Square", "App", shape)
	square.AddMethod("area", types.Public, false)

	stranger := types.NewClassType("App.Stranger", "App", nil)
	math := types.NewClassType("System.Math", "", nil)
	math.BuiltIn = true

	f := &fixture{
		heap:     memory.NewArea(memory.KindHeap),
		table:    symbols.NewTypeTable(),
		global:   symbols.NewGlobalTable(),
		ns:       symbols.NewNamespacePool("System"),
		shape:    shape,
		square:   square,
		stranger: stranger,
	}

	for _, ct := range []*types.ClassType{shape, square, stranger, math} {
		_, err := f.table.AddBuiltin(ct)
		require.NoError(t, err)
	}

	require.NoError(t, f.global.Declare("g", values.IntValue(1)))
	require.NoError(t, f.table.Statics("App.Shape").SetStatic("count", values.IntValue(7)))
	return f
}

// object allocates an object and sets its fields
func (f *fixture) object(t *testing.T, class *types.ClassType, fields map[string]values.Value) *values.ObjectValue {
	obj := values.NewObject(f.heap, class)
	for name, v := range fields {
		require.NoError(t, obj.SetField(name, v))
	}

	return obj
}

// locals creates a local variable table with the given variables
func (f *fixture) locals(t *testing.T, vars map[string]values.Value) *symbols.VariableTable {
	vt := symbols.NewVariableTable(f.global)
	for name, v := range vars {
		require.NoError(t, vt.Declare(name, v))
	}

	return vt
}

// countingTypes counts the static member lookups made through a type reader
type countingTypes struct {
	*symbols.TypeTable
	statics int
}

func (ct *countingTypes) Statics(name string) *values.TypeValue {
	ct.statics++
	return ct.TypeTable.Statics(name)
}

// countingCache counts the saves made to a member cache
type countingCache struct {
	MemberCache
	saves map[string]int
}

func newCountingCache() *countingCache {
	return &countingCache{MemberCache: NewMemberCache(), saves: make(map[string]int)}
}

func (cc *countingCache) Save(id string, v values.Value) {
	cc.saves[id]++
	cc.MemberCache.Save(id, v)
}
