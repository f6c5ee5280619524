package loading

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jse/activation"
	"jse/deps"
	"jse/eval"
	"jse/exec"
	"jse/memory"
	"jse/mods"
	"jse/symbols"
	"jse/types"
	"jse/values"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shapesBatch = `
module: App
types:
  - name: Marker
    attribute: true
    members:
      - name: Label
  - name: Square
    parent: Shape
    attributes:
      - type: Marker
        args: ["$AttributeTarget.Class", 3, "label"]
  - name: Shape
    members:
      - name: count
        static: true
        value: 5
      - name: twice
        static: true
        value: "$count"
      - name: area
        kind: method
`

func newLoader(t *testing.T, root string) (*exec.Runtime, *Loader) {
	cfg := mods.DefaultConfig("App", root)
	rt := &exec.Runtime{
		Heap:       memory.NewArea(memory.KindHeap),
		Types:      symbols.NewTypeTable(),
		GlobalVars: symbols.NewGlobalTable(),
		Modules:    mods.NewManager(cfg),
		Thread:     exec.NewThread(0, "main", true, symbols.NewNamespacePool(cfg.Namespaces...)),
	}

	l := NewLoader(rt)
	_, err := l.LoadBatch(SystemBatch())
	require.NoError(t, err)

	return rt, l
}

func decode(t *testing.T, text string) *Batch {
	b, err := DecodeBatch(strings.NewReader(text))
	require.NoError(t, err)
	return b
}

func TestSystemBatch(t *testing.T) {
	rt, _ := newLoader(t, "")

	for _, name := range []string{"System.Object", "System.Attribute", "System.AttributeTarget", "System.String"} {
		tv, finalized := rt.Types.Lookup(name)
		if assert.NotNil(t, tv, name) {
			assert.True(t, finalized, name)
		}
	}

	// the root attribute is added before its parent
	attr := rt.Types.Statics("System.Attribute")
	assert.Equal(t, rt.Types.Statics("System.Object"), attr.Parent())

	class, ok := rt.Types.Statics("System.AttributeTarget").StaticField("Class")
	require.True(t, ok)
	assert.Equal(t, values.IntValue(TargetClass), class)

	empty, ok := rt.Types.Statics("System.String").StaticField("Empty")
	require.True(t, ok)
	assert.Equal(t, values.StringValue(""), empty)

	info, ok := rt.Modules.Module("System")
	require.True(t, ok)
	assert.Len(t, info.Types, 4)
}

func TestDecodeBatch(t *testing.T) {
	b := decode(t, shapesBatch)

	assert.Equal(t, []string{"App.Marker", "App.Square", "App.Shape"}, b.Names())

	marker, square, shape := b.Types[0], b.Types[1], b.Types[2]
	assert.Equal(t, "System.Attribute", marker.Parent)
	assert.True(t, marker.IsAttributeType())
	assert.Equal(t, "field", marker.Members[0].Kind)

	assert.Equal(t, "System.Object", shape.Parent)
	assert.Equal(t, []string{"App.Shape", "App.Marker"}, square.DependentTypeNames())
	assert.Equal(t, []interface{}{"$AttributeTarget.Class", 3, "label"}, square.Attributes[0].Args)
}

func TestDecodeBatchErrors(t *testing.T) {
	var useCases = []struct {
		description string
		text        string
	}{
		{
			description: "unknown field",
			text:        "module: App\ntypes:\n  - name: A\n    colour: red\n",
		},
		{
			description: "unknown member kind",
			text:        "module: App\ntypes:\n  - name: A\n    members:\n      - name: x\n        kind: property\n",
		},
		{
			description: "duplicate type",
			text:        "module: App\ntypes:\n  - name: A\n  - name: App.A\n",
		},
		{
			description: "invalid type name",
			text:        "module: App\ntypes:\n  - name: 1A\n",
		},
		{
			description: "invalid module name",
			text:        "module: App..Core\ntypes: []\n",
		},
	}

	for _, useCase := range useCases {
		_, err := DecodeBatch(strings.NewReader(useCase.text))
		assert.Error(t, err, useCase.description)
	}
}

func TestLoadBatch(t *testing.T) {
	rt, l := newLoader(t, "")

	loaded, err := l.LoadBatch(decode(t, shapesBatch))
	require.NoError(t, err)

	var names []string
	for _, ct := range loaded {
		names = append(names, ct.Name)
	}

	// attribute types come first, then ordinary types by level
	assert.Equal(t, []string{"App.Marker", "App.Shape", "App.Square"}, names)

	for _, name := range names {
		_, finalized := rt.Types.Lookup(name)
		assert.True(t, finalized, name)
	}

	shape := rt.Types.Statics("App.Shape")
	count, _ := shape.StaticField("count")
	twice, _ := shape.StaticField("twice")
	assert.Equal(t, values.IntValue(5), count)
	assert.Equal(t, values.IntValue(5), twice)

	square := rt.Types.Statics("App.Square")
	assert.Equal(t, shape, square.Parent())
	assert.Equal(t, "App.Shape", loaded[2].Parent.Name)

	annotations := square.Annotations()
	require.Len(t, annotations, 1)
	assert.Equal(t, "App.Marker", annotations[0].Attribute.Name)
	assert.Equal(t, []values.Value{
		values.IntValue(TargetClass),
		values.IntValue(3),
		values.StringValue("label"),
	}, annotations[0].Args)

	info, ok := rt.Modules.Module("App")
	require.True(t, ok)
	assert.ElementsMatch(t, names, info.Types)
}

func TestLoadBatchRollback(t *testing.T) {
	var useCases = []struct {
		description string
		text        string
		names       []string
		check       func(t *testing.T, err error)
	}{
		{
			description: "undefined name in initial value",
			text: `
module: App
types:
  - name: Good
  - name: Bad
    members:
      - name: x
        static: true
        value: "$Missing"
`,
			names: []string{"App.Good", "App.Bad"},
			check: func(t *testing.T, err error) {
				var undefined *eval.UndefinedIdentifierError
				assert.ErrorAs(t, err, &undefined)
			},
		},
		{
			description: "undefined parent",
			text:        "module: App\ntypes:\n  - name: Good\n  - name: Orphan\n    parent: Nowhere\n",
			names:       []string{"App.Good", "App.Orphan"},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "undefined type `Nowhere`")
			},
		},
		{
			description: "applied type is not an attribute",
			text:        "module: App\ntypes:\n  - name: Plain\n  - name: Tagged\n    attributes:\n      - type: Plain\n",
			names:       []string{"App.Plain", "App.Tagged"},
			check: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "is not an attribute type")
			},
		},
		{
			description: "cycle",
			text:        "module: App\ntypes:\n  - name: A\n    parent: B\n  - name: B\n    parent: A\n",
			names:       []string{"App.A", "App.B"},
			check: func(t *testing.T, err error) {
				var cycleErr *deps.CyclicDependencyError
				require.ErrorAs(t, err, &cycleErr)
				assert.Equal(t, []string{"App.A", "App.B", "App.A"}, cycleErr.Path)
			},
		},
		{
			description: "unfinalized type in attribute argument",
			text: `
module: App
types:
  - name: Tag
    attribute: true
  - name: Color
    enum: true
  - name: Painted
    attributes:
      - type: Tag
        args: ["$Color"]
`,
			names: []string{"App.Tag", "App.Color", "App.Painted"},
			check: func(t *testing.T, err error) {
				var undefined *eval.UndefinedIdentifierError
				assert.ErrorAs(t, err, &undefined)
			},
		},
	}

	for _, useCase := range useCases {
		rt, l := newLoader(t, "")
		before := rt.Types.Names()

		_, err := l.LoadBatch(decode(t, useCase.text))
		require.Error(t, err, useCase.description)
		useCase.check(t, err)

		for _, name := range useCase.names {
			tv, _ := rt.Types.Lookup(name)
			assert.Nil(t, tv, useCase.description)
		}

		assert.Equal(t, before, rt.Types.Names(), useCase.description)

		_, ok := rt.Modules.Module("App")
		assert.False(t, ok, useCase.description)
	}
}

func TestAnnotationRestrictions(t *testing.T) {
	rt, l := newLoader(t, "")
	_, err := l.LoadBatch(decode(t, shapesBatch))
	require.NoError(t, err)

	_, err = l.LoadBatch(decode(t, `
module: Paint
types:
  - name: Brush
    attributes:
      - type: App.Marker
        args: ["$App.Shape"]
`))

	var usageErr *symbols.IllegalAttributeUsageError
	require.ErrorAs(t, err, &usageErr)
	assert.Equal(t, "App.Shape", usageErr.TypeName)

	tv, _ := rt.Types.Lookup("Paint.Brush")
	assert.Nil(t, tv)
}

func TestDuplicateTypeKeepsFinalized(t *testing.T) {
	rt, l := newLoader(t, "")
	_, err := l.LoadBatch(decode(t, shapesBatch))
	require.NoError(t, err)

	shape := rt.Types.Statics("App.Shape")

	_, err = l.LoadBatch(decode(t, "module: App\ntypes:\n  - name: Circle\n  - name: Shape\n"))
	var dupErr *symbols.DuplicateDefinitionError
	require.ErrorAs(t, err, &dupErr)

	tv, finalized := rt.Types.Lookup("App.Shape")
	assert.Equal(t, shape, tv)
	assert.True(t, finalized)

	tv, _ = rt.Types.Lookup("App.Circle")
	assert.Nil(t, tv)
}

func TestInitializers(t *testing.T) {
	rt, l := newLoader(t, "")

	var seen []string
	l.AddInitializer(func(ctx *activation.Context, ct *types.ClassType, tv *values.TypeValue) error {
		assert.True(t, ctx.IsStatic())
		assert.Equal(t, ct, ctx.ContainingType())

		// the type's own statics are visible before it is finalized
		if ct.Name == "App.Shape" {
			v, err := ctx.Resolve("count")
			require.NoError(t, err)
			assert.Equal(t, values.IntValue(5), v.Deref())
		}

		seen = append(seen, ct.Name)
		return nil
	})

	_, err := l.LoadBatch(decode(t, shapesBatch))
	require.NoError(t, err)
	assert.Equal(t, []string{"App.Marker", "App.Shape", "App.Square"}, seen)

	l.AddInitializer(func(_ *activation.Context, ct *types.ClassType, _ *values.TypeValue) error {
		if ct.Name == "Geo.Line" {
			return errors.New("line is not supported")
		}

		return nil
	})

	_, err = l.LoadBatch(decode(t, "module: Geo\ntypes:\n  - name: Point\n  - name: Line\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line is not supported")

	tv, _ := rt.Types.Lookup("Geo.Point")
	assert.Nil(t, tv)
}

func TestDeterministicSort(t *testing.T) {
	rt, _ := newLoader(t, "")
	rt.Modules.Config().DeterministicOrder = true
	l := NewLoader(rt)

	sorted, err := l.Sort(decode(t, "module: App\ntypes:\n  - name: C\n  - name: B\n  - name: A\n"))
	require.NoError(t, err)

	var names []string
	for _, d := range sorted {
		names = append(names, d.Name)
	}

	assert.Equal(t, []string{"App.A", "App.B", "App.C"}, names)
}

func writeBatch(t *testing.T, dir, name, text string) string {
	path := filepath.Join(dir, name+".yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	rt, l := newLoader(t, dir)

	writeBatch(t, dir, "geometry", "module: geometry\ntypes:\n  - name: Point\n")
	main := writeBatch(t, dir, "main", "module: main\nincludes: [geometry]\ntypes:\n  - name: Line\n    parent: geometry.Point\n")

	loaded, err := l.LoadFile(main)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "geometry.Point", loaded[0].Parent.Name)

	assert.Equal(t, []string{"System", "geometry", "main"}, rt.Modules.ModuleNames())

	info, _ := rt.Modules.Module("main")
	assert.Equal(t, main, info.Path)
}

func TestLoadFileIncludeCycle(t *testing.T) {
	dir := t.TempDir()
	_, l := newLoader(t, dir)

	writeBatch(t, dir, "b", "module: b\nincludes: [a]\ntypes: []\n")
	a := writeBatch(t, dir, "a", "module: a\nincludes: [b]\ntypes: []\n")

	_, err := l.LoadFile(a)

	var cycleErr *deps.CyclicDependencyError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, deps.CycleScripts, cycleErr.Kind)
	assert.Equal(t, []string{a, filepath.Join(dir, "b.yaml"), a}, cycleErr.Path)
}

func TestLoadFileMissingInclude(t *testing.T) {
	dir := t.TempDir()
	_, l := newLoader(t, dir)

	main := writeBatch(t, dir, "main", "module: main\nincludes: [nowhere]\ntypes: []\n")

	_, err := l.LoadFile(main)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to locate module `nowhere`")
}
