package activation

import (
	"testing"

	"jse/common"
	"jse/exec"
	"jse/memory"
	"jse/mods"
	"jse/resolve"
	"jse/symbols"
	"jse/types"
	"jse/values"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type world struct {
	rt    *exec.Runtime
	shape *types.ClassType
}

func newWorld(t *testing.T, cacheStatics bool) *world {
	shape := types.NewClassType("App.Shape", "App", nil)
	shape.AddField("name", types.Public, false)
	shape.AddField("count", types.Public, true)

	cfg := mods.DefaultConfig("App", "")
	cfg.CacheStaticMembers = cacheStatics

	ns := symbols.NewNamespacePool(cfg.Namespaces...)
	rt := &exec.Runtime{
		Heap:       memory.NewArea(memory.KindHeap),
		Types:      symbols.NewTypeTable(),
		GlobalVars: symbols.NewGlobalTable(),
		Modules:    mods.NewManager(cfg),
		Thread:     exec.NewThread(0, "main", true, ns),
	}

	_, err := rt.Types.AddBuiltin(shape)
	require.NoError(t, err)
	require.NoError(t, rt.GlobalVars.Declare("g", values.IntValue(1)))

	return &world{rt: rt, shape: shape}
}

// bundle creates a bundle for a fresh frame of the world's main thread
func (w *world) bundle() Bundle {
	f := w.rt.Thread.Stack().Push(w.rt.GlobalVars, nil)
	return Bundle{
		Frame:      f.Memory,
		Heap:       w.rt.Heap,
		Vars:       f.Vars,
		Types:      w.rt.Types,
		Modules:    w.rt.Modules,
		Namespaces: f.Namespaces,
		Thread:     w.rt.Thread,
	}
}

func TestContextKinds(t *testing.T) {
	w := newWorld(t, true)

	var useCases = []struct {
		description string
		ctx         *Context
		kind        common.ContextKind
		resolver    resolve.NameResolver
		static      bool
		containing  *types.ClassType
	}{
		{
			description: "function",
			ctx:         NewFunctionContext(w.bundle()),
			kind:        common.ContextFunction,
			resolver:    &resolve.GlobalResolver{},
		},
		{
			description: "instance method",
			ctx:         NewMethodContext(w.bundle(), w.shape, false, common.ExecInMethodBody, nil),
			kind:        common.ContextInstanceMethod,
			resolver:    &resolve.InstanceMethodResolver{},
			containing:  w.shape,
		},
		{
			description: "static method",
			ctx:         NewMethodContext(w.bundle(), w.shape, true, common.ExecInMethodBody, nil),
			kind:        common.ContextStaticMethod,
			resolver:    &resolve.StaticMethodResolver{},
			static:      true,
			containing:  w.shape,
		},
		{
			description: "lambda",
			ctx:         NewLambdaContext(w.bundle(), common.ContextFunction, nil, nil, nil),
			kind:        common.ContextLambda,
			resolver:    &resolve.LambdaResolver{},
		},
	}

	for _, useCase := range useCases {
		assert.Equal(t, useCase.kind, useCase.ctx.Kind(), useCase.description)
		assert.IsType(t, useCase.resolver, useCase.ctx.Resolver(), useCase.description)
		assert.Equal(t, useCase.static, useCase.ctx.IsStatic(), useCase.description)
		assert.Same(t, useCase.containing, useCase.ctx.ContainingType(), useCase.description)
		assert.Same(t, w.rt.Heap, useCase.ctx.Heap(), useCase.description)
		assert.Same(t, w.rt.Modules, useCase.ctx.Modules(), useCase.description)
		assert.Same(t, w.rt.Thread, useCase.ctx.Thread(), useCase.description)
		assert.Contains(t, useCase.ctx.String(), useCase.ctx.ID().String(), useCase.description)
	}
}

func TestFunctionContextResolves(t *testing.T) {
	w := newWorld(t, true)
	b := w.bundle()
	require.NoError(t, b.Vars.Declare("x", values.IntValue(2)))

	ctx := NewFunctionContext(b)
	assert.Equal(t, common.ExecInFunctionBody, ctx.ExecutionKind())

	v, err := ctx.Resolve("x")
	require.NoError(t, err)
	assert.Equal(t, values.IntValue(2), v)

	v, err = ctx.Resolve("g")
	require.NoError(t, err)
	assert.Equal(t, values.IntValue(1), v)

	v, err = ctx.Resolve("App.Shape")
	require.NoError(t, err)
	assert.Same(t, w.rt.Types.Statics("App.Shape"), v)
}

func TestDeriveAnnotation(t *testing.T) {
	w := newWorld(t, true)
	parent := NewFunctionContext(w.bundle())
	b := w.bundle()

	derived := Derive(parent, b.Frame, b.Vars, b.Namespaces, w.shape, true, common.ExecInAnnotation)
	assert.Equal(t, common.ContextStaticMethod, derived.Kind())
	assert.Equal(t, common.ExecInAnnotation, derived.ExecutionKind())
	assert.IsType(t, &symbols.RestrictedTypeTable{}, derived.Types())
	assert.Same(t, parent.Heap(), derived.Heap())
	assert.Same(t, parent.Modules(), derived.Modules())

	var usageErr *symbols.IllegalAttributeUsageError
	_, err := derived.Resolve("App.Shape")
	assert.ErrorAs(t, err, &usageErr)

	// statics of the containing type stay reachable
	v, err := derived.Resolve("count")
	require.NoError(t, err)
	assert.Equal(t, values.Null, v.Deref())

	plain := Derive(parent, b.Frame, b.Vars, b.Namespaces, w.shape, false, common.ExecInMethodBody)
	assert.Equal(t, common.ContextInstanceMethod, plain.Kind())
	assert.Same(t, w.rt.Types, plain.Types())
}

func TestSystemLoadingContext(t *testing.T) {
	w := newWorld(t, true)

	// empty stack: stack memory and a fresh table over the globals
	ctx := NewSystemLoadingContext(w.rt)
	assert.Equal(t, common.ContextFunction, ctx.Kind())
	assert.Equal(t, common.ExecSystemLoading, ctx.ExecutionKind())
	assert.Same(t, w.rt.Thread.Stack().Memory(), ctx.Frame())
	assert.Same(t, w.rt.GlobalVars, ctx.Vars().Global())
	assert.False(t, ctx.Vars().IsGlobal())

	v, err := ctx.Resolve("g")
	require.NoError(t, err)
	assert.Equal(t, values.IntValue(1), v)

	// live frame: the frame is reused
	f := w.rt.Thread.Stack().Push(w.rt.GlobalVars, nil)
	ctx = NewSystemLoadingContext(w.rt)
	assert.Same(t, f.Memory, ctx.Frame())
	assert.Same(t, f.Vars, ctx.Vars())
}

func TestLambdaFromInstanceMethod(t *testing.T) {
	w := newWorld(t, true)
	b := w.bundle()

	this := values.NewObject(w.rt.Heap, w.shape)
	require.NoError(t, this.SetField("name", values.StringValue("outer")))
	require.NoError(t, b.Vars.Declare("this", this))
	require.NoError(t, b.Vars.Declare("local", values.IntValue(3)))

	method := NewMethodContext(b, w.shape, false, common.ExecInMethodBody, nil)
	lambda := NewLambdaFrom(method, w.bundle(), nil)
	assert.Equal(t, common.ContextInstanceMethod, lambda.DefiningKind())
	assert.Same(t, w.shape, lambda.ContainingType())

	v, err := lambda.Resolve("this")
	require.NoError(t, err)
	assert.Same(t, this, v)

	v, err = lambda.Resolve("local")
	require.NoError(t, err)
	assert.Equal(t, values.IntValue(3), v)

	v, err = lambda.Resolve("name")
	require.NoError(t, err)
	assert.Equal(t, values.StringValue("outer"), v.Deref())

	// nested lambdas keep the kind of the outermost non-lambda context
	nested := NewLambdaFrom(lambda, w.bundle(), nil)
	assert.Equal(t, common.ContextInstanceMethod, nested.DefiningKind())
}

func TestStaticCacheFollowsConfig(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		w := newWorld(t, enabled)
		ctx := NewMethodContext(w.bundle(), w.shape, true, common.ExecInMethodBody, nil)

		first, err := ctx.Resolve("count")
		require.NoError(t, err)
		second, err := ctx.Resolve("count")
		require.NoError(t, err)

		// both lookups reach the same storage cell
		assert.Same(t, first, second)

		require.NoError(t, w.rt.Types.Statics("App.Shape").SetStatic("count", values.IntValue(9)))
		v, err := ctx.Resolve("count")
		require.NoError(t, err)
		assert.Equal(t, values.IntValue(9), v.Deref())
	}
}
