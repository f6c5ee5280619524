package engine

import (
	"jse/activation"
	"jse/common"
	"jse/exec"
	"jse/loading"
	"jse/logging"
	"jse/memory"
	"jse/mods"
	"jse/symbols"
	"jse/types"

	"github.com/pkg/errors"
)

// Engine is the longest-lived holder of runtime state: the heap, the type
// table, the global variables, the module manager and the main thread.
type Engine struct {
	rt     *exec.Runtime
	loader *loading.Loader
}

// New creates a new engine and loads the built-in system types
func New(cfg *mods.Config) (*Engine, error) {
	ns := symbols.NewNamespacePool(cfg.Namespaces...)

	rt := &exec.Runtime{
		Heap:       memory.NewArea(memory.KindHeap),
		Types:      symbols.NewTypeTable(),
		GlobalVars: symbols.NewGlobalTable(),
		Modules:    mods.NewManager(cfg),
		Thread:     exec.NewThread(0, "main", true, ns),
	}

	e := &Engine{rt: rt, loader: loading.NewLoader(rt)}

	logging.Trace("Bootstrap", "loading system types")
	if _, err := e.loader.LoadBatch(loading.SystemBatch()); err != nil {
		return nil, errors.Wrap(err, "failed to load system types")
	}

	return e, nil
}

// Runtime returns the runtime state of the engine
func (e *Engine) Runtime() *exec.Runtime {
	return e.rt
}

// Loader returns the type loader of the engine
func (e *Engine) Loader() *loading.Loader {
	return e.loader
}

// LoadBatch loads a batch of types
func (e *Engine) LoadBatch(b *loading.Batch) ([]*types.ClassType, error) {
	return e.loader.LoadBatch(b)
}

// LoadFile loads a batch file and the modules it includes
func (e *Engine) LoadFile(path string) ([]*types.ClassType, error) {
	return e.loader.LoadFile(path)
}

// GlobalContext creates a context for global code running on the main thread
func (e *Engine) GlobalContext() *activation.Context {
	stack := e.rt.Thread.Stack()

	return activation.NewFunctionContext(activation.Bundle{
		Frame:      stack.Memory(),
		Heap:       e.rt.Heap,
		Vars:       e.rt.GlobalVars,
		Types:      e.rt.Types,
		Modules:    e.rt.Modules,
		Namespaces: stack.Namespaces(),
		Thread:     e.rt.Thread,
	})
}

// StaticContext creates a context for code running in a static method of a
// loaded type.  The type name may be relative to the engine's namespaces.
func (e *Engine) StaticContext(typeName string) (*activation.Context, error) {
	stack := e.rt.Thread.Stack()

	var t *types.ClassType
	for _, candidate := range stack.Namespaces().Candidates(typeName) {
		if ct, ok := e.rt.Types.Type(candidate, true); ok {
			t = ct
			break
		}
	}

	if t == nil {
		return nil, errors.Errorf("no loaded type named `%s`", typeName)
	}

	return activation.Derive(
		e.GlobalContext(),
		stack.Memory(),
		symbols.NewVariableTable(e.rt.GlobalVars),
		stack.Namespaces(),
		t,
		true,
		common.ExecInMethodBody,
	), nil
}
