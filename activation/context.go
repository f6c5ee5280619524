package activation

import (
	"fmt"

	"jse/common"
	"jse/exec"
	"jse/memory"
	"jse/mods"
	"jse/resolve"
	"jse/symbols"
	"jse/types"
	"jse/values"

	"github.com/google/uuid"
)

// Bundle is the fixed set of collaborators a context is built from.  The
// frame is owned by the context; everything else is shared.
type Bundle struct {
	Frame      *memory.Area
	Heap       *memory.Area
	Vars       *symbols.VariableTable
	Types      symbols.TypeReader
	Modules    *mods.Manager
	Namespaces *symbols.NamespacePool
	Thread     *exec.Thread
}

// Context is the environment of one activation: a global script, a function,
// a method or a lambda.  It owns exactly one name resolver, chosen by its kind
// when it is created.  Contexts are used by a single thread and are not
// synchronized.
type Context struct {
	id       uuid.UUID
	kind     common.ContextKind
	execKind common.ExecutionKind
	bundle   Bundle

	// containing is the type whose code runs in this context.  It is nil for
	// global code and free functions.
	containing *types.ClassType

	// definingKind is the kind of the context a lambda was created in.  It is
	// never ContextLambda: nested lambdas inherit it from their parent.
	definingKind common.ContextKind

	resolver resolve.NameResolver
}

// newContext creates a context and its resolver
func newContext(kind common.ContextKind, execKind common.ExecutionKind, b Bundle, containing *types.ClassType, cfg resolve.Config) *Context {
	cfg.Kind = kind
	cfg.ExecKind = execKind
	cfg.Vars = b.Vars
	cfg.Types = b.Types
	cfg.Namespaces = b.Namespaces
	cfg.Containing = containing

	return &Context{
		id:           uuid.New(),
		kind:         kind,
		execKind:     execKind,
		bundle:       b,
		containing:   containing,
		definingKind: cfg.DefiningKind,
		resolver:     resolve.New(cfg),
	}
}

// NewFunctionContext creates the context of a global script or a free
// function
func NewFunctionContext(b Bundle) *Context {
	return newContext(common.ContextFunction, common.ExecInFunctionBody, b, nil, resolve.Config{})
}

// NewMethodContext creates the context of a method.  cache is the static
// member cache to use; if it is nil one is created according to the engine
// configuration.
func NewMethodContext(b Bundle, containing *types.ClassType, static bool, execKind common.ExecutionKind, cache resolve.MemberCache) *Context {
	kind := common.ContextInstanceMethod
	if static {
		kind = common.ContextStaticMethod
		if cache == nil {
			cache = cacheFor(b.Modules)
		}
	}

	return newContext(kind, execKind, b, containing, resolve.Config{Cache: cache})
}

// NewLambdaContext creates the context of a lambda.  bindings holds explicit
// rebinds made at creation (it may be nil) and display holds the captured
// variables.
func NewLambdaContext(b Bundle, definingKind common.ContextKind, containing *types.ClassType, bindings *symbols.LocalBindingTable, display *symbols.Display) *Context {
	cfg := resolve.Config{
		DefiningKind: definingKind,
		Bindings:     bindings,
		Display:      display,
	}

	if definingKind == common.ContextStaticMethod {
		cfg.Cache = cacheFor(b.Modules)
	}

	return newContext(common.ContextLambda, common.ExecInLambdaBody, b, containing, cfg)
}

// NewLambdaFrom creates the context of a lambda created while parent runs.
// The lambda captures every local of the parent.  When the parent is an
// instance method its receiver is captured as well.
func NewLambdaFrom(parent *Context, b Bundle, bindings *symbols.LocalBindingTable) *Context {
	definingKind := parent.kind
	if definingKind == common.ContextLambda {
		definingKind = parent.definingKind
	}

	display := symbols.CaptureDisplay(parent.bundle.Vars)
	return NewLambdaContext(b, definingKind, parent.containing, bindings, display)
}

// Derive creates a method-shaped context for a nested activation.  It shares
// the heap, type table and module manager of from.  A context derived for an
// annotation sees the type table through a restricted view.
func Derive(from *Context, frame *memory.Area, vars *symbols.VariableTable, ns *symbols.NamespacePool, containing *types.ClassType, static bool, execKind common.ExecutionKind) *Context {
	tr := from.bundle.Types
	if execKind == common.ExecInAnnotation {
		if tt, ok := tr.(*symbols.TypeTable); ok {
			tr = symbols.NewRestrictedTypeTable(tt)
		}
	}

	b := Bundle{
		Frame:      frame,
		Heap:       from.bundle.Heap,
		Vars:       vars,
		Types:      tr,
		Modules:    from.bundle.Modules,
		Namespaces: ns,
		Thread:     from.bundle.Thread,
	}

	return NewMethodContext(b, containing, static, execKind, nil)
}

// NewSystemLoadingContext creates the context the engine uses to run code
// while loading types.  It is built from the current frame of the runtime's
// thread or, if the thread's stack is empty, from the stack memory and a fresh
// variable table linked to the globals.
func NewSystemLoadingContext(rt *exec.Runtime) *Context {
	stack := rt.Thread.Stack()
	b := Bundle{
		Heap:    rt.Heap,
		Types:   rt.Types,
		Modules: rt.Modules,
		Thread:  rt.Thread,
	}

	if f := stack.Current(); f != nil {
		b.Frame = f.Memory
		b.Vars = f.Vars
		b.Namespaces = f.Namespaces
	} else {
		b.Frame = stack.Memory()
		b.Vars = symbols.NewVariableTable(rt.GlobalVars)
		b.Namespaces = stack.Namespaces()
	}

	return newContext(common.ContextFunction, common.ExecSystemLoading, b, nil, resolve.Config{})
}

// cacheFor creates the static member cache selected by the configuration
func cacheFor(mm *mods.Manager) resolve.MemberCache {
	if mm != nil && mm.Config() != nil && !mm.Config().CacheStaticMembers {
		return resolve.NoCache()
	}

	return resolve.NewMemberCache()
}

// -----------------------------------------------------------------------------

// Resolve resolves a bare identifier with the context's resolver
func (c *Context) Resolve(id string) (values.Value, error) {
	return c.resolver.Resolve(id)
}

func (c *Context) ID() uuid.UUID { return c.id }
func (c *Context) Kind() common.ContextKind { return c.kind }
func (c *Context) ExecutionKind() common.ExecutionKind { return c.execKind }
func (c *Context) Frame() *memory.Area { return c.bundle.Frame }
func (c *Context) Heap() *memory.Area { return c.bundle.Heap }
func (c *Context) Vars() *symbols.VariableTable { return c.bundle.Vars }
func (c *Context) Types() symbols.TypeReader { return c.bundle.Types }
func (c *Context) Modules() *mods.Manager { return c.bundle.Modules }
func (c *Context) Namespaces() *symbols.NamespacePool { return c.bundle.Namespaces }
func (c *Context) Thread() *exec.Thread { return c.bundle.Thread }
func (c *Context) Resolver() resolve.NameResolver { return c.resolver }

// ContainingType returns the type whose code runs in the context or nil
func (c *Context) ContainingType() *types.ClassType {
	return c.containing
}

// IsStatic returns whether or not the context is a static method
func (c *Context) IsStatic() bool {
	return c.kind == common.ContextStaticMethod
}

// DefiningKind returns the kind of the context a lambda was created in.  It is
// only meaningful for lambdas.
func (c *Context) DefiningKind() common.ContextKind {
	return c.definingKind
}

func (c *Context) String() string {
	if c.containing != nil {
		return fmt.Sprintf("%s context of %s [%s]", c.kind, c.containing.Name, c.id)
	}

	return fmt.Sprintf("%s context [%s]", c.kind, c.id)
}
