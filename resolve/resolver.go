package resolve

import (
	"jse/common"
	"jse/symbols"
	"jse/types"
	"jse/values"
)

// NameResolver maps a bare identifier to the value it denotes.  An identifier
// that denotes nothing is not an error: Resolve returns a nil value and a nil
// error and the caller decides what to do with the miss.
type NameResolver interface {
	Resolve(id string) (values.Value, error)
}

// Config collects everything a resolver may consult.  Only the fields
// relevant to Kind are used.
type Config struct {
	Kind common.ContextKind

	// DefiningKind is the kind of the context a lambda was created in
	DefiningKind common.ContextKind

	ExecKind   common.ExecutionKind
	Vars       *symbols.VariableTable
	Types      symbols.TypeReader
	Namespaces *symbols.NamespacePool

	// Containing is the type whose code is running.  It is nil in global code.
	Containing *types.ClassType

	// Bindings and Display are the explicit rebinds and the captured
	// variables of a lambda.  Bindings may also be given to a static method
	// context to bind the receiver of an extension call.
	Bindings *symbols.LocalBindingTable
	Display  *symbols.Display

	// Cache is the static member cache.  NoCache is used if it is nil.
	Cache MemberCache
}

// New creates the resolver variant matching the kind of the configuration
func New(cfg Config) NameResolver {
	if cfg.Cache == nil {
		cfg.Cache = NoCache()
	}

	tl := typeLookup{types: cfg.Types, namespaces: cfg.Namespaces}

	switch cfg.Kind {
	case common.ContextInstanceMethod:
		return &InstanceMethodResolver{
			typeLookup: tl,
			vars:       cfg.Vars,
			containing: cfg.Containing,
			site:       siteOf(cfg.ExecKind),
		}
	case common.ContextStaticMethod:
		return &StaticMethodResolver{
			typeLookup: tl,
			vars:       cfg.Vars,
			bindings:   cfg.Bindings,
			containing: cfg.Containing,
			cache:      cfg.Cache,
		}
	case common.ContextLambda:
		return &LambdaResolver{
			typeLookup:   tl,
			vars:         cfg.Vars,
			bindings:     cfg.Bindings,
			display:      cfg.Display,
			definingKind: cfg.DefiningKind,
			containing:   cfg.Containing,
			cache:        cfg.Cache,
		}
	default:
		return &GlobalResolver{typeLookup: tl, vars: cfg.Vars}
	}
}

// siteOf returns the access site of code running with the given execution
// kind inside a method
func siteOf(ek common.ExecutionKind) types.Site {
	if ek == common.ExecInMethodBody {
		return types.SiteMethodBody
	}

	return types.SiteMethodClosure
}

// -----------------------------------------------------------------------------

// typeLookup resolves bare type names through a namespace pool
type typeLookup struct {
	types      symbols.TypeReader
	namespaces *symbols.NamespacePool
}

// lookupType resolves id as a type name.  The first candidate full name that
// is loaded wins and is memoized in the namespace pool.
func (tl typeLookup) lookupType(id string) (values.Value, error) {
	if tl.types == nil {
		return nil, nil
	}

	for _, candidate := range tl.namespaces.Candidates(id) {
		tv, err := tl.types.Value(candidate)
		if err != nil {
			return nil, err
		}

		if tv != nil {
			if candidate != id && tl.namespaces != nil {
				tl.namespaces.Bind(id, candidate)
			}

			return tv, nil
		}
	}

	return nil, nil
}

// staticMember returns the static member called id of the containing type
func (tl typeLookup) staticMember(containing *types.ClassType, id string) values.Value {
	if tl.types == nil || containing == nil {
		return nil
	}

	tv := tl.types.Statics(containing.Name)
	if tv == nil {
		return nil
	}

	return tv.MemberValue(id)
}

// lookupVar looks up a variable and normalizes a variable holding nil to null
func lookupVar(vt *symbols.VariableTable, id string, tryGlobal bool) (values.Value, bool) {
	if vt == nil {
		return nil, false
	}

	v, ok := vt.Lookup(id, tryGlobal)
	if ok && v == nil {
		return values.Null, true
	}

	return v, ok
}

// asObject extracts the object a value refers to
func asObject(v values.Value) *values.ObjectValue {
	if v == nil {
		return nil
	}

	obj, _ := v.Deref().(*values.ObjectValue)
	return obj
}
