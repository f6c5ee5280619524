package loading

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jse/activation"
	"jse/common"
	"jse/deps"
	"jse/eval"
	"jse/exec"
	"jse/logging"
	"jse/symbols"
	"jse/types"
	"jse/values"

	"github.com/pkg/errors"
)

// Initializer runs once for every type of a batch after its static fields and
// annotations are set.  Returning an error fails the whole batch.
type Initializer func(ctx *activation.Context, t *types.ClassType, tv *values.TypeValue) error

// Loader loads batches of types into the type table of a runtime.  Loading is
// staged: types are ordered, added unfinalized, initialized and then
// finalized together.  A batch that fails at any stage leaves no type behind.
type Loader struct {
	rt       *exec.Runtime
	resolver deps.Resolver

	initializers []Initializer
}

// NewLoader creates a new loader for a runtime
func NewLoader(rt *exec.Runtime) *Loader {
	hr := &deps.HardResolver{}
	if cfg := rt.Modules.Config(); cfg != nil {
		hr.Deterministic = cfg.DeterministicOrder
	}

	return &Loader{rt: rt, resolver: hr}
}

// AddInitializer registers a hook run for every loaded type
func (l *Loader) AddInitializer(hook Initializer) {
	l.initializers = append(l.initializers, hook)
}

// Sort returns the declarations of a batch in initialization order.  A batch
// declaring the root attribute type is ordered by the bootstrap resolver.
func (l *Loader) Sort(b *Batch) ([]*Declaration, error) {
	nodes := make([]deps.Resolvable, len(b.Types))
	for i, d := range b.Types {
		nodes[i] = d
	}

	resolver := l.resolver
	if deps.ContainsRootAttribute(nodes) {
		resolver = deps.BootstrapResolver{}
	}

	sorted, err := resolver.Resolve(nodes)
	if err != nil {
		return nil, err
	}

	decls := make([]*Declaration, len(sorted))
	for i, n := range sorted {
		decls[i] = n.(*Declaration)
	}

	return decls, nil
}

// LoadBatch loads all the types of a batch and returns them in the order they
// were initialized
func (l *Loader) LoadBatch(b *Batch) ([]*types.ClassType, error) {
	origin := b.origin()

	sorted, err := l.Sort(b)
	if err != nil {
		return nil, l.fail(origin, errors.Wrapf(err, "failed to order the types of %s", origin))
	}

	ns := l.namespaces(b)
	shells, applied, err := l.link(b, sorted, ns)
	if err != nil {
		return nil, l.fail(origin, err)
	}

	var added []string
	for _, t := range shells {
		if _, err := l.rt.Types.Add(t); err != nil {
			l.rollback(origin, added)
			return nil, l.fail(origin, err)
		}

		added = append(added, t.Name)
	}

	l.relink(shells)

	if err := l.initialize(sorted, shells, applied, ns); err != nil {
		l.rollback(origin, added)
		return nil, l.fail(origin, err)
	}

	l.rt.Types.Finalize(added...)
	if b.Module != "" {
		l.rt.Modules.Register(b.Module, b.Path, added...)
	}

	logging.Trace("Loaded", fmt.Sprintf("%s (%s)", origin, strings.Join(added, ", ")))
	return shells, nil
}

// LoadFile loads a batch file after the modules it includes.  Including a
// file that is still being included is a cyclic dependency.
func (l *Loader) LoadFile(path string) ([]*types.ClassType, error) {
	abspath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid batch path `%s`", path)
	}

	if err := l.rt.Modules.EnterScript(abspath); err != nil {
		logging.LogRuntimeError(abspath, err.Error(), logging.LMKCycle)
		return nil, err
	}
	defer l.rt.Modules.LeaveScript(abspath)

	b, err := ReadBatchFile(abspath)
	if err != nil {
		return nil, l.fail(abspath, err)
	}

	for _, inc := range b.Includes {
		if _, ok := l.rt.Modules.Module(inc); ok {
			continue
		}

		incPath, ok := l.resolveInclude(abspath, inc)
		if !ok {
			err := errors.Errorf("unable to locate module `%s`", inc)
			logging.LogRuntimeError(abspath, err.Error(), logging.LMKScript)
			return nil, err
		}

		if _, err := l.LoadFile(incPath); err != nil {
			return nil, errors.Wrapf(err, "while including `%s`", inc)
		}
	}

	return l.LoadBatch(b)
}

// resolveInclude finds the batch file of an included module.  The directory
// of the including file is searched before the configured paths.
func (l *Loader) resolveInclude(from, name string) (string, bool) {
	local := filepath.Join(filepath.Dir(from), name+common.BatchFileExtension)
	if finfo, err := os.Stat(local); err == nil && !finfo.IsDir() {
		return local, true
	}

	if cfg := l.rt.Modules.Config(); cfg != nil {
		return cfg.ResolveModulePath(name)
	}

	return "", false
}

// -----------------------------------------------------------------------------

// namespaces builds the namespace pool used to link and initialize a batch
func (l *Loader) namespaces(b *Batch) *symbols.NamespacePool {
	var all []string
	if b.Module != "" {
		all = append(all, b.Module)
	}

	all = append(all, b.Namespaces...)

	if cfg := l.rt.Modules.Config(); cfg != nil {
		all = append(all, cfg.Namespaces...)
	}

	return symbols.NewNamespacePool(all...)
}

// link creates the class types of a batch and links them to their parents,
// interfaces and members.  It also returns the attribute types applied to each
// declaration.
func (l *Loader) link(b *Batch, decls []*Declaration, ns *symbols.NamespacePool) ([]*types.ClassType, [][]*types.ClassType, error) {
	byName := make(map[string]*types.ClassType, len(decls))
	shells := make([]*types.ClassType, len(decls))
	applied := make([][]*types.ClassType, len(decls))

	for i, d := range decls {
		module := b.Module
		if d.BuiltIn {
			module = ""
		}

		t := types.NewClassType(d.Name, module, nil)
		t.Attribute = d.Attribute
		t.Enum = d.Enum
		t.BuiltIn = d.BuiltIn

		for _, md := range d.Members {
			access, ok := types.ParseAccessibility(md.Access)
			if !ok {
				return nil, nil, errors.Errorf("member `%s` of `%s` has unknown accessibility `%s`", md.Name, d.Name, md.Access)
			}

			if md.Kind == "method" {
				t.AddMethod(md.Name, access, md.Static, md.Params...)
			} else {
				t.AddField(md.Name, access, md.Static)
			}
		}

		shells[i] = t
		byName[d.Name] = t
	}

	lookup := func(name string) (*types.ClassType, error) {
		if t, ok := byName[name]; ok {
			return t, nil
		}

		for _, candidate := range ns.Candidates(name) {
			if t, ok := l.rt.Types.Type(candidate, true); ok {
				return t, nil
			}
		}

		return nil, errors.Errorf("undefined type `%s`", name)
	}

	for i, d := range decls {
		t := shells[i]

		if d.Parent != "" {
			parent, err := lookup(d.Parent)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "parent of `%s`", d.Name)
			}

			t.Parent = parent
		}

		for _, iname := range d.Interfaces {
			it, err := lookup(iname)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "interface of `%s`", d.Name)
			}

			t.Interfaces = append(t.Interfaces, it)
		}

		for _, ad := range d.Attributes {
			at, err := lookup(ad.Type)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "attribute of `%s`", d.Name)
			}

			if !at.Attribute {
				return nil, nil, errors.Errorf("`%s` applied to `%s` is not an attribute type", at.Name, d.Name)
			}

			applied[i] = append(applied[i], at)
		}
	}

	return shells, applied, nil
}

// relink links the type values of a batch to their parents' once all of them
// are in the table
func (l *Loader) relink(shells []*types.ClassType) {
	for _, t := range shells {
		if t.Parent == nil {
			continue
		}

		if tv := l.rt.Types.Statics(t.Name); tv != nil && tv.Parent() == nil {
			tv.SetParent(l.rt.Types.Statics(t.Parent.Name))
		}
	}
}

// initialize sets the static fields and annotations of every type of a batch
// and runs the initializers.  It runs on a frame pushed on the loading thread.
func (l *Loader) initialize(decls []*Declaration, shells []*types.ClassType, applied [][]*types.ClassType, ns *symbols.NamespacePool) error {
	stack := l.rt.Thread.Stack()
	frame := stack.Push(l.rt.GlobalVars, ns)
	defer stack.Pop()

	sys := activation.NewSystemLoadingContext(l.rt)

	for i, d := range decls {
		t := shells[i]
		tv := l.rt.Types.Statics(t.Name)

		staticCtx := activation.Derive(sys, frame.Memory, symbols.NewVariableTable(l.rt.GlobalVars), ns, t, true, common.ExecSystemLoading)
		for _, md := range d.Members {
			if md.Kind != "field" || !md.Static || md.Value == nil {
				continue
			}

			v, err := evalArg(staticCtx, md.Value)
			if err != nil {
				return errors.Wrapf(err, "initial value of `%s.%s`", t.Name, md.Name)
			}

			if err := tv.SetStatic(md.Name, v); err != nil {
				return err
			}
		}

		annotCtx := activation.Derive(sys, frame.Memory, symbols.NewVariableTable(l.rt.GlobalVars), ns, t, true, common.ExecInAnnotation)
		for j, ad := range d.Attributes {
			args := make([]values.Value, len(ad.Args))
			for k, raw := range ad.Args {
				v, err := evalArg(annotCtx, raw)
				if err != nil {
					return errors.Wrapf(err, "argument %d of attribute %d of `%s`", k, j, t.Name)
				}

				args[k] = v
			}

			tv.Annotate(&values.Annotation{Attribute: applied[i][j], Args: args})
		}

		for _, hook := range l.initializers {
			if err := hook(staticCtx, t, tv); err != nil {
				return errors.Wrapf(err, "initializing `%s`", t.Name)
			}
		}
	}

	return nil
}

// rollback removes the types of a failed batch
func (l *Loader) rollback(origin string, added []string) {
	if err := l.rt.Types.RemoveUnfinalized(added...); err != nil {
		logging.LogRuntimeError(origin, err.Error(), logging.LMKLoad)
	}
}

// fail logs a batch failure and returns it
func (l *Loader) fail(origin string, err error) error {
	kind := logging.LMKLoad

	var cycleErr *deps.CyclicDependencyError
	if errors.As(err, &cycleErr) {
		kind = logging.LMKCycle
	}

	logging.LogRuntimeError(origin, err.Error(), kind)
	return err
}

// evalArg evaluates an initial value or an attribute argument.  Strings
// starting with `$` are names resolved in the context.
func evalArg(ctx *activation.Context, raw interface{}) (values.Value, error) {
	switch v := raw.(type) {
	case nil:
		return values.Null, nil
	case bool:
		return values.BoolValue(v), nil
	case int:
		return values.IntValue(v), nil
	case string:
		if strings.HasPrefix(v, "$") {
			res, err := eval.ResolvePath(ctx, v[1:])
			if err != nil {
				return nil, err
			}

			return res.Deref(), nil
		}

		return values.StringValue(v), nil
	}

	return nil, errors.Errorf("unsupported literal `%v`", raw)
}

// origin names a batch in log messages
func (b *Batch) origin() string {
	switch {
	case b.Path != "":
		return b.Path
	case b.Module != "":
		return "module " + b.Module
	default:
		return "batch"
	}
}
