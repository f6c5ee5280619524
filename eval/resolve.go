package eval

import (
	"strings"

	"jse/activation"
	"jse/common"
	"jse/types"
	"jse/values"

	"github.com/pkg/errors"
)

// ResolvePath evaluates a possibly dotted name in a context.  Only the first
// segment is handed to the context's resolver.  If it does not resolve, the
// longest leading segments are looked up as a qualified type name through the
// context's namespaces.  The remaining segments select members.  A name that
// resolves to nothing is an UndefinedIdentifierError.
func ResolvePath(ctx *activation.Context, path string) (values.Value, error) {
	segs := common.SplitQualifiedName(path)
	for _, seg := range segs {
		if seg == "" {
			return nil, errors.Errorf("malformed name `%s`", path)
		}
	}

	v, err := ctx.Resolve(segs[0])
	if err != nil {
		return nil, err
	}

	if v != nil {
		return selectMembers(ctx, v, segs[0], segs[1:])
	}

	for i := 2; i <= len(segs); i++ {
		prefix := strings.Join(segs[:i], ".")

		tv, err := qualifiedType(ctx, prefix)
		if err != nil {
			return nil, err
		}

		if tv != nil {
			return selectMembers(ctx, tv, prefix, segs[i:])
		}
	}

	return nil, &UndefinedIdentifierError{Name: segs[0], Suggestions: Suggest(ctx, segs[0])}
}

// qualifiedType looks up a dotted type name in the type table of a context.
// Unlike bare type names, the binding is not memoized in the namespace pool.
func qualifiedType(ctx *activation.Context, name string) (*values.TypeValue, error) {
	table := ctx.Types()
	if table == nil {
		return nil, nil
	}

	for _, candidate := range ctx.Namespaces().Candidates(name) {
		tv, err := table.Value(candidate)
		if err != nil {
			return nil, err
		}

		if tv != nil {
			return tv, nil
		}
	}

	return nil, nil
}

// selectMembers walks the member segments of a path starting at v
func selectMembers(ctx *activation.Context, v values.Value, resolved string, rest []string) (values.Value, error) {
	for _, name := range rest {
		next, err := selectMember(ctx, v, resolved, name)
		if err != nil {
			return nil, err
		}

		v = next
		resolved += "." + name
	}

	return v, nil
}

// selectMember selects a single member of a value
func selectMember(ctx *activation.Context, v values.Value, path, name string) (values.Value, error) {
	site := siteOf(ctx)

	switch target := v.Deref().(type) {
	case *values.ObjectValue:
		defining, err := types.CheckMemberAccess(target.Class(), name, ctx.ContainingType(), site, false)
		if err != nil {
			return nil, err
		}

		if defining != nil {
			if member := values.BundleMembers(target.MemberValues(name, defining)); member != nil {
				return member, nil
			}
		}

		return nil, &UndefinedIdentifierError{
			Name:        path + "." + name,
			Suggestions: closest(name, target.Class().MemberNames(false)),
		}
	case *values.TypeValue:
		defining, err := types.CheckMemberAccess(target.Type(), name, ctx.ContainingType(), site, true)
		if err != nil {
			return nil, err
		}

		if defining != nil {
			if member := target.MemberValue(name); member != nil {
				return member, nil
			}
		}

		return nil, &UndefinedIdentifierError{
			Name:        path + "." + name,
			Suggestions: closest(name, target.Type().MemberNames(true)),
		}
	default:
		return nil, &MemberSelectionError{Path: path, Kind: v.Deref().Kind().String()}
	}
}

// siteOf returns the access site of code running in a context
func siteOf(ctx *activation.Context) types.Site {
	switch {
	case ctx.ContainingType() == nil:
		return types.SiteGlobal
	case ctx.ExecutionKind() == common.ExecInMethodBody:
		return types.SiteMethodBody
	default:
		return types.SiteMethodClosure
	}
}
