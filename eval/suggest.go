package eval

import (
	"jse/activation"
	"jse/common"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions is the maximum number of names suggested for a miss
const maxSuggestions = 3

// typeNamer is implemented by type tables that can list their types
type typeNamer interface {
	Names() []string
}

// Suggest returns the visible names of a context closest to a name that
// failed to resolve: variables, members of the containing type and simple
// names of loaded types.
func Suggest(ctx *activation.Context, name string) []string {
	seen := make(map[string]struct{})
	var candidates []string
	add := func(names ...string) {
		for _, n := range names {
			if _, ok := seen[n]; !ok && n != name {
				seen[n] = struct{}{}
				candidates = append(candidates, n)
			}
		}
	}

	if vt := ctx.Vars(); vt != nil {
		add(vt.Names(ctx.Kind() == common.ContextFunction)...)
	}

	if ct := ctx.ContainingType(); ct != nil {
		add(ct.MemberNames(true)...)
		if !ctx.IsStatic() {
			add(ct.MemberNames(false)...)
		}
	}

	if tn, ok := ctx.Types().(typeNamer); ok {
		for _, full := range tn.Names() {
			add(common.SimpleName(full))
		}
	}

	return closest(name, candidates)
}

// closest picks the best fuzzy matches of a name among candidates
func closest(name string, candidates []string) []string {
	matches := fuzzy.Find(name, candidates)

	var best []string
	for i := 0; i < len(matches) && i < maxSuggestions; i++ {
		best = append(best, matches[i].Str)
	}

	return best
}
