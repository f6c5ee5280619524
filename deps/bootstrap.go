package deps

import "jse/common"

// BootstrapResolver orders the built-in batch loaded before the type system
// is complete.  It ignores dependency data: the root attribute type comes
// first, then the remaining attribute types, then everything else, each group
// in input order.
type BootstrapResolver struct{}

func (BootstrapResolver) Resolve(nodes []Resolvable) ([]Resolvable, error) {
	sorted := make([]Resolvable, 0, len(nodes))
	var attrs, others []Resolvable

	for _, n := range nodes {
		switch {
		case n.TypeName() == common.RootAttributeType:
			sorted = append(sorted, n)
		case n.IsAttributeType():
			attrs = append(attrs, n)
		default:
			others = append(others, n)
		}
	}

	sorted = append(sorted, attrs...)
	return append(sorted, others...), nil
}

// ContainsRootAttribute returns whether the batch declares the root
// attribute type, in which case it must be ordered by a BootstrapResolver.
func ContainsRootAttribute(nodes []Resolvable) bool {
	for _, n := range nodes {
		if n.TypeName() == common.RootAttributeType {
			return true
		}
	}

	return false
}
