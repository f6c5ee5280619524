package symbols

import (
	"strings"
)

// NamespacePool stores the namespaces imported into a script and the aliases
// given to them.  It expands a bare type name into the fully-qualified names
// it may refer to.
type NamespacePool struct {
	namespaces []string
	aliases    map[string]string

	// bindings memoizes the full name a bare name resolved to
	bindings map[string]string
}

// NewNamespacePool creates a namespace pool with the given namespaces
func NewNamespacePool(namespaces ...string) *NamespacePool {
	np := &NamespacePool{
		aliases:  make(map[string]string),
		bindings: make(map[string]string),
	}

	for _, ns := range namespaces {
		np.AddNamespace(ns)
	}

	return np
}

// AddNamespace imports a namespace.  Importing the same namespace twice has
// no effect.
func (np *NamespacePool) AddNamespace(ns string) {
	for _, existing := range np.namespaces {
		if existing == ns {
			return
		}
	}

	np.namespaces = append(np.namespaces, ns)
}

// AddAlias imports a namespace under an alias
func (np *NamespacePool) AddAlias(alias, ns string) {
	np.aliases[alias] = ns
}

// Namespaces returns the imported namespaces in import order
func (np *NamespacePool) Namespaces() []string {
	return np.namespaces
}

// Bind memoizes the full name a bare name resolved to
func (np *NamespacePool) Bind(name, fullName string) {
	np.bindings[name] = fullName
}

// Candidates returns the fully-qualified names a name may refer to, in the
// order they should be tried.  A memoized binding is returned alone.
// Otherwise the name is tried with every namespace prefix and finally as
// written.  A two-part name whose first part is an alias is expanded using
// the alias.
func (np *NamespacePool) Candidates(name string) []string {
	if np == nil {
		return []string{name}
	}

	if full, ok := np.bindings[name]; ok {
		return []string{full}
	}

	var candidates []string
	if i := strings.IndexByte(name, '.'); i >= 0 {
		if ns, ok := np.aliases[name[:i]]; ok && strings.IndexByte(name[i+1:], '.') < 0 {
			candidates = append(candidates, ns+"."+name[i+1:])
		}
	}

	for _, ns := range np.namespaces {
		candidates = append(candidates, ns+"."+name)
	}

	return append(candidates, name)
}
