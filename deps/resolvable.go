package deps

// Resolvable is a unit whose initialization order must be decided: usually a
// type declared in a batch being loaded.
type Resolvable interface {
	// TypeName is the fully-qualified name of the unit.  It is unique within a
	// batch.
	TypeName() string

	// DependentTypeNames lists the names this unit depends on.  Names outside
	// the batch are ignored when ordering.
	DependentTypeNames() []string

	// IsAttributeType indicates whether the unit is an attribute type.
	IsAttributeType() bool
}

// Resolver orders a batch of resolvable units.  The result contains exactly
// the input units with no duplicates.
type Resolver interface {
	Resolve(nodes []Resolvable) ([]Resolvable, error)
}

// Node is a plain Resolvable.
type Node struct {
	Name      string
	Deps      []string
	Attribute bool
}

// NewNode creates a new ordinary node
func NewNode(name string, deps ...string) *Node {
	return &Node{Name: name, Deps: deps}
}

// NewAttributeNode creates a new attribute-type node
func NewAttributeNode(name string, deps ...string) *Node {
	return &Node{Name: name, Deps: deps, Attribute: true}
}

func (n *Node) TypeName() string {
	return n.Name
}

func (n *Node) DependentTypeNames() []string {
	return n.Deps
}

func (n *Node) IsAttributeType() bool {
	return n.Attribute
}

// Names extracts the type names of an ordered batch
func Names(nodes []Resolvable) []string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.TypeName()
	}

	return names
}
