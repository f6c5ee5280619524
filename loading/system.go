package loading

// Attribute targets.  Values are flags so that targets can be combined.
const (
	TargetClass  = 1
	TargetField  = 2
	TargetMethod = 4
	TargetAll    = TargetClass | TargetField | TargetMethod
)

// SystemBatch returns the batch of built-in types every engine loads first.
// It declares the root attribute type and so is ordered by the bootstrap
// resolver.
func SystemBatch() *Batch {
	b := &Batch{
		Module: "System",
		Types: []*Declaration{
			{
				Name:    "Object",
				BuiltIn: true,
				Members: []*MemberDecl{
					{Name: "ToString", Kind: "method"},
					{Name: "Equals", Kind: "method", Params: []string{"other"}},
					{Name: "GetHashCode", Kind: "method"},
				},
			},
			{
				Name:      "Attribute",
				BuiltIn:   true,
				Attribute: true,
				Members: []*MemberDecl{
					{Name: "Target", Kind: "field", Access: "protected"},
				},
			},
			{
				Name:    "AttributeTarget",
				BuiltIn: true,
				Enum:    true,
				Members: []*MemberDecl{
					{Name: "Class", Static: true, Value: TargetClass},
					{Name: "Field", Static: true, Value: TargetField},
					{Name: "Method", Static: true, Value: TargetMethod},
					{Name: "All", Static: true, Value: TargetAll},
				},
			},
			{
				Name:    "String",
				BuiltIn: true,
				Members: []*MemberDecl{
					{Name: "Length", Kind: "field"},
					{Name: "Empty", Static: true, Value: ""},
					{Name: "Concat", Kind: "method", Static: true, Params: []string{"a", "b"}},
				},
			},
		},
	}

	if err := b.normalize(); err != nil {
		panic(err)
	}

	return b
}
