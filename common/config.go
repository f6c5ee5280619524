package common

const (
	BatchFileExtension = ".yaml"
	ModuleFileName     = "jse-mod.toml"
	JSEVersion         = "0.1.0"
)

// Well-known type names of the built-in type system.  The root attribute type
// must be loaded before any other attribute type.
const (
	RootObjectType      = "System.Object"
	RootAttributeType   = "System.Attribute"
	AttributeTargetType = "System.AttributeTarget"
	StringType          = "System.String"
)

// Keywords that refer to the receiver of an instance method.
const (
	KeywordThis  = "this"
	KeywordSuper = "super"
)

// IsReceiverKeyword returns whether or not the identifier names the receiver.
func IsReceiverKeyword(id string) bool {
	return id == KeywordThis || id == KeywordSuper
}
