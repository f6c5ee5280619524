package values

import (
	"strconv"
)

// Kind is the kind of a runtime value
type Kind int

// Enumeration of value kinds
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindString
	KindRef
	KindObject
	KindType
	KindMethod
	KindMethodGroup
)

var kindNames = map[Kind]string{
	KindNull:        "null",
	KindBool:        "bool",
	KindInt:         "int",
	KindString:      "string",
	KindRef:         "reference",
	KindObject:      "object",
	KindType:        "type",
	KindMethod:      "method",
	KindMethodGroup: "method group",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

// Value is a runtime value
type Value interface {
	Kind() Kind

	// Deref returns the value a reference points to.  Other values return
	// themselves.
	Deref() Value

	String() string
}

// NullValue is the null value
type NullValue struct{}

// Null is the only NullValue
var Null Value = NullValue{}

func (NullValue) Kind() Kind { return KindNull }
func (n NullValue) Deref() Value { return n }
func (NullValue) String() string { return "null" }

// BoolValue is a boolean
type BoolValue bool

func (BoolValue) Kind() Kind { return KindBool }
func (b BoolValue) Deref() Value { return b }
func (b BoolValue) String() string { return strconv.FormatBool(bool(b)) }

// IntValue is a 64-bit integer
type IntValue int64

func (IntValue) Kind() Kind { return KindInt }
func (i IntValue) Deref() Value { return i }
func (i IntValue) String() string { return strconv.FormatInt(int64(i), 10) }

// StringValue is a string
type StringValue string

func (StringValue) Kind() Kind { return KindString }
func (s StringValue) Deref() Value { return s }
func (s StringValue) String() string { return strconv.Quote(string(s)) }

// RefValue is a reference to another value.  Locals bound to objects are
// stored as references.
type RefValue struct {
	Target Value
}

// NewRef creates a new reference
func NewRef(target Value) *RefValue {
	return &RefValue{Target: target}
}

func (*RefValue) Kind() Kind { return KindRef }

func (r *RefValue) Deref() Value {
	if r.Target == nil {
		return Null
	}

	return r.Target.Deref()
}

func (r *RefValue) String() string {
	return "&" + r.Deref().String()
}

// IsNull returns whether or not v is nil or dereferences to null
func IsNull(v Value) bool {
	return v == nil || v.Deref().Kind() == KindNull
}
