package common

// ContextKind is the shape of a resolution context.
type ContextKind int

// Enumeration of context kinds
const (
	ContextFunction       ContextKind = iota // global script or free function
	ContextInstanceMethod                    // instance method or constructor
	ContextStaticMethod                      // static method or static initializer
	ContextLambda                            // lambda closure
)

func (k ContextKind) String() string {
	switch k {
	case ContextFunction:
		return "function"
	case ContextInstanceMethod:
		return "instance method"
	case ContextStaticMethod:
		return "static method"
	case ContextLambda:
		return "lambda"
	}

	return "unknown"
}

// ExecutionKind indicates what the code running in a context is doing.  It
// affects accessibility checks and which view of the type table a derived
// context receives.
type ExecutionKind int

// Enumeration of execution kinds
const (
	ExecInFunctionBody ExecutionKind = iota
	ExecInMethodBody
	ExecInLambdaBody
	ExecInAnnotation
	ExecSystemLoading
)

func (k ExecutionKind) String() string {
	switch k {
	case ExecInFunctionBody:
		return "function body"
	case ExecInMethodBody:
		return "method body"
	case ExecInLambdaBody:
		return "lambda body"
	case ExecInAnnotation:
		return "annotation"
	case ExecSystemLoading:
		return "system loading"
	}

	return "unknown"
}
