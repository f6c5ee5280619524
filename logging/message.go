package logging

// LogMessage is the interface for all messages handled by the logger
type LogMessage interface {
	isError() bool
	display()
}

// Enumeration of runtime message kinds.  These are used to pick the banner of
// a displayed message.
const (
	LMKLoad   = iota // type loading and batch failures
	LMKCycle         // cyclic dependencies between types or scripts
	LMKAccess        // illegal member access
	LMKName          // name resolution failures
	LMKThis          // illegal or unbound receiver
	LMKUsage         // illegal usage (eg. disallowed types in attributes)
	LMKScript        // script inclusion
)

// RuntimeMessage is a message produced while the engine loads types or
// resolves names.
type RuntimeMessage struct {
	Message string
	Kind    int

	// Origin identifies where the message came from: a batch file, a type name
	// or an activation id.  It may be empty.
	Origin string

	IsError bool
}

func (rm *RuntimeMessage) isError() bool {
	return rm.IsError
}

// ConfigError is an error that occurs while loading the engine configuration
type ConfigError struct {
	Kind    string
	Message string
}

func (ce *ConfigError) isError() bool {
	return true
}

// ConfigWarning is a non-fatal configuration problem (eg. a version mismatch)
type ConfigWarning struct {
	Kind    string
	Message string
}

func (cw *ConfigWarning) isError() bool {
	return false
}
