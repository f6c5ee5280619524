package mods

// Config is the engine configuration loaded from a module file
type Config struct {
	// Name is the name of the root module
	Name string

	// RootPath is the path to the directory enclosing the module file
	RootPath string

	// LogLevel is the name of the log level the engine logs at
	LogLevel string

	// ModulePaths is a list of directories in which to search for the batch
	// files of included modules (after the root directory)
	ModulePaths []string

	// Namespaces are imported into every global context
	Namespaces []string

	// DeterministicOrder makes the dependency sorter order the types of a
	// level by name instead of by discovery order
	DeterministicOrder bool

	// CacheStaticMembers enables the member cache of static method contexts
	CacheStaticMembers bool
}

// DefaultConfig returns the configuration used when no module file exists
func DefaultConfig(name, rootPath string) *Config {
	return &Config{
		Name:               name,
		RootPath:           rootPath,
		LogLevel:           "verbose",
		Namespaces:         []string{"System"},
		CacheStaticMembers: true,
	}
}
