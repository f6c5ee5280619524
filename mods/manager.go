package mods

import (
	"sort"
	"sync"

	"jse/deps"
)

// ModuleInfo describes a module loaded into the engine
type ModuleInfo struct {
	Name string

	// Path is the batch file the module was loaded from.  It is empty for
	// modules defined in memory.
	Path string

	// Types are the names of the types the module declared
	Types []string
}

// Manager tracks the modules loaded into an engine and the scripts being
// included.  It is shared by all contexts of the engine.
type Manager struct {
	config  *Config
	modules map[string]*ModuleInfo

	// including is the stack of scripts currently being included
	including []string

	m sync.Mutex
}

// NewManager creates a new module manager
func NewManager(cfg *Config) *Manager {
	return &Manager{
		config:  cfg,
		modules: make(map[string]*ModuleInfo),
	}
}

// Config returns the engine configuration
func (mm *Manager) Config() *Config {
	return mm.config
}

// Register records a loaded module.  Registering a module again appends to
// its types.
func (mm *Manager) Register(name, path string, typeNames ...string) *ModuleInfo {
	mm.m.Lock()
	defer mm.m.Unlock()

	mi, ok := mm.modules[name]
	if !ok {
		mi = &ModuleInfo{Name: name, Path: path}
		mm.modules[name] = mi
	}

	mi.Types = append(mi.Types, typeNames...)
	return mi
}

// Module returns a loaded module
func (mm *Manager) Module(name string) (*ModuleInfo, bool) {
	mm.m.Lock()
	defer mm.m.Unlock()

	mi, ok := mm.modules[name]
	return mi, ok
}

// ModuleNames returns the sorted names of all loaded modules
func (mm *Manager) ModuleNames() []string {
	mm.m.Lock()
	defer mm.m.Unlock()

	names := make([]string, 0, len(mm.modules))
	for name := range mm.modules {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// EnterScript marks a script as being included.  Including a script that is
// already being included is a cyclic dependency between scripts.
func (mm *Manager) EnterScript(path string) error {
	mm.m.Lock()
	defer mm.m.Unlock()

	for _, inc := range mm.including {
		if inc == path {
			return deps.NewCyclicDependencyError(deps.CycleScripts, mm.including, path)
		}
	}

	mm.including = append(mm.including, path)
	return nil
}

// LeaveScript marks the innermost script as fully included
func (mm *Manager) LeaveScript(path string) {
	mm.m.Lock()
	defer mm.m.Unlock()

	if n := len(mm.including); n > 0 && mm.including[n-1] == path {
		mm.including = mm.including[:n-1]
	}
}
