package exec

import (
	"fmt"

	"jse/memory"
	"jse/mods"
	"jse/symbols"
)

// Thread is an engine thread: a call stack plus an identity
type Thread struct {
	ID    int
	Name  string
	Main  bool
	stack *Stack
}

// NewThread creates a new thread with an empty call stack
func NewThread(id int, name string, main bool, ns *symbols.NamespacePool) *Thread {
	return &Thread{ID: id, Name: name, Main: main, stack: NewStack(ns)}
}

// Stack returns the call stack of the thread
func (t *Thread) Stack() *Stack {
	return t.stack
}

func (t *Thread) String() string {
	return fmt.Sprintf("thread %d (%s)", t.ID, t.Name)
}

// Runtime bundles the engine-owned state a thread runs against
type Runtime struct {
	Heap       *memory.Area
	Types      *symbols.TypeTable
	GlobalVars *symbols.VariableTable
	Modules    *mods.Manager
	Thread     *Thread
}
