package exec

import (
	"jse/memory"
	"jse/symbols"
)

// Frame is the state of one activation on a thread's call stack
type Frame struct {
	Memory     *memory.Area
	Vars       *symbols.VariableTable
	Namespaces *symbols.NamespacePool
}

// Stack is the call stack of a thread
type Stack struct {
	frames []*Frame

	// memory is the thread-wide stack area used when no frame is active
	memory     *memory.Area
	namespaces *symbols.NamespacePool
}

// NewStack creates a new, empty call stack
func NewStack(ns *symbols.NamespacePool) *Stack {
	return &Stack{
		memory:     memory.NewArea(memory.KindStack),
		namespaces: ns,
	}
}

// Push pushes a new frame whose variables are linked to the global table
func (s *Stack) Push(global *symbols.VariableTable, ns *symbols.NamespacePool) *Frame {
	if ns == nil {
		ns = s.namespaces
	}

	f := &Frame{
		Memory:     memory.NewArea(memory.KindFrame),
		Vars:       symbols.NewVariableTable(global),
		Namespaces: ns,
	}

	s.frames = append(s.frames, f)
	return f
}

// Pop pops and releases the current frame
func (s *Stack) Pop() {
	if n := len(s.frames); n > 0 {
		s.frames[n-1].Memory.Release()
		s.frames = s.frames[:n-1]
	}
}

// Current returns the current frame or nil if the stack is empty
func (s *Stack) Current() *Frame {
	if n := len(s.frames); n > 0 {
		return s.frames[n-1]
	}

	return nil
}

// Depth returns the number of frames on the stack
func (s *Stack) Depth() int {
	return len(s.frames)
}

// Memory returns the thread-wide stack area
func (s *Stack) Memory() *memory.Area {
	return s.memory
}

// Namespaces returns the namespace pool of the thread
func (s *Stack) Namespaces() *symbols.NamespacePool {
	return s.namespaces
}
