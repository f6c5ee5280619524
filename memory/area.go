package memory

import "sync"

// Kind is the kind of a memory area
type Kind int

// Enumeration of memory area kinds
const (
	KindHeap  Kind = iota // shared by all threads of an engine
	KindStack             // owned by one thread
	KindFrame             // owned by one activation
)

func (k Kind) String() string {
	switch k {
	case KindHeap:
		return "heap"
	case KindStack:
		return "stack"
	case KindFrame:
		return "frame"
	}

	return "unknown"
}

// Slot is the address of an allocation inside an area
type Slot int

// Area is a region of memory that values are allocated in.  Values are stored
// as opaque entries: the area does not interpret them.
type Area struct {
	kind  Kind
	slots []interface{}

	// m guards slots: the heap is shared between threads
	m sync.Mutex
}

// NewArea creates a new, empty memory area
func NewArea(kind Kind) *Area {
	return &Area{kind: kind}
}

// Kind returns the kind of the area
func (a *Area) Kind() Kind {
	return a.kind
}

// Alloc stores an entry in the area and returns its slot
func (a *Area) Alloc(entry interface{}) Slot {
	a.m.Lock()
	defer a.m.Unlock()

	a.slots = append(a.slots, entry)
	return Slot(len(a.slots) - 1)
}

// Load returns the entry stored at a slot
func (a *Area) Load(s Slot) (interface{}, bool) {
	a.m.Lock()
	defer a.m.Unlock()

	if int(s) < 0 || int(s) >= len(a.slots) {
		return nil, false
	}

	return a.slots[s], true
}

// Size returns the number of allocations made in the area
func (a *Area) Size() int {
	a.m.Lock()
	defer a.m.Unlock()

	return len(a.slots)
}

// Release drops all allocations.  Frames are released when their activation
// returns.
func (a *Area) Release() {
	a.m.Lock()
	defer a.m.Unlock()

	a.slots = nil
}
