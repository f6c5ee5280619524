package deps

import (
	"sort"

	"github.com/emirpasic/gods/maps/treemap"
)

/*
Hard Dependency Ordering
------------------------

Every unit of a batch is assigned a level:

1. A unit with no dependency inside the batch has level 0.
2. Otherwise its level is one more than the largest level of its in-batch
   dependencies.

Levels are computed with a three-color depth-first search performed over an
explicit stack so that deep dependency chains cannot exhaust the goroutine
stack.  All units start white.  A unit turns grey when it is pushed and black
once all of its dependencies have been leveled.  Reaching a grey unit means the
dependency closes a cycle: the search stops and the current path (trimmed to
the cycle and closed with the repeated name) is reported.  Reaching a black
unit only reads its memoized level.

Units are placed into one of two priority bucket maps (attribute and ordinary)
keyed by level the first time they turn black.  Attribute roots are searched
first and every unit first reached from an attribute root lands in the
attribute buckets, so ordinary types that an attribute type needs still come
before it.  The final order is the attribute buckets in ascending level
followed by the ordinary buckets in ascending level.
*/

// Enumeration of visit colors
const (
	colorWhite = iota
	colorGrey
	colorBlack
)

// HardResolver orders a batch by its declared dependencies.
type HardResolver struct {
	// Deterministic sorts the units of each level by name.  Otherwise units of
	// a level keep the order in which they were leveled.
	Deterministic bool
}

// stackFrame is a unit being leveled on the explicit search stack
type stackFrame struct {
	node   int
	next   int // index of the next dependency to examine
	level  int
	bucket *treemap.Map
}

// Resolve orders the batch.  It fails with a CyclicDependencyError if the
// batch contains a cycle and with a DuplicateNodeError if a name appears
// twice.
func (hr *HardResolver) Resolve(nodes []Resolvable) ([]Resolvable, error) {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, ok := index[n.TypeName()]; ok {
			return nil, &DuplicateNodeError{Name: n.TypeName()}
		}

		index[n.TypeName()] = i
	}

	colors := make([]int, len(nodes))
	levels := make([]int, len(nodes))

	attrBuckets := treemap.NewWithIntComparator()
	typeBuckets := treemap.NewWithIntComparator()

	for _, attrPass := range []bool{true, false} {
		for i, n := range nodes {
			if n.IsAttributeType() != attrPass || colors[i] == colorBlack {
				continue
			}

			bucket := typeBuckets
			if attrPass {
				bucket = attrBuckets
			}

			if err := hr.searchFrom(nodes, index, colors, levels, i, bucket); err != nil {
				return nil, err
			}
		}
	}

	sorted := make([]Resolvable, 0, len(nodes))
	sorted = hr.mergeBuckets(sorted, nodes, attrBuckets)
	sorted = hr.mergeBuckets(sorted, nodes, typeBuckets)
	return sorted, nil
}

// searchFrom levels the unit at start and everything it reaches
func (hr *HardResolver) searchFrom(nodes []Resolvable, index map[string]int, colors, levels []int, start int, bucket *treemap.Map) error {
	stack := []*stackFrame{{node: start, bucket: bucket}}
	colors[start] = colorGrey

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		deps := nodes[top.node].DependentTypeNames()

		if top.next < len(deps) {
			depName := deps[top.next]
			top.next++

			dep, ok := index[depName]
			if !ok {
				// names outside of the batch impose no ordering
				continue
			}

			switch colors[dep] {
			case colorGrey:
				path := make([]string, len(stack))
				for i, frame := range stack {
					path[i] = nodes[frame.node].TypeName()
				}

				return NewCyclicDependencyError(CycleTypes, path, depName)
			case colorBlack:
				if levels[dep]+1 > top.level {
					top.level = levels[dep] + 1
				}
			default:
				colors[dep] = colorGrey
				stack = append(stack, &stackFrame{node: dep, bucket: bucket})
			}

			continue
		}

		// all dependencies are leveled: the unit is done
		levels[top.node] = top.level
		colors[top.node] = colorBlack
		addToBucket(top.bucket, top.level, top.node)

		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			if top.level+1 > parent.level {
				parent.level = top.level + 1
			}
		}
	}

	return nil
}

// addToBucket appends a unit to the bucket of its level
func addToBucket(buckets *treemap.Map, level, node int) {
	if existing, ok := buckets.Get(level); ok {
		buckets.Put(level, append(existing.([]int), node))
	} else {
		buckets.Put(level, []int{node})
	}
}

// mergeBuckets appends the units of buckets to sorted in ascending level order
func (hr *HardResolver) mergeBuckets(sorted, nodes []Resolvable, buckets *treemap.Map) []Resolvable {
	it := buckets.Iterator()
	for it.Next() {
		level := it.Value().([]int)

		if hr.Deterministic {
			sort.SliceStable(level, func(a, b int) bool {
				return nodes[level[a]].TypeName() < nodes[level[b]].TypeName()
			})
		}

		for _, n := range level {
			sorted = append(sorted, nodes[n])
		}
	}

	return sorted
}

// Levels computes the level of every unit in the batch by name.  It is mostly
// useful for diagnostics.
func Levels(nodes []Resolvable) (map[string]int, error) {
	hr := &HardResolver{}
	sorted, err := hr.Resolve(nodes)
	if err != nil {
		return nil, err
	}

	index := make(map[string]Resolvable, len(sorted))
	for _, n := range sorted {
		index[n.TypeName()] = n
	}

	levels := make(map[string]int, len(sorted))
	for _, n := range sorted {
		level := 0
		for _, dep := range n.DependentTypeNames() {
			if _, ok := index[dep]; !ok {
				continue
			}

			if levels[dep]+1 > level {
				level = levels[dep] + 1
			}
		}

		levels[n.TypeName()] = level
	}

	return levels, nil
}
