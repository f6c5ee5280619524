package resolve

import (
	"jse/types"
	"jse/values"
)

// CacheState is the state of a name in a member cache
type CacheState int

// Enumeration of cache states
const (
	CacheUnasked CacheState = iota // the name was never looked up
	CacheMiss                      // the name was looked up and is not a member
	CacheHit                       // the name was looked up and is a member
)

// MemberCache remembers the static member lookups of one context
type MemberCache interface {
	// Lookup returns the cached member for id along with its state
	Lookup(id string) (values.Value, CacheState)

	// Save records the result of a lookup.  A nil value records a miss.
	Save(id string, v values.Value)
}

// memberCache is the map-backed MemberCache.  A nil entry is a miss.
type memberCache struct {
	entries map[string]values.Value
}

// NewMemberCache creates a new, empty member cache
func NewMemberCache() MemberCache {
	return &memberCache{entries: make(map[string]values.Value)}
}

func (mc *memberCache) Lookup(id string) (values.Value, CacheState) {
	v, ok := mc.entries[id]
	switch {
	case !ok:
		return nil, CacheUnasked
	case v == nil:
		return nil, CacheMiss
	default:
		return v, CacheHit
	}
}

func (mc *memberCache) Save(id string, v values.Value) {
	mc.entries[id] = v
}

// noCache never remembers anything
type noCache struct{}

// NoCache returns a member cache that always reports names as unasked
func NoCache() MemberCache {
	return noCache{}
}

func (noCache) Lookup(string) (values.Value, CacheState) {
	return nil, CacheUnasked
}

func (noCache) Save(string, values.Value) {}

// cachedStaticMember looks up a static member of the containing type through
// a cache.  Misses are cached too.
func (tl typeLookup) cachedStaticMember(cache MemberCache, containing *types.ClassType, id string) values.Value {
	if containing == nil {
		return nil
	}

	switch v, state := cache.Lookup(id); state {
	case CacheHit:
		return v
	case CacheMiss:
		return nil
	}

	v := tl.staticMember(containing, id)
	cache.Save(id, v)
	return v
}
