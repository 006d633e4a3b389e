// Package cache provides read-through memoization with explicit invalidation.
//
// A Value memoizes one load result until it is invalidated. Values belong to a
// Group, and invalidating the group clears every member, so stores that share a
// group see "any write clears every cache" semantics while stores with their own
// group are isolated from each other.
package cache

import (
	"strconv"
	"sync"

	"github.com/apex/log"
	"golang.org/x/sync/singleflight"
)

// Observer receives cache events, typically for metrics
type Observer interface {
	Hit(name string)
	Miss(name string)
	Invalidated()
}

type member interface {
	Invalidate()
}

// Group is an invalidation domain shared by one or more values
type Group struct {
	mu       sync.Mutex
	members  []member
	observer Observer
}

// Option configures a Group
type Option func(*Group)

// WithObserver attaches an observer to the group
func WithObserver(o Observer) Option {
	return func(g *Group) {
		g.observer = o
	}
}

// NewGroup creates an empty group
func NewGroup(opts ...Option) *Group {
	g := &Group{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Invalidate clears every value registered with the group
func (g *Group) Invalidate() {
	g.mu.Lock()
	members := append([]member(nil), g.members...)
	g.mu.Unlock()

	for _, m := range members {
		m.Invalidate()
	}
	if g.observer != nil {
		g.observer.Invalidated()
	}
	log.WithField("values", len(members)).Debug("cache invalidated")
}

func (g *Group) register(m member) {
	g.mu.Lock()
	g.members = append(g.members, m)
	g.mu.Unlock()
}

func (g *Group) hit(name string) {
	if g.observer != nil {
		g.observer.Hit(name)
	}
}

func (g *Group) miss(name string) {
	if g.observer != nil {
		g.observer.Miss(name)
	}
}

// Value memoizes the result of a load function.
// States: uncached -> (GetOrLoad) -> cached -> (Invalidate) -> uncached.
type Value[T any] struct {
	name  string
	group *Group

	mu    sync.Mutex
	gen   uint64 // bumped on every invalidation
	valid bool
	val   T

	loads singleflight.Group
}

// NewValue creates an uncached value registered with g.
// A nil group gives the value a private group of its own.
func NewValue[T any](g *Group, name string) *Value[T] {
	if g == nil {
		g = NewGroup()
	}
	v := &Value[T]{name: name, group: g}
	g.register(v)
	return v
}

// Group returns the invalidation domain of the value
func (v *Value[T]) Group() *Group {
	return v.group
}

// GetOrLoad returns the memoized result, calling load on a miss.
// Concurrent misses share a single load. Load errors are returned and not cached,
// and a load that overlaps an invalidation does not repopulate the cache.
func (v *Value[T]) GetOrLoad(load func() (T, error)) (T, error) {
	v.mu.Lock()
	if v.valid {
		val := v.val
		v.mu.Unlock()
		v.group.hit(v.name)
		log.WithField("cache", v.name).Debug("cache hit")
		return val, nil
	}
	gen := v.gen
	v.mu.Unlock()

	v.group.miss(v.name)
	log.WithField("cache", v.name).Debug("cache miss")

	res, err, _ := v.loads.Do(strconv.FormatUint(gen, 10), func() (interface{}, error) {
		val, err := load()
		if err != nil {
			return nil, err
		}
		v.mu.Lock()
		if v.gen == gen {
			v.val = val
			v.valid = true
		}
		v.mu.Unlock()
		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	val, _ := res.(T)
	return val, nil
}

// Invalidate drops the memoized result of this value only
func (v *Value[T]) Invalidate() {
	var zero T
	v.mu.Lock()
	v.gen++
	v.valid = false
	v.val = zero
	v.mu.Unlock()
}

// Cached reports whether the next GetOrLoad will be served from memory
func (v *Value[T]) Cached() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.valid
}
