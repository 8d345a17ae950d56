package crossfilter

import (
	"cmp"
	"slices"
)

// KeyValue is one bucket of a group.
type KeyValue[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

type groupEntry[V any] struct {
	value V
	count int
}

// Group maintains a key to accumulator mapping over the records that pass
// every predicate except the one of its own dimension.
type Group[T any, K cmp.Ordered, V any] struct {
	dim      *Dimension[T, K]
	reducer  Reducer[T, V]
	bucket   func(K) K
	complete bool

	entries map[K]*groupEntry[V]
	keys    []K // sorted keys of entries
}

// GroupOption configures a group at creation.
type GroupOption[K cmp.Ordered] func(*groupConfig[K])

type groupConfig[K cmp.Ordered] struct {
	bucket   func(K) K
	complete bool
	extra    []K
}

// WithBucket groups dimension keys into coarser buckets, e.g. instants into
// days. fn must be monotone non-decreasing.
func WithBucket[K cmp.Ordered](fn func(K) K) GroupOption[K] {
	return func(c *groupConfig[K]) {
		c.bucket = fn
	}
}

// WithCompleteKeyspace makes All enumerate every key of the dimension plus
// extra, including buckets with no contributing record.
func WithCompleteKeyspace[K cmp.Ordered](extra ...K) GroupOption[K] {
	return func(c *groupConfig[K]) {
		c.complete = true
		c.extra = append(c.extra, extra...)
	}
}

// NewGroup attaches a group to dim and seeds it from the current
// filtered-by-others set of the dimension.
func NewGroup[T any, K cmp.Ordered, V any](dim *Dimension[T, K], reducer Reducer[T, V], opts ...GroupOption[K]) *Group[T, K, V] {
	cfg := groupConfig[K]{}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := &Group[T, K, V]{
		dim:      dim,
		reducer:  reducer,
		bucket:   cfg.bucket,
		complete: cfg.complete,
		entries:  make(map[K]*groupEntry[V]),
	}

	if g.complete {
		for _, k := range dim.runKeys {
			g.entry(g.keyOf(k))
		}
		for _, k := range cfg.extra {
			g.entry(k)
		}
	}

	f := dim.filter
	for pos := range f.records {
		if f.inOthers(dim.id, pos) {
			g.add(pos)
		}
	}
	f.listen(dim.id, g)
	return g
}

// All returns the buckets ordered by key ascending. Buckets without
// contributing records are omitted unless the group has a complete keyspace.
func (g *Group[T, K, V]) All() []KeyValue[K, V] {
	out := make([]KeyValue[K, V], 0, len(g.keys))
	for _, k := range g.keys {
		e := g.entries[k]
		if e.count > 0 || g.complete {
			out = append(out, KeyValue[K, V]{Key: k, Value: e.value})
		}
	}
	return out
}

// Get returns the accumulator of key k.
func (g *Group[T, K, V]) Get(k K) (V, bool) {
	e, ok := g.entries[k]
	if !ok || (e.count == 0 && !g.complete) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Size returns the number of buckets All would return.
func (g *Group[T, K, V]) Size() int {
	if g.complete {
		return len(g.keys)
	}
	n := 0
	for _, e := range g.entries {
		if e.count > 0 {
			n++
		}
	}
	return n
}

func (g *Group[T, K, V]) keyOf(k K) K {
	if g.bucket != nil {
		return g.bucket(k)
	}
	return k
}

func (g *Group[T, K, V]) entry(k K) *groupEntry[V] {
	if e, ok := g.entries[k]; ok {
		return e
	}
	e := &groupEntry[V]{value: g.reducer.Initial()}
	g.entries[k] = e
	i, _ := slices.BinarySearch(g.keys, k)
	g.keys = slices.Insert(g.keys, i, k)
	return e
}

func (g *Group[T, K, V]) add(pos int) {
	e := g.entry(g.keyOf(g.dim.keys[pos]))
	e.value = g.reducer.Add(e.value, g.dim.filter.records[pos])
	e.count++
}

func (g *Group[T, K, V]) remove(pos int) {
	e := g.entry(g.keyOf(g.dim.keys[pos]))
	e.value = g.reducer.Remove(e.value, g.dim.filter.records[pos])
	e.count--
}
