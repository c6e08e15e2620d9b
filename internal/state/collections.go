package state

import "iter"

// Map is a journaled key-value collection for one entity type.
type Map[K comparable, V any] struct {
	m map[K]V
	j *Journal
}

func NewMap[K comparable, V any](j *Journal) *Map[K, V] {
	return &Map[K, V]{m: make(map[K]V), j: j}
}

func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.m[k]
	return v, ok
}

func (m *Map[K, V]) Set(k K, v V) {
	prev, had := m.m[k]
	m.j.Record(func() {
		if had {
			m.m[k] = prev
		} else {
			delete(m.m, k)
		}
	})
	m.m[k] = v
}

func (m *Map[K, V]) Len() int {
	return len(m.m)
}

// Value is a journaled single cell, e.g. an id counter.
type Value[V any] struct {
	v   V
	set bool
	j   *Journal
}

func NewValue[V any](j *Journal) *Value[V] {
	return &Value[V]{j: j}
}

func (c *Value[V]) Get() (V, bool) {
	return c.v, c.set
}

func (c *Value[V]) Set(v V) {
	prev, had := c.v, c.set
	c.j.Record(func() {
		c.v, c.set = prev, had
	})
	c.v, c.set = v, true
}

// List is a journaled append-only collection. Elements are never updated or
// removed once the appending transaction commits.
type List[V any] struct {
	items []V
	j     *Journal
}

func NewList[V any](j *Journal) *List[V] {
	return &List[V]{j: j}
}

// Append stores v and returns its position.
func (l *List[V]) Append(v V) uint64 {
	n := len(l.items)
	l.j.Record(func() {
		l.items = l.items[:n]
	})
	l.items = append(l.items, v)
	return uint64(n)
}

func (l *List[V]) At(i uint64) (V, bool) {
	var zero V
	if i >= uint64(len(l.items)) {
		return zero, false
	}
	return l.items[i], true
}

func (l *List[V]) Len() uint64 {
	return uint64(len(l.items))
}

// All returns a lazy, restartable iterator over (position, element) pairs in
// append order.
func (l *List[V]) All() iter.Seq2[uint64, V] {
	return func(yield func(uint64, V) bool) {
		for i, v := range l.items {
			if !yield(uint64(i), v) {
				return
			}
		}
	}
}
