// Package idmap provides case-insensitive, insertion-ordered containers keyed
// by NuGet package and project identifiers.
//
// NuGet ids compare case-insensitively. Keys are folded with Unicode simple
// case folding ([cases.Fold]), which does not depend on the host locale, so
// "Foo", "FOO" and "foo" always address the same entry. The spelling used by
// the first insert is kept as the entry's key.
//
// Iteration follows insertion order, which keeps tree and graph output stable
// with respect to manifest order.
//
// Neither [Map] nor [Set] is safe for concurrent use.
package idmap

import (
	"iter"

	"golang.org/x/text/cases"
)

// Map is an insertion-ordered map with case-insensitive string keys.
// The zero value is not usable; create maps with [New].
type Map[V any] struct {
	fold  cases.Caser
	index map[string]int
	keys  []string
	vals  []V
}

// New creates an empty Map.
func New[V any]() *Map[V] {
	return &Map[V]{
		fold:  cases.Fold(),
		index: make(map[string]int),
	}
}

func (m *Map[V]) folded(key string) string {
	return m.fold.String(key)
}

// Len returns the number of entries.
func (m *Map[V]) Len() int { return len(m.keys) }

// Get returns the value stored under key, compared case-insensitively.
func (m *Map[V]) Get(key string) (V, bool) {
	if i, ok := m.index[m.folded(key)]; ok {
		return m.vals[i], true
	}
	var zero V
	return zero, false
}

// Has reports whether key is present.
func (m *Map[V]) Has(key string) bool {
	_, ok := m.index[m.folded(key)]
	return ok
}

// Key returns the stored spelling of key.
func (m *Map[V]) Key(key string) (string, bool) {
	if i, ok := m.index[m.folded(key)]; ok {
		return m.keys[i], true
	}
	return "", false
}

// Set stores v under key. An existing entry keeps its position and its
// original key spelling; only the value is replaced.
func (m *Map[V]) Set(key string, v V) {
	k := m.folded(key)
	if i, ok := m.index[k]; ok {
		m.vals[i] = v
		return
	}
	m.index[k] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, v)
}

// GetOrCreate returns the value under key, storing create() first if the key
// is absent. The boolean reports whether the entry already existed.
func (m *Map[V]) GetOrCreate(key string, create func() V) (V, bool) {
	if i, ok := m.index[m.folded(key)]; ok {
		return m.vals[i], true
	}
	v := create()
	m.Set(key, v)
	return v, false
}

// Delete removes key if present.
func (m *Map[V]) Delete(key string) {
	k := m.folded(key)
	i, ok := m.index[k]
	if !ok {
		return
	}
	delete(m.index, k)
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
	for j := i; j < len(m.keys); j++ {
		m.index[m.folded(m.keys[j])] = j
	}
}

// Keys returns the keys in insertion order.
func (m *Map[V]) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Values returns the values in insertion order.
func (m *Map[V]) Values() []V {
	return append([]V(nil), m.vals...)
}

// All iterates over entries in insertion order.
func (m *Map[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for i, k := range m.keys {
			if !yield(k, m.vals[i]) {
				return
			}
		}
	}
}

// Set is an insertion-ordered set of case-insensitive identifiers.
type Set struct {
	m *Map[struct{}]
}

// NewSet creates a set holding ids.
func NewSet(ids ...string) *Set {
	s := &Set{m: New[struct{}]()}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id and reports whether it was not already present.
func (s *Set) Add(id string) bool {
	if s.m.Has(id) {
		return false
	}
	s.m.Set(id, struct{}{})
	return true
}

// Has reports whether id is in the set.
func (s *Set) Has(id string) bool { return s.m.Has(id) }

// Remove deletes id from the set.
func (s *Set) Remove(id string) { s.m.Delete(id) }

// Len returns the number of ids.
func (s *Set) Len() int { return s.m.Len() }

// Items returns the ids in insertion order.
func (s *Set) Items() []string { return s.m.Keys() }

// Equal reports whether a and b are the same identifier.
func Equal(a, b string) bool {
	c := cases.Fold()
	return c.String(a) == c.String(b)
}
