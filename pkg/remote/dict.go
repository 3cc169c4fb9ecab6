package remote

// Dict is a keyed cache of remotely-sourced values: one Data slot per key.
// An absent key reads as NotRequested, so lazily-loaded per-item resources
// need no up-front registration. Keys are independent: the gate state of one
// key never affects another.
//
// Dict values are treated as immutable; With returns a shallow copy with one
// slot replaced, leaving prior snapshots intact.
type Dict[K comparable, T any] map[K]Data[T]

// NewDict returns an empty Dict.
func NewDict[K comparable, T any]() Dict[K, T] {
	return Dict[K, T]{}
}

// Get returns the slot for key. Absent keys read as NotRequested.
func (d Dict[K, T]) Get(key K) Data[T] {
	return d[key]
}

// ShouldFetch reports whether a fetch should be issued for key, applying the
// request gate to the key's slot.
func (d Dict[K, T]) ShouldFetch(key K) bool {
	return d[key].ShouldFetch()
}

// With returns a copy of the Dict with the slot for key replaced.
func (d Dict[K, T]) With(key K, value Data[T]) Dict[K, T] {
	next := make(Dict[K, T], len(d)+1)
	for k, v := range d {
		next[k] = v
	}
	next[key] = value
	return next
}

// Len returns the number of keys with a recorded slot.
func (d Dict[K, T]) Len() int {
	return len(d)
}
