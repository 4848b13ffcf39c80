// Package arena provides slab-backed allocators. Records are handed out one
// slot at a time and reclaimed all at once when the owning factory is torn
// down; there is no way to free a single record early.
package arena

import "fmt"

// DefaultSlabCap is the record count per slab when a pool is created with a
// non-positive capacity. Slab sizing affects performance only, never
// semantics.
const DefaultSlabCap = 512

// Index is an opaque handle to a record in a Pool. Indices are unique per
// pool and stay valid until Release.
type Index int32

// Pool is a growable set of fixed-capacity slabs of T. A full slab is never
// resized in place; a new one is appended instead, so pointers and indices
// into existing slots remain valid for the pool's lifetime.
//
// Allocation failure is Go's runtime out-of-memory condition and is fatal by
// design: the pool makes no attempt to recover or retry.
//
// A Pool is not safe for concurrent use; it belongs to exactly one recognizer
// session.
type Pool[T any] struct {
	slabCap int
	slabs   [][]T
	used    int // occupied slots in the last slab
}

// NewPool returns a pool whose slabs hold slabCap records each.
func NewPool[T any](slabCap int) *Pool[T] {
	if slabCap <= 0 {
		slabCap = DefaultSlabCap
	}
	return &Pool[T]{slabCap: slabCap}
}

// Alloc returns the next free slot as a zeroed record, appending a fresh slab
// when the current one is exhausted. Both the returned pointer and the index
// stay valid until Release.
func (p *Pool[T]) Alloc() (Index, *T) {
	if len(p.slabs) == 0 || p.used == p.slabCap {
		p.slabs = append(p.slabs, make([]T, p.slabCap))
		p.used = 0
	}
	slab := p.slabs[len(p.slabs)-1]
	slot := p.used
	p.used++
	return Index((len(p.slabs)-1)*p.slabCap + slot), &slab[slot]
}

// Get resolves an index returned by Alloc. An index outside the allocated
// range is a programmer error and panics.
func (p *Pool[T]) Get(idx Index) *T {
	i := int(idx)
	if i < 0 || i >= p.Len() {
		panic(fmt.Sprintf("arena: index %d out of range [0, %d)", i, p.Len()))
	}
	return &p.slabs[i/p.slabCap][i%p.slabCap]
}

// Len reports how many records have been allocated.
func (p *Pool[T]) Len() int {
	if len(p.slabs) == 0 {
		return 0
	}
	return (len(p.slabs)-1)*p.slabCap + p.used
}

// Slabs reports how many slabs back the pool.
func (p *Pool[T]) Slabs() int { return len(p.slabs) }

// SlabCap reports the per-slab record capacity.
func (p *Pool[T]) SlabCap() int { return p.slabCap }

// Release frees every slab at once. All previously returned indices and
// pointers are invalid afterwards; the pool itself may be reused.
func (p *Pool[T]) Release() {
	p.slabs = nil
	p.used = 0
}
