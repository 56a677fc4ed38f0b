package symtab

import (
	"fmt"

	"fortio.org/safecast"
)

// chunkSize is the number of elements each Arena chunk holds before a new
// chunk is allocated. Kept small enough that a handful of modules don't
// waste much, large enough that most compilations allocate only a few
// chunks per type.
const chunkSize = 256

// Arena is a pointer-stable bump allocator: once a *T is returned by New, it
// never moves and is never freed early, matching the lifetime the original
// gives everything allocated through Compilation::emplace. Unlike an
// ID-indexed arena, callers keep ordinary pointers, which is what lets
// Scope store raw *Symbol back-references and linked lists.
type Arena[T any] struct {
	chunks [][]T
	count  int
}

// New allocates a zero-valued T and returns a stable pointer to it.
func (a *Arena[T]) New() *T {
	if len(a.chunks) == 0 || len(a.chunks[len(a.chunks)-1]) == cap(a.chunks[len(a.chunks)-1]) {
		a.chunks = append(a.chunks, make([]T, 0, chunkSize))
	}
	last := &a.chunks[len(a.chunks)-1]
	*last = append(*last, *new(T))
	a.count++
	return &(*last)[len(*last)-1]
}

// Len returns the number of elements allocated so far, checked against
// uint32 overflow the way an Index must ultimately fit.
func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](a.count)
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return n
}
