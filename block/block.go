// Package block implements the Block Allocator (spec.md §4.1): a pool
// of B backing-store block indices, allocated one per virtual page at
// extend time and released on page destruction. Like package mem, it
// carries no internal mutex — spec.md §5 places every mutation behind
// the pager's single process-wide mutex.
package block

import "mempager/defs"

// Allocator tracks which backing-store blocks are free.
type Allocator struct {
	free  []bool
	count int
}

// NewAllocator creates a Block Allocator over n blocks, all initially
// free.
func NewAllocator(n int) *Allocator {
	a := &Allocator{free: make([]bool, n)}
	for i := range a.free {
		a.free[i] = true
	}
	a.count = n
	return a
}

// Len reports the total number of blocks.
func (a *Allocator) Len() int { return len(a.free) }

// FreeCount reports how many blocks are currently unallocated.
func (a *Allocator) FreeCount() int { return a.count }

// Allocate returns the lowest-index free block, matching
// original_source/src/pager.c's find_free_block, failing with NoSpace
// when the pool is exhausted (spec.md §4.1).
func (a *Allocator) Allocate() (int, defs.Err_t) {
	for i, isFree := range a.free {
		if isFree {
			a.free[i] = false
			a.count--
			return i, 0
		}
	}
	return 0, defs.NoSpace
}

// Release returns block b to the pool. Releasing an already-free
// block is a silent no-op, matching original_source/src/pager.c's
// free_block guard and spec.md §4.1's "defensive" note.
func (a *Allocator) Release(b int) {
	if b < 0 || b >= len(a.free) {
		return
	}
	if a.free[b] {
		return
	}
	a.free[b] = true
	a.count++
}
