// Package mem implements the Frame Table (spec.md §4.2): a dense
// array of physical-frame entries with a reverse (pid, page index)
// pointer and a hardware-style reference bit, shaped after
// biscuit/src/mem.Physmem_t's dense Pgs array. Unlike the teacher's
// Physmem_t this table carries no mutex of its own — spec.md §5 places
// every mutation behind the pager's single process-wide mutex, so a
// second lock here would only add contention the spec explicitly
// avoids.
package mem

import "mempager/defs"

// Occupant describes what, if anything, a frame currently holds.
type Occupant struct {
	Held  bool
	Pid   defs.Pid_t
	Index int
}

// Frame is one physical-memory-sized slot (spec.md DATA MODEL, "Frame
// Entry").
type Frame struct {
	Occupant   Occupant
	Referenced bool
}

// Table is the dense ordered sequence of F Frame Entries (spec.md
// §4.2).
type Table struct {
	frames []Frame
	free   int // count of frames with Occupant.Held == false
}

// NewTable allocates a Frame Table of n frames, all initially free.
func NewTable(n int) *Table {
	return &Table{
		frames: make([]Frame, n),
		free:   n,
	}
}

// Len reports the total number of frames.
func (t *Table) Len() int { return len(t.frames) }

// FreeCount reports how many frames are currently unoccupied.
func (t *Table) FreeCount() int { return t.free }

// Frame returns a pointer to frame f's entry for direct inspection or
// mutation of its Referenced bit, as spec.md §4.2 requires ("Direct
// mutation of referenced is exposed to the replacement engine and
// fault handler").
func (t *Table) Frame(f int) *Frame { return &t.frames[f] }

// FindFree returns the lowest-index free frame, matching
// original_source/src/pager.c's find_free_frame linear scan exactly
// (spec.md §4.2: "the lowest-index free frame").
func (t *Table) FindFree() (int, bool) {
	for i := range t.frames {
		if !t.frames[i].Occupant.Held {
			return i, true
		}
	}
	return 0, false
}

// Bind transitions frame f from Free to Holds{pid,idx} and sets its
// reference bit, per spec.md §4.2.
func (t *Table) Bind(f int, pid defs.Pid_t, idx int) {
	e := &t.frames[f]
	if !e.Occupant.Held {
		t.free--
	}
	e.Occupant = Occupant{Held: true, Pid: pid, Index: idx}
	e.Referenced = true
}

// Unbind transitions frame f to Free and clears its reference bit.
func (t *Table) Unbind(f int) {
	e := &t.frames[f]
	if e.Occupant.Held {
		t.free++
	}
	e.Occupant = Occupant{}
	e.Referenced = false
}
