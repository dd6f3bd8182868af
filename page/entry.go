// Package page implements the Process Page Table Registry (spec.md
// §4.3) and the Second-Chance replacement engine (spec.md §4.6),
// generalized from biscuit/src/vm.Vm_t's multi-level x86 pmap down to
// the spec's flat dense-array page table: one process owns one
// growable slice of page.Entry values indexed directly by virtual
// page number, with no intermediate page-table levels.
package page

import "mempager/defs"

// State is the tagged variant of spec.md §3, "Page State". Go has no
// native sum type, so fields meaningful only in one state (Frame,
// HasDiskCopy) are still plain struct fields — but accessor methods
// below enforce that a caller can only read Frame while InMemory,
// which is the concrete form spec.md §9's "prefer a sum type" note
// takes here.
type State int

const (
	Uninitialized State = iota
	OnDisk
	InMemory
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case OnDisk:
		return "on-disk"
	case InMemory:
		return "in-memory"
	default:
		return "invalid"
	}
}

// Entry is one Page Entry (spec.md §3, DATA MODEL).
type Entry struct {
	state       State
	frame       int // meaningful only when state == InMemory
	DiskBlock   int // reserved from allocation until page destruction
	Prot        defs.Prot
	Referenced  bool
	Dirty       bool
	HasDiskCopy bool
}

// State returns the entry's current page state.
func (e *Entry) State() State { return e.state }

// Frame returns the frame this entry is resident in. It panics if the
// entry is not InMemory — the Go-idiomatic stand-in for spec.md §9's
// "eliminates the frame == -1 sentinel" sum-type note.
func (e *Entry) Frame() int {
	if e.state != InMemory {
		panic("page: Frame() called on a non-resident entry")
	}
	return e.frame
}

// NewUninitialized returns a freshly allocated Entry in the
// Uninitialized state with the given backing block, exactly as
// spec.md §4.4 specifies for Extend.
func NewUninitialized(diskBlock int) Entry {
	return Entry{
		state:     Uninitialized,
		frame:     -1,
		DiskBlock: diskBlock,
		Prot:      defs.ProtNone,
	}
}

// SetResident transitions the entry to InMemory(frame), per spec.md
// §4.5 case B step 5.
func (e *Entry) SetResident(frame int, prot defs.Prot) {
	e.state = InMemory
	e.frame = frame
	e.Prot = prot
	e.Referenced = true
}

// SetOnDisk transitions the entry to OnDisk after eviction, per
// spec.md §4.6's "Eviction of a selected victim".
func (e *Entry) SetOnDisk(hasDiskCopy bool) {
	e.state = OnDisk
	e.frame = -1
	e.Prot = defs.ProtNone
	e.HasDiskCopy = hasDiskCopy
	e.Dirty = false
	e.Referenced = false
}
