// Package defs holds the sentinel types shared by every layer of the
// pager, the same way biscuit/src/defs holds constants shared across
// the kernel: a small, dependency-free package that everything else
// imports.
package defs

import "fmt"

// Err_t is the pager-wide error type. The zero value means success,
// matching the teacher's convention that 0 is "no error" throughout
// the vm and fs packages.
type Err_t int

// Error kinds from spec.md §7. NoSpace and InvalidArgument are
// surfaced to callers; AllocationFailure is returned by Extend for a
// pid that is not registered and by Create for a pid that already is.
const (
	_ Err_t = iota
	NoSpace
	InvalidArgument
	AllocationFailure
)

func (e Err_t) Error() string {
	switch e {
	case NoSpace:
		return "no space"
	case InvalidArgument:
		return "invalid argument"
	case AllocationFailure:
		return "allocation failure"
	default:
		return fmt.Sprintf("err_t(%d)", int(e))
	}
}

// Pid_t identifies a client process. The simulator harness owns pid
// assignment; the pager only ever compares pids for equality and uses
// them as map keys.
type Pid_t int32

// Prot is the three-valued protection a page entry can carry. Modeled
// as a sum type rather than a PROT_* bitfield per spec.md §9 ("Protection
// as an integer"): mmu.MMU's Resident/Chprot already accept a Prot
// directly, so no bitfield translation at the boundary is needed here.
type Prot int

const (
	ProtNone Prot = iota
	ProtRead
	ProtReadWrite
)

func (p Prot) String() string {
	switch p {
	case ProtNone:
		return "none"
	case ProtRead:
		return "r"
	case ProtReadWrite:
		return "rw"
	default:
		return fmt.Sprintf("prot(%d)", int(p))
	}
}
