// Package mmu defines the boundary between the pager core and the
// Memory Management Unit collaborator (spec.md §6). Per spec.md §1 the
// MMU itself is explicitly out of the core's scope, but this repo
// still needs a real implementation of the boundary to run end to end,
// the same way biscuit/src/mem's Page_i interface is the thin
// boundary vm.Vm_t calls through to reach physical memory without
// knowing how it is backed.
package mmu

import "mempager/defs"

// MMU is the primitive set spec.md §6 says the core consumes. Every
// method call made by the core happens with the pager's single mutex
// held (spec.md §5) and must not suspend.
type MMU interface {
	// ZeroFill fills a physical frame with zero bytes.
	ZeroFill(frame int)
	// DiskRead copies block contents into frame.
	DiskRead(block, frame int)
	// DiskWrite copies frame contents into block.
	DiskWrite(frame, block int)
	// Resident installs a page-table mapping for pid at vaddr.
	Resident(pid defs.Pid_t, vaddr uintptr, frame int, prot defs.Prot)
	// Nonresident removes the mapping for pid at vaddr.
	Nonresident(pid defs.Pid_t, vaddr uintptr)
	// Chprot changes the protection of an existing mapping.
	Chprot(pid defs.Pid_t, vaddr uintptr, prot defs.Prot)
	// Physical exposes the entire physical memory as a byte-addressable
	// slice, indexable as frame*PageSize+offset, for read-only
	// inspection by syslog (spec.md §6).
	Physical() []byte
}
