package page

import (
	"mempager/defs"
	"mempager/internal/assert"
	"mempager/mem"
	"mempager/mmu"
)

// Clock is the Second-Chance replacement engine's rotating cursor
// (spec.md §4.6). It carries no lock of its own — like mem.Table and
// block.Allocator, it is mutated only under the pager's single mutex.
type Clock struct {
	hand int
}

// NewClock returns a Clock with its hand at frame 0.
func NewClock() *Clock { return &Clock{} }

// VAddr computes the virtual address of page idx in a process whose
// address space starts at base, matching spec.md §6's "page i ... at
// base + i*page_size".
func VAddr(base, pageSize, idx int) uintptr {
	return uintptr(base + idx*pageSize)
}

// SelectVictim runs the clock algorithm over frames, looking up each
// occupied frame's owning page through reg to clear reference bits and
// downgrade protection on second chance (spec.md §4.6). It is bounded
// to at most two full revolutions: the first revolution clears every
// reference bit it finds set, so the second is guaranteed to find an
// unreferenced frame (spec.md §9, "second-chance termination").
func (c *Clock) SelectVictim(frames *mem.Table, reg *Registry, m mmu.MMU, base, pageSize int) int {
	n := frames.Len()
	assert.Invariant(n > 0, "SelectVictim called with zero frames")

	limit := 2 * n
	for visits := 0; visits < limit; visits++ {
		h := c.hand
		c.hand = (c.hand + 1) % n
		f := frames.Frame(h)

		if !f.Occupant.Held {
			// Spec.md §4.2: find_free should be tried before
			// SelectVictim is ever called, so this path is not
			// expected, but skip defensively rather than
			// misreporting a free frame as a victim.
			continue
		}

		tbl, ok := reg.Lookup(f.Occupant.Pid)
		assert.Invariant(ok, "frame %d holds unknown pid %v (I2 violated)", h, f.Occupant.Pid)
		idx := f.Occupant.Index
		assert.Invariant(idx < tbl.PageCount(), "frame %d holds out-of-range page %d (I2 violated)", h, idx)
		entry := &tbl.Pages[idx]
		assert.Invariant(entry.State() == InMemory, "frame %d's page is not InMemory (I2 violated)", h)

		if f.Referenced || entry.Referenced {
			f.Referenced = false
			entry.Referenced = false
			if entry.Prot != defs.ProtNone {
				vaddr := VAddr(base, pageSize, idx)
				m.Chprot(tbl.Pid, vaddr, defs.ProtNone)
				entry.Prot = defs.ProtNone
			}
			continue
		}

		return h
	}
	panic("page: SelectVictim exceeded two revolutions without finding a victim")
}

// Evict removes the page resident in frame f, writing it back to disk
// first if dirty (spec.md §4.6, "Eviction of a selected victim"). It
// reports whether a write-back actually happened, so the caller can
// keep its own disk-write counter precise.
func Evict(frames *mem.Table, reg *Registry, m mmu.MMU, base, pageSize int, f int) bool {
	fe := frames.Frame(f)
	assert.Invariant(fe.Occupant.Held, "Evict called on a free frame")

	pid := fe.Occupant.Pid
	idx := fe.Occupant.Index
	tbl, ok := reg.Lookup(pid)
	assert.Invariant(ok, "Evict: unknown pid %v (I2 violated)", pid)
	entry := &tbl.Pages[idx]

	vaddr := VAddr(base, pageSize, idx)
	m.Nonresident(pid, vaddr)

	wroteBack := entry.Dirty
	if wroteBack {
		m.DiskWrite(f, entry.DiskBlock)
		tbl.Acc.IncrWritebacks()
		entry.SetOnDisk(true)
	} else {
		entry.SetOnDisk(false)
	}

	tbl.Acc.IncrEvictions()
	frames.Unbind(f)
	return wroteBack
}
