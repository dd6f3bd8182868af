package pager

import (
	"testing"

	"mempager/defs"
	"mempager/mmu"
)

const (
	testPageSize = 4096
	testBase     = uintptr(0x1000_0000)
)

func newTestPager(t *testing.T, frames, blocks int) (*Pager, *mmu.Simulator) {
	t.Helper()
	sim, err := mmu.NewSimulator(frames, blocks, testPageSize)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	t.Cleanup(func() { sim.Close() })
	p := New(Config{Frames: frames, Blocks: blocks, PageSize: testPageSize, Base: testBase}, sim)
	return p, sim
}

// scenario 1: single process demand-zero.
func TestDemandZero(t *testing.T) {
	p, sim := newTestPager(t, 2, 4)
	if errNo := p.Create(1); errNo != 0 {
		t.Fatalf("Create(1) = %v", errNo)
	}
	a, errNo := p.Extend(1)
	if errNo != 0 {
		t.Fatalf("Extend(1) = %v", errNo)
	}
	if a != testBase {
		t.Fatalf("Extend(1) = %#x, want base %#x", a, testBase)
	}

	p.Fault(1, a, false)

	frame, prot, ok := sim.MappingOf(1, a)
	if !ok {
		t.Fatalf("no mapping installed for %#x", a)
	}
	if frame != 0 {
		t.Fatalf("mapped frame = %d, want 0", frame)
	}
	if prot != defs.ProtRead {
		t.Fatalf("mapped prot = %v, want Read", prot)
	}
	if got := sim.Physical()[frame*testPageSize]; got != 0 {
		t.Fatalf("first byte = %#x, want 0 (demand-zero)", got)
	}
	if got := p.FreeFrames(); got != 1 {
		t.Fatalf("FreeFrames() = %d, want 1", got)
	}
	p.assertInvariants()
}

// scenario 2: write sets dirty.
func TestWriteSetsDirty(t *testing.T) {
	p, sim := newTestPager(t, 2, 4)
	p.Create(1)
	a, _ := p.Extend(1)
	p.Fault(1, a, false)
	p.Fault(1, a, true)

	_, prot, _ := sim.MappingOf(1, a)
	if prot != defs.ProtReadWrite {
		t.Fatalf("prot after write fault = %v, want ReadWrite", prot)
	}

	tbl, _ := p.reg.Lookup(1)
	if !tbl.Pages[0].Dirty {
		t.Fatalf("Dirty = false after write fault, want true")
	}
	p.assertInvariants()
}

// scenario 3: eviction writeback.
func TestEvictionWriteback(t *testing.T) {
	p, _ := newTestPager(t, 2, 4)
	p.Create(1)
	a, _ := p.Extend(1)
	b, _ := p.Extend(1)
	c, _ := p.Extend(1)

	p.Fault(1, a, false)
	p.Fault(1, a, true) // dirty a
	p.Fault(1, b, false)
	p.Fault(1, c, false) // forces eviction of a

	tbl, _ := p.reg.Lookup(1)
	pageA := &tbl.Pages[0]
	if pageA.State().String() != "on-disk" {
		t.Fatalf("page a state = %v, want on-disk", pageA.State())
	}
	if !pageA.HasDiskCopy {
		t.Fatalf("HasDiskCopy = false after dirty eviction, want true")
	}
	if pageA.Dirty {
		t.Fatalf("Dirty = true after eviction, want false")
	}
	if p.Stats.Evictions.Load() != 1 {
		t.Fatalf("Evictions counter = %d, want 1", p.Stats.Evictions.Load())
	}
	if p.Stats.DiskWrites.Load() != 1 {
		t.Fatalf("DiskWrites counter = %d, want 1", p.Stats.DiskWrites.Load())
	}
	p.assertInvariants()
}

// scenario 4 & 5: reload from disk vs clean eviction uses zero-fill.
func TestReloadFromDiskAfterDirtyEviction(t *testing.T) {
	p, _ := newTestPager(t, 2, 4)
	p.Create(1)
	a, _ := p.Extend(1)
	b, _ := p.Extend(1)
	c, _ := p.Extend(1)

	p.Fault(1, a, false)
	p.Fault(1, a, true)
	p.Fault(1, b, false)
	p.Fault(1, c, false) // evicts a

	before := p.Stats.DiskReads.Load()
	p.Fault(1, a, false) // reload
	after := p.Stats.DiskReads.Load()
	if after != before+1 {
		t.Fatalf("DiskReads increment = %d, want 1", after-before)
	}

	tbl, _ := p.reg.Lookup(1)
	if tbl.Pages[0].State().String() != "in-memory" {
		t.Fatalf("page a state after reload = %v, want in-memory", tbl.Pages[0].State())
	}
	p.assertInvariants()
}

func TestCleanEvictionSkipsWritebackAndReloadsZeroed(t *testing.T) {
	p, _ := newTestPager(t, 2, 4)
	p.Create(1)
	a, _ := p.Extend(1)
	b, _ := p.Extend(1)
	c, _ := p.Extend(1)

	p.Fault(1, a, false) // read-only, never written: clean
	p.Fault(1, b, false)

	before := p.Stats.ZeroFills.Load()
	p.Fault(1, c, false) // evicts a (clean, no writeback)

	tbl, _ := p.reg.Lookup(1)
	if tbl.Pages[0].HasDiskCopy {
		t.Fatalf("HasDiskCopy = true after clean eviction, want false")
	}

	p.Fault(1, a, false) // reload must zero-fill, not disk-read
	after := p.Stats.ZeroFills.Load()
	if after != before+2 {
		t.Fatalf("ZeroFills increment = %d, want 2 (one for c's first fault, one for a's reload)", after-before)
	}
	p.assertInvariants()
}

// scenario 6: destroy releases all resources.
func TestDestroyReleasesAll(t *testing.T) {
	p, _ := newTestPager(t, 2, 4)
	p.Create(1)
	for i := 0; i < 4; i++ {
		p.Extend(1)
	}
	p.Fault(1, testBase, false)
	p.Fault(1, testBase+testPageSize, false)

	p.Destroy(1)

	if got := p.FreeBlocks(); got != 4 {
		t.Fatalf("FreeBlocks() after Destroy = %d, want 4", got)
	}
	if got := p.FreeFrames(); got != 2 {
		t.Fatalf("FreeFrames() after Destroy = %d, want 2", got)
	}

	p.Create(2)
	for i := 0; i < 4; i++ {
		if _, errNo := p.Extend(2); errNo != 0 {
			t.Fatalf("Extend(2) #%d = %v, want success", i, errNo)
		}
	}
	p.assertInvariants()
}

// round-trip: destroy(pid); create(pid); extend(pid) returns the same
// virtual address the first extend(pid) returned (spec.md §8).
func TestDestroyCreateExtendSameAddress(t *testing.T) {
	p, _ := newTestPager(t, 2, 4)
	p.Create(1)
	first, errNo := p.Extend(1)
	if errNo != 0 {
		t.Fatalf("first Extend(1) = %v", errNo)
	}

	p.Destroy(1)
	p.Create(1)
	second, errNo := p.Extend(1)
	if errNo != 0 {
		t.Fatalf("second Extend(1) = %v", errNo)
	}

	if second != first {
		t.Fatalf("Extend(1) after destroy/create = %#x, want %#x", second, first)
	}
	p.assertInvariants()
}

// round-trip: a write followed by eviction followed by a read recovers
// the written bytes (spec.md §8).
func TestWriteEvictionReadRecoversBytes(t *testing.T) {
	p, sim := newTestPager(t, 2, 4)
	p.Create(1)
	a, _ := p.Extend(1)
	b, _ := p.Extend(1)
	c, _ := p.Extend(1)

	p.Fault(1, a, false)
	p.Fault(1, a, true) // upgrade to Read+Write, marks dirty

	frame, _, ok := sim.MappingOf(1, a)
	if !ok {
		t.Fatalf("no mapping installed for %#x", a)
	}
	sim.Physical()[frame*testPageSize] = 0xab // simulated write

	p.Fault(1, b, false)
	p.Fault(1, c, false) // forces eviction of a, writing the byte to disk

	p.Fault(1, a, false) // reload a from disk

	out, errNo := p.Syslog(1, a, 1)
	if errNo != 0 {
		t.Fatalf("Syslog: %v", errNo)
	}
	if string(out) != "ab\n" {
		t.Fatalf("Syslog after write/evict/reload = %q, want %q", out, "ab\n")
	}
	p.assertInvariants()
}

// boundary: extend fails with NoSpace on call number B+1.
func TestExtendNoSpaceAtBoundary(t *testing.T) {
	p, _ := newTestPager(t, 2, 2)
	p.Create(1)
	for i := 0; i < 2; i++ {
		if _, errNo := p.Extend(1); errNo != 0 {
			t.Fatalf("Extend #%d failed: %v", i, errNo)
		}
	}
	if _, errNo := p.Extend(1); errNo != defs.NoSpace {
		t.Fatalf("Extend() past pool = %v, want NoSpace", errNo)
	}
}

// boundary: syslog succeeds up to the last allocated byte, fails past it.
func TestSyslogBoundary(t *testing.T) {
	p, _ := newTestPager(t, 1, 1)
	p.Create(1)
	p.Extend(1)

	if _, errNo := p.Syslog(1, testBase+testPageSize-1, 1); errNo != 0 {
		t.Fatalf("Syslog at last byte = %v, want success", errNo)
	}
	if _, errNo := p.Syslog(1, testBase+testPageSize, 1); errNo != defs.InvalidArgument {
		t.Fatalf("Syslog past last page = %v, want InvalidArgument", errNo)
	}
}

func TestSyslogHexDump(t *testing.T) {
	p, _ := newTestPager(t, 1, 1)
	p.Create(1)
	a, _ := p.Extend(1)
	p.Fault(1, a, false)

	out, errNo := p.Syslog(1, a, 2)
	if errNo != 0 {
		t.Fatalf("Syslog: %v", errNo)
	}
	if string(out) != "0000\n" {
		t.Fatalf("Syslog output = %q, want %q", out, "0000\n")
	}
	p.assertInvariants()
}

func TestFaultOnUnknownPidIsSilentlyIgnored(t *testing.T) {
	p, _ := newTestPager(t, 1, 1)
	p.Fault(99, testBase, false) // must not panic
}

func TestDestroyUnknownPidIsNoop(t *testing.T) {
	p, _ := newTestPager(t, 1, 1)
	p.Destroy(99) // must not panic
}
