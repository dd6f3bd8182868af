// Package accnt tracks per-process paging activity, adapted from
// biscuit/src/accnt.Accnt_t (which tracks user/system CPU time per
// process). Here the quantity being accounted is paging activity
// instead of CPU time, but the shape — plain counters behind a mutex,
// merged into a parent on demand — is carried over unchanged.
package accnt

import "sync"

// Accnt holds one process's lifetime paging counters.
type Accnt struct {
	mu sync.Mutex

	Faults       int64 // total calls to Pager.Fault that reached the page
	ResidencyIn  int64 // Case B transitions (page brought into memory)
	ProtUpgrades int64 // Case A Read-to-ReadWrite upgrades (first write)
	Evictions    int64 // times a page owned by this process was evicted
	Writebacks   int64 // times a page owned by this process was written to disk
	ZeroFills    int64 // times a page owned by this process was demand-zeroed
	DiskReads    int64 // times a page owned by this process was read back from disk
}

// Snapshot is an immutable copy of Accnt's counters, safe to read
// without the source's lock held.
type Snapshot struct {
	Faults, ResidencyIn, ProtUpgrades, Evictions, Writebacks, ZeroFills, DiskReads int64
}

func (a *Accnt) incr(p *int64) {
	a.mu.Lock()
	*p++
	a.mu.Unlock()
}

func (a *Accnt) IncrFaults()       { a.incr(&a.Faults) }
func (a *Accnt) IncrResidencyIn()  { a.incr(&a.ResidencyIn) }
func (a *Accnt) IncrProtUpgrades() { a.incr(&a.ProtUpgrades) }
func (a *Accnt) IncrEvictions()    { a.incr(&a.Evictions) }
func (a *Accnt) IncrWritebacks()   { a.incr(&a.Writebacks) }
func (a *Accnt) IncrZeroFills()    { a.incr(&a.ZeroFills) }
func (a *Accnt) IncrDiskReads()    { a.incr(&a.DiskReads) }

// Fetch returns a consistent snapshot, matching Accnt_t.Fetch's lock-
// then-copy pattern.
func (a *Accnt) Fetch() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Snapshot{
		Faults:       a.Faults,
		ResidencyIn:  a.ResidencyIn,
		ProtUpgrades: a.ProtUpgrades,
		Evictions:    a.Evictions,
		Writebacks:   a.Writebacks,
		ZeroFills:    a.ZeroFills,
		DiskReads:    a.DiskReads,
	}
}

// Add merges n's counters into a, matching Accnt_t.Add.
func (a *Accnt) Add(n Snapshot) {
	a.mu.Lock()
	a.Faults += n.Faults
	a.ResidencyIn += n.ResidencyIn
	a.ProtUpgrades += n.ProtUpgrades
	a.Evictions += n.Evictions
	a.Writebacks += n.Writebacks
	a.ZeroFills += n.ZeroFills
	a.DiskReads += n.DiskReads
	a.mu.Unlock()
}
