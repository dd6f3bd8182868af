package page

import (
	"mempager/accnt"
	"mempager/defs"
	"mempager/hashtable"
)

// Table is one process's dense, ordered page table (spec.md §3,
// "Process Table"). Pages are appended by Extend and never reordered
// or removed until the whole table is dropped by Destroy — a plain
// Go slice gives amortized O(1) append with no external references to
// preserve (the frame's reverse pointer is an index, not an address,
// per spec.md §9), so reallocation on growth is always safe.
type Table struct {
	Pid   defs.Pid_t
	Pages []Entry
	Acc   *accnt.Accnt
}

// PageCount returns the number of page entries currently allocated.
func (t *Table) PageCount() int { return len(t.Pages) }

// Append adds one page entry in the Uninitialized state, returning its
// new index (spec.md §4.4).
func (t *Table) Append(diskBlock int) int {
	idx := len(t.Pages)
	t.Pages = append(t.Pages, NewUninitialized(diskBlock))
	return idx
}

// Registry is the Process Page Table Registry (spec.md §4.3): a
// mapping from pid to Table, backed by the lock-striped hashtable
// adapted from the teacher's hashtable package.
type Registry struct {
	tables *hashtable.Table[*Table]
}

// NewRegistry constructs an empty registry sized for up to
// hintProcesses concurrently-live processes (a sizing hint only; the
// table grows by chaining, never by resizing).
func NewRegistry(hintProcesses int) *Registry {
	nbuckets := hintProcesses
	if nbuckets < 16 {
		nbuckets = 16
	}
	return &Registry{tables: hashtable.New[*Table](nbuckets)}
}

// Create registers a new process with an empty address space. Per
// spec.md §4.3 the collaborator never calls Create twice for the same
// pid; if it does anyway this returns AllocationFailure rather than
// silently discarding the existing table (see DESIGN.md, "Open
// Question decisions").
func (r *Registry) Create(pid defs.Pid_t) defs.Err_t {
	t := &Table{Pid: pid, Acc: &accnt.Accnt{}}
	if !r.tables.Set(int32(pid), t) {
		return defs.AllocationFailure
	}
	return 0
}

// Lookup returns the table for pid, or ok==false if pid is not
// registered.
func (r *Registry) Lookup(pid defs.Pid_t) (*Table, bool) {
	return r.tables.Get(int32(pid))
}

// Destroy detaches pid's table and returns it so the caller (the
// pager core) can release its frames and blocks (spec.md §4.8).
// Destroying an unknown pid is a no-op, matching
// original_source/src/pager.c's pager_destroy.
func (r *Registry) Destroy(pid defs.Pid_t) (*Table, bool) {
	t, ok := r.tables.Get(int32(pid))
	if !ok {
		return nil, false
	}
	r.tables.Del(int32(pid))
	return t, true
}
