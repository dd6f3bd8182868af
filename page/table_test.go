package page

import (
	"testing"

	"mempager/defs"
)

func TestRegistryCreateLookupDestroy(t *testing.T) {
	r := NewRegistry(4)
	if errNo := r.Create(1); errNo != 0 {
		t.Fatalf("Create(1) = %v, want success", errNo)
	}
	tbl, ok := r.Lookup(1)
	if !ok || tbl.Pid != 1 {
		t.Fatalf("Lookup(1) = (%+v,%v), want pid 1, true", tbl, ok)
	}
	if _, ok := r.Lookup(2); ok {
		t.Fatalf("Lookup(2) found an unregistered pid")
	}
	got, ok := r.Destroy(1)
	if !ok || got != tbl {
		t.Fatalf("Destroy(1) = (%v,%v), want the created table", got, ok)
	}
	if _, ok := r.Lookup(1); ok {
		t.Fatalf("Lookup(1) still found after Destroy")
	}
}

func TestRegistryCreateDuplicateFails(t *testing.T) {
	r := NewRegistry(4)
	r.Create(1)
	if errNo := r.Create(1); errNo != defs.AllocationFailure {
		t.Fatalf("Create(1) twice = %v, want AllocationFailure", errNo)
	}
}

func TestDestroyUnknownIsNoop(t *testing.T) {
	r := NewRegistry(4)
	if _, ok := r.Destroy(99); ok {
		t.Fatalf("Destroy(99) on unknown pid returned ok=true")
	}
}

func TestTableAppend(t *testing.T) {
	tbl := &Table{Pid: 1}
	idx := tbl.Append(10)
	if idx != 0 {
		t.Fatalf("first Append() = %d, want 0", idx)
	}
	idx = tbl.Append(11)
	if idx != 1 {
		t.Fatalf("second Append() = %d, want 1", idx)
	}
	if tbl.PageCount() != 2 {
		t.Fatalf("PageCount() = %d, want 2", tbl.PageCount())
	}
	if tbl.Pages[1].DiskBlock != 11 {
		t.Fatalf("Pages[1].DiskBlock = %d, want 11", tbl.Pages[1].DiskBlock)
	}
}
