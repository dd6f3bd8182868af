//go:build !windows

package mmu

import "golang.org/x/sys/unix"

// mmapAnon allocates an anonymous, page-aligned region to back
// Simulator's physical memory, grounded in the userfaultfd-based
// demand-paging reference code in the example pack: a real anonymous
// mmap stands in for physical RAM rather than a plain make([]byte, n),
// so the "byte-addressable handle to the entire physical memory" of
// spec.md §6 is backed by the same primitive a real pager would use.
func mmapAnon(n int) ([]byte, error) {
	return unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

// munmapAnon releases a region obtained from mmapAnon.
func munmapAnon(b []byte) error {
	return unix.Munmap(b)
}
