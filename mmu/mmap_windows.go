//go:build windows

package mmu

// mmapAnon falls back to a plain heap allocation on platforms where
// golang.org/x/sys/unix's mmap primitives are unavailable. The
// simulator's correctness never depends on the backing being a real
// mapping; only the reference implementation on POSIX systems
// exercises golang.org/x/sys/unix.
func mmapAnon(n int) ([]byte, error) {
	return make([]byte, n), nil
}

// munmapAnon is a no-op for the heap-backed fallback; the slice is
// reclaimed by the garbage collector.
func munmapAnon(b []byte) error {
	return nil
}
