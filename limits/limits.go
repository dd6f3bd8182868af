// Package limits provides atomically-updated capacity counters,
// adapted from biscuit/src/limits.Sysatomic_t. The pager keeps one of
// these alongside each of the Frame Table and Block Allocator's
// authoritative, mutex-protected free counts so that a concurrent
// observer (cmd/pagersim's status printer, a metrics scrape) can read
// an approximate free count without contending for the pager's single
// mutex (spec.md §5). The authoritative count is always the one
// mem.Table/block.Allocator track themselves; this is a best-effort
// mirror, matching the teacher's own comment that Sysatomic_t fields
// are "protected by" whatever the real owning lock is, not by
// themselves.
package limits

import "sync/atomic"

// Counter is a capacity counter that can be read and adjusted without
// blocking, mirroring biscuit/src/limits.Sysatomic_t's Given/Taken
// pair.
type Counter struct {
	n int64
}

// NewCounter returns a Counter initialized to n.
func NewCounter(n int) *Counter {
	return &Counter{n: int64(n)}
}

// Given increases the counter by delta (a resource became available).
func (c *Counter) Given(delta int) {
	atomic.AddInt64(&c.n, int64(delta))
}

// Taken decreases the counter by delta (a resource was consumed).
func (c *Counter) Taken(delta int) {
	atomic.AddInt64(&c.n, -int64(delta))
}

// Load returns the current value.
func (c *Counter) Load() int {
	return int(atomic.LoadInt64(&c.n))
}
