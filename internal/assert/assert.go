// Package assert checks the pager's global invariants (spec.md §3,
// I1–I5). A failure here means the pager's own bookkeeping is
// inconsistent, not that a client did something wrong, so it panics
// rather than returning an error — the same split the teacher draws
// between defs.Err_t (client-facing) and a hard panic (kernel-only
// bug), grounded on biscuit/src/caller's callchain dumper.
package assert

import (
	"fmt"
	"runtime"
)

// Invariant panics with msg and the caller chain if cond is false.
func Invariant(cond bool, format string, args ...interface{}) {
	if cond {
		return
	}
	panic(fmt.Sprintf("invariant violated: %s\n%s", fmt.Sprintf(format, args...), callchain(2)))
}

// callchain renders the stack starting at the given skip depth, the
// same traversal biscuit/src/caller.Callerdump performs.
func callchain(skip int) string {
	s := ""
	for i := skip; ; i++ {
		_, f, l, ok := runtime.Caller(i)
		if !ok {
			break
		}
		if s == "" {
			s = fmt.Sprintf("%s:%d", f, l)
		} else {
			s += fmt.Sprintf("\n\t<-%s:%d", f, l)
		}
	}
	return s
}
