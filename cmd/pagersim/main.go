// Command pagersim drives a small in-process demonstration of the
// pager: it creates a handful of client processes, extends their
// address spaces, and faults pages concurrently, then prints resource
// usage and pager-wide counters.
//
// This is the simulator harness spec.md §1 explicitly places out of
// core scope ("process discovery... the physical-memory byte array
// layout... are thin collaborators"); it exists only to exercise the
// pager end to end the way biscuit/src/kernel's chentry exercises its
// own small tool end to end.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"mempager/defs"
	"mempager/mmu"
	"mempager/pager"
)

func usage(me string) {
	fmt.Printf("%s [-frames N] [-blocks N] [-procs N] [-pages N]\n\nRun a small concurrent demand-paging demo.\n", me)
	os.Exit(1)
}

func main() {
	frames := flag.Int("frames", 8, "physical frame pool size")
	blocks := flag.Int("blocks", 32, "backing-store block pool size")
	procs := flag.Int("procs", 4, "number of simulated client processes")
	pages := flag.Int("pages", 6, "pages extended and faulted per process")
	flag.Usage = func() { usage(os.Args[0]) }
	flag.Parse()

	const pageSize = 4096
	const base = uintptr(0x4000_0000)

	sim, err := mmu.NewSimulator(*frames, *blocks, pageSize)
	if err != nil {
		log.Fatalf("pagersim: new simulator: %v", err)
	}
	defer sim.Close()

	p := pager.New(pager.Config{
		Frames:   *frames,
		Blocks:   *blocks,
		PageSize: pageSize,
		Base:     base,
	}, sim)

	var eg errgroup.Group
	pids := make([]defs.Pid_t, *procs)
	for i := 0; i < *procs; i++ {
		pid := defs.Pid_t(i + 1)
		pids[i] = pid
		eg.Go(func() error {
			return runClient(p, pid, *pages)
		})
	}
	if err := eg.Wait(); err != nil {
		log.Fatalf("pagersim: %v", err)
	}

	printStats(p, pids)
}

// runClient creates one process, extends it by n pages, and faults
// each page twice — a residency fault followed by a simulated write,
// matching end-to-end scenario 1/2 of spec.md §8.
func runClient(p *pager.Pager, pid defs.Pid_t, n int) error {
	if errNo := p.Create(pid); errNo != 0 {
		return fmt.Errorf("create(%d): %w", pid, errNo)
	}
	addrs := make([]uintptr, 0, n)
	for i := 0; i < n; i++ {
		a, errNo := p.Extend(pid)
		if errNo != 0 {
			return fmt.Errorf("extend(%d): %w", pid, errNo)
		}
		addrs = append(addrs, a)
	}
	for _, a := range addrs {
		p.Fault(pid, a, false)
		p.Fault(pid, a, true)
	}
	return nil
}

// printStats reports final pool occupancy and pager-wide counters
// using golang.org/x/text/message for locale-aware number formatting,
// rather than bare fmt.Printf, the same way the teacher's demo tools
// favor a library formatter over hand-rolled separators.
func printStats(p *pager.Pager, pids []defs.Pid_t) {
	pr := message.NewPrinter(language.English)
	pr.Printf("free frames: %d\n", p.FreeFrames())
	pr.Printf("free blocks: %d\n", p.FreeBlocks())
	pr.Printf("resident pages: %d\n", len(p.ResidentSnapshot(pids)))
	fmt.Print(p.Stats.String())
	fmt.Println()
}
