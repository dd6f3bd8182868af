package mmu

import (
	"sync"

	"mempager/defs"
)

// mapping records what the simulator currently believes is mapped for
// a given (pid, vaddr) pair. It exists purely so tests and
// cmd/pagersim can assert that Resident/Nonresident/Chprot calls
// happened in the order spec.md §4.5/§4.6 require — the real pager
// state of record lives in mem.Table and page.Entry, not here.
type mapping struct {
	frame int
	prot  defs.Prot
}

// Simulator is a complete MMU implementation: a real backing array for
// physical memory plus a real backing array for disk blocks, and an
// in-memory map of what is currently mapped for which process. It
// does not enforce protection (there is no real second address space
// to fault against) — that enforcement is exactly the job the pager
// core performs in software, per spec.md §1.
type Simulator struct {
	mu       sync.Mutex
	pageSize int
	physical []byte // backing store for Physical(), F*pageSize bytes
	disk     []byte // backing store for disk blocks, B*pageSize bytes
	mapped   map[defs.Pid_t]map[uintptr]mapping
}

// NewSimulator constructs a Simulator with nframes physical frames and
// nblocks backing-store blocks, each pageSize bytes.
func NewSimulator(nframes, nblocks, pageSize int) (*Simulator, error) {
	phys, err := mmapAnon(nframes * pageSize)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		pageSize: pageSize,
		physical: phys,
		disk:     make([]byte, nblocks*pageSize),
		mapped:   make(map[defs.Pid_t]map[uintptr]mapping),
	}, nil
}

// Close releases the mmap-backed physical memory region.
func (s *Simulator) Close() error {
	return munmapAnon(s.physical)
}

func (s *Simulator) frameBytes(frame int) []byte {
	off := frame * s.pageSize
	return s.physical[off : off+s.pageSize]
}

func (s *Simulator) blockBytes(block int) []byte {
	off := block * s.pageSize
	return s.disk[off : off+s.pageSize]
}

// ZeroFill implements MMU.
func (s *Simulator) ZeroFill(frame int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.frameBytes(frame)
	for i := range b {
		b[i] = 0
	}
}

// DiskRead implements MMU.
func (s *Simulator) DiskRead(block, frame int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.frameBytes(frame), s.blockBytes(block))
}

// DiskWrite implements MMU.
func (s *Simulator) DiskWrite(frame, block int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.blockBytes(block), s.frameBytes(frame))
}

// Resident implements MMU.
func (s *Simulator) Resident(pid defs.Pid_t, vaddr uintptr, frame int, prot defs.Prot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.mapped[pid]
	if m == nil {
		m = make(map[uintptr]mapping)
		s.mapped[pid] = m
	}
	m[vaddr] = mapping{frame: frame, prot: prot}
}

// Nonresident implements MMU.
func (s *Simulator) Nonresident(pid defs.Pid_t, vaddr uintptr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.mapped[pid], vaddr)
}

// Chprot implements MMU.
func (s *Simulator) Chprot(pid defs.Pid_t, vaddr uintptr, prot defs.Prot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.mapped[pid][vaddr]; ok {
		m.prot = prot
		s.mapped[pid][vaddr] = m
	}
}

// Physical implements MMU.
func (s *Simulator) Physical() []byte {
	return s.physical
}

// MappingOf reports what the simulator believes is currently mapped
// at vaddr for pid, for test and diagnostic use.
func (s *Simulator) MappingOf(pid defs.Pid_t, vaddr uintptr) (frame int, prot defs.Prot, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mapped[pid][vaddr]
	return m.frame, m.prot, ok
}
