package mmal

// arena is one OS-backed memory region. Block metadata lives in the
// blocks table, but Arenasize bytes at the start of the mapping and
// Hdrsize bytes ahead of every payload stay reserved, so offsets and
// size arithmetic match the physical layout:
//   +-----+------+-----------------------------+
//   |Arena|Header|payload......................|
//   +-----+------+-----------------------------+
//   |--------------- arena.size ---------------|
type arena struct {
	mem    []byte  // anonymous mapping, len(mem) == size
	size   int64   // total mapped bytes
	blocks []block // growable header table
	spare  []int32 // retired header slots, free for reuse
}

// alignpage returns size rounded up to Pagesize granularity.
func alignpage(size int64) int64 {
	if size < Pagesize {
		return Pagesize
	}
	return ((size / Pagesize) + 1) * Pagesize
}

// acquirearena maps a new arena of at least req bytes from the OS.
// The mapping is not assumed to be zero filled.
func acquirearena(req int64) (*arena, error) {
	size := alignpage(req)
	if size <= Arenasize+Hdrsize {
		panicerr("acquirearena: %v cannot hold an arena and a header", size)
	}
	mem, err := osmmap(size)
	if err != nil {
		return nil, err
	}
	return &arena{mem: mem, size: size, blocks: make([]block, 0, 8)}, nil
}

// appendarena links the arena at the tail of the heap's arena list and
// returns its index.
func (h *Heap) appendarena(a *arena) int32 {
	h.arenas = append(h.arenas, a)
	h.nmapped += a.size
	return int32(len(h.arenas) - 1)
}

// payload returns the full span of payload bytes backing bh.
func (h *Heap) payload(bh blockh) []byte {
	a, blk := h.arenas[bh.arena], h.blk(bh)
	from := blk.off + Hdrsize
	return a.mem[from : from+blk.size]
}
