package mmal

import s "github.com/bnclabs/gosettings"

// Heap is an allocator context. Every operation mutates only the heap
// it is called on, independent heaps never share state. Heaps are not
// thread safe, callers requiring concurrency must serialize access.
type Heap struct {
	arenas []*arena

	// configuration
	capacity  int64  // mapped bytes cannot exceed this limit
	allocator string // placement policy

	// statistics
	nmapped int64 // total bytes mapped from the OS
	ngrows  int64 // number of arena growth events

	released bool
}

// New create a new heap managing upto capacity bytes of mapped
// memory. Refer to Defaultsettings() for the list of settings
// parameters.
func New(capacity int64, setts s.Settings) *Heap {
	if capacity <= 0 {
		panicerr("invalid capacity %v", capacity)
	} else if capacity > Maxheapsize {
		panicerr("heap cannot exceed %v bytes (%v)", Maxheapsize, capacity)
	}
	setts = Defaultsettings().Mixin(setts)
	h := &Heap{
		capacity:  capacity,
		allocator: setts.String("allocator"),
	}
	switch h.allocator {
	case "firstfit":
	default:
		panicerr("unknown allocator %q", h.allocator)
	}
	return h
}

//---- operations

// Malloc size bytes and return a pointer to the payload. Returns
// ErrorInvalidsize for size <= 0 and ErrorOutofmemory when the heap
// cannot grow, in which case the heap is left untouched.
func (h *Heap) Malloc(size int64) (Pointer, error) {
	if h.released {
		panicerr("heap released")
	}
	if size <= 0 {
		return Pointer{}, ErrorInvalidsize
	}
	bh, ok := h.firstfit(size)
	if !ok {
		var err error
		if bh, err = h.grow(size); err != nil {
			return Pointer{}, err
		}
	}
	if h.shouldsplit(bh, size) {
		h.split(bh, size)
	}
	h.blk(bh).asize = size
	return mkpointer(bh), nil
}

// Free the payload at ptr. The nil pointer is a no-op. Freeing a
// pointer not currently held from Malloc or Realloc panics.
func (h *Heap) Free(ptr Pointer) {
	if h.released {
		panicerr("heap released")
	}
	if ptr.IsNil() {
		return
	}
	bh := h.resolve(ptr)
	blk := h.blk(bh)
	if blk.asize == 0 {
		panicerr("Free on freed pointer %v", ptr)
	}
	blk.asize = 0
	poisonblock(h.payload(bh))
	// forward first, then backward, so a block between two free
	// neighbours collapses into one.
	if nh := blk.next; h.canmerge(bh, nh) {
		h.merge(bh, nh)
	}
	if ph := h.findpred(bh); h.canmerge(ph, bh) {
		h.merge(ph, bh)
	}
}

// Realloc the payload at ptr to size bytes, in place when the block's
// capacity or a free right neighbour allows it, relocating otherwise.
// Realloc(ptr, 0) frees ptr and returns the nil pointer. The nil
// pointer is not a valid argument, this allocator does not treat
// Realloc(nil, size) as a fresh Malloc.
func (h *Heap) Realloc(ptr Pointer, size int64) (Pointer, error) {
	if h.released {
		panicerr("heap released")
	}
	if ptr.IsNil() {
		return Pointer{}, ErrorInvalidpointer
	} else if size < 0 {
		return Pointer{}, ErrorInvalidsize
	} else if size == 0 {
		h.Free(ptr)
		return Pointer{}, nil
	}

	bh := h.resolve(ptr)
	blk := h.blk(bh)
	if blk.asize == 0 {
		panicerr("Realloc on freed pointer %v", ptr)
	}
	if size < blk.asize { // shrink, split off the excess if it fits
		blk.asize = 0
		if h.shouldsplit(bh, size) {
			h.split(bh, size)
		}
		h.blk(bh).asize = size
		return ptr, nil

	} else if size == blk.asize {
		return ptr, nil
	}

	// grow, within the block's own capacity.
	if size <= blk.size {
		blk.asize = size
		return ptr, nil
	}
	// grow, by absorbing a free right neighbour.
	asize := blk.asize
	blk.asize = 0
	if nh := blk.next; h.canmerge(bh, nh) && blk.size+Hdrsize+h.blk(nh).size >= size {
		h.merge(bh, nh)
		if h.shouldsplit(bh, size) {
			h.split(bh, size)
		}
		h.blk(bh).asize = size
		return ptr, nil
	}
	h.blk(bh).asize = asize
	// grow, by relocating. Only the bytes in use move.
	newptr, err := h.Malloc(size)
	if err != nil {
		return Pointer{}, err
	}
	copy(h.payload(h.resolve(newptr)), h.payload(bh)[:asize])
	h.Free(ptr)
	return newptr, nil
}

// Release the heap back to the OS. All pointers issued by the heap
// become invalid, any further operation on the heap panics.
func (h *Heap) Release() {
	if h.released {
		panicerr("heap released")
	}
	for _, a := range h.arenas {
		if err := osmunmap(a.mem); err != nil {
			panicerr("release: %v", err)
		}
		a.mem, a.blocks, a.spare = nil, nil, nil
	}
	infof("mmal: released %v arenas, %v bytes\n", len(h.arenas), h.nmapped)
	h.arenas, h.nmapped, h.released = nil, 0, true
}

//---- local functions

// firstfit scans the ring from the first arena's first block, wrapping
// once, for a free block of at least size payload bytes.
func (h *Heap) firstfit(size int64) (blockh, bool) {
	if len(h.arenas) == 0 {
		return nilh, false
	}
	bh := ringhead
	for {
		blk := h.blk(bh)
		if blk.asize == 0 && blk.size >= size {
			return bh, true
		}
		if bh = blk.next; bh == ringhead {
			return nilh, false
		}
	}
}

// grow maps a new arena big enough for size payload bytes, appends it
// to the arena list and splices its single free block into the ring.
func (h *Heap) grow(size int64) (blockh, error) {
	// sizes beyond the heap bound would overflow the overhead and
	// page-rounding arithmetic below.
	if size > Maxheapsize {
		return nilh, ErrorOutofmemory
	}
	req := size + Arenasize + Hdrsize
	if h.nmapped+alignpage(req) > h.capacity {
		return nilh, ErrorOutofmemory
	}
	a, err := acquirearena(req)
	if err != nil {
		errorf("mmal: mapping %v bytes failed: %v\n", alignpage(req), err)
		return nilh, ErrorOutofmemory
	}
	ai := h.appendarena(a)
	bh := h.newblock(ai, Arenasize, a.size-Arenasize-Hdrsize)
	if ai == 0 {
		h.blk(bh).next = bh
	} else {
		tail := h.findpred(ringhead)
		h.blk(bh).next = ringhead
		h.blk(tail).next = bh
	}
	h.ngrows++
	debugf("mmal: grown to %v arenas, %v bytes mapped\n", len(h.arenas), h.nmapped)
	return bh, nil
}
