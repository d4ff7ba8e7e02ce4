package mmal

import "unsafe"

import "github.com/dustin/go-humanize"

//---- statistics and maintenance

// Info return memory accounting for this heap:
//
//   capacity : maximum bytes the heap is configured to map.
//   heap     : bytes mapped from the OS so far.
//   alloc    : payload bytes currently allocated to the caller.
//   overhead : bytes spent on arena and block book-keeping.
func (h *Heap) Info() (capacity, heap, alloc, overhead int64) {
	capacity, heap = h.capacity, h.nmapped
	self := int64(unsafe.Sizeof(*h))
	overhead += self
	for _, a := range h.arenas {
		overhead += Arenasize + int64(len(a.blocks)-len(a.spare))*Hdrsize
		overhead += int64(unsafe.Sizeof(*a))
		overhead += int64(cap(a.blocks)) * int64(unsafe.Sizeof(block{}))
		for _, blk := range a.blocks {
			alloc += blk.asize
		}
	}
	return
}

// Allocated return payload bytes currently allocated to the caller.
func (h *Heap) Allocated() int64 {
	allocated := int64(0)
	for _, a := range h.arenas {
		for _, blk := range a.blocks {
			allocated += blk.asize
		}
	}
	return allocated
}

// Available return bytes the heap can still map from the OS before
// hitting its configured capacity. Free payload inside already mapped
// arenas is not counted here, Info() accounts for it.
func (h *Heap) Available() int64 {
	return h.capacity - h.nmapped
}

// Utilization return, for each arena, its mapped size and the
// percentage of its payload space allocated to the caller.
func (h *Heap) Utilization() ([]int64, []float64) {
	sizes := make([]int64, 0, len(h.arenas))
	uzs := make([]float64, 0, len(h.arenas))
	for _, a := range h.arenas {
		payload, alloc := float64(0), float64(0)
		for _, blk := range a.blocks {
			payload += float64(blk.size)
			alloc += float64(blk.asize)
		}
		if payload > 0 {
			sizes = append(sizes, a.size)
			uzs = append(uzs, (alloc/payload)*100)
		}
	}
	return sizes, uzs
}

// Log heap accounting with the package logger.
func (h *Heap) Log(human bool) {
	capacity, heap, alloc, overhead := h.Info()
	if human {
		infof(
			"mmal: capacity: %v heap: %v alloc: %v overhead: %v\n",
			humanize.Bytes(uint64(capacity)), humanize.Bytes(uint64(heap)),
			humanize.Bytes(uint64(alloc)), humanize.Bytes(uint64(overhead)))
	} else {
		infof(
			"mmal: capacity: %v heap: %v alloc: %v overhead: %v\n",
			capacity, heap, alloc, overhead)
	}
	sizes, uzs := h.Utilization()
	for i, size := range sizes {
		infof("mmal: arena-%v %v utilization: %.2f%%\n", i, size, uzs[i])
	}
}

// Validate walk the full block ring and panic on any violated
// invariant: the ring must be a single cycle covering every live
// block, blocks of one arena must tile its usable space exactly, and
// every block must satisfy 0 <= asize <= size.
func (h *Heap) Validate() {
	if h.released {
		panicerr("heap released")
	}
	if len(h.arenas) == 0 {
		return
	}
	live := 0
	for _, a := range h.arenas {
		live += len(a.blocks) - len(a.spare)
	}
	ends := make(map[int32]int64, len(h.arenas)) // arena -> bytes covered
	bh, n := ringhead, 0
	for {
		blk := h.blk(bh)
		if n++; n > live {
			panicerr("Validate(): ring is not a single cycle")
		}
		if blk.size <= 0 {
			panicerr("Validate(): block %v has size %v", bh, blk.size)
		} else if blk.asize < 0 || blk.asize > blk.size {
			panicerr("Validate(): block %v asize %v size %v", bh, blk.asize, blk.size)
		}
		a := h.arenas[bh.arena]
		if blk.off < Arenasize || blk.off+Hdrsize+blk.size > a.size {
			panicerr("Validate(): block %v outside its arena", bh)
		}
		ends[bh.arena] += Hdrsize + blk.size
		if bh = blk.next; bh == ringhead {
			break
		}
	}
	if n != live {
		panicerr("Validate(): %v blocks reachable, %v live", n, live)
	}
	for ai, a := range h.arenas {
		if covered := ends[int32(ai)]; Arenasize+covered != a.size {
			panicerr("Validate(): arena-%v covers %v of %v", ai, covered, a.size)
		}
	}
}
