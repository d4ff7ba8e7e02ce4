package mmal

// blockh is a handle to one block: index of the owning arena in the
// heap's arena table, and index of the block in that arena's header
// table. The ring's next relation is expressed over handles, never
// over raw addresses.
type blockh struct {
	arena int32
	index int32
}

// nilh terminates nothing; it marks a header whose ring link is unset.
var nilh = blockh{-1, -1}

// block describes one contiguous span inside an arena mapping.
//   ---+------+----------------------------+---
//      |off   |payload... in-use ...free...|
//   ---+------+-----------------+----------+---
//             |---- asize ------|
//             |---- size ------------------|
type block struct {
	next  blockh // successor in the global circular list
	off   int64  // header offset inside the arena mapping
	size  int64  // payload bytes available past the header
	asize int64  // payload bytes requested by caller, 0 means free
}

// ringhead is the fixed entry point into the block ring, the first
// block of the first arena. It is never the right operand of a merge,
// so the handle stays valid for the life of the heap.
var ringhead = blockh{0, 0}

func (h *Heap) blk(bh blockh) *block {
	return &h.arenas[bh.arena].blocks[bh.index]
}

// newblock constructs a free block at off, reusing a retired header
// slot when one is available.
func (h *Heap) newblock(ai int32, off, size int64) blockh {
	if size <= 0 {
		panicerr("newblock: invalid size %v", size)
	}
	a := h.arenas[ai]
	if n := len(a.spare); n > 0 {
		index := a.spare[n-1]
		a.spare = a.spare[:n-1]
		a.blocks[index] = block{next: nilh, off: off, size: size}
		return blockh{arena: ai, index: index}
	}
	a.blocks = append(a.blocks, block{next: nilh, off: off, size: size})
	return blockh{arena: ai, index: int32(len(a.blocks) - 1)}
}

// retire removes a merged-away header from circulation and remembers
// its slot for reuse.
func (h *Heap) retire(bh blockh) {
	*h.blk(bh) = block{next: nilh}
	a := h.arenas[bh.arena]
	a.spare = append(a.spare, bh.index)
}

//---- primitives

// shouldsplit returns true only if the block is free and carving size
// bytes out of it leaves a remainder with strictly positive payload,
// once the remainder's own header overhead is paid for.
func (h *Heap) shouldsplit(bh blockh, size int64) bool {
	blk := h.blk(bh)
	if blk.asize != 0 || size <= 0 {
		return false
	}
	return blk.size-Hdrsize-size > 0
}

// split divides a free block: bh keeps exactly size payload bytes, the
// remainder becomes a new free block spliced into the ring right after
// bh. Returns the remainder's handle.
func (h *Heap) split(bh blockh, size int64) blockh {
	blk := h.blk(bh)
	if blk.size < size+Hdrsize {
		panicerr("split: block of %v cannot give %v", blk.size, size)
	}
	off, rem, next := blk.off+Hdrsize+size, blk.size-size-Hdrsize, blk.next
	righth := h.newblock(bh.arena, off, rem)
	// newblock can grow the header table, refetch.
	left, right := h.blk(bh), h.blk(righth)
	right.next = next
	left.next = righth
	left.size = size
	return righth
}

// canmerge returns true iff both blocks are free, ring-adjacent and
// physically adjacent inside the same arena. Adjacency is checked on
// offsets, so the wrap-around link from the ring's last block back to
// the first block is never merge eligible.
func (h *Heap) canmerge(lh, rh blockh) bool {
	if lh == rh || lh.arena != rh.arena {
		return false
	}
	left, right := h.blk(lh), h.blk(rh)
	if left.asize != 0 || right.asize != 0 || left.next != rh {
		return false
	}
	return left.off < right.off && left.off+Hdrsize+left.size == right.off
}

// merge absorbs rh into lh: payload plus one header's overhead. The
// right header is retired and is no longer addressable.
func (h *Heap) merge(lh, rh blockh) {
	left := h.blk(lh)
	if lh == rh || left.next != rh {
		panicerr("merge: %v and %v are not adjacent", lh, rh)
	}
	right := h.blk(rh)
	left.size += right.size + Hdrsize
	left.next = right.next
	h.retire(rh)
}

// findpred walks the ring until it arrives back at bh and returns the
// block whose next is bh. Cost is linear in the ring length.
func (h *Heap) findpred(bh blockh) blockh {
	prev := bh
	for h.blk(prev).next != bh {
		prev = h.blk(prev).next
	}
	return prev
}
