package mmal

// Pointer is a fat handle to an allocated payload, carrying the
// reference to its owning block. The zero value is the nil pointer.
// Pointers returned by Malloc and Realloc compare equal with == iff
// they reference the same payload.
type Pointer struct {
	arena int32 // 1 + arena index, 0 means nil
	index int32 // 1 + block index, 0 means nil
}

// IsNil return whether ptr is the nil pointer.
func (ptr Pointer) IsNil() bool {
	return ptr.arena == 0 || ptr.index == 0
}

func mkpointer(bh blockh) Pointer {
	return Pointer{arena: bh.arena + 1, index: bh.index + 1}
}

// resolve maps a caller supplied pointer back to its block handle,
// failing fast on handles this heap never issued.
func (h *Heap) resolve(ptr Pointer) blockh {
	ai, bi := ptr.arena-1, ptr.index-1
	if ai < 0 || int(ai) >= len(h.arenas) {
		panicerr("invalid pointer %v", ptr)
	} else if bi < 0 || int(bi) >= len(h.arenas[ai].blocks) {
		panicerr("invalid pointer %v", ptr)
	}
	return blockh{arena: ai, index: bi}
}

// Bytes return the payload for ptr, sized to the byte count requested
// from Malloc or Realloc. The slice is valid until ptr is retired by
// Free or Realloc.
func (h *Heap) Bytes(ptr Pointer) []byte {
	if h.released {
		panicerr("heap released")
	}
	bh := h.resolve(ptr)
	blk := h.blk(bh)
	if blk.asize == 0 {
		panicerr("Bytes on freed pointer %v", ptr)
	}
	return h.payload(bh)[:blk.asize]
}
