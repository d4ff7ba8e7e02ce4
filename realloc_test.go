package mmal

import "bytes"
import "testing"

func TestReallocArgs(t *testing.T) {
	h := New(10*1024*1024, nil)
	defer h.Release()

	if _, err := h.Realloc(Pointer{}, 100); err != ErrorInvalidpointer {
		t.Errorf("expected %v, got %v", ErrorInvalidpointer, err)
	}
	ptr, _ := h.Malloc(100)
	if _, err := h.Realloc(ptr, -1); err != ErrorInvalidsize {
		t.Errorf("expected %v, got %v", ErrorInvalidsize, err)
	}

	// Realloc(ptr, 0) behaves exactly as Free(ptr).
	nptr, err := h.Realloc(ptr, 0)
	if err != nil {
		t.Fatalf("unexpected %v", err)
	} else if nptr.IsNil() == false {
		t.Errorf("expected nil pointer, got %v", nptr)
	}
	again, _ := h.Malloc(100)
	if again != ptr {
		t.Errorf("expected %v, got %v", ptr, again)
	}
}

func TestReallocShrink(t *testing.T) {
	h := New(10*1024*1024, nil)
	defer h.Release()

	ptr, _ := h.Malloc(100)
	payload := h.Bytes(ptr)
	for i := range payload {
		payload[i] = byte(i)
	}

	nptr, err := h.Realloc(ptr, 50)
	if err != nil {
		t.Fatalf("unexpected %v", err)
	} else if nptr != ptr {
		t.Errorf("expected %v, got %v", ptr, nptr)
	} else if x := len(h.Bytes(nptr)); x != 50 {
		t.Errorf("expected %v, got %v", 50, x)
	}
	for i, x := range h.Bytes(nptr) {
		if x != byte(i) {
			t.Fatalf("payload corrupted at %v", i)
		}
	}
	// excess became a free remainder block.
	rem := h.blk(h.blk(h.resolve(nptr)).next)
	if rem.asize != 0 || rem.size != 100-50-Hdrsize {
		t.Errorf("expected free block of %v, got %v/%v",
			100-50-Hdrsize, rem.size, rem.asize)
	}
	h.Validate()

	// shrink too small to split keeps the capacity.
	nptr, _ = h.Realloc(nptr, 40)
	if blk := h.blk(h.resolve(nptr)); blk.size != 50 || blk.asize != 40 {
		t.Errorf("expected 50/40, got %v/%v", blk.size, blk.asize)
	}
	h.Validate()
}

func TestReallocExact(t *testing.T) {
	h := New(10*1024*1024, nil)
	defer h.Release()

	ptr, _ := h.Malloc(100)
	nptr, err := h.Realloc(ptr, 100)
	if err != nil {
		t.Fatalf("unexpected %v", err)
	} else if nptr != ptr {
		t.Errorf("expected %v, got %v", ptr, nptr)
	}
}

func TestReallocGrowInplace(t *testing.T) {
	h := New(10*1024*1024, nil)
	defer h.Release()

	// shrink without split leaves spare capacity to grow into.
	ptr, _ := h.Malloc(100)
	ptr, _ = h.Realloc(ptr, 90)
	nptr, err := h.Realloc(ptr, 100)
	if err != nil {
		t.Fatalf("unexpected %v", err)
	} else if nptr != ptr {
		t.Errorf("expected %v, got %v", ptr, nptr)
	}
	if blk := h.blk(h.resolve(nptr)); blk.size != 100 || blk.asize != 100 {
		t.Errorf("expected 100/100, got %v/%v", blk.size, blk.asize)
	}
	h.Validate()
}

func TestReallocGrowMerge(t *testing.T) {
	h := New(10*1024*1024, nil)
	defer h.Release()

	a, _ := h.Malloc(100)
	b, _ := h.Malloc(200)
	payload := h.Bytes(a)
	for i := range payload {
		payload[i] = byte(i)
	}
	h.Free(b) // free right neighbour for a to grow into

	nptr, err := h.Realloc(a, 500)
	if err != nil {
		t.Fatalf("unexpected %v", err)
	} else if nptr != a {
		t.Errorf("expected %v, got %v", a, nptr)
	}
	for i, x := range h.Bytes(nptr)[:100] {
		if x != byte(i) {
			t.Fatalf("payload corrupted at %v", i)
		}
	}
	if blk := h.blk(h.resolve(nptr)); blk.size != 500 || blk.asize != 500 {
		t.Errorf("expected 500/500, got %v/%v", blk.size, blk.asize)
	}
	h.Validate()
}

func TestReallocRelocate(t *testing.T) {
	h := New(10*1024*1024, nil)
	defer h.Release()

	a, _ := h.Malloc(100)
	b, _ := h.Malloc(200) // pins a's right neighbour
	ref := make([]byte, 100)
	for i := range ref {
		ref[i] = byte(i * 7)
	}
	copy(h.Bytes(a), ref)

	nptr, err := h.Realloc(a, 150)
	if err != nil {
		t.Fatalf("unexpected %v", err)
	} else if nptr == a {
		t.Errorf("expected relocation, got %v", nptr)
	}
	if bytes.Equal(h.Bytes(nptr)[:100], ref) == false {
		t.Errorf("payload not carried over")
	}
	// the old block is free again, first-fit hands it back.
	again, _ := h.Malloc(100)
	if again != a {
		t.Errorf("expected %v, got %v", a, again)
	}
	h.Validate()
	h.Free(b)
}

func TestReallocRelocateFailure(t *testing.T) {
	h := New(128*1024, nil)
	defer h.Release()

	a, _ := h.Malloc(100)
	h.Malloc(200) // pins a's right neighbour
	copy(h.Bytes(a), []byte("intact"))

	if _, err := h.Realloc(a, 200*1024); err != ErrorOutofmemory {
		t.Errorf("expected %v, got %v", ErrorOutofmemory, err)
	}
	// a failed realloc leaves the allocation untouched.
	if x := string(h.Bytes(a)[:6]); x != "intact" {
		t.Errorf("expected %q, got %q", "intact", x)
	}
	if blk := h.blk(h.resolve(a)); blk.asize != 100 {
		t.Errorf("expected %v, got %v", 100, blk.asize)
	}
	h.Validate()
}

func TestReallocFreed(t *testing.T) {
	h := New(10*1024*1024, nil)
	defer h.Release()

	ptr, _ := h.Malloc(100)
	h.Free(ptr)
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		h.Realloc(ptr, 200)
	}()
}
