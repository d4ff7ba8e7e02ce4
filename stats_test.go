package mmal

import "testing"

func TestInfo(t *testing.T) {
	h := New(10*1024*1024, nil)
	defer h.Release()

	h.Malloc(100)
	h.Malloc(200)
	capacity, heap, alloc, overhead := h.Info()
	if capacity != 10*1024*1024 {
		t.Errorf("unexpected capacity %v", capacity)
	} else if heap != 131072 {
		t.Errorf("unexpected heap %v", heap)
	} else if alloc != 300 {
		t.Errorf("unexpected alloc %v", alloc)
	} else if overhead <= 0 {
		t.Errorf("unexpected overhead %v", overhead)
	}

	if x := h.Allocated(); x != 300 {
		t.Errorf("expected %v, got %v", 300, x)
	}
	// available counts mappable bytes, not free payload.
	if x := h.Available(); x != 10*1024*1024-131072 {
		t.Errorf("expected %v, got %v", 10*1024*1024-131072, x)
	}
}

func TestUtilization(t *testing.T) {
	h := New(10*1024*1024, nil)
	defer h.Release()

	h.Malloc(100)
	sizes, uzs := h.Utilization()
	if len(sizes) != 1 || len(uzs) != 1 {
		t.Fatalf("unexpected %v, %v", len(sizes), len(uzs))
	}
	if sizes[0] != 131072 {
		t.Errorf("expected %v, got %v", 131072, sizes[0])
	}
	if uzs[0] <= 0 || uzs[0] >= 100 {
		t.Errorf("unexpected utilization %v", uzs[0])
	}
	h.Log(true)
	h.Log(false)
}

func TestValidate(t *testing.T) {
	h := New(10*1024*1024, nil)
	defer h.Release()

	h.Validate() // empty heap is valid

	ptr, _ := h.Malloc(100)
	h.Validate()

	// corrupt the block table and expect Validate to catch it.
	blk := h.blk(h.resolve(ptr))
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
			blk.size--
		}()
		blk.size++
		h.Validate()
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
			blk.asize = 100
		}()
		blk.asize = blk.size + 1
		h.Validate()
	}()
	h.Validate()
}
