package slot

import (
	"math"
	"testing"
)

func TestTable_AllocOrder(t *testing.T) {
	tab := New(3)

	for want := uint32(0); want < 3; want++ {
		idx, gen, ok := tab.Alloc(want)
		if !ok {
			t.Fatalf("alloc %d failed", want)
		}
		if idx != want {
			t.Errorf("expected slot %d, got %d", want, idx)
		}
		if gen != 0 {
			t.Errorf("expected generation 0, got %d", gen)
		}
	}

	if _, _, ok := tab.Alloc(3); ok {
		t.Error("alloc should fail on a full table")
	}
	if tab.Occupied() != 3 {
		t.Errorf("expected 3 occupied, got %d", tab.Occupied())
	}
}

func TestTable_Resolve(t *testing.T) {
	tab := New(2)
	idx, gen, _ := tab.Alloc(7)

	pos, ok := tab.Resolve(idx, gen)
	if !ok || pos != 7 {
		t.Fatalf("expected position 7, got %d (ok=%v)", pos, ok)
	}

	if _, ok := tab.Resolve(idx, gen+1); ok {
		t.Error("wrong generation should not resolve")
	}
	if _, ok := tab.Resolve(1, 0); ok {
		t.Error("free slot should not resolve")
	}
	if _, ok := tab.Resolve(99, 0); ok {
		t.Error("out-of-range slot should not resolve")
	}
}

func TestTable_FreeRecyclesLIFO(t *testing.T) {
	tab := New(3)
	tab.Alloc(0) // slot 0
	tab.Alloc(1) // slot 1
	tab.Alloc(2) // slot 2

	tab.Free(1)
	tab.Free(0)

	// LIFO: last freed comes back first.
	idx, gen, _ := tab.Alloc(5)
	if idx != 0 || gen != 1 {
		t.Errorf("expected slot 0 gen 1, got slot %d gen %d", idx, gen)
	}
	idx, gen, _ = tab.Alloc(6)
	if idx != 1 || gen != 1 {
		t.Errorf("expected slot 1 gen 1, got slot %d gen %d", idx, gen)
	}
}

func TestTable_SetPosition(t *testing.T) {
	tab := New(2)
	idx, gen, _ := tab.Alloc(0)
	tab.SetPosition(idx, 42)

	pos, ok := tab.Resolve(idx, gen)
	if !ok || pos != 42 {
		t.Errorf("expected repointed position 42, got %d (ok=%v)", pos, ok)
	}
}

func TestTable_GenerationExhaustionRetiresSlot(t *testing.T) {
	tab := New(2)
	idx, _, _ := tab.Alloc(0)

	// Force the slot to the edge of the counter range.
	tab.entries[idx].generation = math.MaxUint32 - 1

	if retired := tab.Free(idx); !retired {
		t.Fatal("expected slot to be retired at generation ceiling")
	}
	if tab.Retired() != 1 {
		t.Errorf("expected 1 retired slot, got %d", tab.Retired())
	}

	// The retired slot must never come back; only slot 1 remains usable.
	idx, _, ok := tab.Alloc(0)
	if !ok || idx != 1 {
		t.Fatalf("expected slot 1, got %d (ok=%v)", idx, ok)
	}
	if _, _, ok := tab.Alloc(1); ok {
		t.Error("retired slot must not be allocatable")
	}

	if err := tab.Validate(); err != nil {
		t.Errorf("validate failed: %v", err)
	}
}

func TestTable_Reset(t *testing.T) {
	tab := New(4)
	i0, g0, _ := tab.Alloc(0)
	tab.Alloc(1)

	if retired := tab.Reset(); retired != 0 {
		t.Fatalf("expected no retirements, got %d", retired)
	}
	if tab.Occupied() != 0 {
		t.Errorf("expected 0 occupied after reset, got %d", tab.Occupied())
	}
	if _, ok := tab.Resolve(i0, g0); ok {
		t.Error("pre-reset handle should not resolve")
	}

	// Free list is rebuilt in index order.
	idx, gen, _ := tab.Alloc(0)
	if idx != 0 || gen != 1 {
		t.Errorf("expected slot 0 gen 1, got slot %d gen %d", idx, gen)
	}

	if err := tab.Validate(); err != nil {
		t.Errorf("validate failed: %v", err)
	}
}

func TestTable_Validate(t *testing.T) {
	tab := New(8)
	for i := 0; i < 8; i++ {
		tab.Alloc(uint32(i))
	}
	for _, idx := range []uint32{1, 3, 5, 7} {
		tab.Free(idx)
	}
	if err := tab.Validate(); err != nil {
		t.Fatalf("validate failed on healthy table: %v", err)
	}

	t.Run("detects cycle", func(t *testing.T) {
		broken := New(4)
		broken.entries[0].link = 1
		broken.entries[1].link = 0
		broken.head = 0
		if err := broken.Validate(); err == nil {
			t.Error("expected cycle to be detected")
		}
	})

	t.Run("detects orphaned free slot", func(t *testing.T) {
		broken := New(2)
		broken.head = 1
		broken.entries[1].link = noSlot
		if err := broken.Validate(); err == nil {
			t.Error("expected orphaned free slot to be detected")
		}
	})
}
