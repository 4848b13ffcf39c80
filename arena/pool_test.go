package arena

import "testing"

type record struct {
	id  int
	tag string
}

func TestPoolSlabGrowth(t *testing.T) {
	tests := []struct {
		name    string
		slabCap int
		allocs  int
		slabs   int
	}{
		{"empty", 4, 0, 0},
		{"partial slab", 4, 3, 1},
		{"exact slab", 4, 4, 1},
		{"one over", 4, 5, 2},
		{"two full one partial", 4, 11, 3},
		{"many", 8, 8*5 + 3, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPool[record](tt.slabCap)
			for i := 0; i < tt.allocs; i++ {
				p.Alloc()
			}
			if p.Slabs() != tt.slabs {
				t.Errorf("Slabs() = %d, want %d", p.Slabs(), tt.slabs)
			}
			if p.Len() != tt.allocs {
				t.Errorf("Len() = %d, want %d", p.Len(), tt.allocs)
			}
		})
	}
}

func TestPoolIndicesUniqueAndStable(t *testing.T) {
	p := NewPool[record](4)

	const n = 19
	seen := make(map[Index]bool, n)
	ptrs := make([]*record, 0, n)
	for i := 0; i < n; i++ {
		idx, r := p.Alloc()
		if seen[idx] {
			t.Fatalf("Alloc() returned duplicate index %d", idx)
		}
		seen[idx] = true
		r.id = i
		ptrs = append(ptrs, r)
	}

	// Growth must not move existing records.
	for i := 0; i < n; i++ {
		if ptrs[i].id != i {
			t.Errorf("record %d: id = %d, want %d", i, ptrs[i].id, i)
		}
		if got := p.Get(Index(i)); got != ptrs[i] {
			t.Errorf("Get(%d) = %p, want %p", i, got, ptrs[i])
		}
	}
}

func TestPoolAllocReturnsZeroedRecord(t *testing.T) {
	p := NewPool[record](2)
	_, r := p.Alloc()
	if r.id != 0 || r.tag != "" {
		t.Errorf("Alloc() = %+v, want zero record", *r)
	}
}

func TestPoolGetOutOfRangePanics(t *testing.T) {
	p := NewPool[record](2)
	p.Alloc()

	defer func() {
		if recover() == nil {
			t.Error("Get(5) did not panic")
		}
	}()
	p.Get(5)
}

func TestPoolRelease(t *testing.T) {
	p := NewPool[record](2)
	for i := 0; i < 7; i++ {
		p.Alloc()
	}
	p.Release()

	if p.Len() != 0 {
		t.Errorf("Len() after Release = %d, want 0", p.Len())
	}
	if p.Slabs() != 0 {
		t.Errorf("Slabs() after Release = %d, want 0", p.Slabs())
	}
}

func TestPoolDefaultCapacity(t *testing.T) {
	p := NewPool[record](0)
	if p.SlabCap() != DefaultSlabCap {
		t.Errorf("SlabCap() = %d, want %d", p.SlabCap(), DefaultSlabCap)
	}
}
