package arena

// DefaultByteSlab is the byte count per Buffer slab when created with a
// non-positive capacity.
const DefaultByteSlab = 8 * 1024

// Buffer is a bump allocator for raw bytes, used as backing storage for
// string records. Every Alloc returns a slice that never aliases a
// previously returned one; storage is reclaimed wholesale by Release.
type Buffer struct {
	slabCap int
	slabs   [][]byte
	off     int // write offset into the last slab
	total   int
}

// NewBuffer returns a byte arena whose slabs hold slabCap bytes each.
func NewBuffer(slabCap int) *Buffer {
	if slabCap <= 0 {
		slabCap = DefaultByteSlab
	}
	return &Buffer{slabCap: slabCap}
}

// Alloc returns a zeroed slice of n bytes that stays valid until Release.
// Requests larger than the slab capacity get a dedicated slab. Alloc of a
// non-positive n returns nil.
func (b *Buffer) Alloc(n int) []byte {
	if n <= 0 {
		return nil
	}
	if len(b.slabs) == 0 || b.off+n > len(b.slabs[len(b.slabs)-1]) {
		size := b.slabCap
		if n > size {
			size = n
		}
		b.slabs = append(b.slabs, make([]byte, size))
		b.off = 0
	}
	slab := b.slabs[len(b.slabs)-1]
	out := slab[b.off : b.off+n : b.off+n]
	b.off += n
	b.total += n
	return out
}

// Len reports the total bytes handed out.
func (b *Buffer) Len() int { return b.total }

// Slabs reports how many slabs back the buffer.
func (b *Buffer) Slabs() int { return len(b.slabs) }

// Release frees every slab at once. Slices returned earlier must not be used
// afterwards.
func (b *Buffer) Release() {
	b.slabs = nil
	b.off = 0
	b.total = 0
}
