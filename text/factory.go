// Package text provides the arena-backed string factory. Tokens and tree
// nodes reference its buffers by handle; all storage is reclaimed at once
// when the factory is released.
package text

import "github.com/dhamidi/toki/arena"

// Handle is an opaque reference to one text buffer owned by a Factory. A
// handle stays valid until the factory is released. Resolving a handle that
// was never issued by the factory panics (programmer error).
type Handle int32

// record stores the content plus one trailing NUL byte so CString costs
// nothing extra.
type record struct {
	buf []byte
}

// Factory manufactures text buffers inside an arena. Buffers are immutable
// except through Set and Append, both of which allocate fresh storage: two
// handles never alias bytes.
//
// A Factory is not safe for concurrent use.
type Factory struct {
	records *arena.Pool[record]
	bytes   *arena.Buffer
}

// NewFactory returns a string factory whose record slabs hold slabCap
// entries each (non-positive selects the default).
func NewFactory(slabCap int) *Factory {
	return &Factory{
		records: arena.NewPool[record](slabCap),
		bytes:   arena.NewBuffer(0),
	}
}

// New copies b into the arena and returns a handle for it. A nil or empty b
// yields a valid empty buffer.
func (f *Factory) New(b []byte) Handle {
	idx, r := f.records.Alloc()
	r.buf = f.store(b)
	return Handle(idx)
}

// NewString is New for string input.
func (f *Factory) NewString(s string) Handle {
	idx, r := f.records.Alloc()
	r.buf = f.store([]byte(s))
	return Handle(idx)
}

// Set replaces the contents of h. Fresh arena space is allocated; storage
// referenced by other handles is never written.
func (f *Factory) Set(h Handle, b []byte) {
	f.get(h).buf = f.store(b)
}

// SetString is Set for string input.
func (f *Factory) SetString(h Handle, s string) {
	f.get(h).buf = f.store([]byte(s))
}

// Append extends the contents of h with b, again into fresh storage.
func (f *Factory) Append(h Handle, b []byte) {
	r := f.get(h)
	old := r.buf[:len(r.buf)-1]
	buf := f.bytes.Alloc(len(old) + len(b) + 1)
	n := copy(buf, old)
	copy(buf[n:], b)
	r.buf = buf
}

// Bytes returns the contents of h. The slice is a read-only view into the
// arena, valid until Release; callers must not modify it.
func (f *Factory) Bytes(h Handle) []byte {
	buf := f.get(h).buf
	return buf[: len(buf)-1 : len(buf)-1]
}

// String returns the contents of h as a string copy.
func (f *Factory) String(h Handle) string {
	return string(f.Bytes(h))
}

// CString returns the contents of h including the trailing NUL byte, valid
// until Release.
func (f *Factory) CString(h Handle) []byte {
	buf := f.get(h).buf
	return buf[:len(buf):len(buf)]
}

// Len reports the content length of h, excluding the trailing NUL.
func (f *Factory) Len(h Handle) int {
	return len(f.get(h).buf) - 1
}

// Count reports how many handles the factory has issued.
func (f *Factory) Count() int { return f.records.Len() }

// Release frees every buffer at once. All handles become invalid.
func (f *Factory) Release() {
	f.records.Release()
	f.bytes.Release()
}

func (f *Factory) get(h Handle) *record {
	return f.records.Get(arena.Index(h))
}

// store copies b into the arena with a trailing NUL.
func (f *Factory) store(b []byte) []byte {
	buf := f.bytes.Alloc(len(b) + 1)
	copy(buf, b)
	return buf
}
