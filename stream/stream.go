package stream

// EOF is the lookahead value reported for positions outside the stream, in
// front of the first unit as well as past the last one.
const EOF = -1

// Input is a seekable stream of int-coded units. Character streams code the
// byte value, token streams the token type, node streams the node type; EOF
// stands in for any position outside the stream.
//
// Lookahead is 1-based in both directions: LA(1) is the unit Consume would
// return next, LA(-1) the one it returned last. LA(0) is an error.
type Input interface {
	// Name identifies the stream, usually by file name.
	Name() string

	// LA returns the unit n positions away without moving the cursor.
	LA(n int) (int, error)

	// Consume returns the unit under the cursor and advances past it.
	Consume() (int, error)

	// Index reports the cursor position, counted in units from 0.
	Index() int

	// Size reports the total number of units in the stream.
	Size() int

	// Exhausted reports whether the cursor is past the last unit.
	Exhausted() bool

	// Mark records the cursor state and returns a checkpoint for it.
	Mark() Checkpoint

	// Rewind restores the state recorded by cp and releases cp together
	// with every checkpoint taken after it.
	Rewind(cp Checkpoint) error

	// Release drops cp and every checkpoint taken after it without
	// moving the cursor, committing whatever was read since the mark.
	Release(cp Checkpoint) error

	// RewindLast restores the most recent checkpoint, releasing it. With
	// no checkpoints outstanding it does nothing.
	RewindLast()

	// Seek moves the cursor to unit index n.
	Seek(n int) error

	// Reset moves the cursor back to the start and releases every
	// outstanding checkpoint.
	Reset()

	// Closed reports whether Close has been called.
	Closed() bool

	// Close shuts the stream down. Every later operation fails with
	// ErrClosed; outstanding checkpoints become stale.
	Close() error
}

// Checkpoint is a handle for a marked cursor state. Checkpoints are issued
// per stream and form a stack: rewinding to one releases it and everything
// marked after it. The zero Checkpoint is invalid.
type Checkpoint struct {
	owner *markStack
	id    uint64
}

// Valid reports whether the checkpoint was issued by a live Mark call.
func (cp Checkpoint) Valid() bool { return cp.owner != nil }

type mark struct {
	id   uint64
	pos  int
	line int
	col  int
}

// markStack tracks the outstanding checkpoints of one stream. Its address
// doubles as the stream's identity when validating checkpoint ownership.
type markStack struct {
	nextID uint64
	stack  []mark
}

func (ms *markStack) push(pos, line, col int) uint64 {
	ms.nextID++
	ms.stack = append(ms.stack, mark{id: ms.nextID, pos: pos, line: line, col: col})
	return ms.nextID
}

// take pops checkpoints down to and including id and returns its mark.
func (ms *markStack) take(id uint64) (mark, bool) {
	for i := len(ms.stack) - 1; i >= 0; i-- {
		if ms.stack[i].id == id {
			m := ms.stack[i]
			ms.stack = ms.stack[:i]
			return m, true
		}
	}
	return mark{}, false
}

func (ms *markStack) clear() { ms.stack = ms.stack[:0] }

// cursor carries the state shared by all stream kinds: position, line and
// column bookkeeping, checkpoints and the closed flag. The concrete streams
// embed it and add their unit storage plus LA and Consume.
type cursor struct {
	name   string
	size   int
	pos    int
	line   int
	col    int
	closed bool
	marks  markStack
}

func (c *cursor) Name() string { return c.name }

func (c *cursor) Index() int { return c.pos }

func (c *cursor) Size() int { return c.size }

func (c *cursor) Exhausted() bool { return c.pos >= c.size }

func (c *cursor) Closed() bool { return c.closed }

// Close shuts the stream down and wipes its checkpoints. Closing twice is
// harmless.
func (c *cursor) Close() error {
	c.closed = true
	c.marks.clear()
	return nil
}

// Mark records the cursor state. On a closed stream it returns an invalid
// checkpoint, which any Rewind rejects.
func (c *cursor) Mark() Checkpoint {
	if c.closed {
		return Checkpoint{}
	}
	id := c.marks.push(c.pos, c.line, c.col)
	return Checkpoint{owner: &c.marks, id: id}
}

func (c *cursor) Rewind(cp Checkpoint) error {
	if c.closed {
		return ErrClosed
	}
	if cp.owner != &c.marks {
		return ErrForeignCheckpoint
	}
	m, ok := c.marks.take(cp.id)
	if !ok {
		return ErrStaleCheckpoint
	}
	c.pos, c.line, c.col = m.pos, m.line, m.col
	return nil
}

func (c *cursor) Release(cp Checkpoint) error {
	if c.closed {
		return ErrClosed
	}
	if cp.owner != &c.marks {
		return ErrForeignCheckpoint
	}
	if _, ok := c.marks.take(cp.id); !ok {
		return ErrStaleCheckpoint
	}
	return nil
}

func (c *cursor) RewindLast() {
	if c.closed {
		return
	}
	n := len(c.marks.stack)
	if n == 0 {
		return
	}
	m := c.marks.stack[n-1]
	c.marks.stack = c.marks.stack[:n-1]
	c.pos, c.line, c.col = m.pos, m.line, m.col
}

// Seek moves the cursor to unit index n, 0 through Size inclusive. Line and
// column are not recomputed; they stay meaningful only for positions reached
// by Consume or Rewind.
func (c *cursor) Seek(n int) error {
	if c.closed {
		return ErrClosed
	}
	if n < 0 || n > c.size {
		return ErrSeekRange
	}
	c.pos = n
	return nil
}

// Reset moves the cursor back to the start and releases every outstanding
// checkpoint. A closed stream stays closed.
func (c *cursor) Reset() {
	c.pos = 0
	c.line, c.col = 1, 1
	c.marks.clear()
}

// Marks reports the number of outstanding checkpoints.
func (c *cursor) Marks() int { return len(c.marks.stack) }
