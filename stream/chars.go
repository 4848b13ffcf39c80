package stream

import "fmt"

// CharsOption configures a character stream.
type CharsOption func(*Chars)

// WithNewline sets the byte that ends a line for line and column counting.
// The default is '\n'.
func WithNewline(b byte) CharsOption {
	return func(s *Chars) { s.newline = b }
}

// Chars is a character stream over a byte buffer. Units are byte values;
// LA codes them as non-negative ints. The stream takes ownership of the
// buffer; callers must not modify it afterwards.
//
// Line and column are 1-based and track the cursor as it consumes, with the
// configured newline byte starting a new line. A Chars is not safe for
// concurrent use.
type Chars struct {
	cursor
	data    []byte
	newline byte
}

// NewChars returns a character stream named name over data.
func NewChars(name string, data []byte, opts ...CharsOption) *Chars {
	s := &Chars{
		cursor:  cursor{name: name, size: len(data), line: 1, col: 1},
		data:    data,
		newline: '\n',
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LA returns the byte value n positions away, or EOF for positions outside
// the stream.
func (s *Chars) LA(n int) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if n == 0 {
		return 0, ErrZeroLookahead
	}
	i := s.pos + n
	if n > 0 {
		i--
	}
	if i < 0 || i >= s.size {
		return EOF, nil
	}
	return int(s.data[i]), nil
}

// Consume returns the byte under the cursor and advances past it, updating
// line and column.
func (s *Chars) Consume() (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.pos >= s.size {
		return EOF, ErrEndOfStream
	}
	b := s.data[s.pos]
	s.pos++
	if b == s.newline {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return int(b), nil
}

// Line reports the 1-based line of the cursor.
func (s *Chars) Line() int { return s.line }

// Column reports the 1-based column of the cursor within its line.
func (s *Chars) Column() int { return s.col }

// CharIndex reports the byte offset of the cursor. For a byte-backed stream
// it equals Index.
func (s *Chars) CharIndex() int { return s.pos }

// TextRange returns the bytes in [start, end) without moving the cursor.
// The slice is a view into the stream's buffer and stays valid until Close.
// Tokens use this to materialize their text lazily.
func (s *Chars) TextRange(start, end int) ([]byte, error) {
	if s.closed {
		return nil, fmt.Errorf("%s: %w", s.name, ErrClosed)
	}
	if start < 0 || end > s.size || start > end {
		return nil, fmt.Errorf("%s: text range [%d:%d) out of bounds", s.name, start, end)
	}
	return s.data[start:end:end], nil
}
