package stream

import "github.com/dhamidi/toki/token"

// Tokens is a stream over a token slice, usually the output of a lexer.
// Units are token types; LA codes them as ints, so sentinel types below
// zero come through unchanged. A Tokens is not safe for concurrent use.
type Tokens struct {
	cursor
	toks []*token.Token
}

// NewTokens returns a token stream named name over toks. The stream takes
// ownership of the slice.
func NewTokens(name string, toks []*token.Token) *Tokens {
	return &Tokens{
		cursor: cursor{name: name, size: len(toks), line: 1, col: 1},
		toks:   toks,
	}
}

// LA returns the type of the token n positions away, or EOF for positions
// outside the stream.
func (s *Tokens) LA(n int) (int, error) {
	t, err := s.at(n)
	if err != nil {
		return 0, err
	}
	if t == nil {
		return EOF, nil
	}
	return int(t.Type), nil
}

// LT returns the token n positions away, or nil for positions outside the
// stream. LT(0) returns nil.
func (s *Tokens) LT(n int) *token.Token {
	t, err := s.at(n)
	if err != nil {
		return nil
	}
	return t
}

// Consume returns the type of the token under the cursor and advances past
// it.
func (s *Tokens) Consume() (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.pos >= s.size {
		return EOF, ErrEndOfStream
	}
	t := s.toks[s.pos]
	s.pos++
	return int(t.Type), nil
}

// Get returns the token at index i, or nil when i is out of range.
func (s *Tokens) Get(i int) *token.Token {
	if i < 0 || i >= s.size {
		return nil
	}
	return s.toks[i]
}

func (s *Tokens) at(n int) (*token.Token, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if n == 0 {
		return nil, ErrZeroLookahead
	}
	i := s.pos + n
	if n > 0 {
		i--
	}
	if i < 0 || i >= s.size {
		return nil, nil
	}
	return s.toks[i], nil
}
