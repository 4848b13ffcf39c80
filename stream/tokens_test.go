package stream

import (
	"errors"
	"testing"

	"github.com/dhamidi/toki/text"
	"github.com/dhamidi/toki/token"
)

// lexFixture cuts one token per byte of data, then an EOF token.
func lexFixture(t *testing.T, data string, types ...token.Type) (*Chars, []*token.Token) {
	t.Helper()
	if len(types) != len(data) {
		t.Fatalf("fixture: %d types for %d bytes", len(types), len(data))
	}
	src := NewChars("fixture", []byte(data))
	f := token.NewFactory(src, text.NewFactory(0), 0)
	toks := make([]*token.Token, 0, len(data)+1)
	for i := range data {
		toks = append(toks, f.Emit(token.Range{Start: i, End: i + 1, Line: 1, Column: i + 1},
			types[i], token.DefaultChannel))
	}
	toks = append(toks, f.EmitEOF(len(data), 1, len(data)+1))
	return src, toks
}

func TestTokensLookahead(t *testing.T) {
	_, toks := lexFixture(t, "abc", 10, 20, 30)
	s := NewTokens("fixture", toks)

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"LA(1) is first type", 1, 10},
		{"LA(2)", 2, 20},
		{"LA(3)", 3, 30},
		{"LA(4) is the EOF token", 4, EOF},
		{"LA past end", 5, EOF},
		{"LA before start", -1, EOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.LA(tt.n)
			if err != nil {
				t.Fatalf("LA(%d) error = %v", tt.n, err)
			}
			if got != tt.want {
				t.Errorf("LA(%d) = %d, want %d", tt.n, got, tt.want)
			}
		})
	}

	if _, err := s.LA(0); !errors.Is(err, ErrZeroLookahead) {
		t.Errorf("LA(0) error = %v, want ErrZeroLookahead", err)
	}
}

func TestTokensLT(t *testing.T) {
	_, toks := lexFixture(t, "ab", 10, 20)
	s := NewTokens("fixture", toks)

	if got := s.LT(1); got != toks[0] {
		t.Errorf("LT(1) = %v, want first token", got)
	}
	if got := s.LT(3); got == nil || got.Type != token.EOF {
		t.Errorf("LT(3) = %v, want EOF token", got)
	}
	if got := s.LT(4); got != nil {
		t.Errorf("LT(4) = %v, want nil", got)
	}
	if got := s.LT(0); got != nil {
		t.Errorf("LT(0) = %v, want nil", got)
	}

	s.Consume()
	if got := s.LT(-1); got != toks[0] {
		t.Errorf("LT(-1) = %v, want first token", got)
	}
}

func TestTokensConsumeAndMarks(t *testing.T) {
	_, toks := lexFixture(t, "ab", 10, 20)
	s := NewTokens("fixture", toks)

	got, err := s.Consume()
	if err != nil || got != 10 {
		t.Fatalf("Consume() = %d, %v, want 10, nil", got, err)
	}

	cp := s.Mark()
	s.Consume()
	s.Consume()
	if !s.Exhausted() {
		t.Error("stream not exhausted")
	}

	if err := s.Rewind(cp); err != nil {
		t.Fatalf("Rewind() error = %v", err)
	}
	if got, _ := s.LA(1); got != 20 {
		t.Errorf("LA(1) after rewind = %d, want 20", got)
	}

	if _, err := s.Consume(); err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	s.Consume() // EOF token
	if _, err := s.Consume(); !errors.Is(err, ErrEndOfStream) {
		t.Errorf("Consume past end error = %v, want ErrEndOfStream", err)
	}
}

func TestTokensGet(t *testing.T) {
	_, toks := lexFixture(t, "ab", 10, 20)
	s := NewTokens("fixture", toks)

	if got := s.Get(1); got != toks[1] {
		t.Errorf("Get(1) = %v, want second token", got)
	}
	if got := s.Get(-1); got != nil {
		t.Errorf("Get(-1) = %v, want nil", got)
	}
	if got := s.Get(3); got != nil {
		t.Errorf("Get(3) = %v, want nil", got)
	}
}

func TestTokensClose(t *testing.T) {
	_, toks := lexFixture(t, "a", 10)
	s := NewTokens("fixture", toks)
	s.Close()

	if _, err := s.LA(1); !errors.Is(err, ErrClosed) {
		t.Errorf("LA after close error = %v, want ErrClosed", err)
	}
	if got := s.LT(1); got != nil {
		t.Errorf("LT after close = %v, want nil", got)
	}
}
