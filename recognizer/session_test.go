package recognizer

import (
	"errors"
	"testing"

	"github.com/dhamidi/toki/stream"
	"github.com/dhamidi/toki/token"
)

func TestSessionWiring(t *testing.T) {
	base := stream.NewChars("base", []byte("abc"))
	sess := New(base)
	defer sess.Close()

	if sess.Input().Base() != base {
		t.Error("input stack is not seeded with the base stream")
	}
	if sess.Tokens().Source() != token.Source(base) {
		t.Error("token factory is not bound to the base stream")
	}
	if sess.Strings() == nil || sess.Nodes() == nil {
		t.Error("session factories not initialized")
	}
}

func TestSessionInclude(t *testing.T) {
	base := stream.NewChars("base", []byte("12"))
	sess := New(base)
	defer sess.Close()

	inc := sess.Include("inc", []byte("AB"))
	if got := sess.Input().Depth(); got != 2 {
		t.Fatalf("Depth = %d, want 2", got)
	}
	if sess.Tokens().Source() != token.Source(inc) {
		t.Error("token factory not re-pointed at the include stream")
	}

	// Reads come from the include first, then fall back to the base.
	var got []byte
	for {
		u, err := sess.Input().Consume()
		if err != nil {
			break
		}
		got = append(got, byte(u))
	}
	if string(got) != "AB12" {
		t.Errorf("consumed %q, want %q", got, "AB12")
	}
}

func TestSessionCloseOwnership(t *testing.T) {
	base := stream.NewChars("base", []byte("12"))
	sess := New(base)

	inc := sess.Include("inc", []byte("AB"))
	if err := sess.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if !inc.Closed() {
		t.Error("include stream not closed with the session")
	}
	if base.Closed() {
		t.Error("base stream closed by the session; it belongs to the caller")
	}

	// Closing again is harmless.
	if err := sess.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestSessionBacktracking(t *testing.T) {
	sess := New(stream.NewChars("base", []byte("x")))
	defer sess.Close()

	if sess.Speculating() {
		t.Fatal("fresh session is speculating")
	}

	sess.BeginBacktrack()
	sess.BeginBacktrack()
	if got := sess.Backtracking(); got != 2 {
		t.Errorf("Backtracking = %d, want 2", got)
	}

	sess.EndBacktrack(false)
	if !sess.Speculating() {
		t.Error("Speculating = false with one region still open")
	}
	sess.EndBacktrack(true)
	if sess.Speculating() {
		t.Error("Speculating = true after all regions closed")
	}

	// Unbalanced EndBacktrack does not underflow.
	sess.EndBacktrack(true)
	if got := sess.Backtracking(); got != 0 {
		t.Errorf("Backtracking = %d, want 0", got)
	}
}

func TestSessionReportError(t *testing.T) {
	sess := New(stream.NewChars("base", []byte("x")))
	defer sess.Close()

	boom := errors.New("no viable alternative")

	sess.BeginBacktrack()
	sess.ReportError(boom)
	sess.EndBacktrack(false)
	if got := sess.ErrorCount(); got != 0 {
		t.Fatalf("ErrorCount after suppressed report = %d, want 0", got)
	}
	if sess.LastError() != nil {
		t.Fatal("LastError set by a suppressed report")
	}

	sess.ReportError(boom)
	sess.ReportError(nil) // ignored
	if got := sess.ErrorCount(); got != 1 {
		t.Errorf("ErrorCount = %d, want 1", got)
	}
	if got := sess.LastError(); got != boom {
		t.Errorf("LastError = %v, want %v", got, boom)
	}
}

func TestSessionTokenStaleAfterBaseClosed(t *testing.T) {
	base := stream.NewChars("base", []byte("hello"))
	sess := New(base)
	defer sess.Close()

	tok := sess.Tokens().Emit(token.Range{Start: 0, End: 5, Line: 1, Column: 1},
		1, token.DefaultChannel)

	base.Close() // the caller may close its stream early

	if _, err := tok.Text(); !errors.Is(err, token.ErrStaleToken) {
		t.Errorf("Text() error = %v, want ErrStaleToken", err)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	a := New(stream.NewChars("a", []byte("aa")))
	b := New(stream.NewChars("b", []byte("bb")))
	defer a.Close()
	defer b.Close()

	a.ReportError(errors.New("a only"))
	a.BeginBacktrack()

	if got := b.ErrorCount(); got != 0 {
		t.Errorf("b.ErrorCount = %d, want 0", got)
	}
	if b.Speculating() {
		t.Error("b speculating after a.BeginBacktrack")
	}
	if a.Strings() == b.Strings() {
		t.Error("sessions share a string factory")
	}

	ta := a.Tokens().Emit(token.Range{Start: 0, End: 2, Line: 1, Column: 1}, 1, token.DefaultChannel)
	tb := b.Tokens().Emit(token.Range{Start: 0, End: 2, Line: 1, Column: 1}, 1, token.DefaultChannel)
	if ga, _ := ta.Text(); ga != "aa" {
		t.Errorf("a token text = %q, want %q", ga, "aa")
	}
	if gb, _ := tb.Text(); gb != "bb" {
		t.Errorf("b token text = %q, want %q", gb, "bb")
	}
}

func TestSessionIncludeNewlineOption(t *testing.T) {
	sess := New(stream.NewChars("base", nil), WithNewline(';'))
	defer sess.Close()

	inc := sess.Include("inc", []byte("a;b"))
	consume := func() {
		if _, err := inc.Consume(); err != nil {
			t.Fatalf("Consume() error = %v", err)
		}
	}
	consume()
	consume()
	if inc.Line() != 2 || inc.Column() != 1 {
		t.Errorf("position = %d:%d, want 2:1", inc.Line(), inc.Column())
	}
}

// TestSessionEndToEnd walks one recognition step by hand: lex a word, mark,
// read ahead, rewind and pick up where the word ended.
func TestSessionEndToEnd(t *testing.T) {
	base := stream.NewChars("input", []byte("AB12"))
	sess := New(base)
	defer sess.Close()

	consume := func() int {
		u, err := base.Consume()
		if err != nil {
			t.Fatalf("Consume() error = %v", err)
		}
		return u
	}

	if got := []byte{byte(consume()), byte(consume())}; string(got) != "AB" {
		t.Fatalf("consumed %q, want %q", got, "AB")
	}

	word := sess.Tokens().Emit(token.Range{Start: 0, End: 2, Line: 1, Column: 1},
		1, token.DefaultChannel)
	if got, err := word.Text(); err != nil || got != "AB" {
		t.Fatalf("Text() = %q, %v, want %q", got, err, "AB")
	}

	cp := base.Mark()
	consume()
	consume()
	if !base.Exhausted() {
		t.Error("stream not exhausted after consuming everything")
	}

	if err := base.Rewind(cp); err != nil {
		t.Fatalf("Rewind() error = %v", err)
	}
	if got := base.Index(); got != 2 {
		t.Errorf("Index after rewind = %d, want 2", got)
	}
	if u, err := base.LA(1); err != nil || u != '1' {
		t.Errorf("LA(1) = %v, %v, want '1'", u, err)
	}

	// The materialized text is cached and survives the rewind untouched.
	if got, _ := word.Text(); got != "AB" {
		t.Errorf("Text() after rewind = %q, want %q", got, "AB")
	}
}
