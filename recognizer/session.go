// Package recognizer ties the allocation and stream machinery together for
// one recognition run: a session owns the string, token and node factories,
// the include stack, and the error and backtracking state a lexer or parser
// needs. Everything a session allocates is reclaimed by a single Close.
package recognizer

import (
	"github.com/tliron/commonlog"

	"github.com/dhamidi/toki/stream"
	"github.com/dhamidi/toki/text"
	"github.com/dhamidi/toki/token"
	"github.com/dhamidi/toki/tree"
)

var log = commonlog.GetLogger("toki.recognizer")

// Option configures a session.
type Option func(*Session)

// WithSlabCapacity sizes the slabs of the session's factories, counted in
// records per slab.
func WithSlabCapacity(n int) Option {
	return func(s *Session) { s.slabCap = n }
}

// WithNewline sets the line-ending byte for include streams opened through
// the session.
func WithNewline(b byte) Option {
	return func(s *Session) { s.newline = b }
}

// WithLogger replaces the session's logger.
func WithLogger(logger commonlog.Logger) Option {
	return func(s *Session) { s.log = logger }
}

// Session is the shared state of one recognition run. It is handed to a
// lexer or parser and carries:
//
//   - the factories for strings, tokens and tree nodes
//   - the input stack, seeded with the base stream
//   - the backtracking depth and the error tally
//
// The base stream stays owned by the caller; streams opened with Include
// are owned by the session and closed with it. A Session is not safe for
// concurrent use, but independent sessions never share state.
type Session struct {
	strings *text.Factory
	tokens  *token.Factory
	nodes   *tree.Factory
	input   *stream.Stack
	owned   []*stream.Chars
	log     commonlog.Logger

	slabCap int
	newline byte

	depth    int
	errCount int
	lastErr  error
	closed   bool
}

// New returns a session reading from base. When base can serve token text
// (character streams can), the session's token factory is bound to it.
func New(base stream.Input, opts ...Option) *Session {
	s := &Session{
		input:   stream.NewStack(base),
		log:     log,
		newline: '\n',
	}
	for _, opt := range opts {
		opt(s)
	}
	s.strings = text.NewFactory(s.slabCap)
	s.nodes = tree.NewFactory(s.slabCap)

	src, _ := base.(token.Source)
	s.tokens = token.NewFactory(src, s.strings, s.slabCap)
	return s
}

// Input returns the session's stream stack.
func (s *Session) Input() *stream.Stack { return s.input }

// Strings returns the session's string factory.
func (s *Session) Strings() *text.Factory { return s.strings }

// Tokens returns the session's token factory.
func (s *Session) Tokens() *token.Factory { return s.tokens }

// Nodes returns the session's tree node factory.
func (s *Session) Nodes() *tree.Factory { return s.nodes }

// Include opens a character stream over data, pushes it onto the input
// stack and re-points the token factory at it. The stream is owned by the
// session and stays readable after it is popped, so tokens cut from it can
// materialize their text until the session closes.
func (s *Session) Include(name string, data []byte) *stream.Chars {
	cs := stream.NewChars(name, data, stream.WithNewline(s.newline))
	s.owned = append(s.owned, cs)
	s.input.Push(cs)
	s.tokens.SetSource(cs)
	s.log.Debugf("include %s (%d bytes), depth %d", name, len(data), s.input.Depth())
	return cs
}

// BeginBacktrack enters a speculative region. Regions nest; errors reported
// while any region is open are suppressed.
func (s *Session) BeginBacktrack() {
	s.depth++
	s.log.Debugf("backtrack begin, depth %d", s.depth)
}

// EndBacktrack leaves the innermost speculative region.
func (s *Session) EndBacktrack(success bool) {
	if s.depth > 0 {
		s.depth--
	}
	s.log.Debugf("backtrack end (success=%v), depth %d", success, s.depth)
}

// Backtracking reports the current speculation nesting depth.
func (s *Session) Backtracking() int { return s.depth }

// Speculating reports whether a speculative region is open.
func (s *Session) Speculating() bool { return s.depth > 0 }

// ReportError records err against the session. While speculating the error
// is suppressed: backtracking means trying alternatives whose failures are
// not the input's fault.
func (s *Session) ReportError(err error) {
	if err == nil {
		return
	}
	if s.depth > 0 {
		s.log.Debugf("suppressed while speculating: %v", err)
		return
	}
	s.errCount++
	s.lastErr = err
	s.log.Errorf("%v", err)
}

// ErrorCount reports how many errors were recorded, suppressed ones
// excluded.
func (s *Session) ErrorCount() int { return s.errCount }

// LastError returns the most recently recorded error, or nil.
func (s *Session) LastError() error { return s.lastErr }

// Close releases the session's factories and closes every stream opened
// with Include. The base stream is the caller's and stays open. Closing
// twice is harmless.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	for _, cs := range s.owned {
		cs.Close()
	}
	s.tokens.Release()
	s.nodes.Release()
	s.strings.Release()
	s.log.Debugf("session closed, %d errors", s.errCount)
	return nil
}
