// Package ebnflex provides lexical scanning based on EBNF grammars. The
// lexer reads characters through a recognizer session, speculatively matches
// every token production against the input using stream checkpoints, and
// emits the longest match as an arena-allocated token.
package ebnflex

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/toki/recognizer"
	"github.com/dhamidi/toki/stream"
	"github.com/dhamidi/toki/token"
)

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

// Option configures a lexer.
type Option func(*Lexer)

// WithHidden routes tokens of the named productions to the hidden channel.
// Typical for whitespace and comment productions.
func WithHidden(names ...string) Option {
	return func(l *Lexer) {
		for _, name := range names {
			l.hidden[name] = true
		}
	}
}

// Lexer tokenizes the session's input based on an EBNF grammar.
//
// Productions whose names start with an uppercase letter are token
// productions; the rest are helpers only reachable through them. Token
// types are assigned from 1 upward in the sorted order of the production
// names, so the mapping is stable for a given grammar.
type Lexer struct {
	grammar ebnf.Grammar
	sess    *recognizer.Session
	types   map[string]token.Type
	names   []string // index type-1 -> production name
	hidden  map[string]bool

	cur      *stream.Chars
	memo     map[memoKey]int  // match length at offset, -1 = no match
	visiting map[memoKey]bool // cycle detection
	eof      *token.Token
}

// New creates a lexer for grammar reading from sess's input stack.
func New(grammar ebnf.Grammar, sess *recognizer.Session, opts ...Option) *Lexer {
	l := &Lexer{
		grammar: grammar,
		sess:    sess,
		types:   make(map[string]token.Type),
		hidden:  make(map[string]bool),
	}
	l.names = TokenProductions(grammar)
	for i, name := range l.names {
		l.types[name] = token.Type(i + 1)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// TokenProductions returns the token production names of grammar in type
// order: every production with an uppercase first letter and a defined
// expression, sorted by name.
func TokenProductions(grammar ebnf.Grammar) []string {
	var names []string
	for name, prod := range grammar {
		if prod.Expr == nil || !isTokenProduction(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadGrammar loads an EBNF grammar from a file.
func LoadGrammar(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	grammar, err := ebnf.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}

	return grammar, nil
}

// TypeOf returns the token type assigned to the named production, or
// token.Invalid when the grammar has no such token production.
func (l *Lexer) TypeOf(name string) token.Type { return l.types[name] }

// NameOf returns the production name behind a token type. EOF and error
// tokens get fixed names.
func (l *Lexer) NameOf(t token.Type) string {
	switch {
	case t == token.EOF:
		return "EOF"
	case t == token.Invalid:
		return "ERROR"
	case int(t) >= 1 && int(t) <= len(l.names):
		return l.names[t-1]
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// Names returns the token production names in type order.
func (l *Lexer) Names() []string {
	return append([]string(nil), l.names...)
}

// NextToken returns the next token from the input. Every token production
// is tried speculatively at the cursor and the longest match wins; ties go
// to the alphabetically first production. Input no production matches is
// consumed one byte at a time as ERROR tokens, reported to the session.
//
// Once the input stack is fully exhausted, NextToken returns the EOF token
// together with io.EOF.
func (l *Lexer) NextToken() (*token.Token, error) {
	in, err := l.current()
	if err != nil {
		return nil, err
	}
	if in.Exhausted() {
		if l.eof == nil {
			l.eof = l.sess.Tokens().EmitEOF(in.Index(), in.Line(), in.Column())
		}
		return l.eof, io.EOF
	}

	start := token.Range{Start: in.Index(), Line: in.Line(), Column: in.Column()}

	// Match results depend on the cursor, so the cache starts over for
	// each token.
	l.memo = make(map[memoKey]int)

	bestLen := 0
	bestName := ""
	for _, name := range l.names {
		l.visiting = make(map[memoKey]bool)
		l.sess.BeginBacktrack()
		cp := in.Mark()
		n := l.match(in, l.grammar[name].Expr)
		in.Rewind(cp)
		l.sess.EndBacktrack(n > 0)
		if n > bestLen {
			bestLen = n
			bestName = name
		}
	}

	if bestLen == 0 {
		// No match: emit the offending byte as an error token and move on.
		u, _ := in.Consume()
		start.End = in.Index()
		tok := l.sess.Tokens().Emit(start, token.Invalid, token.DefaultChannel)
		l.sess.ReportError(fmt.Errorf("%s:%d:%d: no token matches %q",
			in.Name(), start.Line, start.Column, byte(u)))
		return tok, nil
	}

	for i := 0; i < bestLen; i++ {
		in.Consume()
	}
	start.End = in.Index()

	ch := token.DefaultChannel
	if l.hidden[bestName] {
		ch = token.HiddenChannel
	}
	return l.sess.Tokens().Emit(start, l.types[bestName], ch), nil
}

// Tokenize reads all tokens from the input, the closing EOF token included.
func (l *Lexer) Tokenize() ([]*token.Token, error) {
	var tokens []*token.Token
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			tokens = append(tokens, tok)
			break
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// current returns the character stream reads come from, re-pointing the
// token factory when an include was pushed or popped since the last token.
func (l *Lexer) current() (*stream.Chars, error) {
	top := l.sess.Input().Top()
	cs, ok := top.(*stream.Chars)
	if !ok {
		return nil, fmt.Errorf("ebnflex: input %s is not a character stream", top.Name())
	}
	if cs != l.cur {
		l.cur = cs
		l.sess.Tokens().SetSource(cs)
	}
	return cs, nil
}

// match attempts expr at the cursor, consuming what it matches. It returns
// the matched length in bytes, or -1 when expr does not match; on failure
// the cursor is back where it started. Zero is a valid match length, so
// options and repetitions never fail.
func (l *Lexer) match(in *stream.Chars, expr ebnf.Expression) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		return l.matchLiteral(in, strings.Trim(e.String, "\""))

	case *ebnf.Range:
		return l.matchRange(in, strings.Trim(e.Begin.String, "\""), strings.Trim(e.End.String, "\""))

	case ebnf.Sequence:
		cp := in.Mark()
		total := 0
		for _, item := range e {
			n := l.match(in, item)
			if n < 0 {
				in.Rewind(cp)
				return -1
			}
			total += n
		}
		in.Release(cp)
		return total

	case ebnf.Alternative:
		best := -1
		var bestExpr ebnf.Expression
		for _, alt := range e {
			cp := in.Mark()
			n := l.match(in, alt)
			in.Rewind(cp)
			if n > best {
				best = n
				bestExpr = alt
			}
		}
		if best < 0 {
			return -1
		}
		return l.match(in, bestExpr)

	case *ebnf.Repetition:
		total := 0
		for {
			cp := in.Mark()
			n := l.match(in, e.Body)
			if n <= 0 {
				in.Rewind(cp)
				break
			}
			in.Release(cp)
			total += n
		}
		return total

	case *ebnf.Option:
		cp := in.Mark()
		n := l.match(in, e.Body)
		if n < 0 {
			in.Rewind(cp)
			return 0
		}
		in.Release(cp)
		return n

	case *ebnf.Group:
		return l.match(in, e.Body)

	case *ebnf.Name:
		return l.matchName(in, e.String)

	default:
		return -1
	}
}

// matchName matches a named production with memoization and cycle
// detection. Left-recursive references fail the inner attempt, which breaks
// the cycle.
func (l *Lexer) matchName(in *stream.Chars, name string) int {
	key := memoKey{name: name, offset: in.Index()}

	if n, ok := l.memo[key]; ok {
		if n > 0 {
			// Trials get rewound wholesale, so a plain seek is fine here.
			in.Seek(in.Index() + n)
		}
		return n
	}

	if l.visiting[key] {
		return -1
	}

	prod, ok := l.grammar[name]
	if !ok || prod.Expr == nil {
		l.memo[key] = -1
		return -1
	}

	l.visiting[key] = true
	n := l.match(in, prod.Expr)
	delete(l.visiting, key)

	l.memo[key] = n
	return n
}

// matchLiteral matches a literal string.
func (l *Lexer) matchLiteral(in *stream.Chars, s string) int {
	if s == "" {
		return 0
	}
	cp := in.Mark()
	for i := 0; i < len(s); i++ {
		u, err := in.LA(1)
		if err != nil || u != int(s[i]) {
			in.Rewind(cp)
			return -1
		}
		in.Consume()
	}
	in.Release(cp)
	return len(s)
}

// matchRange matches one byte inside a character range like "a" … "z".
func (l *Lexer) matchRange(in *stream.Chars, begin, end string) int {
	if len(begin) != 1 || len(end) != 1 {
		return -1
	}
	u, err := in.LA(1)
	if err != nil || u < int(begin[0]) || u > int(end[0]) {
		return -1
	}
	in.Consume()
	return 1
}

func isTokenProduction(name string) bool {
	return len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z'
}
