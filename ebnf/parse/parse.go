// Package parse provides syntactic analysis based on EBNF grammars. The
// parser reads the token stream produced by an ebnflex lexer, matches parse
// rules by speculative descent using stream checkpoints, and builds the
// resulting syntax tree in the session's node arena.
//
// Productions whose names start with an uppercase letter are token
// productions, matched as terminals by token type; all other productions
// are parse rules and become interior tree nodes. Literals inside parse
// rules match against token text. Alternatives are tried in order and the
// first match wins; options and repetitions are greedy. Tokens outside the
// default channel are invisible to the parser.
package parse

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/toki/recognizer"
	"github.com/dhamidi/toki/stream"
	"github.com/dhamidi/toki/token"
	"github.com/dhamidi/toki/tree"
)

// Vocabulary maps between token production names and token types. An
// ebnflex.Lexer is one.
type Vocabulary interface {
	TypeOf(name string) token.Type
	NameOf(t token.Type) string
	Names() []string
}

// Option configures a parser.
type Option func(*Parser)

// WithSkip makes the parser skip tokens of the given types between
// terminals, on top of everything outside the default channel.
func WithSkip(types ...token.Type) Option {
	return func(p *Parser) {
		for _, t := range types {
			p.skip[t] = true
		}
	}
}

// memoKey identifies one rule attempt for memoization.
type memoKey struct {
	name string
	at   int
}

type memoHit struct {
	node *tree.Node
	end  int
	ok   bool
}

type failure struct {
	at   int
	want []string
}

// Parser parses token streams according to an EBNF grammar.
//
// Parse rules get node types of their own, numbered after the vocabulary's
// token types in sorted name order, so leaves and interior nodes share one
// type space and a node stream over the tree can be walked by type. The
// Parser itself satisfies Vocabulary over that combined space.
type Parser struct {
	grammar ebnf.Grammar
	vocab   Vocabulary
	sess    *recognizer.Session
	skip    map[token.Type]bool

	base      int
	ruleTypes map[string]token.Type
	ruleNames []string // index type-base-1 -> rule name

	in       *stream.Tokens
	nodes    *tree.Factory
	memo     map[memoKey]memoHit
	visiting map[memoKey]bool
	far      failure
}

// New creates a parser for grammar whose terminals are resolved through
// vocab, usually the lexer that produced the tokens.
func New(grammar ebnf.Grammar, vocab Vocabulary, sess *recognizer.Session, opts ...Option) *Parser {
	p := &Parser{
		grammar: grammar,
		vocab:   vocab,
		sess:    sess,
		skip:    make(map[token.Type]bool),
		base:    len(vocab.Names()),
	}
	p.ruleNames = RuleProductions(grammar)
	p.ruleTypes = make(map[string]token.Type, len(p.ruleNames))
	for i, name := range p.ruleNames {
		p.ruleTypes[name] = token.Type(p.base + 1 + i)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RuleProductions returns the parse rule names of grammar in node type
// order: every production without an uppercase first letter and with a
// defined expression, sorted by name.
func RuleProductions(grammar ebnf.Grammar) []string {
	var names []string
	for name, prod := range grammar {
		if prod.Expr == nil || isTokenName(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TypeOf returns the node type of a parse rule, or the vocabulary's token
// type for everything else.
func (p *Parser) TypeOf(name string) token.Type {
	if t, ok := p.ruleTypes[name]; ok {
		return t
	}
	return p.vocab.TypeOf(name)
}

// NameOf returns the rule or token production name behind a node type.
func (p *Parser) NameOf(t token.Type) string {
	if i := int(t) - p.base - 1; i >= 0 && i < len(p.ruleNames) {
		return p.ruleNames[i]
	}
	return p.vocab.NameOf(t)
}

// Names returns the vocabulary's token production names followed by the
// parse rule names, in type order.
func (p *Parser) Names() []string {
	names := append([]string(nil), p.vocab.Names()...)
	return append(names, p.ruleNames...)
}

// Parse matches the start rule against in and returns the syntax tree.
// The whole stream must be consumed: anything left over besides the EOF
// token is an error. Nodes are allocated from the session's tree factory
// and live until the session closes.
//
// When no derivation covers the input, the error carries the expectations
// at the farthest point the parser reached, and is also reported to the
// session.
func (p *Parser) Parse(start string, in *stream.Tokens) (*tree.Node, error) {
	prod, ok := p.grammar[start]
	if !ok || prod.Expr == nil {
		return nil, fmt.Errorf("parse: production %q not found in grammar", start)
	}
	if isTokenName(start) {
		return nil, fmt.Errorf("parse: %q is a token production, not a parse rule", start)
	}

	p.in = in
	p.nodes = p.sess.Nodes()
	p.memo = make(map[memoKey]memoHit)
	p.visiting = make(map[memoKey]bool)
	p.far = failure{at: -1}

	root, ok := p.rule(start)
	if !ok {
		err := p.syntaxError(start)
		p.sess.ReportError(err)
		return nil, err
	}

	p.skipTrivia()
	if tok := p.in.LT(1); tok != nil && tok.Type != token.EOF {
		var err error
		if p.far.at > p.in.Index() {
			// A rule got farther than the final match before backing
			// off; its expectations make the better message.
			err = p.syntaxError(start)
		} else {
			err = fmt.Errorf("parse: %s: unexpected %s after %s",
				position(tok), p.describe(tok), start)
		}
		p.sess.ReportError(err)
		return nil, err
	}
	return root, nil
}

// rule matches the named production and wraps its children in an interior
// node. Results are memoized per position; a left-recursive reference fails
// the inner attempt, which breaks the cycle.
func (p *Parser) rule(name string) (*tree.Node, bool) {
	key := memoKey{name: name, at: p.in.Index()}
	if hit, ok := p.memo[key]; ok {
		if hit.ok {
			// Everything between at and end was verified before; skip it.
			p.in.Seek(hit.end)
		}
		return hit.node, hit.ok
	}
	if p.visiting[key] {
		p.fail(name)
		return nil, false
	}

	prod, ok := p.grammar[name]
	if !ok || prod.Expr == nil {
		p.fail(name)
		p.memo[key] = memoHit{}
		return nil, false
	}

	p.visiting[key] = true
	kids, ok := p.matchExpr(prod.Expr)
	delete(p.visiting, key)

	if !ok {
		p.memo[key] = memoHit{}
		return nil, false
	}
	node := p.nodes.New(int32(p.ruleTypes[name]))
	node.Children = kids
	p.memo[key] = memoHit{node: node, end: p.in.Index(), ok: true}
	return node, true
}

// matchExpr matches expr at the cursor and returns the nodes it produced:
// named rules become interior nodes, matched tokens become leaves, and
// groups, options and repetitions splice their children into the enclosing
// rule. On failure the cursor is back where it started.
func (p *Parser) matchExpr(expr ebnf.Expression) ([]*tree.Node, bool) {
	switch e := expr.(type) {
	case *ebnf.Name:
		if isTokenName(e.String) {
			n, ok := p.terminal(e.String)
			if !ok {
				return nil, false
			}
			return []*tree.Node{n}, true
		}
		n, ok := p.rule(e.String)
		if !ok {
			return nil, false
		}
		return []*tree.Node{n}, true

	case *ebnf.Token:
		n, ok := p.literal(strings.Trim(e.String, "\""))
		if !ok {
			return nil, false
		}
		return []*tree.Node{n}, true

	case ebnf.Sequence:
		cp := p.in.Mark()
		var kids []*tree.Node
		for _, item := range e {
			ns, ok := p.matchExpr(item)
			if !ok {
				p.in.Rewind(cp)
				return nil, false
			}
			kids = append(kids, ns...)
		}
		p.in.Release(cp)
		return kids, true

	case ebnf.Alternative:
		for _, alt := range e {
			p.sess.BeginBacktrack()
			cp := p.in.Mark()
			ns, ok := p.matchExpr(alt)
			if ok {
				p.in.Release(cp)
				p.sess.EndBacktrack(true)
				return ns, true
			}
			p.in.Rewind(cp)
			p.sess.EndBacktrack(false)
		}
		return nil, false

	case *ebnf.Repetition:
		var kids []*tree.Node
		for {
			at := p.in.Index()
			cp := p.in.Mark()
			ns, ok := p.matchExpr(e.Body)
			if !ok {
				p.in.Rewind(cp)
				break
			}
			p.in.Release(cp)
			if p.in.Index() == at {
				// The body matched nothing; repeating it would loop.
				break
			}
			kids = append(kids, ns...)
		}
		return kids, true

	case *ebnf.Option:
		cp := p.in.Mark()
		ns, ok := p.matchExpr(e.Body)
		if !ok {
			p.in.Rewind(cp)
			return nil, true
		}
		p.in.Release(cp)
		return ns, true

	case *ebnf.Group:
		return p.matchExpr(e.Body)

	case *ebnf.Range:
		// Ranges are lexical; a parse rule cannot match one.
		p.fail(strings.Trim(e.Begin.String, "\"") + " … " + strings.Trim(e.End.String, "\""))
		return nil, false

	default:
		return nil, false
	}
}

// terminal matches one token of the named token production by type.
func (p *Parser) terminal(name string) (*tree.Node, bool) {
	p.skipTrivia()
	typ := p.vocab.TypeOf(name)
	if typ == token.Invalid {
		p.fail(name)
		return nil, false
	}
	tok := p.in.LT(1)
	if tok == nil || tok.Type != typ {
		p.fail(name)
		return nil, false
	}
	p.in.Consume()
	return p.nodes.FromToken(tok), true
}

// literal matches one token whose text equals lit.
func (p *Parser) literal(lit string) (*tree.Node, bool) {
	p.skipTrivia()
	tok := p.in.LT(1)
	if tok == nil || tok.Type == token.EOF {
		p.fail(fmt.Sprintf("%q", lit))
		return nil, false
	}
	text, err := tok.Text()
	if err != nil || text != lit {
		p.fail(fmt.Sprintf("%q", lit))
		return nil, false
	}
	p.in.Consume()
	return p.nodes.FromToken(tok), true
}

// skipTrivia consumes tokens the parser does not see: everything outside
// the default channel plus the configured skip types.
func (p *Parser) skipTrivia() {
	for {
		tok := p.in.LT(1)
		if tok == nil || tok.Type == token.EOF {
			return
		}
		if tok.Channel == token.DefaultChannel && !p.skip[tok.Type] {
			return
		}
		p.in.Consume()
	}
}

// fail records an expectation at the cursor; the farthest failure wins and
// feeds the syntax error.
func (p *Parser) fail(want string) {
	at := p.in.Index()
	if at > p.far.at {
		p.far = failure{at: at, want: []string{want}}
		return
	}
	if at == p.far.at {
		for _, w := range p.far.want {
			if w == want {
				return
			}
		}
		p.far.want = append(p.far.want, want)
	}
}

func (p *Parser) syntaxError(start string) error {
	want := strings.Join(p.far.want, " or ")
	if want == "" {
		want = start
	}
	tok := p.in.Get(p.far.at)
	if tok == nil {
		return fmt.Errorf("parse: %s: unexpected end of input, want %s", p.in.Name(), want)
	}
	return fmt.Errorf("parse: %s: unexpected %s, want %s", position(tok), p.describe(tok), want)
}

// describe renders a token for error messages, preferring its text.
func (p *Parser) describe(tok *token.Token) string {
	if text, err := tok.Text(); err == nil {
		return fmt.Sprintf("%q", text)
	}
	return p.NameOf(tok.Type)
}

func position(tok *token.Token) string {
	if name := tok.SourceName(); name != "" {
		return fmt.Sprintf("%s:%d:%d", name, tok.Line, tok.Column)
	}
	return fmt.Sprintf("%d:%d", tok.Line, tok.Column)
}

func isTokenName(name string) bool {
	return len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z'
}
