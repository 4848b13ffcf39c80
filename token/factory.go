package token

import (
	"github.com/dhamidi/toki/arena"
	"github.com/dhamidi/toki/text"
)

// Factory manufactures tokens for one source. All tokens live in a slab
// arena owned by the factory; Release reclaims every token at once.
//
// A Factory is not safe for concurrent use.
type Factory struct {
	tokens  *arena.Pool[Token]
	strings *text.Factory
	src     Source
}

// NewFactory returns a token factory bound to src. Lazy token text is cached
// in strings, which the caller owns; slabCap sizes the token slabs
// (non-positive selects the default).
func NewFactory(src Source, strings *text.Factory, slabCap int) *Factory {
	return &Factory{
		tokens:  arena.NewPool[Token](slabCap),
		strings: strings,
		src:     src,
	}
}

// Emit allocates a token covering r with the given type and channel. The
// token's text stays unmaterialized until first asked for.
func (f *Factory) Emit(r Range, typ Type, ch Channel) *Token {
	_, t := f.tokens.Alloc()
	t.Type = typ
	t.Channel = ch
	t.Start = r.Start
	t.End = r.End
	t.Line = r.Line
	t.Column = r.Column
	t.src = f.src
	t.strings = f.strings
	return t
}

// EmitEOF allocates the synthetic end-of-stream token at offset at. Its
// text is fixed so it never needs the source.
func (f *Factory) EmitEOF(at, line, column int) *Token {
	t := f.Emit(Range{Start: at, End: at, Line: line, Column: column}, EOF, DefaultChannel)
	t.SetText("<EOF>")
	return t
}

// Source returns the input the factory cuts tokens from.
func (f *Factory) Source() Source { return f.src }

// SetSource re-points the factory at src, typically when an include stream
// becomes the current input. Tokens already emitted keep the source they
// were cut from.
func (f *Factory) SetSource(src Source) { f.src = src }

// Strings returns the string factory that caches token text.
func (f *Factory) Strings() *text.Factory { return f.strings }

// Count reports how many tokens the factory has emitted.
func (f *Factory) Count() int { return f.tokens.Len() }

// Release frees all tokens at once. The string factory is left alone; its
// owner releases it.
func (f *Factory) Release() { f.tokens.Release() }
