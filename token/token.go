// Package token defines the lexical token type and the factory that
// manufactures tokens inside an arena. Token text is lazy: a token records
// only the byte range it covers and reads the characters back from its
// source the first time the text is asked for.
package token

import (
	"errors"
	"fmt"

	"github.com/dhamidi/toki/text"
)

// ErrStaleToken is returned by Text when the token's source has been closed
// (or was never attached) and no materialized text is available.
var ErrStaleToken = errors.New("token: source gone, text not materialized")

// Type identifies the kind of a token. Values above zero belong to the
// grammar that produced the token.
type Type int32

const (
	// EOF marks the synthetic end-of-stream token.
	EOF Type = -1
	// Invalid is the type of the zero token and of error tokens emitted
	// for unrecognizable input.
	Invalid Type = 0
)

// Channel routes tokens to consumers. Parsers read the default channel;
// whitespace and comments usually ride on the hidden one.
type Channel int32

const (
	DefaultChannel Channel = 0
	HiddenChannel  Channel = 99
)

// Source supplies the characters a token was cut from. Character streams
// implement it; the token only needs to read a byte range back and to name
// where it came from.
type Source interface {
	Name() string
	TextRange(start, end int) ([]byte, error)
}

// Range locates a token in its source: the half-open byte interval
// [Start, End) plus the line and column of the first byte.
type Range struct {
	Start  int
	End    int
	Line   int
	Column int
}

// Token is one lexical unit. Start and End are byte offsets into the source
// (half-open), Line and Column locate the first byte (both 1-based). The
// User fields are free for recognizer-specific bookkeeping and are never
// touched by this package.
//
// Tokens are manufactured by a Factory and live in its arena; they must not
// be retained past the factory's Release.
type Token struct {
	Type    Type
	Channel Channel
	Start   int
	End     int
	Line    int
	Column  int

	User1 int
	User2 int
	User3 int

	src     Source
	strings *text.Factory
	text    text.Handle
	hasText bool
}

// Text returns the characters the token covers. The first call reads them
// from the source and caches them in the string factory; later calls (and
// tokens whose text was overridden with SetText) never touch the source
// again. If the source is gone before the text was materialized, Text
// returns ErrStaleToken.
func (t *Token) Text() (string, error) {
	if t.hasText {
		return t.strings.String(t.text), nil
	}
	if t.src == nil || t.strings == nil {
		return "", ErrStaleToken
	}
	b, err := t.src.TextRange(t.Start, t.End)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStaleToken, err)
	}
	t.text = t.strings.New(b)
	t.hasText = true
	return t.strings.String(t.text), nil
}

// SetText overrides the token's text. The override is stored in the string
// factory and survives the source being closed.
func (t *Token) SetText(s string) {
	if t.strings == nil {
		return
	}
	t.text = t.strings.NewString(s)
	t.hasText = true
}

// Materialized reports whether the token's text is already cached and can
// be read without the source.
func (t *Token) Materialized() bool { return t.hasText }

// Len reports the byte length of the range the token covers.
func (t *Token) Len() int { return t.End - t.Start }

// SourceName names the input the token was cut from, or "" when the token
// has no source.
func (t *Token) SourceName() string {
	if t.src == nil {
		return ""
	}
	return t.src.Name()
}

// String renders the token for debugging. Unreadable text is shown as the
// byte range instead.
func (t *Token) String() string {
	txt, err := t.Text()
	if err != nil {
		txt = fmt.Sprintf("[%d:%d)", t.Start, t.End)
	}
	return fmt.Sprintf("%d:%d <%d> %q", t.Line, t.Column, t.Type, txt)
}
