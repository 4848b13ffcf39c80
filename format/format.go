// Package format renders token streams and syntax trees for output, as
// indented JSON, as tab-separated lines or as an indented outline.
package format

import (
	"encoding"
	"fmt"

	"github.com/dhamidi/toki/token"
)

// Encoder writes a token slice to its output.
type Encoder interface {
	encoding.TextMarshaler
	Encode(toks []*token.Token) error
}

// Namer maps token types to readable names. A lexer is one.
type Namer interface {
	NameOf(t token.Type) string
}

func channelName(ch token.Channel) string {
	switch ch {
	case token.DefaultChannel:
		return "default"
	case token.HiddenChannel:
		return "hidden"
	}
	return fmt.Sprintf("channel(%d)", int(ch))
}
