package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/toki/token"
)

type LineEncoder struct {
	w     io.Writer
	names Namer
	toks  []*token.Token
}

func NewLineEncoder(w io.Writer, names Namer) *LineEncoder {
	return &LineEncoder{w: w, names: names}
}

func (e *LineEncoder) Encode(toks []*token.Token) error {
	e.toks = toks
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder

	for _, tok := range e.toks {
		fmt.Fprintf(&sb, "%d:%d\t%s\t%s\t%s\n",
			tok.Line,
			tok.Column,
			e.names.NameOf(tok.Type),
			channelName(tok.Channel),
			e.textStr(tok),
		)
	}

	return []byte(sb.String()), nil
}

func (e *LineEncoder) textStr(tok *token.Token) string {
	text, err := tok.Text()
	if err != nil {
		return "-"
	}
	return fmt.Sprintf("%q", text)
}
