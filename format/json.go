package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/toki/token"
)

type JSONEncoder struct {
	w     io.Writer
	names Namer
	toks  []*token.Token
}

func NewJSONEncoder(w io.Writer, names Namer) *JSONEncoder {
	return &JSONEncoder{w: w, names: names}
}

func (e *JSONEncoder) Encode(toks []*token.Token) error {
	e.toks = toks
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := e.buildTokenData()
	return json.MarshalIndent(data, "", "  ")
}

type jsonToken struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	Channel string `json:"channel,omitempty"`
	Source  string `json:"source,omitempty"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

func (e *JSONEncoder) buildTokenData() []jsonToken {
	result := make([]jsonToken, len(e.toks))
	for i, tok := range e.toks {
		row := jsonToken{
			Type:   e.names.NameOf(tok.Type),
			Source: tok.SourceName(),
			Start:  tok.Start,
			End:    tok.End,
			Line:   tok.Line,
			Column: tok.Column,
		}
		if text, err := tok.Text(); err == nil {
			row.Text = text
		}
		if tok.Channel != token.DefaultChannel {
			row.Channel = channelName(tok.Channel)
		}
		result[i] = row
	}
	return result
}
