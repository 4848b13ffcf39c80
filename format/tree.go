package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/toki/token"
	"github.com/dhamidi/toki/tree"
)

// TreeJSONEncoder renders a syntax tree as indented JSON. Leaves carry
// their token's text and position; interior nodes carry their children.
type TreeJSONEncoder struct {
	w     io.Writer
	names Namer
}

func NewTreeJSONEncoder(w io.Writer, names Namer) *TreeJSONEncoder {
	return &TreeJSONEncoder{w: w, names: names}
}

func (e *TreeJSONEncoder) Encode(root *tree.Node) error {
	text, err := e.MarshalText(root)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeJSONEncoder) MarshalText(root *tree.Node) ([]byte, error) {
	return json.MarshalIndent(e.nodeToJSON(root), "", "  ")
}

type treeJSONNode struct {
	Kind     string          `json:"kind"`
	Text     string          `json:"text,omitempty"`
	Line     int             `json:"line,omitempty"`
	Column   int             `json:"column,omitempty"`
	Children []*treeJSONNode `json:"children,omitempty"`
}

func (e *TreeJSONEncoder) nodeToJSON(n *tree.Node) *treeJSONNode {
	jn := &treeJSONNode{
		Kind: e.names.NameOf(token.Type(n.Type)),
	}

	if n.Tok != nil {
		if text, err := n.Tok.Text(); err == nil {
			jn.Text = text
		}
		jn.Line = n.Tok.Line
		jn.Column = n.Tok.Column
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*treeJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = e.nodeToJSON(child)
		}
	}

	return jn
}

// TreeTextEncoder renders a syntax tree as an indented outline, one node
// per line, two spaces per depth.
type TreeTextEncoder struct {
	w     io.Writer
	names Namer
}

func NewTreeTextEncoder(w io.Writer, names Namer) *TreeTextEncoder {
	return &TreeTextEncoder{w: w, names: names}
}

func (e *TreeTextEncoder) Encode(root *tree.Node) error {
	text, err := e.MarshalText(root)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeTextEncoder) MarshalText(root *tree.Node) ([]byte, error) {
	var sb strings.Builder
	e.writeNode(&sb, root, 0)
	return []byte(sb.String()), nil
}

func (e *TreeTextEncoder) writeNode(sb *strings.Builder, n *tree.Node, indent int) {
	for i := 0; i < indent; i++ {
		sb.WriteString("  ")
	}

	sb.WriteString(e.names.NameOf(token.Type(n.Type)))
	if n.Tok != nil {
		if text, err := n.Tok.Text(); err == nil {
			fmt.Fprintf(sb, " %q", text)
		} else {
			sb.WriteString(" -")
		}
		fmt.Fprintf(sb, " (%d:%d)", n.Tok.Line, n.Tok.Column)
	}
	sb.WriteString("\n")

	for _, child := range n.Children {
		e.writeNode(sb, child, indent+1)
	}
}
