package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dhamidi/toki/stream"
	"github.com/dhamidi/toki/text"
	"github.com/dhamidi/toki/token"
	"github.com/dhamidi/toki/tree"
)

var treeNames = nameMap{1: "WORD", 2: "WS", 10: "expr", 11: "list"}

func testTree(t *testing.T) (*stream.Chars, *tree.Node) {
	t.Helper()
	src := stream.NewChars("in.txt", []byte("ab "))
	toks := token.NewFactory(src, text.NewFactory(0), 0)
	nodes := tree.NewFactory(0)

	root := nodes.New(10)
	root.AddChild(nodes.FromToken(
		toks.Emit(token.Range{Start: 0, End: 2, Line: 1, Column: 1}, 1, token.DefaultChannel)))
	inner := root.AddChild(nodes.New(11))
	inner.AddChild(nodes.FromToken(
		toks.Emit(token.Range{Start: 2, End: 3, Line: 1, Column: 3}, 2, token.DefaultChannel)))
	return src, root
}

func TestTreeJSONEncoder(t *testing.T) {
	_, root := testTree(t)

	var buf bytes.Buffer
	if err := NewTreeJSONEncoder(&buf, treeNames).Encode(root); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var got treeJSONNode
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if got.Kind != "expr" || got.Text != "" {
		t.Errorf("root = %+v, want kind expr without text", got)
	}
	if len(got.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(got.Children))
	}
	leaf := got.Children[0]
	if leaf.Kind != "WORD" || leaf.Text != "ab" || leaf.Line != 1 || leaf.Column != 1 {
		t.Errorf("leaf = %+v, want WORD %q at 1:1", leaf, "ab")
	}
	inner := got.Children[1]
	if inner.Kind != "list" || len(inner.Children) != 1 {
		t.Fatalf("inner = %+v, want list with one child", inner)
	}
	if ws := inner.Children[0]; ws.Kind != "WS" || ws.Text != " " || ws.Column != 3 {
		t.Errorf("inner child = %+v, want WS %q at column 3", ws, " ")
	}
}

func TestTreeTextEncoder(t *testing.T) {
	_, root := testTree(t)

	var buf bytes.Buffer
	if err := NewTreeTextEncoder(&buf, treeNames).Encode(root); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := "expr\n" +
		"  WORD \"ab\" (1:1)\n" +
		"  list\n" +
		"    WS \" \" (1:3)\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestTreeTextEncoderStaleText(t *testing.T) {
	src, root := testTree(t)
	src.Close()

	var buf bytes.Buffer
	if err := NewTreeTextEncoder(&buf, treeNames).Encode(root); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := "expr\n" +
		"  WORD - (1:1)\n" +
		"  list\n" +
		"    WS - (1:3)\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
