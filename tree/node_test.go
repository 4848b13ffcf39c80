package tree

import (
	"testing"

	"github.com/dhamidi/toki/text"
	"github.com/dhamidi/toki/token"
)

func TestFactoryNew(t *testing.T) {
	f := NewFactory(0)

	n := f.New(42)
	if n.Type != 42 {
		t.Errorf("Type = %d, want 42", n.Type)
	}
	if n.Tok != nil {
		t.Errorf("Tok = %v, want nil", n.Tok)
	}
	if !n.Leaf() {
		t.Error("new node is not a leaf")
	}
}

func TestFactoryFromToken(t *testing.T) {
	f := NewFactory(0)
	toks := token.NewFactory(nil, text.NewFactory(0), 0)

	tok := toks.Emit(token.Range{Start: 0, End: 2, Line: 1, Column: 1}, 7, token.DefaultChannel)
	n := f.FromToken(tok)
	if n.Type != 7 {
		t.Errorf("Type = %d, want 7", n.Type)
	}
	if n.Tok != tok {
		t.Error("Tok does not reference the emitted token")
	}
}

func TestNodeChildren(t *testing.T) {
	f := NewFactory(0)

	root := f.New(1)
	a := root.AddChild(f.New(2))
	b := root.AddChild(f.New(3))

	if got := root.Len(); got != 2 {
		t.Fatalf("Len = %d, want 2", got)
	}
	if root.Child(0) != a || root.Child(1) != b {
		t.Error("Child order does not match AddChild order")
	}
	if root.Child(2) != nil || root.Child(-1) != nil {
		t.Error("out-of-range Child is not nil")
	}
	if root.Leaf() {
		t.Error("node with children reports Leaf")
	}
}

func TestFactoryCountAndRelease(t *testing.T) {
	f := NewFactory(2)

	for i := 0; i < 5; i++ {
		f.New(int32(i))
	}
	if got := f.Count(); got != 5 {
		t.Errorf("Count = %d, want 5", got)
	}

	f.Release()
	if got := f.Count(); got != 0 {
		t.Errorf("Count after Release = %d, want 0", got)
	}
}

func TestFlattenPreorder(t *testing.T) {
	f := NewFactory(0)

	//      1
	//     / \
	//    2   4
	//    |
	//    3
	root := f.New(1)
	root.AddChild(f.New(2)).AddChild(f.New(3))
	root.AddChild(f.New(4))

	var got []int32
	for _, n := range Flatten(root) {
		got = append(got, n.Type)
	}
	want := []int32{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("Flatten() visited %d nodes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Flatten()[%d].Type = %d, want %d", i, got[i], want[i])
		}
	}

	if got := Flatten(nil); got != nil {
		t.Errorf("Flatten(nil) = %v, want nil", got)
	}
}
