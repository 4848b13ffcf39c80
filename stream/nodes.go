package stream

import "github.com/dhamidi/toki/tree"

// Nodes is a stream over a flattened sequence of tree nodes, as produced by
// a tree walk. Units are node types. A Nodes is not safe for concurrent
// use.
type Nodes struct {
	cursor
	nodes []*tree.Node
}

// NewNodes returns a node stream named name over nodes. The stream takes
// ownership of the slice.
func NewNodes(name string, nodes []*tree.Node) *Nodes {
	return &Nodes{
		cursor: cursor{name: name, size: len(nodes), line: 1, col: 1},
		nodes:  nodes,
	}
}

// LA returns the type of the node n positions away, or EOF for positions
// outside the stream.
func (s *Nodes) LA(n int) (int, error) {
	nd, err := s.at(n)
	if err != nil {
		return 0, err
	}
	if nd == nil {
		return EOF, nil
	}
	return int(nd.Type), nil
}

// LN returns the node n positions away, or nil for positions outside the
// stream. LN(0) returns nil.
func (s *Nodes) LN(n int) *tree.Node {
	nd, err := s.at(n)
	if err != nil {
		return nil
	}
	return nd
}

// Consume returns the type of the node under the cursor and advances past
// it.
func (s *Nodes) Consume() (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.pos >= s.size {
		return EOF, ErrEndOfStream
	}
	nd := s.nodes[s.pos]
	s.pos++
	return int(nd.Type), nil
}

// Get returns the node at index i, or nil when i is out of range.
func (s *Nodes) Get(i int) *tree.Node {
	if i < 0 || i >= s.size {
		return nil
	}
	return s.nodes[i]
}

func (s *Nodes) at(n int) (*tree.Node, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if n == 0 {
		return nil, ErrZeroLookahead
	}
	i := s.pos + n
	if n > 0 {
		i--
	}
	if i < 0 || i >= s.size {
		return nil, nil
	}
	return s.nodes[i], nil
}
