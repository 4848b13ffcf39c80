package stream

// Stack nests input streams for include-style processing: pushing a stream
// redirects reading to it until it is exhausted, then reading falls back to
// the stream below. The base stream is never popped.
//
// Reads never splice across a boundary: lookahead past the end of the
// current stream reports EOF rather than peeking into the one below. A
// popped stream is only removed from the stack, not closed; tokens cut from
// it can still read their text back.
type Stack struct {
	inputs []Input
}

// NewStack returns a stack reading from base.
func NewStack(base Input) *Stack {
	return &Stack{inputs: []Input{base}}
}

// Push redirects reading to in until it is exhausted.
func (k *Stack) Push(in Input) {
	k.inputs = append(k.inputs, in)
}

// Pop removes the current stream and returns it. The base stream cannot be
// popped; at depth one Pop reports false.
func (k *Stack) Pop() (Input, bool) {
	if len(k.inputs) == 1 {
		return nil, false
	}
	in := k.inputs[len(k.inputs)-1]
	k.inputs = k.inputs[:len(k.inputs)-1]
	return in, true
}

// Top returns the stream reads currently come from, after discarding
// exhausted ones.
func (k *Stack) Top() Input { return k.drain() }

// Base returns the bottom stream.
func (k *Stack) Base() Input { return k.inputs[0] }

// Depth reports how many streams are stacked, counting the base.
func (k *Stack) Depth() int { return len(k.inputs) }

// LA looks ahead in the current stream. Exhausted streams above the base
// are popped first; past the end of the then-current stream LA reports EOF
// even when more streams wait below.
func (k *Stack) LA(n int) (int, error) {
	return k.drain().LA(n)
}

// Consume reads from the current stream, popping exhausted ones above the
// base first.
func (k *Stack) Consume() (int, error) {
	return k.drain().Consume()
}

// drain pops fully exhausted streams until a readable one or the base is on
// top.
func (k *Stack) drain() Input {
	top := k.inputs[len(k.inputs)-1]
	for len(k.inputs) > 1 && top.Exhausted() {
		k.inputs = k.inputs[:len(k.inputs)-1]
		top = k.inputs[len(k.inputs)-1]
	}
	return top
}
