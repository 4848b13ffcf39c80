// Package stream provides seekable input streams with marked checkpoints,
// the backbone a generated recognizer reads from.
//
// # Overview
//
// Three stream kinds share one contract: Chars reads bytes, Tokens reads
// lexed tokens, Nodes reads flattened syntax trees. All of them code their
// units as ints so recognizer decision code can switch on lookahead without
// caring what it is looking at:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Chars     │────▶│   Tokens    │────▶│   Nodes     │
//	│ (byte vals) │     │(token types)│     │ (node types)│
//	└─────────────┘     └─────────────┘     └─────────────┘
//	       lexer reads         parser reads        walker reads
//
// EOF (-1) stands in for any position outside a stream, before the first
// unit as well as past the last.
//
// # Lookahead
//
// LA is 1-based in both directions and never moves the cursor:
//
//	in.LA(1)  // unit Consume would return next
//	in.LA(2)  // the one after that
//	in.LA(-1) // unit Consume returned last
//	in.LA(0)  // ErrZeroLookahead
//
// Consume returns the unit it advanced past; once the stream is exhausted
// it fails with ErrEndOfStream.
//
// # Checkpoints
//
// Mark records the full cursor state, line and column included, and returns
// a Checkpoint. Checkpoints stack: rewinding to one restores its state and
// releases it together with everything marked after it.
//
//	cp := in.Mark()
//	// ... speculative reads ...
//	if err := in.Rewind(cp); err != nil { ... }
//
// Rewinding the same checkpoint twice fails with ErrStaleCheckpoint, as
// does rewinding after Reset or Close wiped the stack. A checkpoint
// presented to a stream that did not issue it fails with
// ErrForeignCheckpoint. RewindLast restores the most recent checkpoint and
// is a no-op when none are outstanding.
//
// Release is Rewind's committing twin: it drops a checkpoint (and everything
// marked after it) while leaving the cursor where it is, for when a
// speculative read turns out to be the real one.
//
// # Include Stacking
//
// A Stack nests streams for include-style processing. Pushing a stream
// redirects reading to it; once it is fully exhausted, reading falls back
// to the stream below:
//
//	st := stream.NewStack(outer)
//	st.Push(included)        // reads now come from included
//	st.Consume()             // ... until it runs dry
//
// Lookahead never splices across the boundary: near the end of the pushed
// stream LA reports EOF rather than peeking into the outer one. The base
// stream is never popped, and popped streams stay open so tokens cut from
// them can still materialize their text.
//
// # Thread Safety
//
// Streams and stacks are not safe for concurrent use. Give each recognizer
// its own.
package stream
