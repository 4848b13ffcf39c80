package stream

import "errors"

var (
	// ErrZeroLookahead is returned by LA(0); the current unit has no
	// defined meaning as lookahead.
	ErrZeroLookahead = errors.New("stream: LA(0) is undefined")

	// ErrEndOfStream is returned by Consume once the stream is exhausted.
	ErrEndOfStream = errors.New("stream: end of stream")

	// ErrSeekRange is returned by Seek for targets outside [0, Size].
	ErrSeekRange = errors.New("stream: seek target out of range")

	// ErrClosed is returned by operations on a closed stream.
	ErrClosed = errors.New("stream: closed")

	// ErrStaleCheckpoint is returned by Rewind when the checkpoint was
	// already released, rewound past, or wiped by Reset or Close.
	ErrStaleCheckpoint = errors.New("stream: checkpoint already released")

	// ErrForeignCheckpoint is returned by Rewind when the checkpoint was
	// issued by a different stream.
	ErrForeignCheckpoint = errors.New("stream: checkpoint from different stream")
)
