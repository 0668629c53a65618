package shm

import "errors"

var (
	// ErrShortSegment is returned when an existing segment file is smaller
	// than the transport header, indicating a truncated or foreign file.
	ErrShortSegment = errors.New("shm: segment file shorter than transport header")

	// ErrWriterAlive is returned by CreateWriter when the segment's lock file is
	// already held by a live writer process (§4.1 discover/create conflict).
	ErrWriterAlive = errors.New("shm: segment already has a live writer")

	// ErrClosed is returned by operations attempted after Close.
	ErrClosed = errors.New("shm: segment handle closed")
)
