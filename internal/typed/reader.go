package typed

import (
	"unsafe"

	"github.com/evo-automation/evo/internal/shm"
	"github.com/evo-automation/evo/internal/wire"
)

// Reader is a consumer of a typed segment (§4.2). It validates the header
// on every read and tracks heartbeat progress to detect a stalled writer.
type Reader[T any] struct {
	inner          *shm.Reader
	versionHash    uint32
	dest           uint8
	staleThreshold uint64
	lastHeartbeat  uint64
	staleStreak    uint64
	seenFirst      bool
	scratch        []byte
}

// ReaderOption customizes NewReader.
type ReaderOption func(*readerConfig)

type readerConfig struct {
	staleThreshold uint64
}

// WithStaleThreshold overrides the default stale-heartbeat streak before
// Read reports wire.ErrStale. Real-time consumers (§4.2) should use
// wire.DefaultStaleThresholdRT; non-real-time consumers (diagnostics, MQTT)
// should use the more tolerant wire.DefaultStaleThresholdNRT.
func WithStaleThreshold(n uint64) ReaderOption {
	return func(c *readerConfig) { c.staleThreshold = n }
}

// NewReader attaches to an existing typed segment. The mapped payload's
// version hash is checked against T on every Read, not here, so a stale
// consumer binary built against an old layout is rejected at its first
// Read, before any bytes are copied into the caller's value.
func NewReader[T any](dir, stem string, dest uint8, opts ...ReaderOption) (*Reader[T], error) {
	cfg := readerConfig{staleThreshold: wire.DefaultStaleThresholdRT}
	for _, opt := range opts {
		opt(&cfg)
	}

	var zero T
	size := unsafe.Sizeof(zero)
	inner, err := shm.Attach(dir, stem)
	if err != nil {
		return nil, err
	}

	r := &Reader[T]{
		inner:          inner,
		versionHash:    versionHashOf[T](),
		dest:           dest,
		staleThreshold: cfg.staleThreshold,
		scratch:        make([]byte, wire.HeaderSize+int(size)),
	}
	return r, nil
}

// Read validates the header and copies the current payload into out. It
// returns wire.ErrStale once the writer's heartbeat has failed to advance
// for staleThreshold consecutive reads (§4.2), and any error the underlying
// transport read produces (version conflict, torn read retries exhausted).
func (r *Reader[T]) Read(out *T) error {
	if _, err := r.inner.Read(r.scratch); err != nil {
		return err
	}
	h := header(r.scratch)
	if err := h.ValidateStatic(r.versionHash, r.dest); err != nil {
		return err
	}

	if r.seenFirst && h.Heartbeat == r.lastHeartbeat {
		r.staleStreak++
		if r.staleStreak >= r.staleThreshold {
			return wire.ErrStale
		}
	} else {
		r.staleStreak = 0
	}
	r.lastHeartbeat = h.Heartbeat
	r.seenFirst = true

	*out = *payloadPtr[T](r.scratch)
	return nil
}

// HasChanged reports whether the underlying transport segment's version has
// advanced since the last Read, without validating or copying the payload.
func (r *Reader[T]) HasChanged() bool { return r.inner.HasChanged() }

func (r *Reader[T]) Close() error { return r.inner.Close() }
