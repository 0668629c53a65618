package typed

import (
	"reflect"
	"unsafe"

	"github.com/evo-automation/evo/internal/shm"
	"github.com/evo-automation/evo/internal/wire"
)

// Writer is the single producer for a typed segment carrying payloads of
// type T (§4.2). It owns a reusable scratch buffer so Write never touches
// the heap in steady state.
type Writer[T any] struct {
	inner       *shm.Writer
	versionHash uint32
	heartbeat   uint64
	scratch     []byte
}

// NewWriter creates the backing segment (§4.1 create) and caches the
// header template — magic, version hash, source/dest — that every
// subsequent Write reapplies before stamping a fresh heartbeat.
func NewWriter[T any](dir, stem string, source, dest uint8) (*Writer[T], error) {
	var zero T
	size := unsafe.Sizeof(zero)
	vh := versionHashOf[T]()

	inner, err := shm.CreateWriter(dir, stem, uint64(wire.HeaderSize)+uint64(size))
	if err != nil {
		return nil, err
	}

	w := &Writer[T]{
		inner:       inner,
		versionHash: vh,
		scratch:     make([]byte, wire.HeaderSize+int(size)),
	}
	header(w.scratch).Reset(vh, source, dest, uint32(size))
	return w, nil
}

// Write stamps the next heartbeat and copies payload into the segment
// (§4.2). The P2pHeader's write_seq field is never advanced and stays 0;
// typed readers rely on the transport header's version, not write_seq, for
// tear detection.
func (w *Writer[T]) Write(payload *T) error {
	w.heartbeat++
	h := header(w.scratch)
	h.Heartbeat = w.heartbeat
	*payloadPtr[T](w.scratch) = *payload
	return w.inner.Write(w.scratch)
}

// Heartbeat returns the most recently stamped heartbeat value.
func (w *Writer[T]) Heartbeat() uint64 { return w.heartbeat }

func (w *Writer[T]) Close() error { return w.inner.Close() }

func header(scratch []byte) *wire.P2pHeader {
	return (*wire.P2pHeader)(unsafe.Pointer(&scratch[0]))
}

func payloadPtr[T any](scratch []byte) *T {
	return (*T)(unsafe.Pointer(&scratch[wire.HeaderSize]))
}

func versionHashOf[T any]() uint32 {
	var zero T
	t := reflect.TypeOf(zero)
	return wire.VersionHash(t.String(), t.Size(), uintptr(t.Align()))
}
