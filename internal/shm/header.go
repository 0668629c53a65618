package shm

import (
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/evo-automation/evo/internal/wire"
)

// TransportHeader sits at offset 0 of every mapped segment, distinct from
// the P2P payload header (§3). It is managed exclusively by this package;
// the typed layer and its consumers never touch it directly.
type TransportHeader struct {
	Magic       uint64
	WriterPID   uint32
	_           uint32 // pad
	ReaderCount atomic.Uint32
	_           [4]byte // pad
	DataSize    uint64
	CreatedAtNs int64
	LastWriteNs atomic.Int64
	// Version transitions even->odd->even on every commit (§3 invariant).
	// Even means committed/stable; odd means a write is in progress.
	Version atomic.Uint64
	_       [8]byte // reserved (checksum placeholder, §C.1), always zero
}

// HeaderSize is the fixed transport header footprint, cache-line aligned.
const HeaderSize = 64

func init() {
	if unsafe.Sizeof(TransportHeader{}) != HeaderSize {
		panic("shm: TransportHeader size drifted from 64 bytes")
	}
}

func (h *TransportHeader) init(dataSize uint64, writerPID uint32) {
	h.Magic = wire.Magic
	h.WriterPID = writerPID
	h.DataSize = dataSize
	now := nowNs()
	h.CreatedAtNs = now
	h.LastWriteNs.Store(now)
	h.ReaderCount.Store(0)
	h.Version.Store(0)
}

func nowNs() int64 { return time.Now().UnixNano() }

func (h *TransportHeader) validateMagic() error {
	if h.Magic != wire.Magic {
		return wire.ErrInvalidMagic
	}
	return nil
}

// isStable reports whether a version value represents a committed
// (even) state, as opposed to a write-in-progress (odd) state.
func isStable(version uint64) bool { return version%2 == 0 }

func headerPtr(region []byte) *TransportHeader {
	return (*TransportHeader)(unsafe.Pointer(&region[0]))
}

func payloadSlice(region []byte) []byte {
	return region[HeaderSize:]
}
