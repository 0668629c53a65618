package shm

import (
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/evo-automation/evo/internal/wire"
)

// Writer is the single allowed writer handle for a segment (§4.1). Only one
// process may hold a live Writer for a given stem at a time; this is
// enforced by an advisory exclusive lock on the sibling .lock file, not by
// the data file itself, so a crashed writer's segment can still be attached
// read-only for inspection.
type Writer struct {
	stem   string
	dataF  *os.File
	lockF  *os.File
	region []byte
	closed atomic.Bool
}

// CreateWriter creates (or truncates and re-creates) the named segment under
// dir, sized to hold dataSize bytes of payload plus the transport header,
// and acquires the writer lock. It fails with ErrWriterAlive if another
// process already holds a live writer lock on this stem.
func CreateWriter(dir, stem string, dataSize uint64) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	lockPath := filepath.Join(dir, wire.LockName(stem))
	lockF, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	ok, err := flockExclusive(lockF)
	if err != nil {
		lockF.Close()
		return nil, err
	}
	if !ok {
		lockF.Close()
		return nil, ErrWriterAlive
	}

	dataPath := filepath.Join(dir, wire.SegmentName(stem))
	dataF, err := os.OpenFile(dataPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		flockRelease(lockF)
		lockF.Close()
		return nil, err
	}

	total := pageRound(HeaderSize + int(dataSize))
	region, err := mapFile(dataF, total)
	if err != nil {
		dataF.Close()
		flockRelease(lockF)
		lockF.Close()
		return nil, err
	}

	h := headerPtr(region)
	h.init(dataSize, uint32(os.Getpid()))

	return &Writer{stem: stem, dataF: dataF, lockF: lockF, region: region}, nil
}

// Write copies payload into the segment's data region under the even/odd
// version protocol (§3, §4.1): bump Version to odd before the copy, write
// the bytes, stamp LastWriteNs, then bump Version to the next even value.
// A reader observing an odd version knows a write is in flight and retries.
//
// No memory fences are issued around the copy; Go's atomic package already
// establishes the necessary happens-before edges on the version variable,
// and ordinary loads/stores of the payload bytes are sequenced by program
// order on this single writer goroutine, which is the only goroutine ever
// permitted to call Write (§C.2).
func (w *Writer) Write(payload []byte) error {
	if w.closed.Load() {
		return ErrClosed
	}
	h := headerPtr(w.region)
	dst := payloadSlice(w.region)
	if len(payload) > len(dst) {
		return wire.ErrPayloadTooSmall
	}

	v := h.Version.Load()
	h.Version.Store(v + 1) // now odd: write in progress
	copy(dst, payload)
	h.LastWriteNs.Store(nowNs())
	h.Version.Store(v + 2) // back to even: committed
	return nil
}

// ReaderCount reports the number of attached readers as last observed by
// the transport header's shared counter.
func (w *Writer) ReaderCount() uint32 {
	return headerPtr(w.region).ReaderCount.Load()
}

// Close releases the writer lock and unmaps the segment. The on-disk data
// file is left in place so late readers can still discover it as orphaned.
func (w *Writer) Close() error {
	if !w.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := unmapFile(w.region)
	flockRelease(w.lockF)
	w.lockF.Close()
	w.dataF.Close()
	return err
}
