package shm

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/evo-automation/evo/internal/wire"
)

// Reader is an attached read-only view of a segment, one of potentially
// many concurrent readers (§4.1). Readers never take the writer lock; they
// register themselves only in the shared ReaderCount.
type Reader struct {
	stem       string
	dataF      *os.File
	region     []byte
	retries    int
	lastVer    uint64
	registered bool
	closed     atomic.Bool
}

// ReaderOption customizes Attach.
type ReaderOption func(*Reader)

// WithReadRetries overrides the default bounded retry count used by Read
// when it keeps observing an in-flight (odd) version (§4.1).
func WithReadRetries(n int) ReaderOption {
	return func(r *Reader) { r.retries = n }
}

// Attach opens and maps an existing segment for reading. It fails with
// wire.ErrSegmentNotFound if the data file does not exist, and with
// wire.ErrInvalidMagic if the mapped header's magic tag doesn't match.
func Attach(dir, stem string, opts ...ReaderOption) (*Reader, error) {
	dataPath := filepath.Join(dir, wire.SegmentName(stem))
	dataF, err := os.OpenFile(dataPath, os.O_RDWR, 0)
	if os.IsNotExist(err) {
		return nil, wire.ErrSegmentNotFound
	}
	if err != nil {
		return nil, err
	}

	region, err := mapExisting(dataF)
	if err != nil {
		dataF.Close()
		return nil, err
	}

	h := headerPtr(region)
	if err := h.validateMagic(); err != nil {
		unmapFile(region)
		dataF.Close()
		return nil, err
	}

	r := &Reader{stem: stem, dataF: dataF, region: region, retries: wire.DefaultReadRetries}
	for _, opt := range opts {
		opt(r)
	}

	h.ReaderCount.Add(1)
	r.registered = true
	return r, nil
}

// Read copies the current payload into dst (which must be at least
// DataSize bytes) and returns the number of bytes copied. It retries up to
// the configured retry count while the observed version is odd (a write in
// progress) or changes mid-copy, returning wire.ErrVersionConflict if it
// never observes a stable read.
func (r *Reader) Read(dst []byte) (int, error) {
	if r.closed.Load() {
		return 0, ErrClosed
	}
	h := headerPtr(r.region)
	src := payloadSlice(r.region)
	n := len(dst)
	if n > len(src) {
		n = len(src)
	}

	for attempt := 0; attempt <= r.retries; attempt++ {
		v1 := h.Version.Load()
		if !isStable(v1) {
			continue
		}
		copy(dst[:n], src[:n])
		v2 := h.Version.Load()
		if v1 == v2 {
			r.lastVer = v2
			return n, nil
		}
	}
	return 0, wire.ErrVersionConflict
}

// HasChanged reports whether the segment's version has advanced since the
// last successful Read, without copying any payload bytes.
func (r *Reader) HasChanged() bool {
	return headerPtr(r.region).Version.Load() != r.lastVer
}

// Heartbeat age helpers used by the stale-detection logic in internal/typed.

// LastWriteAge returns how long ago the writer last committed a write.
func (r *Reader) LastWriteAge() time.Duration {
	ns := headerPtr(r.region).LastWriteNs.Load()
	return time.Duration(nowNs() - ns)
}

// WriterPID returns the PID recorded by the segment's creator, used for
// liveness probing alongside the sibling lock file (§4.1 discover).
func (r *Reader) WriterPID() uint32 {
	return headerPtr(r.region).WriterPID
}

// Close decrements the shared reader count and unmaps the segment.
func (r *Reader) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	if r.registered {
		headerPtr(r.region).ReaderCount.Add(^uint32(0)) // -1
	}
	return unmapFile(r.region)
}
