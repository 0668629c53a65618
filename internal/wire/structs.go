package wire

import "unsafe"

// P2pHeader is the fixed 64-byte, cache-line-aligned header every typed
// segment payload carries at offset 0 (§3).
//
//	magic         8 bytes  constant protocol tag
//	version_hash  u32      compile-time fingerprint of the payload type
//	heartbeat     u64      monotonic commit counter
//	source_module u8       producer identity tag
//	dest_module   u8       intended consumer identity tag
//	payload_size  u32      bytes after the header
//	write_seq     u32      even = committed, odd = write in progress (debug only)
type P2pHeader struct {
	Magic        uint64
	VersionHash  uint32
	_            uint32 // pad to 8-byte align heartbeat
	Heartbeat    uint64
	SourceModule uint8
	DestModule   uint8
	_            [2]byte // pad
	PayloadSize  uint32
	WriteSeq     uint32
	_            [24]byte // pad to 64 bytes total
}

// Compile-time size check, in the teacher's idiom of asserting wire-struct
// sizes with a blank array conversion rather than a runtime test.
var _ [64]byte = [unsafe.Sizeof(P2pHeader{})]byte{}

// Reset reinstalls the header template fields a writer caches at segment
// creation and reapplies on every commit (§4.2) — magic/source/dest/version
// hash never change after creation; only heartbeat, payload_size and
// write_seq are live.
func (h *P2pHeader) Reset(versionHash uint32, source, dest uint8, payloadSize uint32) {
	h.Magic = Magic
	h.VersionHash = versionHash
	h.SourceModule = source
	h.DestModule = dest
	h.PayloadSize = payloadSize
	h.Heartbeat = 0
	h.WriteSeq = 0
}

// ValidateStatic checks the fields that never change after creation: magic,
// version hash, and addressing. It does not check heartbeat, which the
// typed-segment layer checks on every read (§4.2); write_seq is not checked
// by either.
func (h *P2pHeader) ValidateStatic(wantVersionHash uint32, wantDest uint8) error {
	if h.Magic != Magic {
		return ErrInvalidMagic
	}
	if h.VersionHash != wantVersionHash {
		return ErrVersionMismatch
	}
	if wantDest != ModuleNone && h.DestModule != ModuleNone && h.DestModule != wantDest {
		return ErrDestinationMismatch
	}
	return nil
}
