// Package shm implements the P2P SHM transport (§4.1): lock-free
// single-writer/multi-reader communication over named, mmap'd shared memory
// segments. It is the only IPC fabric between EVO processes.
//
// Layout of a segment's mapped region:
//
//	[TransportHeader (64B)] [opaque payload bytes...]
//
// The transport layer treats the payload as an opaque byte slice; the typed
// segment layer (internal/typed) interprets the first 64 bytes of the
// payload as a wire.P2pHeader.
package shm
