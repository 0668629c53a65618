// Package typed implements the typed segment layer (§4.2): a generic
// wrapper over internal/shm that stamps every write with a wire.P2pHeader
// and validates it — magic, version hash, destination, and heartbeat
// staleness — on every read.
//
// Layout of a typed segment's transport payload:
//
//	[wire.P2pHeader (64B)] [T]
//
// Each Writer[T]/Reader[T] pair owns a fixed scratch buffer sized once at
// construction, so steady-state Read/Write never allocates.
package typed
