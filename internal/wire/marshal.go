package wire

import (
	"fmt"
	"hash/fnv"
)

// VersionHash computes the payload-type fingerprint used in the P2P
// header's version_hash field (§3): "size + alignment + name" mixed into a
// 32-bit value. Go has no const-eval over strings, so the nearest idiomatic
// equivalent to the original's compile-time fingerprint is computing it from
// a type descriptor string when each typed Writer/Reader is constructed —
// every process built from the same source computes the same hash, so a
// stale consumer binary still gets rejected at first read (§3 invariant).
func VersionHash(typeName string, size, align uintptr) uint32 {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s:%d:%d", typeName, size, align)
	return h.Sum32()
}
