// Package wire defines the on-the-wire layout shared by every P2P SHM
// segment: header constants, module identity tags, and segment name stems.
package wire

// Magic is the constant tag identifying the P2P protocol (§3).
const Magic uint64 = 0x45564f5f50325000 // "EVO_P2P\x00" big-endian reading

// Module identity tags carried in the P2P header's source/dest fields.
const (
	ModuleNone uint8 = iota
	ModuleHAL
	ModuleCU
	ModuleRecipeExecutor
	ModuleRPC
	ModuleMQTT
	ModuleDiagnostic
)

// Segment name stems (§6): every on-disk segment name is "evo_<stem>".
const (
	StemHALToCU  = "hal_cu"
	StemCUToHAL  = "cu_hal"
	StemCUToMQT  = "cu_mqt"
	StemHALToMQT = "hal_mqt"
	StemCUToRE   = "cu_re"
	StemREToCU   = "re_cu"
	StemREToHAL  = "re_hal"
	StemREToMQT  = "re_mqt"
	StemREToRPC  = "re_rpc"
	StemRPCToCU  = "rpc_cu"
	StemRPCToHAL = "rpc_hal"
	StemRPCToRE  = "rpc_re"
	StemCUToRPC  = "cu_rpc"
	StemHALToRPC = "hal_rpc"
	StemHALToRE  = "hal_re"
)

// SegmentName builds the on-disk name for a stem, per §6: "evo_<stem>".
func SegmentName(stem string) string { return "evo_" + stem }

// LockName builds the sibling advisory-lock file name for a stem.
func LockName(stem string) string { return "evo_" + stem + ".lock" }

// HeaderSize is the fixed P2P header size (§3): 64 bytes, cache-line aligned.
const HeaderSize = 64

// Default tunables (§4.1, §4.2) — overridable per segment at construction.
const (
	DefaultReadRetries       = 10
	DefaultStaleThresholdRT  = 3
	DefaultStaleThresholdNRT = 1000
	DefaultOrphanGraceSecs   = 60
)
