package segments

import (
	"github.com/evo-automation/evo/internal/typed"
	"github.com/evo-automation/evo/internal/wire"
)

// Each pair below binds one of the 15 stems in wire/constants.go to its
// payload type and module addressing (§6). Readers accept ReaderOption so
// callers can tighten/loosen the staleness threshold per §4.2's RT/non-RT
// distinction (e.g. hal_cu uses DefaultStaleThresholdRT, hal_mqt the more
// tolerant DefaultStaleThresholdNRT).

// NewHALToCUWriter/Reader: stem hal_cu, HAL's per-cycle feedback to the CU.
func NewHALToCUWriter(dir string) (*typed.Writer[HalFeedbackPayload], error) {
	return typed.NewWriter[HalFeedbackPayload](dir, wire.StemHALToCU, wire.ModuleHAL, wire.ModuleCU)
}
func NewHALToCUReader(dir string, opts ...typed.ReaderOption) (*typed.Reader[HalFeedbackPayload], error) {
	return typed.NewReader[HalFeedbackPayload](dir, wire.StemHALToCU, wire.ModuleCU, opts...)
}

// NewCUToHALWriter/Reader: stem cu_hal, CU's per-cycle drive command to HAL.
func NewCUToHALWriter(dir string) (*typed.Writer[HalCommandsPayload], error) {
	return typed.NewWriter[HalCommandsPayload](dir, wire.StemCUToHAL, wire.ModuleCU, wire.ModuleHAL)
}
func NewCUToHALReader(dir string, opts ...typed.ReaderOption) (*typed.Reader[HalCommandsPayload], error) {
	return typed.NewReader[HalCommandsPayload](dir, wire.StemCUToHAL, wire.ModuleHAL, opts...)
}

// NewCUToMQTWriter/Reader: stem cu_mqt, CU's machine-wide status snapshot.
func NewCUToMQTWriter(dir string) (*typed.Writer[SystemStatus], error) {
	return typed.NewWriter[SystemStatus](dir, wire.StemCUToMQT, wire.ModuleCU, wire.ModuleMQTT)
}
func NewCUToMQTReader(dir string, opts ...typed.ReaderOption) (*typed.Reader[SystemStatus], error) {
	return typed.NewReader[SystemStatus](dir, wire.StemCUToMQT, wire.ModuleMQTT, opts...)
}

// NewHALToMQTWriter/Reader: stem hal_mqt, HAL's raw I/O diagnostic snapshot.
func NewHALToMQTWriter(dir string) (*typed.Writer[IODiagnostic], error) {
	return typed.NewWriter[IODiagnostic](dir, wire.StemHALToMQT, wire.ModuleHAL, wire.ModuleMQTT)
}
func NewHALToMQTReader(dir string, opts ...typed.ReaderOption) (*typed.Reader[IODiagnostic], error) {
	return typed.NewReader[IODiagnostic](dir, wire.StemHALToMQT, wire.ModuleMQTT, opts...)
}

// NewCUToREWriter/Reader: stem cu_re, CU's status fed to the recipe
// executor for step sequencing decisions.
func NewCUToREWriter(dir string) (*typed.Writer[SystemStatus], error) {
	return typed.NewWriter[SystemStatus](dir, wire.StemCUToRE, wire.ModuleCU, wire.ModuleRecipeExecutor)
}
func NewCUToREReader(dir string, opts ...typed.ReaderOption) (*typed.Reader[SystemStatus], error) {
	return typed.NewReader[SystemStatus](dir, wire.StemCUToRE, wire.ModuleRecipeExecutor, opts...)
}

// NewREToCUWriter/Reader: stem re_cu, the recipe executor's per-axis motion
// requests and recipe control to the CU.
func NewREToCUWriter(dir string) (*typed.Writer[ExternalCommandPayload], error) {
	return typed.NewWriter[ExternalCommandPayload](dir, wire.StemREToCU, wire.ModuleRecipeExecutor, wire.ModuleCU)
}
func NewREToCUReader(dir string, opts ...typed.ReaderOption) (*typed.Reader[ExternalCommandPayload], error) {
	return typed.NewReader[ExternalCommandPayload](dir, wire.StemREToCU, wire.ModuleCU, opts...)
}

// NewREToHALWriter/Reader: stem re_hal, the recipe executor's Service-mode
// direct override of HAL.
func NewREToHALWriter(dir string) (*typed.Writer[DirectOverridePayload], error) {
	return typed.NewWriter[DirectOverridePayload](dir, wire.StemREToHAL, wire.ModuleRecipeExecutor, wire.ModuleHAL)
}
func NewREToHALReader(dir string, opts ...typed.ReaderOption) (*typed.Reader[DirectOverridePayload], error) {
	return typed.NewReader[DirectOverridePayload](dir, wire.StemREToHAL, wire.ModuleHAL, opts...)
}

// NewREToMQTWriter/Reader: stem re_mqt, the recipe executor's status report.
func NewREToMQTWriter(dir string) (*typed.Writer[RecipeStatus], error) {
	return typed.NewWriter[RecipeStatus](dir, wire.StemREToMQT, wire.ModuleRecipeExecutor, wire.ModuleMQTT)
}
func NewREToMQTReader(dir string, opts ...typed.ReaderOption) (*typed.Reader[RecipeStatus], error) {
	return typed.NewReader[RecipeStatus](dir, wire.StemREToMQT, wire.ModuleMQTT, opts...)
}

// NewREToRPCWriter/Reader: stem re_rpc, the recipe executor's status
// mirrored to the RPC gateway.
func NewREToRPCWriter(dir string) (*typed.Writer[RecipeStatus], error) {
	return typed.NewWriter[RecipeStatus](dir, wire.StemREToRPC, wire.ModuleRecipeExecutor, wire.ModuleRPC)
}
func NewREToRPCReader(dir string, opts ...typed.ReaderOption) (*typed.Reader[RecipeStatus], error) {
	return typed.NewReader[RecipeStatus](dir, wire.StemREToRPC, wire.ModuleRPC, opts...)
}

// NewRPCToCUWriter/Reader: stem rpc_cu, the RPC gateway's per-axis motion
// requests and recipe control to the CU (the second of the two command
// sources the CU's lock arbitration distinguishes).
func NewRPCToCUWriter(dir string) (*typed.Writer[ExternalCommandPayload], error) {
	return typed.NewWriter[ExternalCommandPayload](dir, wire.StemRPCToCU, wire.ModuleRPC, wire.ModuleCU)
}
func NewRPCToCUReader(dir string, opts ...typed.ReaderOption) (*typed.Reader[ExternalCommandPayload], error) {
	return typed.NewReader[ExternalCommandPayload](dir, wire.StemRPCToCU, wire.ModuleCU, opts...)
}

// NewRPCToHALWriter/Reader: stem rpc_hal, the RPC gateway's Service-mode
// direct override of HAL.
func NewRPCToHALWriter(dir string) (*typed.Writer[DirectOverridePayload], error) {
	return typed.NewWriter[DirectOverridePayload](dir, wire.StemRPCToHAL, wire.ModuleRPC, wire.ModuleHAL)
}
func NewRPCToHALReader(dir string, opts ...typed.ReaderOption) (*typed.Reader[DirectOverridePayload], error) {
	return typed.NewReader[DirectOverridePayload](dir, wire.StemRPCToHAL, wire.ModuleHAL, opts...)
}

// NewRPCToREWriter/Reader: stem rpc_re, the RPC gateway's recipe-control
// request (start/stop/pause/resume by ID) to the recipe executor.
func NewRPCToREWriter(dir string) (*typed.Writer[RecipeControlPayload], error) {
	return typed.NewWriter[RecipeControlPayload](dir, wire.StemRPCToRE, wire.ModuleRPC, wire.ModuleRecipeExecutor)
}
func NewRPCToREReader(dir string, opts ...typed.ReaderOption) (*typed.Reader[RecipeControlPayload], error) {
	return typed.NewReader[RecipeControlPayload](dir, wire.StemRPCToRE, wire.ModuleRecipeExecutor, opts...)
}

// NewCUToRPCWriter/Reader: stem cu_rpc, CU's status mirrored to the RPC
// gateway.
func NewCUToRPCWriter(dir string) (*typed.Writer[SystemStatus], error) {
	return typed.NewWriter[SystemStatus](dir, wire.StemCUToRPC, wire.ModuleCU, wire.ModuleRPC)
}
func NewCUToRPCReader(dir string, opts ...typed.ReaderOption) (*typed.Reader[SystemStatus], error) {
	return typed.NewReader[SystemStatus](dir, wire.StemCUToRPC, wire.ModuleRPC, opts...)
}

// NewHALToRPCWriter/Reader: stem hal_rpc, HAL's raw I/O diagnostic snapshot
// mirrored to the RPC gateway.
func NewHALToRPCWriter(dir string) (*typed.Writer[IODiagnostic], error) {
	return typed.NewWriter[IODiagnostic](dir, wire.StemHALToRPC, wire.ModuleHAL, wire.ModuleRPC)
}
func NewHALToRPCReader(dir string, opts ...typed.ReaderOption) (*typed.Reader[IODiagnostic], error) {
	return typed.NewReader[IODiagnostic](dir, wire.StemHALToRPC, wire.ModuleRPC, opts...)
}

// NewHALToREWriter/Reader: stem hal_re, HAL's per-cycle feedback read
// directly by the recipe executor (e.g. for motion-complete timing that
// cannot wait a full CU cycle behind cu_re).
func NewHALToREWriter(dir string) (*typed.Writer[HalFeedbackPayload], error) {
	return typed.NewWriter[HalFeedbackPayload](dir, wire.StemHALToRE, wire.ModuleHAL, wire.ModuleRecipeExecutor)
}
func NewHALToREReader(dir string, opts ...typed.ReaderOption) (*typed.Reader[HalFeedbackPayload], error) {
	return typed.NewReader[HalFeedbackPayload](dir, wire.StemHALToRE, wire.ModuleRecipeExecutor, opts...)
}
