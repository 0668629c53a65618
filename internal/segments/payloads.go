package segments

import "github.com/evo-automation/evo/internal/constants"

// AxisFeedback is one axis's measured state, as HAL reports it each cycle
// (§4.1 HAL<->CU, §3 data model).
type AxisFeedback struct {
	Position     float64
	Velocity     float64
	Acceleration float64
	Torque       float64
	Referenced   bool
	_            [7]byte // pad to 8-byte alignment
}

// AxisCommand is one axis's drive command, as CU issues it to HAL each
// cycle (§4.6 step 9).
type AxisCommand struct {
	TargetPosition float64
	TargetVelocity float64
	TargetTorque   float64
	Enable         bool
	BrakeRelease   bool
	_              [6]byte // pad
}

// IOInputs is the sensed digital/analog bus, full width per §3 ("Total DI
// and DO buses are 1024 bits each; AI/AO are 1024 double slots each").
type IOInputs struct {
	DI [constants.BankWords]uint64
	AI [constants.MaxAI]float64
}

// IOOutputs is the commanded digital/analog bus.
type IOOutputs struct {
	DO [constants.BankWords]uint64
	AO [constants.MaxAO]float64
}

// HalFeedbackPayload is the HAL->CU segment body: every axis's measured
// state plus the raw sensed I/O bus (stem hal_cu, and reused verbatim for
// hal_re so the recipe executor can read feedback directly).
type HalFeedbackPayload struct {
	CycleCount uint64
	Axes       [constants.MaxAxes]AxisFeedback
	Inputs     IOInputs
}

// HalCommandsPayload is the CU->HAL segment body: every axis's drive
// command plus the commanded I/O bus (stem cu_hal, and reused for the
// re_hal/rpc_hal direct-override segments used only in Service mode).
type HalCommandsPayload struct {
	CycleCount uint64
	Axes       [constants.MaxAxes]AxisCommand
	Outputs    IOOutputs
}

// DirectOverridePayload is the shape RE and RPC use to drive HAL directly
// in Service mode, bypassing the CU's normal command arbitration. It is
// identical in layout to HalCommandsPayload; kept as a distinct name so the
// two call sites read clearly even though the wire type is the same.
type DirectOverridePayload = HalCommandsPayload

// AxisSummary is one axis's compact status, for diagnostic/recipe
// consumers that need state but not full feedback precision (§7
// "user-visible behavior": compact state summary, per-axis error
// bitfields).
type AxisSummary struct {
	ID              uint8
	PowerState      uint8
	MotionState     uint8
	OperationalMode uint8
	CouplingState   uint8
	GearboxState    uint8
	SafetyFlags     uint8
	_               uint8 // pad
	ErrorPower      uint32
	ErrorMotion     uint32
	ErrorCommand    uint32
	ErrorGearbox    uint32
	ErrorCoupling   uint32
	Position        float64
	Velocity        float64
}

// SystemStatus is the CU's machine-wide snapshot (§4.6 step 10, §7): a
// global error_flags word (full width, never truncated) plus every axis's
// summary. Reused verbatim across cu_mqt, cu_re, and cu_rpc — the snapshot
// content does not vary by consumer.
type SystemStatus struct {
	CycleCount   uint64
	MachineState uint8
	SafetyState  uint8
	_            [6]byte // pad
	ErrorFlags   uint32
	_            [4]byte // pad
	Axes         [constants.MaxAxes]AxisSummary
}

// IODiagnostic is HAL's raw I/O snapshot for dashboard/diagnostic
// consumers. Reused across hal_mqt and hal_rpc.
type IODiagnostic struct {
	CycleCount uint64
	Inputs     IOInputs
	Outputs    IOOutputs
}

// AxisMotionRequest is one axis's requested setpoint from a non-RT command
// source (recipe executor or RPC gateway), per §4.6 step 3 (command
// arbitration honors whichever source currently holds the axis lock).
type AxisMotionRequest struct {
	AxisID         uint8
	Mode           uint8
	_              [6]byte // pad
	TargetPosition float64
	TargetVelocity float64
}

// RecipeControl carries the recipe-level start/stop/pause/resume request
// riding alongside per-axis motion requests.
type RecipeControl struct {
	Start    bool
	Stop     bool
	Pause    bool
	Resume   bool
	_        [4]byte // pad
	RecipeID uint32
	_        [4]byte // pad
}

// ExternalCommandPayload is the shape both non-RT command sources (recipe
// executor, RPC gateway) send to the CU (stems re_cu and rpc_cu): per-axis
// motion requests plus recipe-level control. The CU's command arbitration
// distinguishes the two sources by the segment each payload arrives on
// (re_cu or rpc_cu), not by payload shape.
type ExternalCommandPayload struct {
	CycleCount uint64
	Requests   [constants.MaxAxes]AxisMotionRequest
	Control    RecipeControl
}

// RecipeStatus is the recipe executor's status report, reused across
// re_mqt and re_rpc.
type RecipeStatus struct {
	CycleCount uint64
	State      uint8
	_          [7]byte // pad
	RecipeID   uint32
	StepIndex  uint32
	Message    [64]byte
}

// RecipeControlPayload is the RPC gateway's recipe-control request to the
// recipe executor (stem rpc_re): start/stop/pause/resume a recipe by ID.
type RecipeControlPayload struct {
	CycleCount uint64
	Control    RecipeControl
}
