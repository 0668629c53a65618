package cycle

import (
	"github.com/evo-automation/evo/internal/axis"
	"github.com/evo-automation/evo/internal/segments"
)

// buildSystemStatus assembles the machine-wide snapshot (§4.6 step 10,
// §7): a full-width global error_flags word plus every axis's compact
// summary. error_flags bit i%32 is set when axis i's highest error severity
// is Critical, giving a quick "something needs attention" signal without
// requiring a consumer to decode every axis's bitfields.
func (rt *Runtime) buildSystemStatus() segments.SystemStatus {
	var status segments.SystemStatus
	status.CycleCount = rt.cycleCount
	status.MachineState = uint8(rt.machine)
	status.SafetyState = uint8(rt.safety)

	for i, id := range rt.axisOrder {
		if i >= len(status.Axes) {
			break
		}
		ar := rt.axisByID[id]
		status.Axes[i] = segments.AxisSummary{
			ID:              ar.Cfg.ID,
			PowerState:      uint8(ar.State.Power),
			MotionState:     uint8(ar.State.Motion),
			OperationalMode: uint8(ar.State.Operational),
			CouplingState:   uint8(ar.State.Coupling),
			GearboxState:    uint8(ar.State.Gearbox),
			SafetyFlags:     uint8(ar.State.SafetyFlags),
			ErrorPower:      uint32(ar.State.Errors.Power),
			ErrorMotion:     uint32(ar.State.Errors.Motion),
			ErrorCommand:    uint32(ar.State.Errors.Command),
			ErrorGearbox:    uint32(ar.State.Errors.Gearbox),
			ErrorCoupling:   uint32(ar.State.Errors.Coupling),
			Position:        ar.TargetPosition,
			Velocity:        ar.TargetVelocity,
		}
		if ar.State.Errors.HighestSeverity() == axis.SeverityCritical {
			status.ErrorFlags |= 1 << uint(i%32)
		}
	}
	return status
}
