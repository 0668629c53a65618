package cycle

import (
	"github.com/evo-automation/evo/internal/ioreg"
	"github.com/evo-automation/evo/internal/safety"
	"github.com/evo-automation/evo/internal/segments"
)

// readDIOptional resolves role through the registry and reads its bit from
// bank. An unconfigured role (empty string) or an unbound one both default
// to ok=true, matching §4.5's "only required if configured" rule applied
// uniformly to every optional peripheral input, not just motion-enable.
func readDIOptional(reg *ioreg.Registry, bank *ioreg.Bank, role string) bool {
	if role == "" {
		return true
	}
	v, err := reg.ReadDI(bank, role)
	if err != nil {
		return true
	}
	return v
}

// buildPeripheralInputs assembles one axis's §4.5 peripheral evaluation
// input from the raw HAL feedback bus and the axis's configured I/O roles.
func (rt *Runtime) buildPeripheralInputs(ar *AxisRuntime, feedback segments.HalFeedbackPayload, axisIndex int) safety.PeripheralInputs {
	bank := ioreg.Bank(feedback.Inputs.DI)
	roles := ar.Cfg.IORoles

	limitOK := readDIOptional(rt.registry, &bank, roles.LimitMinInput) &&
		readDIOptional(rt.registry, &bank, roles.LimitMaxInput)

	var position float64
	var referenced bool
	if axisIndex >= 0 && axisIndex < len(feedback.Axes) {
		position = feedback.Axes[axisIndex].Position
		referenced = feedback.Axes[axisIndex].Referenced
	}

	return safety.PeripheralInputs{
		TailstockOK:    readDIOptional(rt.registry, &bank, roles.TailstockInput),
		LockPinOK:      readDIOptional(rt.registry, &bank, roles.LockPinInput),
		BrakeOK:        readDIOptional(rt.registry, &bank, roles.BrakeInput),
		GuardOK:        readDIOptional(rt.registry, &bank, roles.GuardInput),
		LimitSwitchOK:  limitOK,
		MotionEnableOK: readDIOptional(rt.registry, &bank, roles.EnableInput),
		HasEnableInput: roles.EnableInput != "",
		Position:       position,
		SoftLimitMin:   ar.Cfg.Limits.PositionMin,
		SoftLimitMax:   ar.Cfg.Limits.PositionMax,
		Referenced:     referenced,
		GearboxOK:      readDIOptional(rt.registry, &bank, roles.GearboxOkInput),
	}
}
