package safety

import "github.com/evo-automation/evo/internal/axis"

// PeripheralInputs bundles the per-axis raw inputs peripheral evaluation
// consumes each cycle (§4.5): DI readings already resolved through the I/O
// role registry (§4.7), so this package never touches ioreg directly.
type PeripheralInputs struct {
	TailstockOK    bool
	LockPinOK      bool
	BrakeOK        bool
	GuardOK        bool
	LimitSwitchOK  bool
	MotionEnableOK bool
	HasEnableInput bool // Motion-enable is only required if configured (§4.5)

	Position       float64
	SoftLimitMin   float64
	SoftLimitMax   float64
	Referenced     bool // soft limits only checked once referenced (§4.5)

	GearboxOK bool
}

// EvaluatePeripherals produces the eight Level 4 safety flags for one
// axis this cycle (§4.5).
func EvaluatePeripherals(in PeripheralInputs) axis.SafetyFlags {
	var f axis.SafetyFlags
	f = f.Set(axis.FlagTailstockOK, in.TailstockOK)
	f = f.Set(axis.FlagLockPinOK, in.LockPinOK)
	f = f.Set(axis.FlagBrakeOK, in.BrakeOK)
	f = f.Set(axis.FlagGuardOK, in.GuardOK)
	f = f.Set(axis.FlagLimitSwitchOK, in.LimitSwitchOK)
	f = f.Set(axis.FlagGearboxOK, in.GearboxOK)

	softLimitOK := true
	if in.Referenced {
		softLimitOK = in.Position >= in.SoftLimitMin && in.Position <= in.SoftLimitMax
	}
	f = f.Set(axis.FlagSoftLimitOK, softLimitOK)

	motionEnableOK := true
	if in.HasEnableInput {
		motionEnableOK = in.MotionEnableOK
	}
	f = f.Set(axis.FlagMotionEnableOK, motionEnableOK)

	return f
}
