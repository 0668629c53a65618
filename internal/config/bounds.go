package config

import (
	"fmt"

	"github.com/evo-automation/evo/internal/constants"
)

// validateSystem enforces config.toml bounds (§4.8).
func validateSystem(s SystemConfig) error {
	if s.CycleTimeUs != 0 && (s.CycleTimeUs < constants.MinCycleTimeUs || s.CycleTimeUs > constants.MaxCycleTimeUs) {
		return fmt.Errorf("%w: cycle_time_us %d outside [%d,%d]", ErrValidationError, s.CycleTimeUs, constants.MinCycleTimeUs, constants.MaxCycleTimeUs)
	}
	return nil
}

// validateMachine enforces machine.toml bounds (§4.8, §4.5).
func validateMachine(m MachineConfig) error {
	if m.ManualTimeoutS != 0 && (m.ManualTimeoutS < constants.ManualTimeoutMinS || m.ManualTimeoutS > constants.ManualTimeoutMaxS) {
		return fmt.Errorf("%w: manual_timeout_s %v outside [%v,%v]", ErrValidationError, m.ManualTimeoutS, constants.ManualTimeoutMinS, constants.ManualTimeoutMaxS)
	}
	if m.MaxDecelSafe < 0 || m.MaxDecelSafe > constants.MaxSafeDecel {
		return fmt.Errorf("%w: max_decel_safe %v outside [0,%v]", ErrValidationError, m.MaxDecelSafe, constants.MaxSafeDecel)
	}
	return nil
}

// validateAxis enforces per-axis bounds (§4.8), mirroring the original
// implementation's consts.rs envelope.
func validateAxis(a AxisConfig) error {
	if a.PID.Kp < constants.MinKp || a.PID.Kp > constants.MaxKp {
		return fmt.Errorf("%w: axis %d kp %v outside [%v,%v]", ErrValidationError, a.ID, a.PID.Kp, constants.MinKp, constants.MaxKp)
	}
	if a.PID.Ki < constants.MinKi || a.PID.Ki > constants.MaxKi {
		return fmt.Errorf("%w: axis %d ki %v outside [%v,%v]", ErrValidationError, a.ID, a.PID.Ki, constants.MinKi, constants.MaxKi)
	}
	if a.PID.Kd < constants.MinKd || a.PID.Kd > constants.MaxKd {
		return fmt.Errorf("%w: axis %d kd %v outside [%v,%v]", ErrValidationError, a.ID, a.PID.Kd, constants.MinKd, constants.MaxKd)
	}
	if a.Limits.MaxVelocity < 0 || a.Limits.MaxVelocity > constants.MaxVelocity {
		return fmt.Errorf("%w: axis %d max_velocity %v outside [0,%v]", ErrValidationError, a.ID, a.Limits.MaxVelocity, constants.MaxVelocity)
	}
	if a.Limits.MaxAcceleration < 0 || a.Limits.MaxAcceleration > constants.MaxAcceleration {
		return fmt.Errorf("%w: axis %d max_acceleration %v outside [0,%v]", ErrValidationError, a.ID, a.Limits.MaxAcceleration, constants.MaxAcceleration)
	}
	if a.Limits.PositionMax-a.Limits.PositionMin > constants.MaxPositionRange {
		return fmt.Errorf("%w: axis %d position range exceeds %v", ErrValidationError, a.ID, constants.MaxPositionRange)
	}
	if a.Limits.PositionMax < a.Limits.PositionMin {
		return fmt.Errorf("%w: axis %d position_max < position_min", ErrValidationError, a.ID)
	}
	if a.Limits.OutMax < 0 || a.Limits.OutMax > constants.MaxOutMax {
		return fmt.Errorf("%w: axis %d out_max %v outside [0,%v]", ErrValidationError, a.ID, a.Limits.OutMax, constants.MaxOutMax)
	}
	if a.Limits.LagErrorLimit < 0 || a.Limits.LagErrorLimit > constants.MaxLagError {
		return fmt.Errorf("%w: axis %d lag_error_limit %v outside [0,%v]", ErrValidationError, a.ID, a.Limits.LagErrorLimit, constants.MaxLagError)
	}
	if a.Homing.Speed < 0 || a.Homing.Speed > constants.MaxHomingSpeed {
		return fmt.Errorf("%w: axis %d homing speed %v outside [0,%v]", ErrValidationError, a.ID, a.Homing.Speed, constants.MaxHomingSpeed)
	}
	if a.Homing.TimeoutS < 0 || a.Homing.TimeoutS > constants.MaxHomingTimeoutS {
		return fmt.Errorf("%w: axis %d homing timeout %v outside [0,%v]", ErrValidationError, a.ID, a.Homing.TimeoutS, constants.MaxHomingTimeoutS)
	}
	if a.Homing.SafeDecel < 0 || a.Homing.SafeDecel > constants.MaxSafeDecel {
		return fmt.Errorf("%w: axis %d safe_decel %v outside [0,%v]", ErrValidationError, a.ID, a.Homing.SafeDecel, constants.MaxSafeDecel)
	}
	if a.ID == 0 || int(a.ID) > constants.MaxAxes {
		return fmt.Errorf("%w: axis id %d outside [1,%d]", ErrValidationError, a.ID, constants.MaxAxes)
	}
	return nil
}
