package axis

// SafetyFlags packs the eight Level 4 axis safety booleans into one byte
// for the SHM snapshot (§4.3). All eight must be true for motion to be
// permitted on the axis.
type SafetyFlags uint8

const (
	FlagTailstockOK SafetyFlags = 1 << iota
	FlagLockPinOK
	FlagBrakeOK
	FlagGuardOK
	FlagLimitSwitchOK
	FlagSoftLimitOK
	FlagMotionEnableOK
	FlagGearboxOK
)

const allSafetyFlags = FlagTailstockOK | FlagLockPinOK | FlagBrakeOK | FlagGuardOK |
	FlagLimitSwitchOK | FlagSoftLimitOK | FlagMotionEnableOK | FlagGearboxOK

// OK reports whether every safety flag is set (§4.3: "All must be true for
// motion").
func (f SafetyFlags) OK() bool {
	return f&allSafetyFlags == allSafetyFlags
}

// Set returns f with flag set to v.
func (f SafetyFlags) Set(flag SafetyFlags, v bool) SafetyFlags {
	if v {
		return f | flag
	}
	return f &^ flag
}

// Has reports whether flag is set.
func (f SafetyFlags) Has(flag SafetyFlags) bool {
	return f&flag != 0
}
