package config

// MachineConfig is machine.toml's [machine] table (§4.8, §4.5).
type MachineConfig struct {
	SafetyStopTimeoutCycles uint64  `toml:"safety_stop_timeout_cycles"`
	StoBrakeDelayCycles     uint64  `toml:"sto_brake_delay_cycles"`
	Ss2HoldingTorque        float64 `toml:"ss2_holding_torque"`
	MaxDecelSafe            float64 `toml:"max_decel_safe"`
	ManualTimeoutS          float64 `toml:"manual_timeout_s"`
	RecoveryNeedsAuth       bool    `toml:"recovery_needs_authorization"`
	ResetDIRole             string  `toml:"reset_di_role"`
	AuthorizeDIRole         string  `toml:"authorize_di_role"`
}

// machineFile mirrors machine.toml's root layout. The legacy-rejected
// `[[axes]]` array is captured here (as a root-level array-of-tables,
// never inside [machine]) purely so Load can detect and reject it.
type machineFile struct {
	Machine MachineConfig            `toml:"machine"`
	Axes    []map[string]interface{} `toml:"axes"`
}
