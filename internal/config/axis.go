package config

// LagPolicy classifies how the lag monitor's excess-lag condition is
// dispatched (§4.4, §7 severity classification, shared with axis error
// bitflags).
type LagPolicy string

const (
	LagPolicyCritical LagPolicy = "critical"
	LagPolicyUnwanted LagPolicy = "unwanted"
	LagPolicyNeutral  LagPolicy = "neutral"
	LagPolicyDesired  LagPolicy = "desired"
)

// PIDConfig holds the control engine's gains and filter time constants
// (§4.4). Zero gain disables the corresponding term.
type PIDConfig struct {
	Kp float64 `toml:"kp"`
	Ki float64 `toml:"ki"`
	Kd float64 `toml:"kd"`
	Tt float64 `toml:"tt"` // anti-windup back-calculation time constant
	Tf float64 `toml:"tf"` // derivative low-pass time constant
}

// FeedForwardConfig holds the feed-forward and disturbance-observer gains
// (§4.4).
type FeedForwardConfig struct {
	Kvff     float64 `toml:"kvff"`
	Kaff     float64 `toml:"kaff"`
	Friction float64 `toml:"friction"`
	GDOB     float64 `toml:"g_dob"`
	Jn       float64 `toml:"jn"`
	Bn       float64 `toml:"bn"`
}

// FilterConfig holds the notch+lowpass signal conditioning chain (§4.4). A
// zero frequency disables the corresponding stage.
type FilterConfig struct {
	NotchFreqHz  float64 `toml:"notch_freq_hz"`
	NotchBWHz    float64 `toml:"notch_bw_hz"`
	LowpassHz    float64 `toml:"lowpass_hz"`
}

// LimitsConfig holds per-axis motion envelope bounds (§4.8 validation).
type LimitsConfig struct {
	MaxVelocity     float64 `toml:"max_velocity"`
	MaxAcceleration float64 `toml:"max_acceleration"`
	PositionMin     float64 `toml:"position_min"`
	PositionMax     float64 `toml:"position_max"`
	OutMax          float64 `toml:"out_max"`
	LagErrorLimit   float64 `toml:"lag_error_limit"`
	LagPolicy       LagPolicy `toml:"lag_policy"`
}

// HomingConfig holds the reference-move parameters for one axis.
type HomingConfig struct {
	Speed      float64 `toml:"speed"`
	TimeoutS   float64 `toml:"timeout_s"`
	SafeDecel  float64 `toml:"safe_decel"`
}

// CouplingConfig declares this axis's role in an electronic gearing
// relationship (§4.3 Level 3 Coupling sub-machine). Role is one of
// "none", "master", "slave".
type CouplingConfig struct {
	Role       string  `toml:"role"`
	MasterID   uint8   `toml:"master_id"`
	Ratio      float64 `toml:"ratio"`
	Offset     float64 `toml:"offset"`
	Modulated  bool    `toml:"modulated"`
}

// LoadingConfig drives the Level 3 Loading sub-machine (§4.3).
type LoadingConfig struct {
	Mode string `toml:"mode"` // "production", "ready_for_loading", "loading_blocked", "loading_manual_allowed"
}

// IORolesConfig names the DI/analog role strings this axis reads (§4.7).
// The roles themselves are resolved against the registry built from
// io.toml; this struct only records which role name plays which function
// for this specific axis.
type IORolesConfig struct {
	EnableInput      string `toml:"enable_input"`
	LimitMinInput    string `toml:"limit_min_input"`
	LimitMaxInput    string `toml:"limit_max_input"`
	TailstockInput   string `toml:"tailstock_input"`
	LockPinInput     string `toml:"lock_pin_input"`
	BrakeInput       string `toml:"brake_input"`
	GuardInput       string `toml:"guard_input"`
	GearboxOkInput   string `toml:"gearbox_ok_input"`
}

// AxisConfig is one axis_NN_name.toml file's [axis] table (§4.8).
type AxisConfig struct {
	ID   uint8  `toml:"id"`
	Name string `toml:"name"`

	ReducedSpeedLimit     float64 `toml:"reduced_speed_limit"`
	STOBrakeDelayCycles   uint64  `toml:"sto_brake_delay_cycles"`
	SS2HoldingTorque      float64 `toml:"ss2_holding_torque"`
	AuthorizationRequired bool    `toml:"authorization_required"`

	// StopCategory selects which of the three safety-stop shapes (§4.5)
	// this axis's executor runs: "sto", "ss1", or "ss2". Empty defaults to
	// "ss1" (controlled decel then disable+brake), the safest default that
	// still protects driven loads from an instantaneous torque cutoff.
	StopCategory string `toml:"stop_category"`

	PID         PIDConfig         `toml:"pid"`
	FeedForward FeedForwardConfig `toml:"feed_forward"`
	Filters     FilterConfig      `toml:"filters"`
	Limits      LimitsConfig      `toml:"limits"`
	Homing      HomingConfig      `toml:"homing"`
	Coupling    CouplingConfig    `toml:"coupling"`
	Loading     LoadingConfig     `toml:"loading"`
	IORoles     IORolesConfig     `toml:"io_roles"`
}

type axisFile struct {
	Axis AxisConfig `toml:"axis"`
}
