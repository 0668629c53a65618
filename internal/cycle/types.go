package cycle

import (
	"github.com/evo-automation/evo/internal/axis"
	"github.com/evo-automation/evo/internal/config"
	"github.com/evo-automation/evo/internal/control"
	"github.com/evo-automation/evo/internal/safety"
)

// CommandSource identifies who currently owns an axis's command lock
// (§4.6 step 3). None means the axis is free; Safety is never granted by
// arbitration — it is the unconditional-override actor that pauses motion
// without taking ownership.
type CommandSource int

const (
	SourceNone CommandSource = iota
	SourceRecipeExecutor
	SourceRPC
	SourceSafety
)

// commandErrSourceLocked aliases the Level 5 Command error bit raised when
// a non-holder's request is rejected (§4.6 step 3, §7).
const commandErrSourceLocked = axis.CommandErrSourceLocked

func (s CommandSource) String() string {
	switch s {
	case SourceNone:
		return "None"
	case SourceRecipeExecutor:
		return "RecipeExecutor"
	case SourceRPC:
		return "RPC"
	case SourceSafety:
		return "Safety"
	default:
		return "Unknown"
	}
}

// AxisRuntime is one axis's full live state: the Level 3-5 state-machine
// container, its control engine, its safety-stop executor, its command
// lock, and the setpoint the arbitrated command source currently holds.
type AxisRuntime struct {
	Cfg    config.AxisConfig
	State  *axis.Axis
	Engine *control.Engine
	Stop   *safety.StopExecutor

	Lock CommandSource

	TargetPosition float64
	TargetVelocity float64

	// Stopping is true while the axis is being driven down by Stop rather
	// than by the normal control engine (§4.6 step 6).
	Stopping bool

	// LagCritical latches true when the axis's configured lag policy is
	// Critical and lag is currently exceeded. Lag is evaluated in Step 8,
	// after Step 5's machine-wide trip check already ran this cycle, so
	// this is consulted by Step 5 on the *next* cycle rather than folded
	// into the Level 5 severity table (§4.4: lag policy is itself a
	// per-axis config knob, not a fixed classification).
	LagCritical bool
}

func newAxisRuntime(ac config.AxisConfig, machineCfg config.MachineConfig) *AxisRuntime {
	state := axis.NewAxis(ac.ID)
	state.Loading = axis.ParseLoadingMode(ac.Loading.Mode)
	return &AxisRuntime{
		Cfg:    ac,
		State:  state,
		Engine: control.NewEngine(controlConfigFrom(ac)),
		Stop: safety.NewStopExecutor(
			ac.STOBrakeDelayCycles,
			machineCfg.MaxDecelSafe,
			ac.SS2HoldingTorque,
			machineCfg.SafetyStopTimeoutCycles,
		),
	}
}

func controlConfigFrom(ac config.AxisConfig) control.Config {
	return control.Config{
		Kp: ac.PID.Kp, Ki: ac.PID.Ki, Kd: ac.PID.Kd, Tt: ac.PID.Tt, Tf: ac.PID.Tf,
		Kvff: ac.FeedForward.Kvff, Kaff: ac.FeedForward.Kaff, Friction: ac.FeedForward.Friction,
		GDOB: ac.FeedForward.GDOB, Jn: ac.FeedForward.Jn, Bn: ac.FeedForward.Bn,
		NotchFreqHz: ac.Filters.NotchFreqHz, NotchBWHz: ac.Filters.NotchBWHz, LowpassHz: ac.Filters.LowpassHz,
		OutMax: ac.Limits.OutMax,
	}
}

func lagPolicyFrom(p config.LagPolicy) control.LagPolicy {
	switch p {
	case config.LagPolicyCritical:
		return control.LagCritical
	case config.LagPolicyUnwanted:
		return control.LagUnwanted
	case config.LagPolicyNeutral:
		return control.LagNeutral
	case config.LagPolicyDesired:
		return control.LagDesired
	default:
		return control.LagCritical
	}
}

// stopCategoryFrom resolves an axis's configured stop category, defaulting
// to SS1 (§4.5) when unset.
func stopCategoryFrom(s string) safety.StopCategory {
	switch s {
	case "sto":
		return safety.STO
	case "ss2":
		return safety.SS2
	default:
		return safety.SS1
	}
}
